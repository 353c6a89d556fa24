// Package location produces one-shot coordinates for a weather fetch,
// gated on the location service being on and permissions being granted.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-now/internal/model"
)

var (
	ErrLocationUnavailable         = errors.New("location unavailable")
	ErrPermissionDenied            = errors.New("location permission denied")
	ErrPermissionPermanentlyDenied = fmt.Errorf("%w permanently; enable it in system settings", ErrPermissionDenied)
)

// Accuracy is a hint passed to the underlying source.
type Accuracy int

const (
	AccuracyBalanced Accuracy = iota
	AccuracyHigh
)

// ParseAccuracy maps "balanced" to AccuracyBalanced and anything else to AccuracyHigh.
func ParseAccuracy(s string) Accuracy {
	if strings.EqualFold(strings.TrimSpace(s), "balanced") {
		return AccuracyBalanced
	}
	return AccuracyHigh
}

// Source answers a single coordinate request.
type Source interface {
	RequestOnce(ctx context.Context, accuracy Accuracy) (model.Coordinates, error)
}

// Status reports whether any location provider is switched on.
type Status interface {
	Enabled() bool
}

// Locator runs the service check, the permission request and the one-shot
// source lookup in that order.
type Locator struct {
	status   Status
	prompter Prompter
	source   Source
	accuracy Accuracy
	logger   *zap.SugaredLogger
}

// NewLocator requests AccuracyHigh fixes unless WithAccuracy says otherwise.
func NewLocator(status Status, prompter Prompter, source Source, logger *zap.SugaredLogger) *Locator {
	return &Locator{status: status, prompter: prompter, source: source, accuracy: AccuracyHigh, logger: logger}
}

// WithAccuracy sets the hint passed to the source and returns l.
func (l *Locator) WithAccuracy(a Accuracy) *Locator {
	l.accuracy = a
	return l
}

// CurrentCoordinates returns exactly one coordinate pair or an error from the
// location taxonomy. The source is not consulted unless permissions are granted.
func (l *Locator) CurrentCoordinates(ctx context.Context) (model.Coordinates, error) {
	if !l.status.Enabled() {
		l.logger.Warnw("location service is disabled")
		return model.Coordinates{}, ErrLocationUnavailable
	}

	report, err := l.prompter.RequestPermissions(ctx, []Permission{PermissionCoarse, PermissionFine})
	if err != nil {
		return model.Coordinates{}, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	if report.AnyPermanentlyDenied {
		l.logger.Warnw("location permission permanently denied")
		return model.Coordinates{}, ErrPermissionPermanentlyDenied
	}
	if !report.AllGranted {
		l.logger.Infow("location permission not granted")
		return model.Coordinates{}, ErrPermissionDenied
	}

	coords, err := l.source.RequestOnce(ctx, l.accuracy)
	if err != nil {
		return model.Coordinates{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
	if !coords.Valid() {
		return model.Coordinates{}, fmt.Errorf("%w: coordinates out of range (%f, %f)",
			ErrLocationUnavailable, coords.Latitude, coords.Longitude)
	}
	l.logger.Infow("current coordinates", "lat", coords.Latitude, "lon", coords.Longitude)
	return coords, nil
}
