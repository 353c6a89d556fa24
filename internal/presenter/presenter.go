// Package presenter turns a weather payload into display strings.
package presenter

import (
	"strconv"
	"time"

	"github.com/fakhrymubarak/weather-now/internal/model"
)

const clockLayout = "15:04"

type Presenter struct {
	loc    *time.Location
	system string
}

// New returns a Presenter formatting times in loc (time.Local when nil) for
// payloads fetched with the given units system (metric when empty).
func New(loc *time.Location, system string) *Presenter {
	if loc == nil {
		loc = time.Local
	}
	if system == "" {
		system = SystemMetric
	}
	return &Presenter{loc: loc, system: system}
}

// ToDisplay maps a payload for the given locale. Only the first weather entry
// drives condition, description and icon; an empty sequence leaves them blank.
func (p *Presenter) ToDisplay(payload *model.WeatherResponse, locale string) model.DisplayModel {
	if payload == nil {
		return model.DisplayModel{}
	}
	unit := UnitFor(locale)

	view := model.DisplayModel{
		Temperature: p.formatTemp(payload.Main.Temp, unit),
		TempMin:     "min " + p.formatTemp(payload.Main.TempMin, unit),
		TempMax:     "max " + p.formatTemp(payload.Main.TempMax, unit),
		Humidity:    strconv.Itoa(payload.Main.Humidity) + "%",
		WindSpeed:   formatNumber(payload.Wind.Speed),
		City:        payload.Name,
		Country:     payload.Country(),
		Sunrise:     FormatClock(payload.Sys.Sunrise, p.loc),
		Sunset:      FormatClock(payload.Sys.Sunset, p.loc),
		Unit:        unit,
	}

	if cond, ok := payload.PrimaryCondition(); ok {
		view.Condition = cond.Main
		view.Description = cond.Description
		if icon, ok := IconFor(cond.Icon); ok {
			view.Icon = string(icon)
		}
	}
	return view
}

// FormatClock renders epoch seconds as 24-hour HH:mm in loc.
func FormatClock(epoch int64, loc *time.Location) string {
	return time.Unix(epoch, 0).In(loc).Format(clockLayout)
}

func (p *Presenter) formatTemp(v float64, unit string) string {
	return formatNumber(convertTemp(v, p.system, unit)) + unit
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
