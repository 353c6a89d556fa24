package service

import (
	"errors"

	"github.com/fakhrymubarak/weather-now/internal/location"
	"github.com/fakhrymubarak/weather-now/internal/model"
	"github.com/fakhrymubarak/weather-now/internal/network"
	"github.com/fakhrymubarak/weather-now/internal/repository"
)

const (
	NoticeLocationUnavailable = "location_unavailable"
	NoticePermissionDenied    = "permission_denied"
	NoticeNetworkUnreachable  = "network_unreachable"
	NoticeBadRequest          = "bad_request"
	NoticeNotFound            = "not_found"
	NoticeHTTPError           = "http_error"
	NoticeParseError          = "parse_error"
	NoticeConfiguration       = "configuration"
	NoticeUnknown             = "unknown"
)

// NoticeFor turns a refresh error into the transient message shown to the user.
func NoticeFor(err error) model.Notice {
	switch {
	case errors.Is(err, location.ErrPermissionPermanentlyDenied):
		return model.Notice{
			Kind:         NoticePermissionDenied,
			Text:         "Location permission was denied. Enable it in system settings.",
			OpenSettings: true,
		}
	case errors.Is(err, location.ErrPermissionDenied):
		return model.Notice{Kind: NoticePermissionDenied, Text: "Please allow location permission."}
	case errors.Is(err, location.ErrLocationUnavailable):
		return model.Notice{Kind: NoticeLocationUnavailable, Text: "Location services are turned off.", OpenSettings: true}
	case errors.Is(err, network.ErrNetworkUnreachable), errors.Is(err, repository.ErrNetwork):
		return model.Notice{Kind: NoticeNetworkUnreachable, Text: "No internet connection."}
	case errors.Is(err, repository.ErrBadRequest):
		return model.Notice{Kind: NoticeBadRequest, Text: "The weather request was rejected."}
	case errors.Is(err, repository.ErrNotFound):
		return model.Notice{Kind: NoticeNotFound, Text: "No weather found for this location."}
	case errors.Is(err, repository.ErrHTTP):
		return model.Notice{Kind: NoticeHTTPError, Text: "The weather service returned an unknown error."}
	case errors.Is(err, repository.ErrParse):
		return model.Notice{Kind: NoticeParseError, Text: "The weather service sent an unreadable response."}
	case errors.Is(err, repository.ErrAPIKeyMissing):
		return model.Notice{Kind: NoticeConfiguration, Text: "No weather API key is configured."}
	default:
		return model.Notice{Kind: NoticeUnknown, Text: "Could not refresh the weather."}
	}
}
