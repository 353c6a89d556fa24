package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-now/internal/location"
	"github.com/fakhrymubarak/weather-now/internal/model"
	"github.com/fakhrymubarak/weather-now/internal/network"
	"github.com/fakhrymubarak/weather-now/internal/repository"
	"github.com/fakhrymubarak/weather-now/internal/service"
)

type WeatherHandler struct {
	WeatherService service.WeatherServiceInterface
	Logger         *zap.SugaredLogger
	// Background scopes refreshes that outlive their request.
	Background context.Context
}

func NewWeatherHandler(svc service.WeatherServiceInterface, logger *zap.SugaredLogger) *WeatherHandler {
	return &WeatherHandler{
		WeatherService: svc,
		Logger:         logger,
		Background:     context.Background(),
	}
}

func (h *WeatherHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Errorw("could not encode json", "error", err)
	}
}

// HandleWeather renders the cached payload for ?locale=.
func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	view, ok := h.WeatherService.Current(r.Context(), r.URL.Query().Get("locale"))
	if !ok {
		errMsg := "No weather data yet"
		h.writeJSONResponse(w, http.StatusNotFound, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    view,
		Message: "Success",
	})
}

// HandleRefresh re-triggers the coordinate request and fetch. With ?async=true
// it answers 202 at once and the outcome is only logged.
func (h *WeatherHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("async") == "true" {
		result := h.WeatherService.RefreshAsync(h.Background)
		go func() {
			if res := <-result; res.Err != nil {
				h.Logger.Warnw("background refresh failed", "error", res.Err)
			}
		}()
		h.writeJSONResponse(w, http.StatusAccepted, model.Response{Message: "Refresh started"})
		return
	}

	_, err := h.WeatherService.Refresh(r.Context())
	if err != nil {
		notice := service.NoticeFor(err)
		errMsg := err.Error()
		h.writeJSONResponse(w, statusFor(err), model.Response{
			Error:   &errMsg,
			Notice:  &notice,
			Message: "Error",
		})
		return
	}

	view, _ := h.WeatherService.Current(r.Context(), r.URL.Query().Get("locale"))
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    view,
		Message: "Success",
	})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, location.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, location.ErrLocationUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, network.ErrNetworkUnreachable), errors.Is(err, repository.ErrNetwork):
		return http.StatusServiceUnavailable
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrHTTP), errors.Is(err, repository.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
