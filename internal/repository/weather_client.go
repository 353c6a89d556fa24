package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-now/internal/config"
	"github.com/fakhrymubarak/weather-now/internal/model"
)

const weatherPath = "/2.5/weather"

// WeatherClient fetches current weather for a pair of coordinates.
type WeatherClient interface {
	FetchWeather(ctx context.Context, coords model.Coordinates, units, apiKey string) (*model.WeatherResponse, error)
}

// weatherClient implements WeatherClient against OpenWeatherMap.
type weatherClient struct {
	client *resty.Client
	logger *zap.SugaredLogger
}

// NewWeatherClient creates a client rooted at baseURL (e.g. https://api.openweathermap.org/data).
// An optional *http.Client replaces the default transport, mostly for tests.
func NewWeatherClient(baseURL string, httpClient ...*http.Client) WeatherClient {
	hc := &http.Client{Timeout: config.GetRequestTimeout()}
	if len(httpClient) > 0 && httpClient[0] != nil {
		hc = httpClient[0]
	}
	logger := config.GetLogger()

	rc := resty.NewWithClient(hc).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debugw("weather API response",
			"path", resp.Request.RawRequest.URL.Path,
			"status", resp.StatusCode(),
			"duration", resp.Time().String(),
			"bytes", len(resp.Body()),
		)
		return nil
	})

	return &weatherClient{client: rc, logger: logger}
}

// FetchWeather issues one GET and never retries. Network reachability is the
// caller's concern.
func (c *weatherClient) FetchWeather(ctx context.Context, coords model.Coordinates, units, apiKey string) (*model.WeatherResponse, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(coords.Latitude, 'f', -1, 64),
			"lon":   strconv.FormatFloat(coords.Longitude, 'f', -1, 64),
			"units": units,
			"appid": apiKey,
		}).
		Get(weatherPath)
	if err != nil {
		c.logger.Errorw("weather request failed", "error", err)
		return nil, &NetworkError{Cause: err}
	}

	if !resp.IsSuccess() {
		httpErr := newHTTPError(resp.StatusCode(), string(resp.Body()))
		c.logger.Warnw("weather API error", "status", httpErr.Code, "kind", httpErr.Kind.String())
		return nil, httpErr
	}

	return decodeWeather(resp.Body())
}

func decodeWeather(body []byte) (*model.WeatherResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ParseError{Cause: errors.New("body is not a JSON object")}
	}
	var data model.WeatherResponse
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return nil, &ParseError{Cause: err}
	}
	return &data, nil
}
