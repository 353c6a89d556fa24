package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fakhrymubarak/weather-now/internal/model"
)

// StaticStatus is a fixed on/off location service switch.
type StaticStatus bool

func (s StaticStatus) Enabled() bool { return bool(s) }

// StaticSource always answers with the configured coordinates.
type StaticSource struct {
	Coords model.Coordinates
}

func (s StaticSource) RequestOnce(ctx context.Context, _ Accuracy) (model.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return model.Coordinates{}, err
	}
	return s.Coords, nil
}

// IPSource resolves coordinates from the public IP through an ip-api style
// JSON endpoint. The accuracy hint is ignored: city-level is all it offers.
type IPSource struct {
	client *resty.Client
	url    string
}

func NewIPSource(url string, httpClient ...*http.Client) *IPSource {
	hc := &http.Client{Timeout: 10 * time.Second}
	if len(httpClient) > 0 && httpClient[0] != nil {
		hc = httpClient[0]
	}
	return &IPSource{
		client: resty.NewWithClient(hc).SetHeader("Accept", "application/json"),
		url:    url,
	}
}

type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (s *IPSource) RequestOnce(ctx context.Context, _ Accuracy) (model.Coordinates, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return model.Coordinates{}, err
	}
	if !resp.IsSuccess() {
		return model.Coordinates{}, fmt.Errorf("ip lookup returned status %d", resp.StatusCode())
	}

	var data ipLookupResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return model.Coordinates{}, fmt.Errorf("decode ip lookup: %w", err)
	}
	if data.Status != "" && data.Status != "success" {
		return model.Coordinates{}, errors.New("ip lookup failed: " + data.Message)
	}
	return model.Coordinates{Latitude: data.Lat, Longitude: data.Lon}, nil
}
