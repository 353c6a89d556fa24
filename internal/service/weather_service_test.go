package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-now/internal/cache"
	"github.com/fakhrymubarak/weather-now/internal/location"
	"github.com/fakhrymubarak/weather-now/internal/model"
	"github.com/fakhrymubarak/weather-now/internal/network"
	"github.com/fakhrymubarak/weather-now/internal/presenter"
	"github.com/fakhrymubarak/weather-now/internal/repository"
	"github.com/fakhrymubarak/weather-now/internal/storage"
)

// Mock coordinate provider for testing
type mockLocator struct {
	coords model.Coordinates
	err    error
}

func (m *mockLocator) CurrentCoordinates(context.Context) (model.Coordinates, error) {
	return m.coords, m.err
}

// Mock weather client for testing
type mockWeatherClient struct {
	calls    int
	gotUnits string
	gotKey   string
	mockData *model.WeatherResponse
	err      error
}

func (m *mockWeatherClient) FetchWeather(_ context.Context, _ model.Coordinates, units, apiKey string) (*model.WeatherResponse, error) {
	m.calls++
	m.gotUnits = units
	m.gotKey = apiKey
	return m.mockData, m.err
}

// Ensure mockWeatherClient implements WeatherClient
var _ repository.WeatherClient = (*mockWeatherClient)(nil)

func payload(name, main, icon string) *model.WeatherResponse {
	return &model.WeatherResponse{
		Name: name,
		Weather: []model.Condition{
			{Main: main, Description: "desc " + main, Icon: icon},
			{Main: "Ignored", Description: "ignored", Icon: "13d"},
		},
		Main: model.Main{Temp: 18.5, TempMin: 15, TempMax: 20, Humidity: 70},
		Sys:  model.Sys{Country: "GB"},
	}
}

type fixture struct {
	svc     *WeatherService
	client  *mockWeatherClient
	locator *mockLocator
	probes  *int
	store   *storage.MemoryStore
}

func newFixture(reachable bool) fixture {
	probes := 0
	store := storage.NewMemoryStore()
	client := &mockWeatherClient{}
	locator := &mockLocator{coords: model.Coordinates{Latitude: 51.5, Longitude: -0.12}}
	svc := &WeatherService{
		Locator: locator,
		Network: network.CheckerFunc(func(context.Context) bool {
			probes++
			return reachable
		}),
		Client:        client,
		Cache:         cache.NewWeatherCache(store, cache.DefaultKey, zap.NewNop().Sugar()),
		Presenter:     presenter.New(time.UTC, presenter.SystemMetric),
		Units:         "metric",
		APIKey:        "secret",
		DefaultLocale: "en-GB",
	}
	return fixture{svc: svc, client: client, locator: locator, probes: &probes, store: store}
}

func TestRefresh_Success(t *testing.T) {
	f := newFixture(true)
	f.client.mockData = payload("London", "Clouds", "03d")

	weather, err := f.svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "London", weather.Name)
	assert.Equal(t, "metric", f.client.gotUnits)
	assert.Equal(t, "secret", f.client.gotKey)

	view, ok := f.svc.Current(context.Background(), "en-US")
	require.True(t, ok)
	assert.Equal(t, "Clouds", view.Condition)
	assert.Equal(t, "desc Clouds", view.Description)
	assert.Equal(t, "cloud", view.Icon)
	assert.Equal(t, "65.3ºF", view.Temperature)

	view, ok = f.svc.Current(context.Background(), "")
	require.True(t, ok)
	assert.Equal(t, "18.5ºC", view.Temperature, "default locale en-GB")
}

func TestRefresh_OverwritesCache(t *testing.T) {
	f := newFixture(true)
	f.client.mockData = payload("London", "Clouds", "03d")
	_, err := f.svc.Refresh(context.Background())
	require.NoError(t, err)

	f.client.mockData = payload("Leeds", "Clear", "01d")
	_, err = f.svc.Refresh(context.Background())
	require.NoError(t, err)

	view, ok := f.svc.Current(context.Background(), "en-GB")
	require.True(t, ok)
	assert.Equal(t, "Leeds", view.City)
	assert.Equal(t, "sunny", view.Icon)
}

func TestRefresh_NotFoundKeepsPriorCache(t *testing.T) {
	f := newFixture(true)
	f.client.mockData = payload("London", "Clouds", "03d")
	_, err := f.svc.Refresh(context.Background())
	require.NoError(t, err)
	before, err := f.store.Get(context.Background(), cache.DefaultKey)
	require.NoError(t, err)

	f.client.mockData = nil
	f.client.err = &repository.HTTPError{Code: 404, Kind: repository.KindNotFound}
	_, err = f.svc.Refresh(context.Background())
	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, NoticeNotFound, NoticeFor(err).Kind)

	after, err := f.store.Get(context.Background(), cache.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, before, after, "no cache write on failure")

	view, ok := f.svc.Current(context.Background(), "en-GB")
	require.True(t, ok)
	assert.Equal(t, "London", view.City)
}

func TestRefresh_PermissionDeniedSkipsNetwork(t *testing.T) {
	f := newFixture(true)
	f.locator.err = location.ErrPermissionDenied

	_, err := f.svc.Refresh(context.Background())
	require.ErrorIs(t, err, location.ErrPermissionDenied)
	assert.Equal(t, 0, f.client.calls)
	assert.Equal(t, 0, *f.probes)
	assert.Equal(t, NoticePermissionDenied, NoticeFor(err).Kind)

	_, ok := f.svc.Current(context.Background(), "en-GB")
	assert.False(t, ok)
}

func TestRefresh_NetworkUnreachable(t *testing.T) {
	f := newFixture(false)
	f.client.mockData = payload("London", "Clouds", "03d")

	_, err := f.svc.Refresh(context.Background())
	require.ErrorIs(t, err, network.ErrNetworkUnreachable)
	assert.Equal(t, 1, *f.probes)
	assert.Equal(t, 0, f.client.calls)
}

func TestRefresh_NilNetworkChecker(t *testing.T) {
	f := newFixture(true)
	f.svc.Network = nil
	f.client.mockData = payload("London", "Clouds", "03d")

	_, err := f.svc.Refresh(context.Background())
	assert.NoError(t, err)
}

func TestCurrent_EmptyCache(t *testing.T) {
	f := newFixture(true)
	view, ok := f.svc.Current(context.Background(), "en-US")
	assert.False(t, ok)
	assert.Nil(t, view)
}

func TestCurrent_CachedWithoutWeatherEntries(t *testing.T) {
	f := newFixture(true)
	p := payload("London", "Clouds", "03d")
	p.Weather = nil
	f.client.mockData = p
	_, err := f.svc.Refresh(context.Background())
	require.NoError(t, err)

	view, ok := f.svc.Current(context.Background(), "en-GB")
	require.True(t, ok)
	assert.Empty(t, view.Condition)
	assert.Empty(t, view.Icon)
}

func TestRefreshAsync(t *testing.T) {
	f := newFixture(true)
	f.client.mockData = payload("London", "Clouds", "03d")

	ch := f.svc.RefreshAsync(context.Background())
	select {
	case res, ok := <-ch:
		require.True(t, ok)
		require.NoError(t, res.Err)
		assert.Equal(t, "London", res.Weather.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh result not delivered")
	}

	_, open := <-ch
	assert.False(t, open, "channel closes after the single result")
}

func TestRefreshAsync_AbandonedDoesNotBlock(t *testing.T) {
	f := newFixture(true)
	f.client.err = errors.New("boom")

	ch := f.svc.RefreshAsync(context.Background())
	assert.Eventually(t, func() bool { return len(ch) == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestRefresh_NilContext(t *testing.T) {
	f := newFixture(true)
	f.client.mockData = payload("London", "Clouds", "03d")
	weather, err := f.svc.Refresh(nil)
	require.NoError(t, err)
	assert.NotNil(t, weather)
}
