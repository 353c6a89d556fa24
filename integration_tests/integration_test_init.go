package integrationtest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-now/internal/cache"
	"github.com/fakhrymubarak/weather-now/internal/handler"
	"github.com/fakhrymubarak/weather-now/internal/location"
	"github.com/fakhrymubarak/weather-now/internal/model"
	"github.com/fakhrymubarak/weather-now/internal/network"
	"github.com/fakhrymubarak/weather-now/internal/presenter"
	"github.com/fakhrymubarak/weather-now/internal/repository"
	"github.com/fakhrymubarak/weather-now/internal/service"
	"github.com/fakhrymubarak/weather-now/internal/storage"
)

// MockResponse is what the fake OpenWeatherMap answers with.
type MockResponse struct {
	Code int
	Body string
}

type mockOWM struct {
	server   *httptest.Server
	response atomic.Pointer[MockResponse]
	hits     atomic.Int32
	lastURL  atomic.Pointer[string]
}

func newMockOWM() *mockOWM {
	m := &mockOWM{}
	m.set(http.StatusOK, "{}")
	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.hits.Add(1)
		u := r.URL.String()
		m.lastURL.Store(&u)
		resp := m.response.Load()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Code)
		_, _ = w.Write([]byte(resp.Body))
	}))
	return m
}

func (m *mockOWM) set(code int, body string) {
	m.response.Store(&MockResponse{Code: code, Body: body})
}

type testApp struct {
	server  *httptest.Server
	owm     *mockOWM
	redis   *miniredis.Miniredis
	rdb     *redisv9.Client
	granted *atomic.Bool
	online  *atomic.Bool
}

// togglePrompter grants or refuses both permissions depending on a flag.
type togglePrompter struct {
	granted *atomic.Bool
}

func (p togglePrompter) RequestPermissions(context.Context, []location.Permission) (location.Report, error) {
	return location.Report{AllGranted: p.granted.Load()}, nil
}

func setupIntegrationTestServer(mr *miniredis.Miniredis) *testApp {
	logger := zap.NewNop().Sugar()
	owm := newMockOWM()
	rdb := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})

	granted := &atomic.Bool{}
	granted.Store(true)
	online := &atomic.Bool{}
	online.Store(true)

	svc := &service.WeatherService{
		Locator: location.NewLocator(
			location.StaticStatus(true),
			togglePrompter{granted: granted},
			location.StaticSource{Coords: model.Coordinates{Latitude: 37.5665, Longitude: 126.978}},
			logger,
		),
		Network:       network.CheckerFunc(func(context.Context) bool { return online.Load() }),
		Client:        repository.NewWeatherClient(owm.server.URL + "/data"),
		Cache:         cache.NewWeatherCache(storage.NewRedisStore(rdb), cache.DefaultKey, logger),
		Presenter:     presenter.New(nil, presenter.SystemMetric),
		Units:         "metric",
		APIKey:        "test_api_key",
		DefaultLocale: "ko-KR",
		Logger:        logger,
	}

	router := handler.NewRouter(handler.NewWeatherHandler(svc, logger), nil, logger)
	return &testApp{
		server:  httptest.NewServer(router),
		owm:     owm,
		redis:   mr,
		rdb:     rdb,
		granted: granted,
		online:  online,
	}
}

func (a *testApp) Close() {
	a.server.Close()
	a.owm.server.Close()
	_ = a.rdb.Close()
}
