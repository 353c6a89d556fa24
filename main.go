package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/fakhrymubarak/weather-now/internal/cache"
	"github.com/fakhrymubarak/weather-now/internal/config"
	"github.com/fakhrymubarak/weather-now/internal/handler"
	"github.com/fakhrymubarak/weather-now/internal/location"
	"github.com/fakhrymubarak/weather-now/internal/middleware"
	"github.com/fakhrymubarak/weather-now/internal/network"
	"github.com/fakhrymubarak/weather-now/internal/presenter"
	"github.com/fakhrymubarak/weather-now/internal/repository"
	"github.com/fakhrymubarak/weather-now/internal/service"
	"github.com/fakhrymubarak/weather-now/internal/storage"
)

func main() {
	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := newWeatherService(newStore(config.GetCacheBackend()))

	// like opening the screen: fetch once in the background, show the cache meanwhile
	go func() {
		if res := <-svc.RefreshAsync(ctx); res.Err != nil {
			logger.Warnw("initial refresh failed", "notice", service.NoticeFor(res.Err).Text, "error", res.Err)
		}
	}()

	rate, burst := config.GetRefreshRateLimiterConfig()
	limiter := middleware.NewRefreshLimiter(rate, burst, config.GetRateLimiterCleanupTimeout()).
		TrustProxies(config.GetTrustedProxies()...)
	limiter.StartCleanup(ctx)

	h := handler.NewWeatherHandler(svc, logger)
	h.Background = ctx

	srv := &http.Server{
		Addr:              ":" + config.GetServerPort(),
		Handler:           handler.NewRouter(h, limiter, logger),
		ReadHeaderTimeout: config.GetServerTimeoutDuration("read_header_timeout", 15*time.Second),
		ReadTimeout:       config.GetServerTimeoutDuration("read_timeout", 15*time.Second),
		WriteTimeout:      config.GetServerTimeoutDuration("write_timeout", 10*time.Second),
		IdleTimeout:       config.GetServerTimeoutDuration("idle_timeout", 30*time.Second),
	}

	go func() {
		logger.Infow("Weather server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetServerTimeoutDuration("shutdown_timeout", 5*time.Second))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
	}
}

// newStore picks the persistence behind the weather cache.
func newStore(backend string) storage.Store {
	switch backend {
	case "redis":
		return storage.NewRedisStore(storage.GetRedisClient())
	case "memory":
		return storage.NewMemoryStore()
	default:
		return storage.NewFileStore(afero.NewOsFs(), config.GetCachePath())
	}
}

func newWeatherService(store storage.Store) *service.WeatherService {
	logger := config.GetLogger()
	probeAddr, probeTimeout := config.GetNetworkProbe()

	return &service.WeatherService{
		Locator:       location.NewLocatorFromConfig(config.GetLocationConfig(), logger),
		Network:       network.NewDialChecker(probeAddr, probeTimeout),
		Client:        repository.NewWeatherClient(config.GetOpenWeatherBaseURL()),
		Cache:         cache.NewWeatherCache(store, config.GetCacheKey(), logger),
		Presenter:     presenter.New(config.GetDisplayLocation(), config.GetUnits()),
		Units:         config.GetUnits(),
		APIKey:        config.GetOpenWeatherMapAPIKey(),
		DefaultLocale: config.GetDisplayLocale(),
		Logger:        logger,
	}
}
