package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		setDefaults()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Warnw("Error finding project root, using defaults", "error", err)
			return
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Errorw("Error merging test config file", "error", err)
			}
		}
	})
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_header_timeout", "15s")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.idle_timeout", "30s")
	viper.SetDefault("server.shutdown_timeout", "5s")
	viper.SetDefault("openweathermap.base_url", "https://api.openweathermap.org/data")
	viper.SetDefault("openweathermap.units", "metric")
	viper.SetDefault("openweathermap.timeout", "10s")
	viper.SetDefault("location.enabled", true)
	viper.SetDefault("location.provider", "static")
	viper.SetDefault("location.accuracy", "high")
	viper.SetDefault("location.ip_lookup_url", "http://ip-api.com/json")
	viper.SetDefault("location.permissions.granted", []string{"coarse", "fine"})
	viper.SetDefault("network.probe_addr", "api.openweathermap.org:443")
	viper.SetDefault("network.probe_timeout", "3s")
	viper.SetDefault("cache.backend", "file")
	viper.SetDefault("cache.path", "weather-now/preferences.json")
	viper.SetDefault("cache.key", "weather_response_data")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("display.locale", "en-US")
	viper.SetDefault("display.timezone", "Local")
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// GetOpenWeatherBaseURL returns the API root without the version segment,
// e.g. https://api.openweathermap.org/data.
func GetOpenWeatherBaseURL() string {
	initConfig()
	return strings.TrimRight(viper.GetString("openweathermap.base_url"), "/")
}

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("OPENWEATHERMAP_API_KEY")
}

func GetUnits() string {
	initConfig()
	return viper.GetString("openweathermap.units")
}

func GetRequestTimeout() time.Duration {
	initConfig()
	return getDuration("openweathermap.timeout", 10*time.Second)
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetServerPort() string {
	initConfig()
	return viper.GetString("server.port")
}

// GetServerTimeoutDuration parses a server.* timeout, falling back to def.
func GetServerTimeoutDuration(key string, def time.Duration) time.Duration {
	initConfig()
	return getDuration("server."+key, def)
}

func GetCacheBackend() string {
	initConfig()
	return strings.ToLower(viper.GetString("cache.backend"))
}

// GetCachePath returns cache.path, resolving relative paths under the user
// config directory. The raw value is used if that directory is unknown.
func GetCachePath() string {
	initConfig()
	p := viper.GetString("cache.path")
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		GetLogger().Warnw("No user config dir, cache path stays relative", "path", p, "error", err)
		return p
	}
	return filepath.Join(dir, p)
}

func GetCacheKey() string {
	initConfig()
	return viper.GetString("cache.key")
}

// LocationConfig groups the settings consumed by the coordinate source.
type LocationConfig struct {
	Enabled           bool
	Provider          string
	Accuracy          string
	Latitude          float64
	Longitude         float64
	IPLookupURL       string
	Granted           []string
	PermanentlyDenied []string
}

func GetLocationConfig() LocationConfig {
	initConfig()
	return LocationConfig{
		Enabled:           viper.GetBool("location.enabled"),
		Provider:          strings.ToLower(viper.GetString("location.provider")),
		Accuracy:          strings.ToLower(viper.GetString("location.accuracy")),
		Latitude:          viper.GetFloat64("location.latitude"),
		Longitude:         viper.GetFloat64("location.longitude"),
		IPLookupURL:       viper.GetString("location.ip_lookup_url"),
		Granted:           viper.GetStringSlice("location.permissions.granted"),
		PermanentlyDenied: viper.GetStringSlice("location.permissions.permanently_denied"),
	}
}

func GetNetworkProbe() (addr string, timeout time.Duration) {
	initConfig()
	return viper.GetString("network.probe_addr"), getDuration("network.probe_timeout", 3*time.Second)
}

func GetDisplayLocale() string {
	initConfig()
	return viper.GetString("display.locale")
}

// GetDisplayLocation resolves display.timezone. Unknown zones fall back to time.Local.
func GetDisplayLocation() *time.Location {
	initConfig()
	name := viper.GetString("display.timezone")
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		GetLogger().Warnw("Unknown display timezone, using local", "timezone", name, "error", err)
		return time.Local
	}
	return loc
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// GetRateLimiterCleanupTimeout returns the rate limiter cleanup timeout as a time.Duration.
// Defaults to 3m if not set or invalid.
func GetRateLimiterCleanupTimeout() time.Duration {
	initConfig()
	return getDuration("rate_limiter.cleanup_timeout", 3*time.Minute)
}

// GetRefreshRateLimiterConfig returns requests per minute and burst for the refresh action.
func GetRefreshRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.refresh.rate")
	if rate == 0 {
		rate = 6
	}
	burst = viper.GetInt("rate_limiter.refresh.burst")
	if burst == 0 {
		burst = 3
	}
	return
}

// GetTrustedProxies lists the peer IPs whose X-Forwarded-For header is honoured.
func GetTrustedProxies() []string {
	initConfig()
	return viper.GetStringSlice("rate_limiter.trusted_proxies")
}

func getDuration(key string, def time.Duration) time.Duration {
	durStr := viper.GetString(key)
	if durStr == "" {
		return def
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return def
	}
	return dur
}
