package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".mrdriver"
	envPrefix  = "DP"
)

const (
	KeyAPIBaseURL       = "api.base_url"
	KeyAPITimeout       = "api.timeout"
	KeyStoreBackend     = "store.backend"
	KeyStorePath        = "store.path"
	KeyStoreSessionFile = "store.session_file"
	KeyStorePassPrefix  = "store.pass_prefix"
	KeyStoreRedisAddr   = "store.redis_addr"
	KeyStoreRedisPass   = "store.redis_password"
	KeyStoreRedisDB     = "store.redis_db"
	KeyFeedPageSize     = "feed.page_size"
	KeyFeedEndThreshold = "feed.end_threshold"
	KeyRideTickInterval = "ride.tick_interval"
	KeyLogLevel         = "log.level"
)

const (
	DefaultAPIBaseURL     = "https://api.mrdriver.in/api/"
	DefaultStoreBackend   = BackendChain
	DefaultPassPrefix     = "mrdriver/session"
	DefaultPageSize       = 10
	DefaultEndThreshold   = 0.5
	DefaultTickInterval   = time.Second
	DefaultRequestTimeout = 30 * time.Second
)

type Backend string

const (
	BackendChain Backend = "chain"
	BackendFile  Backend = "file"
	BackendTOML  Backend = "toml"
	BackendRedis Backend = "redis"
)

type Config struct {
	API   APIConfig
	Store StoreConfig
	Feed  FeedConfig
	Ride  RideConfig
	Log   LogConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StoreConfig struct {
	Backend       Backend
	Path          string
	SessionFile   string
	PassPrefix    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type FeedConfig struct {
	PageSize     int
	EndThreshold float64
}

type RideConfig struct {
	TickInterval time.Duration
}

type LogConfig struct {
	Level string
}

// Load reads ~/.mrdriver/config.toml when present, then DP_* environment
// overrides (DP_API_BASE_URL, DP_STORE_BACKEND, ...). A missing config file is
// not an error.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	root := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(root)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIBaseURL, DefaultAPIBaseURL)
	v.SetDefault(KeyAPITimeout, DefaultRequestTimeout)
	v.SetDefault(KeyStoreBackend, string(DefaultStoreBackend))
	v.SetDefault(KeyStorePath, filepath.Join(root, "session"))
	v.SetDefault(KeyStoreSessionFile, filepath.Join(root, "session.toml"))
	v.SetDefault(KeyStorePassPrefix, DefaultPassPrefix)
	v.SetDefault(KeyStoreRedisAddr, "127.0.0.1:6379")
	v.SetDefault(KeyStoreRedisDB, 0)
	v.SetDefault(KeyFeedPageSize, DefaultPageSize)
	v.SetDefault(KeyFeedEndThreshold, DefaultEndThreshold)
	v.SetDefault(KeyRideTickInterval, DefaultTickInterval)
	v.SetDefault(KeyLogLevel, "warn")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		API: APIConfig{
			BaseURL: strings.TrimSpace(v.GetString(KeyAPIBaseURL)),
			Timeout: v.GetDuration(KeyAPITimeout),
		},
		Store: StoreConfig{
			Backend:       Backend(strings.ToLower(strings.TrimSpace(v.GetString(KeyStoreBackend)))),
			Path:          v.GetString(KeyStorePath),
			SessionFile:   v.GetString(KeyStoreSessionFile),
			PassPrefix:    v.GetString(KeyStorePassPrefix),
			RedisAddr:     v.GetString(KeyStoreRedisAddr),
			RedisPassword: v.GetString(KeyStoreRedisPass),
			RedisDB:       v.GetInt(KeyStoreRedisDB),
		},
		Feed: FeedConfig{
			PageSize:     v.GetInt(KeyFeedPageSize),
			EndThreshold: v.GetFloat64(KeyFeedEndThreshold),
		},
		Ride: RideConfig{
			TickInterval: v.GetDuration(KeyRideTickInterval),
		},
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api base url is empty")
	}
	if !strings.HasSuffix(c.API.BaseURL, "/") {
		return fmt.Errorf("api base url %q must end with a slash", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.API.Timeout)
	}
	switch c.Store.Backend {
	case BackendChain, BackendFile, BackendTOML, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("feed page size must be positive, got %d", c.Feed.PageSize)
	}
	if c.Feed.EndThreshold <= 0 {
		return fmt.Errorf("feed end threshold must be positive, got %g", c.Feed.EndThreshold)
	}
	if c.Ride.TickInterval <= 0 {
		return fmt.Errorf("ride tick interval must be positive, got %s", c.Ride.TickInterval)
	}
	return nil
}
