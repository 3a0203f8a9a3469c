package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bnema/driver-partner-cli/internal/adapters/gateway/rest"
	statusadapter "github.com/bnema/driver-partner-cli/internal/adapters/render/status"
	chainstore "github.com/bnema/driver-partner-cli/internal/adapters/store/chain"
	filestore "github.com/bnema/driver-partner-cli/internal/adapters/store/file"
	redisstore "github.com/bnema/driver-partner-cli/internal/adapters/store/redis"
	tomlstore "github.com/bnema/driver-partner-cli/internal/adapters/store/toml"
	"github.com/bnema/driver-partner-cli/internal/adapters/token"
	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/bnema/driver-partner-cli/internal/config"
	"github.com/bnema/driver-partner-cli/internal/logging"
	"github.com/bnema/driver-partner-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg            config.Config
	logger         *slog.Logger
	gateway        ports.Gateway
	session        *application.SessionController
	navigator      *terminalNavigator
	pushRouter     *application.PushRouter
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	readClaims     func(string) (application.TokenClaims, error)
	now            func() time.Time
	closers        []io.Closer
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	store, err := newSessionStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	gateway := rest.Adapter{
		API:            rest.DefaultAPI(cfg.API.BaseURL),
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.API.Timeout,
		Logger:         logger,
	}
	navigator := newTerminalNavigator(logger)

	var closers []io.Closer
	if closer, ok := store.(io.Closer); ok {
		closers = append(closers, closer)
	}

	return &app{
		cfg:            cfg,
		logger:         logger,
		gateway:        gateway,
		session:        application.NewSessionController(gateway, store, navigator, logger),
		navigator:      navigator,
		pushRouter:     application.NewPushRouter(navigator, logger),
		statusRenderer: statusadapter.Render,
		readClaims:     token.ReadClaims,
		now:            time.Now,
		closers:        closers,
	}, nil
}

// Close releases backend connections opened while running a command.
func (a *app) Close() error {
	var errs []error
	for _, closer := range a.closers {
		errs = append(errs, closer.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newSessionStore(cfg config.StoreConfig) (ports.SessionStore, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return filestore.NewStore(cfg.Path), nil
	case config.BackendTOML:
		v := viper.New()
		v.Set(tomlstore.SessionFileKey, cfg.SessionFile)
		return tomlstore.NewStore(v)
	case config.BackendRedis:
		client := redisstore.NewClient(redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return redisstore.NewStore(client, ""), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.PassPrefix, cfg.Path)
	}
}
