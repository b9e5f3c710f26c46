package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/caarlos0/env/v6"
	"go.uber.org/zap"

	"github.com/sergeii/feed-relay/internal/logger"
	"github.com/sergeii/feed-relay/pkg/http/fetcher"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	ServerAddress         string        `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogLevel              string        `env:"LOG_LEVEL" envDefault:"info"`
	JitterMax             time.Duration `env:"RELAY_JITTER_MAX" envDefault:"200ms"`
	RetryDelayMax         time.Duration `env:"RELAY_RETRY_DELAY_MAX" envDefault:"2s"`
	RetryMaxAttempts      int           `env:"RELAY_RETRY_MAX_ATTEMPTS" envDefault:"0"`
	RetryMaxElapsed       time.Duration `env:"RELAY_RETRY_MAX_ELAPSED" envDefault:"60s"`
	RetryTransportErrors  bool          `env:"RELAY_RETRY_TRANSPORT_ERRORS" envDefault:"true"`
	UpstreamTimeout       time.Duration `env:"RELAY_UPSTREAM_TIMEOUT" envDefault:"30s"`
}

type App struct {
	Config  *Config
	Fetcher *fetcher.Fetcher
	Logger  *zap.Logger
}

type Override func(*Config) error

func New(overrides ...Override) (*App, error) {
	var cfg Config
	// Получаем настройки приложения из environment-переменных
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	// даем возможность переопределить настройки, например в тестах или при использовании флагов
	for _, override := range overrides {
		if err := override(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  &cfg,
		Fetcher: configureFetcher(&cfg, log),
		Logger:  log,
	}
	return app, nil
}

func (app *App) Close() {
	app.Logger.Sync() // nolint:errcheck
}

func validateConfig(cfg *Config) error {
	switch {
	case cfg.JitterMax < 0, cfg.RetryDelayMax < 0:
		return errors.Join(ErrInvalidConfig, errors.New("delays must not be negative"))
	case cfg.RetryMaxAttempts < 0:
		return errors.Join(ErrInvalidConfig, errors.New("max attempts must not be negative"))
	case cfg.RetryMaxElapsed < 0, cfg.UpstreamTimeout < 0:
		return errors.Join(ErrInvalidConfig, errors.New("timeouts must not be negative"))
	}
	return nil
}

// configureFetcher собирает клиент для запросов к апстримам.
// UpstreamTimeout ограничивает одну попытку, RetryMaxElapsed - все попытки вместе
func configureFetcher(cfg *Config, log *zap.Logger) *fetcher.Fetcher {
	client := &http.Client{Timeout: cfg.UpstreamTimeout}
	return fetcher.New(
		fetcher.Config{
			RetryDelayMax:        cfg.RetryDelayMax,
			MaxAttempts:          cfg.RetryMaxAttempts,
			MaxElapsed:           cfg.RetryMaxElapsed,
			RetryTransportErrors: cfg.RetryTransportErrors,
		},
		fetcher.WithClient(client),
		fetcher.WithLogger(log.Named("fetcher")),
	)
}
