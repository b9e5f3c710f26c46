package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const defaultShutdownTimeout = 10 // seconds

type serverConfig struct {
	shutdownTimeout time.Duration
	logger          *zap.Logger
	signals         []os.Signal
}

type Option func(*serverConfig)

func WithShutdownTimeout(timeout time.Duration) Option {
	return func(c *serverConfig) {
		c.shutdownTimeout = timeout
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *serverConfig) {
		c.logger = logger
	}
}

// WithSignals заменяет набор сигналов, по которым сервер начинает остановку
func WithSignals(signals ...os.Signal) Option {
	return func(c *serverConfig) {
		c.signals = signals
	}
}

// Start запускает сервер и блокируется до его остановки.
// Остановка происходит по сигналу либо отмене ctx; в обоих случаях текущим запросам
// дается shutdownTimeout на завершение
func Start(ctx context.Context, server *http.Server, opts ...Option) error {
	cfg := serverConfig{
		shutdownTimeout: time.Second * defaultShutdownTimeout,
		logger:          zap.NewNop(),
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, stop := signal.NotifyContext(ctx, cfg.signals...)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
	cfg.logger.Info("server started",
		zap.String("addr", server.Addr), zap.Duration("shutdown_timeout", cfg.shutdownTimeout))

	select {
	case err := <-errs:
		return fmt.Errorf("failed to listen and serve due to: %w", err)
	case <-ctx.Done():
		return stopGracefully(server, &cfg)
	}
}

func stopGracefully(server *http.Server, cfg *serverConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	cfg.logger.Info("stopping the server")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed due to: %w", err)
	}
	cfg.logger.Info("stopped the server successfully")
	return nil
}
