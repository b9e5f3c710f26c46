package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sergeii/feed-relay/internal/app"
	"github.com/sergeii/feed-relay/internal/router"
	"github.com/sergeii/feed-relay/pkg/http/server"
)

const readHeaderTimeout = time.Second * 10

func main() {
	if err := run(); err != nil {
		log.Fatalf("relay exited with error: %s\n", err)
	}
}

// run собирает и запускает сервис; возвращается только после остановки сервера,
// успев сбросить буферы логгера
func run() error {
	relay, err := app.New(useFlags)
	if err != nil {
		return fmt.Errorf("failed to configure the relay: %w", err)
	}
	defer relay.Close()

	// WriteTimeout не задаем: запрос к ленте может повторяться долго, вплоть до RetryMaxElapsed
	srv := &http.Server{
		Addr:              relay.Config.ServerAddress,
		Handler:           router.New(relay),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return server.Start(
		context.Background(),
		srv,
		server.WithShutdownTimeout(relay.Config.ServerShutdownTimeout),
		server.WithLogger(relay.Logger),
	)
}
