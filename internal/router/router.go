package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sergeii/feed-relay/internal/app"
	"github.com/sergeii/feed-relay/internal/handlers"
	relaymw "github.com/sergeii/feed-relay/internal/middleware"
)

func New(theApp *app.App) chi.Router {
	handler := &handlers.Handler{
		App: theApp,
	}
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(relaymw.RequestLogger(theApp.Logger.Named("http")))
	router.Use(middleware.Recoverer)
	router.Use(relaymw.GzipSupport)
	// Метод запроса не проверяется, любой запрос по этим адресам считается запросом на получение ленты
	router.HandleFunc("/", handler.RelayFeed)
	router.HandleFunc("/api/feed", handler.RelayFeed)
	return router
}
