package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sergeii/feed-relay/internal/app"
)

const URLQueryParam = "url"

const (
	// Отдаем закешированный CDN ответ сразу, а обновляем его на edge-сервере в фоне.
	// Данные при этом могут отставать от апстрима до часа
	CacheControl = "max-age=0, s-maxage=3600, stale-while-revalidate"
	ContentType  = "text/xml"
)

type Handler struct {
	App *app.App
}

func (handler Handler) logger(r *http.Request) *zap.Logger {
	return handler.App.Logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))
}

// RelayFeed скачивает ресурс по адресу из параметра url и отдает его как есть
// В случае отсутствия параметра (или нескольких его значений) возвращает 400
// В случае невалидного адреса возвращает 404
// Неуспешные ответы апстрима повторяются до получения 200, поэтому клиент видит лишь задержку.
// Если настроены лимиты повторов и они исчерпаны, возвращает 502, а по истечении времени - 504
func (handler Handler) RelayFeed(w http.ResponseWriter, r *http.Request) {
	log := handler.logger(r)

	rawURL, err := targetParam(r.URL.RawQuery)
	if err != nil {
		log.Debug("rejected relay request", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	target, err := ParseTargetURL(rawURL)
	if err != nil {
		log.Debug("rejected relay target", zap.String("url", rawURL), zap.Error(err))
		w.WriteHeader(http.StatusNotFound)
		return
	}

	ctx := r.Context()
	// Немного ждем, чтобы разнести по времени одновременные запросы
	if err := handler.App.Fetcher.Pause(ctx, handler.App.Config.JitterMax); err != nil {
		log.Info("client went away before fetch", zap.String("url", rawURL), zap.Error(err))
		return
	}

	body, err := handler.App.Fetcher.Fetch(ctx, target)
	if err != nil {
		handler.fail(w, r, log, err)
		return
	}

	w.Header().Set("Cache-Control", CacheControl)
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Info("failed to write relayed body", zap.String("url", rawURL), zap.Error(err))
	}
}

func (handler Handler) fail(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		// Клиент отключился, отвечать уже некому
		log.Info("client went away during fetch", zap.Error(err))
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("upstream did not succeed in time", zap.Error(err))
		w.WriteHeader(http.StatusGatewayTimeout)
	default:
		log.Warn("upstream is unavailable", zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
	}
}
