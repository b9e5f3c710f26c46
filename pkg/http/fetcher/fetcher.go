package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sergeii/feed-relay/pkg/random"
)

type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type SleepFunc func(context.Context, time.Duration) error

type JitterFunc func(max time.Duration) time.Duration

type Config struct {
	// RetryDelayMax верхняя граница (не включительно) паузы между попытками
	RetryDelayMax time.Duration
	// MaxAttempts ограничивает число попыток; 0 - без ограничений
	MaxAttempts int
	// MaxElapsed ограничивает общее время получения ответа; 0 - без ограничений
	MaxElapsed time.Duration
	// RetryTransportErrors включает повтор при сетевых ошибках
	RetryTransportErrors bool
}

type Fetcher struct {
	cfg    Config
	client Doer
	sleep  SleepFunc
	jitter JitterFunc
	logger *zap.Logger
}

type Option func(*Fetcher)

func WithClient(client Doer) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

func WithSleep(sleep SleepFunc) Option {
	return func(f *Fetcher) {
		f.sleep = sleep
	}
}

func WithJitter(jitter JitterFunc) Option {
	return func(f *Fetcher) {
		f.jitter = jitter
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

func New(cfg Config, opts ...Option) *Fetcher {
	f := &Fetcher{
		cfg:    cfg,
		client: http.DefaultClient,
		sleep:  Sleep,
		jitter: random.Duration,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Sleep приостанавливает выполнение на d либо до отмены контекста
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Pause ждет случайное время в [0, max), чтобы разнести во времени одновременные запросы к апстримам
func (f *Fetcher) Pause(ctx context.Context, max time.Duration) error {
	return f.sleep(ctx, f.jitter(max))
}

// Fetch выполняет GET-запрос по адресу target до тех пор, пока апстрим не ответит статусом 200,
// и возвращает тело этого ответа.
// Между попытками выдерживается случайная пауза в [0, RetryDelayMax)
// Цикл прерывается только по исчерпанию лимитов из Config, отмене контекста
// либо транспортной ошибке при выключенном RetryTransportErrors
func (f *Fetcher) Fetch(ctx context.Context, target *url.URL) ([]byte, error) {
	rawURL := target.String()
	log := f.logger.With(
		zap.String("fetch_id", uuid.New().String()),
		zap.String("url", rawURL),
	)
	if f.cfg.MaxElapsed > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.MaxElapsed)
		defer cancel()
	}

	var lastStatus int
	for attempt := 1; ; attempt++ {
		body, status, err := f.attempt(ctx, rawURL)
		if err == nil && status == http.StatusOK {
			log.Debug("fetched upstream", zap.Int("attempt", attempt), zap.Int("size", len(body)))
			return body, nil
		}
		if status != 0 {
			lastStatus = status
		}
		giveUp := func(reason error) error {
			log.Warn("giving up on upstream",
				zap.Int("attempts", attempt), zap.Int("status", lastStatus), zap.Error(reason))
			return &Error{URL: rawURL, Attempts: attempt, Status: lastStatus, Err: reason}
		}
		if err != nil {
			// Ошибка могла быть вызвана отменой контекста - в этом случае отдаем именно ее
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, giveUp(ctxErr)
			}
			if !f.cfg.RetryTransportErrors {
				return nil, giveUp(err)
			}
		}
		if f.cfg.MaxAttempts > 0 && attempt >= f.cfg.MaxAttempts {
			return nil, giveUp(ErrAttemptsExhausted)
		}
		delay := f.jitter(f.cfg.RetryDelayMax)
		log.Debug("retrying upstream",
			zap.Int("attempt", attempt), zap.Int("status", status), zap.Duration("delay", delay), zap.Error(err))
		if err := f.sleep(ctx, delay); err != nil {
			return nil, giveUp(err)
		}
	}
}

func (f *Fetcher) attempt(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		// вычитываем тело, чтобы соединение можно было переиспользовать
		io.Copy(io.Discard, resp.Body) // nolint:errcheck
		return nil, resp.StatusCode, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
