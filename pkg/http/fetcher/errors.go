package fetcher

import (
	"errors"
	"fmt"
)

var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// Error описывает неудачную попытку получить ответ 200 от апстрима.
// Err содержит причину остановки: ErrAttemptsExhausted, ошибку контекста или транспортную ошибку
type Error struct {
	URL      string
	Attempts int
	Status   int
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: gave up after %d attempt(s), last status %d: %s", e.URL, e.Attempts, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: gave up after %d attempt(s): %s", e.URL, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
