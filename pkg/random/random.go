package random

import (
	"math/rand"
	"time"
)

// Duration возвращает случайную длительность, равномерно распределенную в [0, max)
// Для неположительного max возвращается ноль
func Duration(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max))) // nolint:gosec
}
