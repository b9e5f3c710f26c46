package random_test

import (
	"testing"
	"time"

	"github.com/sergeii/feed-relay/pkg/random"
	"github.com/stretchr/testify/assert"
)

func TestDurationIsWithinBounds(t *testing.T) {
	tests := []struct {
		name string
		max  time.Duration
	}{
		{
			name: "jitter before fetch",
			max:  time.Millisecond * 200,
		},
		{
			name: "short jitter",
			max:  time.Millisecond * 100,
		},
		{
			name: "retry delay",
			max:  time.Millisecond * 2000,
		},
		{
			name: "single nanosecond",
			max:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 10000; i++ {
				d := random.Duration(tt.max)
				assert.GreaterOrEqual(t, d, time.Duration(0))
				assert.Less(t, d, tt.max)
			}
		})
	}
}

func TestDurationNonPositiveMax(t *testing.T) {
	assert.Equal(t, time.Duration(0), random.Duration(0))
	assert.Equal(t, time.Duration(0), random.Duration(-time.Second))
}

func TestDurationIsNotConstant(t *testing.T) {
	seen := make(map[time.Duration]struct{})
	for i := 0; i < 100; i++ {
		seen[random.Duration(time.Second)] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
