package main

import (
	"flag"
	"time"

	"github.com/sergeii/feed-relay/internal/app"
)

func useFlags(cfg *app.Config) error {
	flagConfig := struct {
		ServerAddress    string
		LogLevel         string
		JitterMax        time.Duration
		RetryDelayMax    time.Duration
		RetryMaxAttempts int
		RetryMaxElapsed  time.Duration
	}{}
	flag.StringVar(&flagConfig.ServerAddress, "a", "", "Server listen address in the form of host:port")
	flag.StringVar(&flagConfig.LogLevel, "l", "", "Log level (debug, info, warn, error)")
	flag.DurationVar(&flagConfig.JitterMax, "j", -1, "Upper bound of the random delay before fetching a feed")
	flag.DurationVar(&flagConfig.RetryDelayMax, "r", -1, "Upper bound of the random delay between fetch attempts")
	flag.IntVar(&flagConfig.RetryMaxAttempts, "n", -1, "Max fetch attempts per request, 0 for unlimited")
	flag.DurationVar(&flagConfig.RetryMaxElapsed, "t", -1, "Max time spent fetching a feed, 0 for unlimited")
	flag.Parse()
	// Указанные значения настроек из CLI-аргументов имеют преимущество перед одноименными environment переменными
	if flagConfig.ServerAddress != "" {
		cfg.ServerAddress = flagConfig.ServerAddress
	}
	if flagConfig.LogLevel != "" {
		cfg.LogLevel = flagConfig.LogLevel
	}
	if flagConfig.JitterMax >= 0 {
		cfg.JitterMax = flagConfig.JitterMax
	}
	if flagConfig.RetryDelayMax >= 0 {
		cfg.RetryDelayMax = flagConfig.RetryDelayMax
	}
	if flagConfig.RetryMaxAttempts >= 0 {
		cfg.RetryMaxAttempts = flagConfig.RetryMaxAttempts
	}
	if flagConfig.RetryMaxElapsed >= 0 {
		cfg.RetryMaxElapsed = flagConfig.RetryMaxElapsed
	}
	return nil
}
