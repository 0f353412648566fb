package config

import (
	"context"

	"go.uber.org/zap"

	"github.com/dshills/critic/internal/config/watcher"
)

// Watch reloads the settings from paths whenever one of them changes and
// passes the result to fn, until ctx is done. fn runs on the watcher's
// goroutine; a failed reload is passed with the error and the previous
// settings should be kept.
func Watch(ctx context.Context, paths []string, fn func(Settings, error), logger *zap.Logger, opts ...Option) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return watcher.Watch(ctx, paths, func(e watcher.Event) {
		logger.Debug("settings changed", zap.String("path", e.Path), zap.Stringer("op", e.Op))
		s, err := Load(paths, opts...)
		if err != nil {
			logger.Warn("settings reload failed", zap.Error(err))
		}
		fn(s, err)
	}, watcher.WithLogger(logger))
}
