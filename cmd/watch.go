package cmd

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/TFMV/dirwalk/internal/watch"
	dirwalk "github.com/TFMV/dirwalk/internal/walk"
)

// runWatch lists cfg.Root to out and then keeps listing created entries
// until ctx is done or cfg.WatchTimeout expires.
func runWatch(ctx context.Context, cfg Config, out io.Writer, logger *zap.Logger) error {
	sink := dirwalk.NewStreamSink(out)
	sink.FlushEachLine = true

	res, err := watch.Watch(ctx, cfg.Root, watch.Options{
		Filter:  cfg.Filter,
		Timeout: cfg.WatchTimeout,
		Logger:  logger,
	}, sink)
	if err != nil {
		return err
	}

	logger.Debug("watch finished",
		zap.String("root", cfg.Root),
		zap.Int64("visited", res.Visited),
		zap.Int64("emitted", res.Emitted),
	)
	if res.Partial() {
		logger.Warn("watch completed with isolated errors", zap.Int("errors", len(res.Errors)))
	}
	return nil
}
