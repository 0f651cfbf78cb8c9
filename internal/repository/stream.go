package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"projecthub/pkg/metrics"
)

// watchSnapshots opens a change stream on col and delivers the full current
// result of fetch over the returned channel: once immediately, then again
// after every change event, until the cancel func runs. The channel is
// closed on cancellation, and the change stream is always torn down,
// including on error paths.
func watchSnapshots[T any](parent context.Context, col *mongo.Collection, logger *zap.Logger, fetch func(context.Context) ([]T, error)) (<-chan []T, func(), error) {
	ctx, cancel := context.WithCancel(parent)

	cs, err := col.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to open change stream: %w", err)
	}

	out := make(chan []T, 1)
	metrics.ActiveSnapshotStreams.Inc()

	go func() {
		defer metrics.ActiveSnapshotStreams.Dec()
		defer close(out)
		defer cs.Close(context.Background())

		if !deliverSnapshot(ctx, out, logger, fetch) {
			return
		}

		for cs.Next(ctx) {
			if !deliverSnapshot(ctx, out, logger, fetch) {
				return
			}
		}

		if err := cs.Err(); err != nil && ctx.Err() == nil {
			logger.Error("Change stream terminated", zap.Error(err))
		}
	}()

	return out, cancel, nil
}

// deliverSnapshot requeries and pushes one snapshot. A stale snapshot
// pending in the buffer is replaced by the newer one. Fetch errors are
// logged and the subscription stays open on the previous snapshot.
func deliverSnapshot[T any](ctx context.Context, out chan []T, logger *zap.Logger, fetch func(context.Context) ([]T, error)) bool {
	snap, err := fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		logger.Error("Failed to fetch snapshot", zap.Error(err))
		return true
	}

	select {
	case out <- snap:
	case <-ctx.Done():
		return false
	default:
		select {
		case <-out:
		default:
		}
		select {
		case out <- snap:
		case <-ctx.Done():
			return false
		}
	}
	return true
}
