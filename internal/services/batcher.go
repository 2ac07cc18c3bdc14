package services

import (
	"context"
	"time"
)

// Batcher partitions tickers into fixed-size chunks and paces the pauses
// between them so upstream rate limits are never tripped.
type Batcher struct {
	size  int
	pause time.Duration
}

// NewBatcher creates a batcher, falling back to 5 tickers per batch and a
// 2 second pause when given non-positive values.
func NewBatcher(size int, pause time.Duration) *Batcher {
	if size <= 0 {
		size = 5
	}
	if pause <= 0 {
		pause = 2 * time.Second
	}
	return &Batcher{size: size, pause: pause}
}

// Partition splits tickers into batches of at most size, preserving order.
// The final batch may be short.
func (b *Batcher) Partition(tickers []string) [][]string {
	if len(tickers) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(tickers)+b.size-1)/b.size)
	for start := 0; start < len(tickers); start += b.size {
		end := start + b.size
		if end > len(tickers) {
			end = len(tickers)
		}
		batches = append(batches, tickers[start:end])
	}
	return batches
}

// Wait sleeps for the inter-batch pause, returning early with the context
// error when the run is canceled.
func (b *Batcher) Wait(ctx context.Context) error {
	timer := time.NewTimer(b.pause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
