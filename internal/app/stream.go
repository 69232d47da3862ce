package app

import (
	"context"
	"time"

	"github.com/printbed/gantry/internal/farmd"
	"github.com/printbed/gantry/internal/state"
)

// targetCheckInterval is how often the stream supervisor compares the
// running stream against the store's target printer.
const targetCheckInterval = time.Second

// StartStreams keeps one status stream running for the store's target
// printer, tearing the old stream down when the operator switches. It
// returns immediately.
func StartStreams(ctx context.Context, store *state.Store, client *farmd.Client) {
	launch := func(streamCtx context.Context, printerID string) {
		farmd.NewStream(client, printerID, store.ApplyStatus).Run(streamCtx)
	}
	go superviseStreams(ctx, targetCheckInterval, store.Target, launch)
}

// superviseStreams watches the target id and keeps exactly one launch
// running for it. launch must block until its context is cancelled.
func superviseStreams(ctx context.Context, interval time.Duration, target func() string, launch func(context.Context, string)) {
	var cancel context.CancelFunc
	current := ""

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		next := target()
		if next != current {
			if cancel != nil {
				cancel()
				cancel = nil
			}
			current = next
			if current != "" {
				streamCtx, c := context.WithCancel(ctx)
				cancel = c
				go launch(streamCtx, current)
			}
		}

		select {
		case <-ctx.Done():
			if cancel != nil {
				cancel()
			}
			return
		case <-ticker.C:
		}
	}
}
