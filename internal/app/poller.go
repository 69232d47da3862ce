package app

import (
	"context"
	"log"
	"time"

	"github.com/printbed/gantry/internal/farmd"
	"github.com/printbed/gantry/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off while farmd is unreachable. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client *farmd.Client, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			refresh(ctx, store, client)

			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff. Zero failures means the plain interval.
func calculateBackoff(failures int, baseInterval time.Duration) time.Duration {
	if failures <= 0 {
		return baseInterval
	}
	backoff := baseInterval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// refresh fetches the fleet list and the target printer's status. When no
// target is set yet it adopts the first listed printer so a bare start
// lands on something useful.
func refresh(ctx context.Context, store *state.Store, client *farmd.Client) {
	printers, err := client.FetchPrinters(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		log.Printf("printer poll failed: %v", err)
		return
	}

	target := store.Target()
	if target == "" && len(printers) > 0 {
		target = printers[0].ID
		store.SetTarget(target)
	}
	if target == "" {
		store.Update(printers, nil, nil)
		return
	}

	status, err := client.FetchStatus(ctx, target)
	if err != nil {
		store.Update(nil, nil, err)
		log.Printf("status poll failed: %v", err)
		return
	}
	store.Update(printers, status, nil)
}
