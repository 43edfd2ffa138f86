package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"parts-matching-client/internal/refresh"
)

// show fetches once and renders, or with watch keeps polling and re-renders
// on every change until the command is interrupted.
func show[T any](ctx context.Context, w io.Writer, res *refresh.Resource[T], watch bool, interval time.Duration, draw func(io.Writer, T) error) error {
	if !watch {
		snap := res.Refetch(ctx)
		if snap.State == refresh.Failed {
			return fmt.Errorf("%s", snap.Err)
		}
		return draw(w, snap.Data)
	}

	updates := make(chan refresh.Snapshot[T], 1)
	unsubscribe := res.Subscribe(func(s refresh.Snapshot[T]) {
		if s.State == refresh.Loading {
			return
		}
		// Keep only the newest snapshot.
		select {
		case <-updates:
		default:
		}
		updates <- s
	})
	defer unsubscribe()

	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		res.Poll(ctx, interval)
	}()

	for {
		select {
		case <-ctx.Done():
			<-pollDone
			return nil
		case s := <-updates:
			fmt.Fprintf(w, "\n-- %s (%s) --\n", time.Now().Format("15:04:05"), s.State)
			if s.State == refresh.Failed {
				fmt.Fprintln(w, "error:", s.Err)
				continue
			}
			if err := draw(w, s.Data); err != nil {
				return err
			}
		}
	}
}
