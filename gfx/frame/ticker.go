package frame

import (
	"context"
	"errors"
	"time"
)

// RunTicker drives q at frameRate refreshes per second until ctx is done.
// present, if not nil, is called after every refresh.
func RunTicker(ctx context.Context, q *Queue, frameRate float64, present func()) error {
	if frameRate <= 0 {
		return errors.New("frame rate must be positive")
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / frameRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			q.Run(now)
			if present != nil {
				present()
			}
		}
	}
}
