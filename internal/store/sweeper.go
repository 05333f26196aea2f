package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RunSweeper calls st.Sweep every interval until ctx is done.
func RunSweeper(ctx context.Context, st Store, interval, maxIdle time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := st.Sweep(ctx, maxIdle); n > 0 {
				log.Debug().Int("removed", n).Int("live", st.Len()).Msg("swept idle sessions")
			}
		}
	}
}
