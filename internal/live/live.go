package live

import (
	"context"
	"fmt"
	"io"
	"time"
)

// DefaultInterval is the redraw cadence, matching the code validity check
// granularity.
const DefaultInterval = time.Second

// Run redraws the line produced by render once per interval, overwriting the
// previous line with a carriage return. It blocks until ctx is cancelled
// (returning nil after finishing the line with a newline) or render fails.
func Run(ctx context.Context, out io.Writer, interval time.Duration, render func() (string, error)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		line, err := render()
		if err != nil {
			fmt.Fprintln(out)
			return err
		}
		fmt.Fprintf(out, "\r%s", line)

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case <-ticker.C:
		}
	}
}
