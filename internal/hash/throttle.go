package hash

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

// throttledReader limits read throughput with a token bucket sized to one chunk.
type throttledReader struct {
	r       io.Reader
	limiter *rate.Limiter
}

func newThrottledReader(r io.Reader, bytesPerSecond, burst int) *throttledReader {
	return &throttledReader{r: r, limiter: rate.NewLimiter(rate.Limit(bytesPerSecond), burst)}
}

func (t *throttledReader) Read(p []byte) (int, error) {
	if burst := t.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}
	n, err := t.r.Read(p)
	if n > 0 {
		if werr := t.limiter.WaitN(context.Background(), n); werr != nil {
			return n, fmt.Errorf("throttle read: %w", werr)
		}
	}
	return n, err
}
