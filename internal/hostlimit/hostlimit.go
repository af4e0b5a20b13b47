// Package hostlimit provides per-host request pacing so one slow or strict
// ATS (api.lever.co, boards-api.greenhouse.io, ...) cannot be hammered while
// the run iterates many companies on the same backend.
package hostlimit

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter rate-limits requests per hostname.
type Limiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

// New creates a Limiter allowing reqPerSec requests with the given burst per
// distinct host.
func New(reqPerSec float64, burst int) *Limiter {
	return &Limiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (l *Limiter) limiterFor(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.m[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(l.r, l.b)
	l.m[host] = lim
	return lim
}

// WaitURL blocks until a request to the URL's host is permitted, or the
// context is done. Unparseable URLs share a single fallback bucket.
func (l *Limiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return l.limiterFor("_").Wait(ctx)
	}
	return l.limiterFor(u.Host).Wait(ctx)
}
