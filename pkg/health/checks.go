package health

import (
	"context"
	"sync"
	"time"
)

// ProbeCheck reports unhealthy when probe fails or runs past timeout
func ProbeCheck(name string, timeout time.Duration, probe func(context.Context) error) CheckFunc {
	return func() Check {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		check := Check{Name: name}
		if err := probe(ctx); err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		check.Status = StatusHealthy
		check.Message = "reachable"
		return check
	}
}

// CachedCheck reuses the last result of check until ttl has passed. The
// cached result keeps the time it was taken as LastChecked.
func CachedCheck(check CheckFunc, ttl time.Duration) CheckFunc {
	var (
		mu      sync.Mutex
		last    Check
		expires time.Time
	)
	return func() Check {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Before(expires) {
			return last
		}
		last = check()
		if last.LastChecked.IsZero() {
			last.LastChecked = now
		}
		expires = now.Add(ttl)
		return last
	}
}

// PhaseCheck maps a named session phase onto a status. Ready phases are
// healthy, pending phases degraded and anything else unhealthy.
func PhaseCheck(name string, phase func() string, ready, pending string) CheckFunc {
	return func() Check {
		p := phase()
		check := Check{
			Name:    name,
			Message: p,
			Details: map[string]any{"phase": p},
		}
		switch p {
		case ready:
			check.Status = StatusHealthy
		case pending:
			check.Status = StatusDegraded
		default:
			check.Status = StatusUnhealthy
		}
		return check
	}
}
