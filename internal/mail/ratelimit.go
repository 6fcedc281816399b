package mail

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Policy caps how fast drafts may be created.
type Policy struct {
	PerHour     int
	PerDay      int
	MinInterval time.Duration
}

// DefaultPolicy mirrors conservative cold-outreach limits.
var DefaultPolicy = Policy{
	PerHour:     20,
	PerDay:      100,
	MinInterval: 45 * time.Second,
}

// Limiter enforces a Policy across one process. Hour and day windows are
// sliding; the minimum interval between consecutive drafts rides on a token
// bucket of size one.
type Limiter struct {
	policy Policy
	now    func() time.Time

	mu    sync.Mutex
	gap   *rate.Limiter
	sends []time.Time
}

// NewLimiter builds a Limiter for the policy. now may be nil for wall clock.
func NewLimiter(policy Policy, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	gap := rate.NewLimiter(rate.Every(policy.MinInterval), 1)
	return &Limiter{policy: policy, now: now, gap: gap}
}

// Allow reports whether one draft may be created right now and, on success,
// charges it against every window. The reason names the first limit hit.
func (l *Limiter) Allow() (bool, string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	hour := 0
	for _, t := range l.sends {
		if now.Sub(t) < time.Hour {
			hour++
		}
	}
	if hour >= l.policy.PerHour {
		return false, fmt.Sprintf("hourly limit of %d emails reached", l.policy.PerHour)
	}
	if len(l.sends) >= l.policy.PerDay {
		return false, fmt.Sprintf("daily limit of %d emails reached", l.policy.PerDay)
	}
	if !l.gap.AllowN(now, 1) {
		return false, fmt.Sprintf("minimum interval of %s between emails not elapsed", l.policy.MinInterval)
	}

	l.sends = append(l.sends, now)
	return true, ""
}

// Remaining returns the unused hourly and daily quota.
func (l *Limiter) Remaining() (hourly, daily int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	hour := 0
	for _, t := range l.sends {
		if now.Sub(t) < time.Hour {
			hour++
		}
	}
	return l.policy.PerHour - hour, l.policy.PerDay - len(l.sends)
}

// prune drops send records older than the day window. Caller holds mu.
func (l *Limiter) prune(now time.Time) {
	kept := l.sends[:0]
	for _, t := range l.sends {
		if now.Sub(t) < 24*time.Hour {
			kept = append(kept, t)
		}
	}
	l.sends = kept
}
