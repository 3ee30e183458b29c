package export

import (
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles workbook generation process-wide with a token bucket.
type Limiter struct {
	lim *rate.Limiter
}

// NewLimiter allows perMinute exports per minute with a burst of the same size.
// perMinute <= 0 disables throttling.
func NewLimiter(perMinute int) *Limiter {
	if perMinute <= 0 {
		return &Limiter{}
	}
	return &Limiter{lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)}
}

// Allow reports whether one more export may run now.
func (l *Limiter) Allow() bool {
	if l == nil || l.lim == nil {
		return true
	}
	return l.lim.Allow()
}
