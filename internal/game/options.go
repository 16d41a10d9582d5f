package game

import (
	"time"

	"github.com/charmbracelet/log"
)

// Defaults for a new session.
const (
	DefaultTarget      = 2048
	DefaultSettleDelay = 150 * time.Millisecond
	DefaultSpawn4Prob  = 0.10
)

// Option configures a Session.
type Option func(*Session)

// WithTarget sets the tile value that counts as a win.
func WithTarget(value int) Option {
	return func(s *Session) {
		if value > 0 {
			s.target = value
		}
	}
}

// WithSettleDelay sets how long moves are refused after a change.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.settle = d
		}
	}
}

// WithSpawn4Prob sets the probability that a spawned tile is a 4.
func WithSpawn4Prob(p float64) Option {
	return func(s *Session) {
		if p >= 0 && p <= 1 {
			s.spawn4 = p
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithObserver registers an observer. Observers are notified in
// registration order.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBestScore seeds the best score, usually from stored preferences.
func WithBestScore(best int) Option {
	return func(s *Session) {
		if best > 0 {
			s.best = best
		}
	}
}
