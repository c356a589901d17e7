package ratelimit

import (
	"math/rand"
	"sync"
	"time"
)

// Limiter defines the interface for pacing requests
type Limiter interface {
	// Allow reports whether a request may go out without waiting
	Allow() bool
	// Wait blocks until another request may go out. It cannot be interrupted.
	Wait()
	// Reset forgets the pacing history
	Reset()
}

// RandomDelay suspends for a uniformly random duration in [min, max] on
// every Wait
type RandomDelay struct {
	min, max time.Duration
	rng      *rand.Rand
	sleep    func(time.Duration)
	now      func() time.Time
	last     time.Time
	mu       sync.Mutex
}

// NewRandomDelay creates a random delay limiter. Bounds are swapped when
// given in the wrong order and negative bounds are treated as zero.
func NewRandomDelay(min, max time.Duration) *RandomDelay {
	if min < 0 {
		min = 0
	}
	if max < min {
		min, max = max, min
		if min < 0 {
			min = 0
		}
	}
	return &RandomDelay{
		min:   min,
		max:   max,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// WithSleeper replaces the sleep function, mostly for tests
func (r *RandomDelay) WithSleeper(sleep func(time.Duration)) *RandomDelay {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sleep = sleep
	return r
}

// Next picks the next delay without sleeping
func (r *RandomDelay) Next() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next()
}

func (r *RandomDelay) next() time.Duration {
	span := r.max - r.min
	if span <= 0 {
		return r.min
	}
	return r.min + time.Duration(r.rng.Int63n(int64(span)+1))
}

// Allow reports whether at least min has passed since the last Wait
func (r *RandomDelay) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last.IsZero() || r.now().Sub(r.last) >= r.min
}

// Wait sleeps for a random delay
func (r *RandomDelay) Wait() {
	r.mu.Lock()
	d := r.next()
	sleep := r.sleep
	r.mu.Unlock()

	sleep(d)

	r.mu.Lock()
	r.last = r.now()
	r.mu.Unlock()
}

// Reset forgets when the last Wait finished
func (r *RandomDelay) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = time.Time{}
}

// NoDelay never waits. It is used when paging delays are disabled.
type NoDelay struct{}

func (NoDelay) Allow() bool { return true }
func (NoDelay) Wait()       {}
func (NoDelay) Reset()      {}

// New returns the limiter for a paging policy
func New(delayed bool, min, max time.Duration) Limiter {
	if !delayed {
		return NoDelay{}
	}
	return NewRandomDelay(min, max)
}
