package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures a CircuitBreaker
type Settings struct {
	Name string
	// MaxFailures consecutive failures open the circuit
	MaxFailures int
	// ResetTimeout is how long the circuit stays open before a trial call
	ResetTimeout time.Duration
	// OnStateChange is called outside the lock after every transition
	OnStateChange func(name string, from, to State)
}

// CircuitBreaker stops calling a failing dependency for a while.
// In half-open state a single trial call is let through; its outcome
// closes or re-opens the circuit.
type CircuitBreaker struct {
	settings Settings
	now      func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	trial    bool
}

// New creates a closed circuit breaker
func New(s Settings) *CircuitBreaker {
	if s.MaxFailures <= 0 {
		s.MaxFailures = 5
	}
	if s.ResetTimeout <= 0 {
		s.ResetTimeout = 30 * time.Second
	}
	return &CircuitBreaker{settings: s, now: time.Now}
}

// Execute runs fn unless the circuit is open. context.Canceled from fn is
// returned but not counted as a failure; a deadline is.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.before(); err != nil {
		return err
	}

	err := fn(ctx)
	cb.after(err)
	return err
}

func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.settings.ResetTimeout {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.trial = true
		cb.transition(StateHalfOpen)
		return nil
	case StateHalfOpen:
		defer cb.mu.Unlock()
		if cb.trial {
			return ErrTooManyRequests
		}
		cb.trial = true
		return nil
	}

	cb.mu.Unlock()
	return nil
}

func (cb *CircuitBreaker) after(err error) {
	cb.mu.Lock()

	switch {
	case err == nil:
		cb.failures = 0
		if cb.state == StateHalfOpen {
			cb.trial = false
			cb.transition(StateClosed)
			return
		}
	case errors.Is(err, context.Canceled):
		// the caller gave up, which says nothing about the dependency
		cb.trial = false
	default:
		cb.failures++
		if cb.state == StateHalfOpen || (cb.state == StateClosed && cb.failures >= cb.settings.MaxFailures) {
			cb.trial = false
			cb.openedAt = cb.now()
			cb.transition(StateOpen)
			return
		}
	}

	cb.mu.Unlock()
}

// transition must be called with mu held; it releases mu
func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	cb.state = to
	cb.mu.Unlock()

	if from != to && cb.settings.OnStateChange != nil {
		cb.settings.OnStateChange(cb.settings.Name, from, to)
	}
}

// State returns current circuit breaker state
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the current consecutive failure count
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

// Reset closes the circuit and clears the failure count
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	cb.failures = 0
	cb.trial = false
	cb.transition(StateClosed)
}
