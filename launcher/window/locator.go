package window

import (
	"context"
	"errors"
	"time"
)

// ErrWindowNotFound is returned when the retry budget is exhausted
// without an acceptable window appearing.
var ErrWindowNotFound = errors.New("emulator window not found")

// Enumerator lists the top-level windows owned by a process.
type Enumerator interface {
	Windows(pid int) ([]Candidate, error)
}

const (
	// DefaultLocateAttempts and DefaultLocateDelay give the emulator
	// 15 seconds to open its window.
	DefaultLocateAttempts = 30
	DefaultLocateDelay    = 500 * time.Millisecond
)

// Locator finds a spawned process's output window with bounded retries.
type Locator struct {
	Enum     Enumerator
	Attempts int
	Delay    time.Duration
}

// NewLocator creates a locator with the default retry policy.
func NewLocator(enum Enumerator) *Locator {
	return &Locator{
		Enum:     enum,
		Attempts: DefaultLocateAttempts,
		Delay:    DefaultLocateDelay,
	}
}

// Locate searches for a window belonging to pid that Classify accepts.
// Ambiguity is resolved by taking the first enumeration hit. It makes
// exactly Attempts passes with Delay between them before giving up with
// ErrWindowNotFound. Cancelling ctx aborts early.
func (l *Locator) Locate(ctx context.Context, pid int) (Handle, error) {
	attempts := l.Attempts
	if attempts <= 0 {
		attempts = DefaultLocateAttempts
	}

	for i := 0; i < attempts; i++ {
		candidates, err := l.Enum.Windows(pid)
		if err == nil {
			for _, c := range candidates {
				if Classify(c.Title, c.Class) {
					return c.Handle, nil
				}
			}
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(l.Delay):
		}
	}

	return 0, ErrWindowNotFound
}
