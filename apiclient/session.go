package apiclient

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// SessionState is the sign-in progress of a client.
type SessionState int

const (
	StateUnauthenticated SessionState = iota
	StateAuthenticating
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Latch runs a sign-in hook at most once per success. Callers arriving
// while a sign-in is in flight wait for it and share its outcome. A failed
// sign-in returns the latch to StateUnauthenticated.
//
// The hook runs detached from the cancellation of the caller that started
// it, so one caller giving up does not fail the others waiting on it.
type Latch struct {
	// Timeout bounds a single sign-in. Zero means no bound.
	Timeout time.Duration

	signIn func(ctx context.Context) error

	mu    sync.Mutex
	state SessionState
	group singleflight.Group
}

type latchKey struct{}

// NewLatch creates a latch around signIn. A nil signIn makes the first
// Ensure succeed immediately.
func NewLatch(signIn func(ctx context.Context) error) *Latch {
	return &Latch{signIn: signIn}
}

// State returns the current session state.
func (l *Latch) State() SessionState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Ensure signs in if needed. It reports whether the caller may attach
// credentials: false with a nil error means the call originates from the
// sign-in hook itself and must go out bare.
func (l *Latch) Ensure(ctx context.Context) (bool, error) {
	if l.State() == StateAuthenticated {
		return true, nil
	}
	if owner, _ := ctx.Value(latchKey{}).(*Latch); owner == l {
		return false, nil
	}

	ch := l.group.DoChan("sign-in", func() (any, error) {
		return nil, l.run(ctx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return false, res.Err
		}
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (l *Latch) run(ctx context.Context) error {
	l.mu.Lock()
	if l.state == StateAuthenticated {
		l.mu.Unlock()
		return nil
	}
	l.state = StateAuthenticating
	l.mu.Unlock()

	var err error
	if l.signIn != nil {
		hookCtx := context.WithValue(context.WithoutCancel(ctx), latchKey{}, l)
		if l.Timeout > 0 {
			var cancel context.CancelFunc
			hookCtx, cancel = context.WithTimeout(hookCtx, l.Timeout)
			defer cancel()
		}
		err = l.signIn(hookCtx)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.state = StateUnauthenticated
		return err
	}
	l.state = StateAuthenticated
	return nil
}
