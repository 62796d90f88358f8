package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultNavigationTimeout bounds one page load.
const DefaultNavigationTimeout = 30 * time.Second

// ErrSessionClosed is returned by a session used after Close.
var ErrSessionClosed = errors.New("browser session closed")

// Browser returns the rendered markup of a page.
type Browser interface {
	Content(ctx context.Context, url string) (string, error)
}

// Session is a Browser holding resources until closed.
type Session interface {
	Browser
	Close() error
}

// Launcher starts sessions.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// With launches a session, runs fn with it and closes it.
// The close error is returned only when fn succeeded.
func With(ctx context.Context, l Launcher, fn func(Session) error) (err error) {
	s, err := l.Launch(ctx)
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close browser: %w", cerr)
		}
	}()
	return fn(s)
}
