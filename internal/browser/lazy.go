package browser

import (
	"context"
	"sync"
)

// Lazy wraps l so that Launch returns at once and the real session starts on
// the first Content call. A session that is never used never starts.
// A failed start is remembered and returned by every later Content call.
func Lazy(l Launcher) Launcher {
	return lazyLauncher{inner: l}
}

type lazyLauncher struct {
	inner Launcher
}

// Launch implements Launcher.
func (l lazyLauncher) Launch(ctx context.Context) (Session, error) {
	return &lazySession{inner: l.inner, launchCtx: context.WithoutCancel(ctx)}, nil
}

type lazySession struct {
	inner     Launcher
	launchCtx context.Context

	mu      sync.Mutex
	session Session
	err     error
	closed  bool
}

// Content implements Browser.
func (s *lazySession) Content(ctx context.Context, url string) (string, error) {
	session, err := s.get()
	if err != nil {
		return "", err
	}
	return session.Content(ctx, url)
}

func (s *lazySession) get() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.session == nil && s.err == nil {
		s.session, s.err = s.inner.Launch(s.launchCtx)
	}
	return s.session, s.err
}

// Close implements Session.
func (s *lazySession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.session == nil {
		return nil
	}
	return s.session.Close()
}
