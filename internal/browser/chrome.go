package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeLauncher starts headless Chrome sessions.
type ChromeLauncher struct {
	// UserAgent overrides Chrome's user agent when set.
	UserAgent string

	// NavigationTimeout bounds each Content call.
	NavigationTimeout time.Duration

	// ExecPath is the Chrome binary. Empty means search the PATH.
	ExecPath string
}

// Launch starts Chrome and returns a session with one browser context.
// Each Content call opens and closes its own tab.
func (l ChromeLauncher) Launch(ctx context.Context) (Session, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.DisableGPU)
	if l.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(l.UserAgent))
	}
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser process.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	timeout := l.NavigationTimeout
	if timeout <= 0 {
		timeout = DefaultNavigationTimeout
	}
	return &chromeSession{
		browserCtx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
		timeout: timeout,
	}, nil
}

type chromeSession struct {
	browserCtx context.Context
	cancel     context.CancelFunc
	timeout    time.Duration

	mu     sync.Mutex
	closed bool
}

// Content navigates a new tab to url and returns the document's outer HTML.
func (s *chromeSession) Content(ctx context.Context, url string) (string, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return "", ErrSessionClosed
	}

	tabCtx, cancelTab := chromedp.NewContext(s.browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.timeout)
	defer cancelTimeout()

	var markup string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", url, err)
	}
	return markup, nil
}

// Close stops Chrome. It is safe to call more than once.
func (s *chromeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	return nil
}
