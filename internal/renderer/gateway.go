// Package renderer turns a URL into HTML. A Gateway hands out one Session per
// scan request; the session is the shared browsing context (cookies, sign-in)
// and every Render call inside it uses its own isolated page.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
)

// ErrSignIn marks a failed credential sign-in while opening a session.
var ErrSignIn = errors.New("sign-in failed")

// Gateway opens rendering sessions.
type Gateway interface {
	Open(ctx context.Context) (Session, error)
}

// Session renders pages inside one shared browsing context.
// Render must be safe for concurrent use; Close is called once.
type Session interface {
	Render(ctx context.Context, url string) (string, error)
	Close() error
}

// ManagedGateway is a Gateway with a process-wide lifecycle.
type ManagedGateway interface {
	Gateway
	Start() error
	Stop()
}

// FetchError reports a render that produced no content.
type FetchError struct {
	URL    string
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the render ran out of time.
func (e *FetchError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// NewFetchError creates a new fetch error
func NewFetchError(url, reason string, err error) *FetchError {
	return &FetchError{URL: url, Reason: reason, Err: err}
}

// NewGateway builds the gateway selected by cfg.Mode.
func NewGateway(cfg config.RendererConfig, login config.LoginConfig, logger zerolog.Logger) (ManagedGateway, error) {
	switch cfg.Mode {
	case config.RendererModeHeadless, "":
		return NewHeadlessGateway(cfg, login, logger), nil
	case config.RendererModeStatic:
		if login.Enabled() {
			return nil, fmt.Errorf("renderer mode %q cannot sign in", cfg.Mode)
		}
		return NewStaticGateway(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown renderer mode %q", cfg.Mode)
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
