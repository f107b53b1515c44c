package scanner

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
	"github.com/shivam1584818/fb-group-finder-backend/internal/extractor"
	"github.com/shivam1584818/fb-group-finder-backend/internal/renderer"
)

const testSearchTemplate = "https://search.test/?q=%s"

type fakeSession struct {
	pages    map[string]string
	failures map[string]error
	delays   map[string]time.Duration

	mu     sync.Mutex
	calls  []string
	closed int

	inFlight int64
	peak     int64
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		pages:    make(map[string]string),
		failures: make(map[string]error),
		delays:   make(map[string]time.Duration),
	}
}

func (f *fakeSession) Render(ctx context.Context, u string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, u)
	f.mu.Unlock()

	current := atomic.AddInt64(&f.inFlight, 1)
	defer atomic.AddInt64(&f.inFlight, -1)
	for {
		observed := atomic.LoadInt64(&f.peak)
		if current <= observed || atomic.CompareAndSwapInt64(&f.peak, observed, current) {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		return "", renderer.NewFetchError(u, "render cancelled", err)
	}

	if delay := f.delays[u]; delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", renderer.NewFetchError(u, "render cancelled", ctx.Err())
		}
	}

	if err, ok := f.failures[u]; ok {
		return "", err
	}
	if page, ok := f.pages[u]; ok {
		return page, nil
	}
	return "", renderer.NewFetchError(u, "unexpected status 404", nil)
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeSession) renderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSession) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakeGateway struct {
	session *fakeSession
	openErr error
	opens   int64
}

func (g *fakeGateway) Open(ctx context.Context) (renderer.Session, error) {
	atomic.AddInt64(&g.opens, 1)
	if g.openErr != nil {
		return nil, g.openErr
	}
	return g.session, nil
}

func testScanConfig() config.ScanConfig {
	cfg := config.NewDefaultScanConfig()
	cfg.SearchURLTemplate = testSearchTemplate
	cfg.Timeout = 5 * time.Second
	cfg.VisitTimeout = 2 * time.Second
	return cfg
}

func testExtractor() extractor.Extractor {
	return extractor.New(config.ExtractorConfig{
		AllowedHosts: []string{"groups.test"},
		PathPrefix:   "/groups/",
	})
}

func newTestScanner(cfg config.ScanConfig, gateway renderer.Gateway) *Scanner {
	return NewScanner(cfg, gateway, testExtractor(), zerolog.Nop())
}

func searchURL(query string) string {
	return fmt.Sprintf(testSearchTemplate, url.QueryEscape(query))
}

func groupURL(slug string) string {
	return "https://groups.test/groups/" + slug + "/"
}

// searchPage renders one anchor per slug, labelled "Group <slug>"
func searchPage(slugs ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, slug := range slugs {
		fmt.Fprintf(&b, `<a href="%s">Group %s</a>`, groupURL(slug), slug)
	}
	b.WriteString("</body></html>")
	return b.String()
}
