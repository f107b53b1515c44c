package renderer

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/common"
	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
)

// HeadlessGateway drives one Chromium process. Each session is an incognito
// browser context so concurrent requests never share cookies.
type HeadlessGateway struct {
	config    config.RendererConfig
	login     config.LoginConfig
	logger    zerolog.Logger
	launcher  *launcher.Launcher
	browser   *rod.Browser
	mutex     sync.Mutex
	isRunning bool
}

// NewHeadlessGateway creates a new headless gateway
func NewHeadlessGateway(cfg config.RendererConfig, login config.LoginConfig, logger zerolog.Logger) *HeadlessGateway {
	return &HeadlessGateway{
		config: cfg,
		login:  login,
		logger: logger.With().Str("component", "HeadlessGateway").Logger(),
	}
}

// Start launches the browser
func (hg *HeadlessGateway) Start() error {
	hg.mutex.Lock()
	defer hg.mutex.Unlock()

	if hg.isRunning {
		return nil
	}

	attempts := hg.config.LaunchAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if lastErr = hg.launch(); lastErr == nil {
			hg.isRunning = true
			hg.logger.Info().Int("attempt", i+1).Msg("Headless browser started")
			return nil
		}
		hg.logger.Warn().Err(lastErr).Int("attempt", i+1).Msg("Failed to start headless browser")
	}

	return common.WrapError(lastErr, "failed to start headless browser")
}

func (hg *HeadlessGateway) launch() error {
	l := launcher.New().Headless(true)

	if hg.config.ChromePath != "" {
		l = l.Bin(hg.config.ChromePath)
	}

	if hg.config.UserDataDir != "" {
		l = l.UserDataDir(hg.config.UserDataDir)
	}

	l = l.
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync")

	if hg.config.DisableImages {
		l = l.Set("blink-settings", "imagesEnabled=false")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("failed to connect browser: %w", err)
	}

	hg.launcher = l
	hg.browser = browser
	return nil
}

// Stop closes the browser and the launcher
func (hg *HeadlessGateway) Stop() {
	hg.mutex.Lock()
	defer hg.mutex.Unlock()

	if !hg.isRunning {
		return
	}

	if err := hg.browser.Close(); err != nil {
		hg.logger.Warn().Err(err).Msg("Failed to close browser")
	}
	if hg.launcher != nil {
		hg.launcher.Cleanup()
	}

	hg.isRunning = false
	hg.logger.Info().Msg("Headless browser stopped")
}

// Open creates an incognito context and signs in when credentials are configured.
// Sign-in happens here, before the caller fans out any renders.
func (hg *HeadlessGateway) Open(ctx context.Context) (Session, error) {
	hg.mutex.Lock()
	running, browser := hg.isRunning, hg.browser
	hg.mutex.Unlock()

	if !running {
		return nil, fmt.Errorf("headless browser not running: %w", common.ErrServiceUnavailable)
	}

	incognito, err := browser.Context(ctx).Incognito()
	if err != nil {
		return nil, common.WrapError(err, "failed to create browser context")
	}

	session := &headlessSession{
		// detach from ctx; renders attach their own deadlines
		browser: incognito.Context(context.Background()),
		config:  hg.config,
		logger:  hg.logger,
	}

	if hg.login.Enabled() {
		if err := session.signIn(ctx, hg.login); err != nil {
			_ = session.Close()
			return nil, err
		}
		hg.logger.Info().Msg("Signed in for scan session")
	}

	return session, nil
}

type headlessSession struct {
	browser *rod.Browser
	config  config.RendererConfig
	logger  zerolog.Logger
}

// Render opens a fresh page, waits for DOMContentLoaded plus the settle delay,
// and returns the serialized DOM.
func (hs *headlessSession) Render(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, hs.config.PageTimeout)
	defer cancel()

	page, err := hs.newPage(ctx)
	if err != nil {
		return "", NewFetchError(url, "failed to create page", err)
	}
	defer hs.closePage(page)

	if err := hs.navigate(page, url); err != nil {
		return "", NewFetchError(url, "navigation failed", err)
	}

	if err := sleepContext(ctx, hs.config.SettleDelay); err != nil {
		return "", NewFetchError(url, "page did not settle", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", NewFetchError(url, "failed to read page content", err)
	}
	return html, nil
}

// Close disposes the incognito browser context and every page in it
func (hs *headlessSession) Close() error {
	return hs.browser.Close()
}

func (hs *headlessSession) newPage(ctx context.Context) (*rod.Page, error) {
	page, err := hs.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  hs.config.WindowWidth,
		Height: hs.config.WindowHeight,
	}); err != nil {
		hs.logger.Warn().Err(err).Msg("Failed to set viewport")
	}

	if hs.config.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: hs.config.UserAgent,
		}); err != nil {
			hs.logger.Warn().Err(err).Msg("Failed to set user agent")
		}
	}

	return page, nil
}

func (hs *headlessSession) navigate(page *rod.Page, url string) error {
	wait := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := page.Navigate(url); err != nil {
		return err
	}
	wait()
	// WaitNavigation swallows context errors, surface them here
	return page.GetContext().Err()
}

// closePage detaches from the render deadline so an expired page still closes
func (hs *headlessSession) closePage(page *rod.Page) {
	if err := page.Context(context.Background()).Close(); err != nil {
		hs.logger.Debug().Err(err).Msg("Failed to close page")
	}
}
