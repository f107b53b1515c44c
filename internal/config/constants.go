package config

import "time"

const (
	// Server Defaults
	DefaultServerPort         = 3000
	DefaultServerMaxBodyBytes = 1 << 20

	// Scan Defaults
	DefaultScanMaxConcurrency    = 3
	DefaultScanLimit             = 300
	DefaultScanTimeout           = 10 * time.Minute
	DefaultScanVisitTimeout      = 45 * time.Second
	DefaultScanSearchURLTemplate = "https://www.facebook.com/search/groups/?q=%s"

	// Renderer Defaults
	RendererModeHeadless          = "headless"
	RendererModeStatic            = "static"
	DefaultRendererMode           = RendererModeHeadless
	DefaultRendererPageTimeout    = 30 * time.Second
	DefaultRendererSettleDelay    = 2 * time.Second
	DefaultRendererWindowWidth    = 1366
	DefaultRendererWindowHeight   = 900
	DefaultRendererDisableImages  = true
	DefaultRendererUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultRendererLaunchAttempts = 1

	// Login Defaults
	DefaultLoginURL         = "https://www.facebook.com/login"
	DefaultLoginSettleDelay = 3 * time.Second

	// Extractor Defaults
	DefaultExtractorPathPrefix = "/groups/"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Resource Limiter Defaults
	DefaultResourceLimiterEnabled            = true
	DefaultResourceLimiterSystemMemThreshold = 0.9
)

var (
	// DefaultScanSignalMarkers must all appear for a page to carry the auto-approve signal
	DefaultScanSignalMarkers = []string{"auto", "approve"}

	DefaultExtractorAllowedHosts  = []string{"facebook.com", "www.facebook.com", "m.facebook.com", "web.facebook.com"}
	DefaultExtractorExcludedSlugs = []string{"feed", "discover", "joins", "create", "search", "notifications"}
)
