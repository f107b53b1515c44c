package config

import "time"

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	ServerConfig          ServerConfig          `json:"server,omitempty" yaml:"server,omitempty"`
	ScanConfig            ScanConfig            `json:"scan,omitempty" yaml:"scan,omitempty"`
	RendererConfig        RendererConfig        `json:"renderer,omitempty" yaml:"renderer,omitempty"`
	LoginConfig           LoginConfig           `json:"login,omitempty" yaml:"login,omitempty"`
	ExtractorConfig       ExtractorConfig       `json:"extractor,omitempty" yaml:"extractor,omitempty"`
	LogConfig             LogConfig             `json:"log,omitempty" yaml:"log,omitempty"`
	ResourceLimiterConfig ResourceLimiterConfig `json:"resource_limiter,omitempty" yaml:"resource_limiter,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		ServerConfig:          NewDefaultServerConfig(),
		ScanConfig:            NewDefaultScanConfig(),
		RendererConfig:        NewDefaultRendererConfig(),
		LoginConfig:           NewDefaultLoginConfig(),
		ExtractorConfig:       NewDefaultExtractorConfig(),
		LogConfig:             NewDefaultLogConfig(),
		ResourceLimiterConfig: NewDefaultResourceLimiterConfig(),
	}
}

// ServerConfig defines the HTTP surface
type ServerConfig struct {
	Port         int    `json:"port,omitempty" yaml:"port,omitempty" env:"PORT" validate:"min=1,max=65535"`
	APIKey       string `json:"api_key,omitempty" yaml:"api_key,omitempty" env:"API_KEY"`
	MaxBodyBytes int64  `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty" validate:"min=1"`
}

// NewDefaultServerConfig creates default server configuration
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         DefaultServerPort,
		MaxBodyBytes: DefaultServerMaxBodyBytes,
	}
}

// ScanConfig bounds the work a single scan request may perform
type ScanConfig struct {
	MaxConcurrency    int           `json:"max_concurrency,omitempty" yaml:"max_concurrency,omitempty" env:"MAX_CONCURRENCY" validate:"min=1"`
	ScanLimit         int           `json:"scan_limit,omitempty" yaml:"scan_limit,omitempty" env:"SCAN_LIMIT" validate:"min=1"`
	Timeout           time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" env:"SCAN_TIMEOUT" validate:"gt=0"`
	VisitTimeout      time.Duration `json:"visit_timeout,omitempty" yaml:"visit_timeout,omitempty" env:"VISIT_TIMEOUT" validate:"gt=0"`
	SearchURLTemplate string        `json:"search_url_template,omitempty" yaml:"search_url_template,omitempty" env:"SEARCH_URL_TEMPLATE" validate:"required,contains=%s"`
	SignalMarkers     []string      `json:"signal_markers,omitempty" yaml:"signal_markers,omitempty" env:"SIGNAL_MARKERS" validate:"min=1,dive,required"`
	ExposeFailures    bool          `json:"expose_failures" yaml:"expose_failures" env:"EXPOSE_FAILURES"`
}

// NewDefaultScanConfig creates default scan configuration
func NewDefaultScanConfig() ScanConfig {
	return ScanConfig{
		MaxConcurrency:    DefaultScanMaxConcurrency,
		ScanLimit:         DefaultScanLimit,
		Timeout:           DefaultScanTimeout,
		VisitTimeout:      DefaultScanVisitTimeout,
		SearchURLTemplate: DefaultScanSearchURLTemplate,
		SignalMarkers:     append([]string(nil), DefaultScanSignalMarkers...),
	}
}

// RendererConfig configures how pages are turned into HTML
type RendererConfig struct {
	Mode           string        `json:"mode,omitempty" yaml:"mode,omitempty" env:"RENDERER_MODE" validate:"oneof=headless static"`
	ChromePath     string        `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty" env:"CHROME_PATH"`
	UserDataDir    string        `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	PageTimeout    time.Duration `json:"page_timeout,omitempty" yaml:"page_timeout,omitempty" env:"PAGE_TIMEOUT" validate:"gt=0"`
	SettleDelay    time.Duration `json:"settle_delay,omitempty" yaml:"settle_delay,omitempty" env:"SETTLE_DELAY" validate:"gte=0"`
	UserAgent      string        `json:"user_agent,omitempty" yaml:"user_agent,omitempty" env:"USER_AGENT"`
	WindowWidth    int           `json:"window_width,omitempty" yaml:"window_width,omitempty" validate:"min=1"`
	WindowHeight   int           `json:"window_height,omitempty" yaml:"window_height,omitempty" validate:"min=1"`
	DisableImages  bool          `json:"disable_images" yaml:"disable_images"`
	LaunchAttempts int           `json:"launch_attempts,omitempty" yaml:"launch_attempts,omitempty" validate:"min=1"`
}

// NewDefaultRendererConfig creates default renderer configuration
func NewDefaultRendererConfig() RendererConfig {
	return RendererConfig{
		Mode:           DefaultRendererMode,
		PageTimeout:    DefaultRendererPageTimeout,
		SettleDelay:    DefaultRendererSettleDelay,
		UserAgent:      DefaultRendererUserAgent,
		WindowWidth:    DefaultRendererWindowWidth,
		WindowHeight:   DefaultRendererWindowHeight,
		DisableImages:  DefaultRendererDisableImages,
		LaunchAttempts: DefaultRendererLaunchAttempts,
	}
}

// LoginConfig holds optional credentials for authenticated discovery and visits
type LoginConfig struct {
	Email       string        `json:"email,omitempty" yaml:"email,omitempty" env:"FB_EMAIL"`
	Password    string        `json:"password,omitempty" yaml:"password,omitempty" env:"FB_PASS"`
	URL         string        `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	SettleDelay time.Duration `json:"settle_delay,omitempty" yaml:"settle_delay,omitempty" validate:"gte=0"`
}

// NewDefaultLoginConfig creates default login configuration
func NewDefaultLoginConfig() LoginConfig {
	return LoginConfig{
		URL:         DefaultLoginURL,
		SettleDelay: DefaultLoginSettleDelay,
	}
}

// Enabled reports whether sign-in must run before discovery
func (lc LoginConfig) Enabled() bool {
	return lc.Email != "" && lc.Password != ""
}

// ExtractorConfig describes which links on a search page count as candidates
type ExtractorConfig struct {
	AllowedHosts  []string `json:"allowed_hosts,omitempty" yaml:"allowed_hosts,omitempty" validate:"min=1,dive,hostname_rfc1123"`
	PathPrefix    string   `json:"path_prefix,omitempty" yaml:"path_prefix,omitempty" validate:"required,startswith=/"`
	ExcludedSlugs []string `json:"excluded_slugs,omitempty" yaml:"excluded_slugs,omitempty"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		AllowedHosts:  append([]string(nil), DefaultExtractorAllowedHosts...),
		PathPrefix:    DefaultExtractorPathPrefix,
		ExcludedSlugs: append([]string(nil), DefaultExtractorExcludedSlugs...),
	}
}

// LogConfig defines configuration for logging
type LogConfig struct {
	LogFile       string `json:"log_file,omitempty" yaml:"log_file,omitempty" env:"LOG_FILE"`
	LogFormat     string `json:"log_format,omitempty" yaml:"log_format,omitempty" env:"LOG_FORMAT" validate:"omitempty,logformat"`
	LogLevel      string `json:"log_level,omitempty" yaml:"log_level,omitempty" env:"LOG_LEVEL" validate:"omitempty,loglevel"`
	MaxLogBackups int    `json:"max_log_backups,omitempty" yaml:"max_log_backups,omitempty"`
	MaxLogSizeMB  int    `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty"`
}

// NewDefaultLogConfig creates default log configuration
func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		LogFile:       DefaultLogFile,
		LogFormat:     DefaultLogFormat,
		LogLevel:      DefaultLogLevel,
		MaxLogBackups: DefaultMaxLogBackups,
		MaxLogSizeMB:  DefaultMaxLogSizeMB,
	}
}

// ResourceLimiterConfig gates scan admission on host memory pressure
type ResourceLimiterConfig struct {
	Enabled            bool    `json:"enabled" yaml:"enabled" env:"RESOURCE_LIMITER_ENABLED"`
	SystemMemThreshold float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty" validate:"gt=0,lte=1"`
}

// NewDefaultResourceLimiterConfig creates default resource limiter configuration
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		Enabled:            DefaultResourceLimiterEnabled,
		SystemMemThreshold: DefaultResourceLimiterSystemMemThreshold,
	}
}
