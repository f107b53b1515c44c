package renderer

import (
	"context"
	"net/http/cookiejar"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/common"
	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
)

// StaticGateway fetches raw HTML without executing scripts. It is meant for
// hosts without Chromium and for search surfaces that render server side.
type StaticGateway struct {
	config config.RendererConfig
	logger zerolog.Logger
}

// NewStaticGateway creates a new static gateway
func NewStaticGateway(cfg config.RendererConfig, logger zerolog.Logger) *StaticGateway {
	return &StaticGateway{
		config: cfg,
		logger: logger.With().Str("component", "StaticGateway").Logger(),
	}
}

// Start is a no-op; there is no process to launch
func (sg *StaticGateway) Start() error {
	sg.logger.Info().Msg("Static renderer ready")
	return nil
}

// Stop is a no-op
func (sg *StaticGateway) Stop() {}

// Open creates a session whose renders share one cookie jar
func (sg *StaticGateway) Open(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, common.WrapError(err, "failed to create cookie jar")
	}
	return &staticSession{config: sg.config, jar: jar, logger: sg.logger}, nil
}

type staticSession struct {
	config config.RendererConfig
	jar    *cookiejar.Jar
	logger zerolog.Logger
}

// Render fetches url with a throwaway collector bound to ctx
func (ss *staticSession) Render(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ss.config.PageTimeout)
	defer cancel()

	options := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
	}
	if ss.config.UserAgent != "" {
		options = append(options, colly.UserAgent(ss.config.UserAgent))
	}

	collector := colly.NewCollector(options...)
	// ctx owns the deadline; the client timeout only backs it up
	collector.SetRequestTimeout(ss.config.PageTimeout + time.Second)
	collector.SetCookieJar(ss.jar)

	var body []byte
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := collector.Visit(url); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", NewFetchError(url, "request did not complete", ctxErr)
		}
		return "", NewFetchError(url, "request failed", err)
	}

	if err := sleepContext(ctx, ss.config.SettleDelay); err != nil {
		return "", NewFetchError(url, "page did not settle", err)
	}

	return string(body), nil
}

// Close drops the cookie jar with the session
func (ss *staticSession) Close() error {
	return nil
}
