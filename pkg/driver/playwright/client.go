// Package playwright drives browsers exposed by a remote Playwright server
// ("playwright run-server" or a browser container speaking the Playwright
// protocol).
package playwright

import (
	"context"
	"fmt"
	"strings"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/driver/browser"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"
	"webui-harness/pkg/tracing"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	clientName  = "PlaywrightClient"
	clientTrace = "driver.playwright"
)

type Config struct {
	// Path is the URL path of the Playwright server's websocket endpoint.
	Path string
	// Install downloads the Playwright driver (not the browsers) before the
	// first session.
	Install bool
}

var (
	_ session.Client = (*Client)(nil)
	_ session.Remote = (*Remote)(nil)
)

type Client struct {
	config Config
	logger *zap.Logger
	tracer trace.Tracer
}

func NewClient(logger *zap.Logger, config Config) *Client {
	if config.Path == "" {
		config.Path = "/"
	}

	return &Client{
		config: config,
		logger: logger.With(zap.String(logg.Layer, clientName)),
		tracer: otel.Tracer(clientTrace),
	}
}

func (c *Client) Endpoint(location session.ServerLocation) string {
	path := c.config.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return "ws://" + location.Address() + path
}

func (c *Client) Start(ctx context.Context, location session.ServerLocation, browserID, baseURL string) (_ session.Remote, err error) {
	const op = "Start"
	name := browser.Resolve(browserID)
	endpoint := c.Endpoint(location)
	logger := c.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.Browser, name),
		zap.String(logg.URL, endpoint),
	)

	_, step := tracing.StartSpan(ctx, c.tracer, logger, op,
		attribute.String(logg.Browser, name),
		attribute.String(logg.URL, endpoint))
	defer func() {
		step.End(err)
	}()

	if c.config.Install {
		step.AddEvent("installing playwright driver")

		if err := playwright.Install(&playwright.RunOptions{SkipInstallBrowsers: true}); err != nil {
			return nil, startError(op, "playwright_install_failed", location, err)
		}
	}

	step.AddEvent("starting playwright")

	pw, err := playwright.Run()
	if err != nil {
		return nil, startError(op, "playwright_start_failed", location, err)
	}

	browserType, err := engine(pw, name)
	if err != nil {
		return nil, multierr.Append(startError(op, "unsupported_browser", location, err), pw.Stop())
	}

	step.AddEvent("connecting to playwright server")

	b, err := browserType.Connect(endpoint)
	if err != nil {
		return nil, multierr.Append(startError(op, "connect_failed", location, err), pw.Stop())
	}

	browserContext, err := b.NewContext(playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(baseURL),
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		AcceptDownloads:   playwright.Bool(true),
		JavaScriptEnabled: playwright.Bool(true),
	})
	if err != nil {
		return nil, multierr.Combine(startError(op, "context_create_failed", location, err), b.Close(), pw.Stop())
	}

	page, err := browserContext.NewPage()
	if err != nil {
		return nil, multierr.Combine(startError(op, "page_create_failed", location, err), browserContext.Close(), b.Close(), pw.Stop())
	}

	r := &Remote{
		id:      uuid.NewString(),
		pw:      pw,
		browser: b,
		context: browserContext,
		page:    page,
		headers: make(map[string]string),
	}
	r.logger = c.logger.With(zap.String(logg.Layer, remoteName), zap.String(logg.SessionID, r.id))

	logger.Info("Playwright session started", zap.String("version", b.Version()))

	return r, nil
}

func engine(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch {
	case name == browser.Firefox:
		return pw.Firefox, nil
	case name == "" || browser.IsChromium(name):
		return pw.Chromium, nil
	case name == browser.Safari || name == "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("browser %q has no playwright engine", name)
	}
}

func startError(op, reason string, location session.ServerLocation, err error) error {
	return apperr.Wrap(op, apperr.CodeSessionStart, err, map[string]any{
		apperr.MetaReason: reason,
		apperr.MetaStage:  apperr.StageStart,
		apperr.MetaHost:   location.Host,
		apperr.MetaPort:   location.Port,
	})
}
