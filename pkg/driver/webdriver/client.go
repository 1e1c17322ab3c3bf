// Package webdriver talks to a Selenium server (standalone or grid hub) over
// the remote WebDriver protocol.
package webdriver

import (
	"context"
	"fmt"
	"strings"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/driver/browser"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"
	"webui-harness/pkg/tracing"

	"github.com/tebeka/selenium"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	clientName  = "WebDriverClient"
	clientTrace = "driver.webdriver"

	DefaultPath = "/wd/hub"
)

type Config struct {
	// Path is the URL path of the WebDriver endpoint on the server.
	Path string
}

var (
	_ session.Client = (*Client)(nil)
	_ session.Remote = (*Remote)(nil)
)

type Client struct {
	config Config
	logger *zap.Logger
	tracer trace.Tracer
	dial   func(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error)
}

func NewClient(logger *zap.Logger, config Config) *Client {
	if config.Path == "" {
		config.Path = DefaultPath
	}

	return &Client{
		config: config,
		logger: logger.With(zap.String(logg.Layer, clientName)),
		tracer: otel.Tracer(clientTrace),
		dial:   selenium.NewRemote,
	}
}

// Endpoint is the WebDriver URL for location.
func (c *Client) Endpoint(location session.ServerLocation) string {
	path := c.config.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return "http://" + location.Address() + strings.TrimSuffix(path, "/")
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

	if err := ctx.Err(); err != nil {
		return nil, apperr.WrapWithReason(op, apperr.CodeSessionStart, err, "context_done")
	}

	caps := selenium.Capabilities{"browserName": name}

	wd, err := c.dial(caps, endpoint)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeSessionStart, fmt.Errorf("new remote session at %s: %w", endpoint, err), map[string]any{
			apperr.MetaReason: "new_session_failed",
			apperr.MetaStage:  apperr.StageStart,
			apperr.MetaHost:   location.Host,
			apperr.MetaPort:   location.Port,
		})
	}

	logger.Info("WebDriver session created", zap.String("remote_id", wd.SessionID()))

	return newRemote(wd, baseURL, c.logger), nil
}
