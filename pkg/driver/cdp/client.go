// Package cdp attaches to a Chromium instance exposing the DevTools protocol
// remotely (for example a headless-shell container) and drives one tab per
// session.
package cdp

import (
	"context"
	"fmt"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/driver/browser"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"
	"webui-harness/pkg/tracing"

	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	clientName  = "CDPClient"
	clientTrace = "driver.cdp"
)

var (
	_ session.Client = (*Client)(nil)
	_ session.Remote = (*Remote)(nil)
)

type Client struct {
	logger *zap.Logger
	tracer trace.Tracer
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{
		logger: logger.With(zap.String(logg.Layer, clientName)),
		tracer: otel.Tracer(clientTrace),
	}
}

func (c *Client) Endpoint(location session.ServerLocation) string {
	return "ws://" + location.Address()
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

	if !browser.IsChromium(name) {
		logger.Warn("DevTools endpoints are Chromium based, requested browser is ignored")
	}

	// The session outlives ctx, so the allocator and tab hang off Background.
	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(context.Background(), endpoint)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Sugar().Debugf),
		chromedp.WithErrorf(logger.Sugar().Warnf))

	// Abort the initial connection, not the tab, if the caller gives up.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	step.AddEvent("attaching to devtools endpoint")

	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()

		return nil, apperr.Wrap(op, apperr.CodeSessionStart, fmt.Errorf("attach to %s: %w", endpoint, err), map[string]any{
			apperr.MetaReason: "attach_failed",
			apperr.MetaStage:  apperr.StageStart,
			apperr.MetaHost:   location.Host,
			apperr.MetaPort:   location.Port,
		})
	}

	id := ""
	if t := chromedp.FromContext(tabCtx).Target; t != nil {
		id = string(t.TargetID)
	}

	logger.Info("DevTools tab attached", zap.String("target_id", id))

	return &Remote{
		id:          id,
		baseURL:     baseURL,
		root:        tabCtx,
		tab:         tabCtx,
		cancelRoot:  cancelTab,
		cancelAlloc: cancelAlloc,
		timeout:     session.DefaultTimeout,
		headers:     make(map[string]any),
		logger:      c.logger.With(zap.String(logg.Layer, remoteName), zap.String(logg.SessionID, id)),
	}, nil
}
