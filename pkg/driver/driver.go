// Package driver selects the session.Client implementation for a protocol.
package driver

import (
	"fmt"
	"strings"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/driver/cdp"
	"webui-harness/pkg/driver/playwright"
	"webui-harness/pkg/driver/webdriver"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"

	"go.uber.org/zap"
)

const (
	WebDriver  = "webdriver"
	Playwright = "playwright"
	CDP        = "cdp"
)

type Options struct {
	// Path is the endpoint path on the server. Empty selects the protocol
	// default (/wd/hub for WebDriver, / for Playwright).
	Path string
	// InstallPlaywright downloads the Playwright driver before connecting.
	InstallPlaywright bool
}

// Names lists the supported drivers.
func Names() []string {
	return []string{WebDriver, Playwright, CDP}
}

func New(name string, logger *zap.Logger, opts Options) (session.Client, error) {
	const op = "driver.New"

	if logger == nil {
		logger = zap.NewNop()
	}

	logger = logger.With(zap.String(logg.Driver, name))

	switch strings.ToLower(name) {
	case WebDriver, "":
		return webdriver.NewClient(logger, webdriver.Config{Path: opts.Path}), nil
	case Playwright:
		return playwright.NewClient(logger, playwright.Config{Path: opts.Path, Install: opts.InstallPlaywright}), nil
	case CDP:
		return cdp.NewClient(logger), nil
	default:
		return nil, apperr.ConfigurationError(op, "driver",
			fmt.Errorf("unknown driver %q, expected one of %s", name, strings.Join(Names(), ", ")))
	}
}
