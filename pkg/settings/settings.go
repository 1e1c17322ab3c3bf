// Package settings reads the remote session settings (SELENIUM_HOST,
// SELENIUM_PORT, SELENIUM_BROWSER, ...) from the environment and turns them
// into the values the session manager and the drivers take.
package settings

import (
	"errors"
	"fmt"
	"time"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/driver"
	"webui-harness/pkg/session"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

type Selenium struct {
	Host              string `envconfig:"SELENIUM_HOST" default:"selenium.cosmo" validate:"required,hostname_rfc1123|ip" yaml:"selenium_host"`
	Port              int    `envconfig:"SELENIUM_PORT" default:"4444" validate:"min=1,max=65535" yaml:"selenium_port"`
	Browser           string `envconfig:"SELENIUM_BROWSER" default:"*chrome" validate:"required" yaml:"selenium_browser"`
	Driver            string `envconfig:"SELENIUM_DRIVER" default:"webdriver" validate:"oneof=webdriver playwright cdp" yaml:"selenium_driver"`
	Path              string `envconfig:"SELENIUM_PATH" yaml:"selenium_path"`
	BaseURL           string `envconfig:"SELENIUM_BASE_URL" validate:"omitempty,url" yaml:"selenium_base_url"`
	TimeoutMS         int    `envconfig:"SELENIUM_TIMEOUT_MS" default:"30000" validate:"gt=0" yaml:"selenium_timeout_ms"`
	BasicAuthUser     string `envconfig:"SELENIUM_BASIC_AUTH_USER" yaml:"selenium_basic_auth_user"`
	BasicAuthPassword string `envconfig:"SELENIUM_BASIC_AUTH_PASSWORD" yaml:"selenium_basic_auth_password"`
	ScreenshotDir     string `envconfig:"SELENIUM_SCREENSHOT_DIR" default:"./screenshots" yaml:"selenium_screenshot_dir"`
	InstallPlaywright bool   `envconfig:"PLAYWRIGHT_INSTALL" default:"false" yaml:"playwright_install"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadSelenium reads and validates the session settings from the environment.
func LoadSelenium() (*Selenium, error) {
	const op = "settings.LoadSelenium"

	var sel Selenium

	if err := Process(op, &sel); err != nil {
		return nil, err
	}

	return &sel, nil
}

// Process fills section from its envconfig-tagged environment variables and
// validates it. A malformed variable is reported under the variable's own
// name, an invalid value under the struct field's name.
func Process(op string, section any) error {
	if err := envconfig.Process("", section); err != nil {
		field := ""

		var parseErr *envconfig.ParseError
		if errors.As(err, &parseErr) {
			field = parseErr.KeyName
		}

		return apperr.ConfigurationError(op, field, fmt.Errorf("read config from env vars: %w", err))
	}

	return Validate(op, section)
}

// Validate runs the validate tags of section.
func Validate(op string, section any) error {
	err := validate.Struct(section)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]

		return apperr.ConfigurationError(op, fe.StructField(),
			fmt.Errorf("%s=%v fails %q validation", fe.StructField(), fe.Value(), fe.Tag()))
	}

	return apperr.ConfigurationError(op, "", err)
}

func (s *Selenium) Location() session.ServerLocation {
	return session.ServerLocation{Host: s.Host, Port: s.Port}
}

func (s *Selenium) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// SessionConfig builds the per-session configuration from the settings.
// opts are applied last and override them.
func (s *Selenium) SessionConfig(opts ...session.ConfigOption) session.SessionConfig {
	base := []session.ConfigOption{
		session.WithBrowser(s.Browser),
		session.WithTimeout(s.Timeout()),
		session.WithBasicAuth(s.BasicAuthUser, s.BasicAuthPassword),
	}

	return session.NewConfig(s.BaseURL, append(base, opts...)...)
}

func (s *Selenium) DriverOptions() driver.Options {
	return driver.Options{
		Path:              s.Path,
		InstallPlaywright: s.InstallPlaywright,
	}
}

// NewClient returns the driver client the settings select.
func (s *Selenium) NewClient(logger *zap.Logger) (session.Client, error) {
	return driver.New(s.Driver, logger, s.DriverOptions())
}
