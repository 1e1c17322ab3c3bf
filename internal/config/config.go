package config

import (
	"webui-harness/pkg/settings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppConfig      *AppConfig      `yaml:"app"`
	SeleniumConfig *SeleniumConfig `yaml:"selenium"`
}

type AppConfig struct {
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error" yaml:"log_level"`
	Debug          bool   `envconfig:"DEBUG" default:"false" yaml:"debug"`
	TracingEnabled bool   `envconfig:"TRACING_ENABLED" default:"false" yaml:"tracing_enabled"`
	MetricsAddr    string `envconfig:"METRICS_ADDR" validate:"omitempty,hostname_port" yaml:"metrics_addr"`
}

// SeleniumConfig is the remote session section, shared with pkg/seltest.
type SeleniumConfig = settings.Selenium

// GetConfig reads the configuration from the environment, after loading an
// optional .env file from the working directory.
func GetConfig() (*Config, error) {
	_ = godotenv.Load()

	return Load()
}

// Load reads the configuration from the environment only. Each section is
// processed on its own so that errors name the variable that was set.
func Load() (*Config, error) {
	const op = "config.Load"

	conf := Config{
		AppConfig:      &AppConfig{},
		SeleniumConfig: &SeleniumConfig{},
	}

	for _, section := range []any{conf.AppConfig, conf.SeleniumConfig} {
		if err := settings.Process(op, section); err != nil {
			return nil, err
		}
	}

	return &conf, nil
}

func (c *Config) Validate() error {
	const op = "config.Validate"

	for _, section := range []any{c.AppConfig, c.SeleniumConfig} {
		if err := settings.Validate(op, section); err != nil {
			return err
		}
	}

	return nil
}

// Redacted returns a copy of c with secrets masked, for printing.
func (c *Config) Redacted() *Config {
	out := &Config{}

	if c.AppConfig != nil {
		app := *c.AppConfig
		out.AppConfig = &app
	}

	if c.SeleniumConfig != nil {
		sel := *c.SeleniumConfig
		if sel.BasicAuthPassword != "" {
			sel.BasicAuthPassword = "********"
		}

		out.SeleniumConfig = &sel
	}

	return out
}
