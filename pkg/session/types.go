package session

import (
	"net"
	"strconv"
	"time"
)

const (
	DefaultBrowser = "*chrome"
	DefaultTimeout = 30000 * time.Millisecond
)

type State string

const (
	StateUnstarted State = "unstarted"
	StateStarted   State = "started"
	StateStopped   State = "stopped"
)

// ServerLocation is where the remote automation endpoint listens.
type ServerLocation struct {
	Host string `validate:"required,hostname_rfc1123|ip"`
	Port int    `validate:"min=1,max=65535"`
}

func (l ServerLocation) Address() string {
	return net.JoinHostPort(l.Host, strconv.Itoa(l.Port))
}

func (l ServerLocation) String() string {
	return l.Address()
}

type BasicAuth struct {
	Username string `validate:"required"`
	Password string
}

// SessionConfig is the per-test configuration applied when a session starts.
type SessionConfig struct {
	Browser   string        `validate:"required"`
	BaseURL   string        `validate:"required,url"`
	Timeout   time.Duration `validate:"gt=0"`
	BasicAuth *BasicAuth    `validate:"omitempty"`
}

type ConfigOption func(*SessionConfig)

func NewConfig(baseURL string, opts ...ConfigOption) SessionConfig {
	cfg := SessionConfig{
		Browser: DefaultBrowser,
		BaseURL: baseURL,
		Timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func WithBrowser(browser string) ConfigOption {
	return func(c *SessionConfig) {
		if browser != "" {
			c.Browser = browser
		}
	}
}

func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *SessionConfig) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

func WithBaseURL(baseURL string) ConfigOption {
	return func(c *SessionConfig) {
		if baseURL != "" {
			c.BaseURL = baseURL
		}
	}
}

func WithBasicAuth(username, password string) ConfigOption {
	return func(c *SessionConfig) {
		if username == "" {
			c.BasicAuth = nil

			return
		}

		c.BasicAuth = &BasicAuth{Username: username, Password: password}
	}
}

type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
}
