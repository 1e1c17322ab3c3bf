package seltest

import (
	"webui-harness/pkg/session"
	"webui-harness/pkg/settings"

	"github.com/stretchr/testify/suite"
)

// Suite runs every test method in a fresh remote session. Embed it and set the
// exported fields before SetupTest runs, typically from SetupSuite or an
// overriding SetupTest that calls Suite.SetupTest last.
type Suite struct {
	suite.Suite

	// Hooks are installed on the session manager of every test.
	Hooks session.Hooks
	// Options override the environment's session configuration.
	Options []session.ConfigOption
	// Client replaces the driver selected by SELENIUM_DRIVER.
	Client session.Client
	// Settings replace the SELENIUM_* environment when set.
	Settings *settings.Selenium

	harness *harness
}

func (s *Suite) SetupTest() {
	opts := []Option{
		WithHooks(s.Hooks),
		WithSessionOptions(s.Options...),
	}
	if s.Client != nil {
		opts = append(opts, WithClient(s.Client))
	}
	if s.Settings != nil {
		opts = append(opts, WithSettings(s.Settings))
	}

	h, err := newHarness(s.T(), opts...)
	s.Require().NoError(err)

	s.harness = h

	s.Require().NoError(h.setUp(), "set up session")
}

func (s *Suite) TearDownTest() {
	if s.harness == nil {
		return
	}

	s.harness.tearDown(s.T())
	s.harness = nil
}

// S returns the session of the running test.
func (s *Suite) S() *session.Session {
	s.Require().NotNil(s.harness, "no session, SetupTest did not run")
	s.Require().NotNil(s.harness.session, "no session, set up failed")

	return s.harness.session
}
