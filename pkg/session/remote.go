package session

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/remote_mock.go -package=mocks webui-harness/pkg/session Client,Remote

// Client opens remote automation sessions. Implementations live in pkg/driver.
type Client interface {
	Start(ctx context.Context, location ServerLocation, browser, baseURL string) (Remote, error)
}

// Remote is the command vocabulary of one live remote session. Locators use the
// strategy=value syntax understood by pkg/locator. Implementations report
// failures as apperr command errors and never retry.
type Remote interface {
	ID() string

	Open(ctx context.Context, url string) error
	GoBack(ctx context.Context) error
	Refresh(ctx context.Context) error
	GetLocation(ctx context.Context) (string, error)
	GetTitle(ctx context.Context) (string, error)
	GetHTMLSource(ctx context.Context) (string, error)
	WaitForPageToLoad(ctx context.Context, timeout time.Duration) error

	Click(ctx context.Context, locator string) error
	DoubleClick(ctx context.Context, locator string) error
	Type(ctx context.Context, locator, value string) error
	Select(ctx context.Context, selectLocator, optionLocator string) error
	Check(ctx context.Context, locator string) error
	Uncheck(ctx context.Context, locator string) error
	Submit(ctx context.Context, formLocator string) error
	DragAndDropToObject(ctx context.Context, sourceLocator, targetLocator string) error
	KeyPress(ctx context.Context, locator, key string) error

	IsElementPresent(ctx context.Context, locator string) (bool, error)
	IsVisible(ctx context.Context, locator string) (bool, error)
	IsChecked(ctx context.Context, locator string) (bool, error)
	IsTextPresent(ctx context.Context, text string) (bool, error)
	GetText(ctx context.Context, locator string) (string, error)
	GetValue(ctx context.Context, locator string) (string, error)
	GetAttribute(ctx context.Context, locator, name string) (string, error)
	GetSelectedLabel(ctx context.Context, selectLocator string) (string, error)

	SelectWindow(ctx context.Context, name string) error
	SelectFrame(ctx context.Context, locator string) error

	CreateCookie(ctx context.Context, cookie Cookie) error
	GetCookieByName(ctx context.Context, name string) (*Cookie, error)
	DeleteCookie(ctx context.Context, name string) error
	DeleteAllVisibleCookies(ctx context.Context) error

	GetEval(ctx context.Context, script string) (any, error)
	CaptureScreenshot(ctx context.Context) ([]byte, error)
	AddCustomRequestHeader(ctx context.Context, name, value string) error

	SetTimeout(ctx context.Context, timeout time.Duration) error
	Stop(ctx context.Context) error
}

// NavigationWaiter is implemented by remotes whose actions return before the
// navigation they trigger has begun. ExpectNavigation runs action and returns
// once the page it led to has loaded. An error from action is returned as is.
// Remotes without it get action followed by WaitForPageToLoad.
type NavigationWaiter interface {
	ExpectNavigation(ctx context.Context, timeout time.Duration, action func(ctx context.Context) error) error
}
