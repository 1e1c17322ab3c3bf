package playwright

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/session"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSelector(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "id=login", want: `xpath=//*[@id="login"]`},
		{raw: "css=form#login > button", want: "css=form#login > button"},
		{raw: "//div[@class='x']", want: "xpath=//div[@class='x']"},
		{raw: "link=Sign in", want: `xpath=//a[normalize-space(.)="Sign in"]`},
		{raw: "username", want: `xpath=//*[@id="username" or @name="username"]`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, selector(tt.raw), tt.raw)
	}
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "Enter", keyName("enter"))
	assert.Equal(t, "Enter", keyName(`\13`))
	assert.Equal(t, "ArrowDown", keyName("DOWN"))
	assert.Equal(t, "a", keyName("a"))
}

func TestClient_Endpoint(t *testing.T) {
	location := session.ServerLocation{Host: "selenium.cosmo", Port: 4444}

	assert.Equal(t, "ws://selenium.cosmo:4444/", NewClient(zaptest.NewLogger(t), Config{}).Endpoint(location))
	assert.Equal(t, "ws://selenium.cosmo:4444/playwright", NewClient(zaptest.NewLogger(t), Config{Path: "playwright"}).Endpoint(location))
}

type fakePage struct {
	playwright.Page

	url         string
	navErr      error
	navOptions  []playwright.PageExpectNavigationOptions
	navigations int
}

func (p *fakePage) IsClosed() bool { return false }

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) ExpectNavigation(cb func() error, options ...playwright.PageExpectNavigationOptions) (playwright.Response, error) {
	p.navOptions = append(p.navOptions, options...)

	if err := cb(); err != nil {
		return nil, err
	}

	if p.navErr != nil {
		return nil, p.navErr
	}

	p.navigations++

	return nil, nil
}

type fakeContext struct {
	playwright.BrowserContext

	cookies []playwright.Cookie
	cleared []playwright.BrowserContextClearCookiesOptions
}

func (c *fakeContext) Cookies(urls ...string) ([]playwright.Cookie, error) {
	if len(urls) == 0 {
		return c.cookies, nil
	}

	var visible []playwright.Cookie

	for _, cookie := range c.cookies {
		if cookie.Domain == "example.test" {
			visible = append(visible, cookie)
		}
	}

	return visible, nil
}

func (c *fakeContext) ClearCookies(options ...playwright.BrowserContextClearCookiesOptions) error {
	if len(options) == 0 {
		c.cookies = nil
		return nil
	}

	c.cleared = append(c.cleared, options...)

	kept := c.cookies[:0]

	for _, cookie := range c.cookies {
		opt := options[0]
		if cookie.Name == opt.Name && cookie.Domain == opt.Domain && cookie.Path == opt.Path {
			continue
		}

		kept = append(kept, cookie)
	}

	c.cookies = kept

	return nil
}

func newFakeRemote(t *testing.T) (*Remote, *fakePage, *fakeContext) {
	page := &fakePage{url: "https://example.test/account"}
	bctx := &fakeContext{}

	return &Remote{id: "pw-1", page: page, context: bctx, logger: zaptest.NewLogger(t)}, page, bctx
}

func TestRemote_DeleteAllVisibleCookiesKeepsOtherDomains(t *testing.T) {
	r, _, bctx := newFakeRemote(t)
	bctx.cookies = []playwright.Cookie{
		{Name: "sid", Value: "1", Domain: "example.test", Path: "/"},
		{Name: "pref", Value: "dark", Domain: "example.test", Path: "/account"},
		{Name: "sid", Value: "2", Domain: "other.test", Path: "/"},
	}

	require.NoError(t, r.DeleteAllVisibleCookies(context.Background()))

	assert.Len(t, bctx.cleared, 2)
	assert.Equal(t, []playwright.Cookie{{Name: "sid", Value: "2", Domain: "other.test", Path: "/"}}, bctx.cookies)
}

func TestRemote_ExpectNavigation(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the action inside the wait", func(t *testing.T) {
		r, page, _ := newFakeRemote(t)
		r.frame = &fakeFrame{}

		ran := false
		err := r.ExpectNavigation(ctx, 2*time.Second, func(context.Context) error {
			ran = true
			assert.Zero(t, page.navigations, "navigation awaited before the action ran")
			return nil
		})
		require.NoError(t, err)

		assert.True(t, ran)
		assert.Equal(t, 1, page.navigations)
		assert.Nil(t, r.frame)
		require.Len(t, page.navOptions, 1)
		assert.Equal(t, 2000.0, *page.navOptions[0].Timeout)
		assert.Equal(t, playwright.WaitUntilStateLoad, page.navOptions[0].WaitUntil)
	})

	t.Run("action error is returned as is", func(t *testing.T) {
		r, _, _ := newFakeRemote(t)
		submitErr := apperr.CommandError("Submit", errors.New("no such element"), "id=login")

		err := r.ExpectNavigation(ctx, time.Second, func(context.Context) error { return submitErr })
		assert.Equal(t, submitErr, err)
	})

	t.Run("navigation timeout", func(t *testing.T) {
		r, page, _ := newFakeRemote(t)
		page.navErr = fmt.Errorf("%w: waiting for navigation", playwright.ErrTimeout)

		err := r.ExpectNavigation(ctx, time.Second, func(context.Context) error { return nil })
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.CodeTimeout))
		assert.Equal(t, "page_load_timeout", apperr.Reason(err))
	})
}

type fakeFrame struct {
	playwright.Frame
}

var _ session.NavigationWaiter = (*Remote)(nil)
