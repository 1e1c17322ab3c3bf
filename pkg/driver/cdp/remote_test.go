package cdp

import (
	"context"
	"testing"
	"time"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/session"

	"github.com/chromedp/chromedp/kb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestQuery(t *testing.T) {
	sel, opts := query("css=#login button")
	assert.Equal(t, "#login button", sel)
	assert.Len(t, opts, 1)

	sel, _ = query("id=login")
	assert.Equal(t, `//*[@id="login"]`, sel)
}

func TestElementJS(t *testing.T) {
	assert.Equal(t, `document.querySelector("a[href=\"/x\"]")`, elementJS(`css=a[href="/x"]`))
	assert.Equal(t,
		`document.evaluate("//*[@name=\"q\"]", document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue`,
		elementJS("name=q"))
}

func TestKeySequence(t *testing.T) {
	assert.Equal(t, kb.Enter, keySequence("ENTER"))
	assert.Equal(t, kb.Tab, keySequence(`\9`))
	assert.Equal(t, "xyz", keySequence("xyz"))
}

func TestRemote_SelectFrame(t *testing.T) {
	r := &Remote{}

	require.NoError(t, r.SelectFrame(context.Background(), "relative=top"))

	err := r.SelectFrame(context.Background(), "id=content")
	assert.True(t, apperr.Is(err, apperr.CodeUnsupported))
}

func TestClient_StartUnreachable(t *testing.T) {
	c := NewClient(zaptest.NewLogger(t))

	_, err := c.Start(context.Background(), session.ServerLocation{Host: "127.0.0.1", Port: 1}, "*googlechrome", "https://example.test/")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeSessionStart))
}

func TestRemote_ExpectNavigationMarksPageFirst(t *testing.T) {
	r := &Remote{tab: context.Background(), timeout: time.Second, logger: zaptest.NewLogger(t)}

	ran := false
	err := r.ExpectNavigation(context.Background(), time.Second, func(context.Context) error {
		ran = true
		return nil
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCommandError(err))
	assert.False(t, ran, "action must not run before the page is marked")

	assert.Contains(t, markPageScript, "window.__webuiHarnessPending")
	assert.Contains(t, pageReplacedScript, "!window.__webuiHarnessPending")
}

var _ session.NavigationWaiter = (*Remote)(nil)
