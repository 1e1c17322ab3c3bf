package cdp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/locator"
	"webui-harness/pkg/session"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	remoteName   = "CDPRemote"
	pollInterval = 100 * time.Millisecond
)

// Remote is one DevTools tab. root is the tab created at start; tab is the
// target commands currently run against, which differs from root after
// SelectWindow.
type Remote struct {
	id          string
	baseURL     string
	root        context.Context
	tab         context.Context
	cancelRoot  context.CancelFunc
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	timeout     time.Duration
	headers     map[string]any
	logger      *zap.Logger
}

func (r *Remote) ID() string {
	return r.id
}

// run executes actions on the current tab, bounded by ctx and by the session
// timeout. Element queries in chromedp wait for the element to appear, so the
// bound is what turns a missing element into a failure.
func (r *Remote) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(r.tab, r.timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// query returns the chromedp selector and query options for a locator.
func query(raw string) (string, []chromedp.QueryOption) {
	loc := locator.Parse(raw)
	if xpath, ok := loc.ToXPath(); ok {
		return xpath, []chromedp.QueryOption{chromedp.BySearch}
	}

	return loc.Value, []chromedp.QueryOption{chromedp.ByQuery}
}

// elementJS is a JavaScript expression evaluating to the first element matched
// by raw, or null.
func elementJS(raw string) string {
	loc := locator.Parse(raw)
	if xpath, ok := loc.ToXPath(); ok {
		return fmt.Sprintf("document.evaluate(%s, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue", jsString(xpath))
	}

	return fmt.Sprintf("document.querySelector(%s)", jsString(loc.Value))
}

func jsString(s string) string {
	b, _ := json.Marshal(s)

	return string(b)
}

func (r *Remote) element(ctx context.Context, op, raw string, action func(sel any, opts ...chromedp.QueryOption) chromedp.QueryAction) error {
	sel, opts := query(raw)

	if err := r.run(ctx, action(sel, opts...)); err != nil {
		return apperr.CommandError(op, err, raw)
	}

	return nil
}

func (r *Remote) Open(ctx context.Context, raw string) error {
	const op = "Open"

	target, err := url.Parse(raw)
	if err != nil {
		return apperr.InvalidReqError(op, "url", err)
	}

	if !target.IsAbs() && r.baseURL != "" {
		base, err := url.Parse(r.baseURL)
		if err != nil {
			return apperr.InvalidReqError(op, "base_url", err)
		}

		target = base.ResolveReference(target)
	}

	if err := r.run(ctx, chromedp.Navigate(target.String())); err != nil {
		return apperr.CommandError(op, err, "")
	}

	return nil
}

func (r *Remote) GoBack(ctx context.Context) error {
	if err := r.run(ctx, chromedp.NavigateBack()); err != nil {
		return apperr.CommandError("GoBack", err, "")
	}

	return nil
}

func (r *Remote) Refresh(ctx context.Context) error {
	if err := r.run(ctx, chromedp.Reload()); err != nil {
		return apperr.CommandError("Refresh", err, "")
	}

	return nil
}

func (r *Remote) GetLocation(ctx context.Context) (location string, err error) {
	if err := r.run(ctx, chromedp.Location(&location)); err != nil {
		return "", apperr.CommandError("GetLocation", err, "")
	}

	return location, nil
}

func (r *Remote) GetTitle(ctx context.Context) (title string, err error) {
	if err := r.run(ctx, chromedp.Title(&title)); err != nil {
		return "", apperr.CommandError("GetTitle", err, "")
	}

	return title, nil
}

func (r *Remote) GetHTMLSource(ctx context.Context) (source string, err error) {
	if err := r.run(ctx, chromedp.OuterHTML("html", &source, chromedp.ByQuery)); err != nil {
		return "", apperr.CommandError("GetHTMLSource", err, "")
	}

	return source, nil
}

const (
	pageLoadedScript = `document.readyState === "complete"`

	// The sentinel lives on the window object, so it disappears once the tab
	// has navigated to a new document.
	markPageScript     = `window.__webuiHarnessPending = true`
	pageReplacedScript = `!window.__webuiHarnessPending && document.readyState === "complete"`
)

// WaitForPageToLoad polls document.readyState. The deadline is reported as
// context.DeadlineExceeded wrapped in an apperr timeout.
func (r *Remote) WaitForPageToLoad(ctx context.Context, timeout time.Duration) error {
	return r.waitFor(ctx, "WaitForPageToLoad", timeout, pageLoadedScript)
}

// ExpectNavigation marks the current document, runs action and waits until a
// new document has replaced the marked one and finished loading.
func (r *Remote) ExpectNavigation(ctx context.Context, timeout time.Duration, action func(context.Context) error) error {
	const op = "ExpectNavigation"

	if err := r.run(ctx, chromedp.Evaluate(markPageScript, nil)); err != nil {
		return apperr.CommandError(op, err, "")
	}

	if err := action(ctx); err != nil {
		return err
	}

	return r.waitFor(ctx, op, timeout, pageReplacedScript)
}

// waitFor polls condition, a JavaScript expression, until it evaluates to
// true. Evaluation errors while the tab is between documents are retried.
func (r *Remote) waitFor(ctx context.Context, op string, timeout time.Duration, condition string) error {
	waitCtx, cancel := context.WithTimeout(r.tab, timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(waitCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			var done bool
			if err := chromedp.Evaluate(condition, &done).Do(ctx); err == nil && done {
				return nil
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}))
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
		return apperr.Wrap(op, apperr.CodeTimeout, context.DeadlineExceeded, map[string]any{
			apperr.MetaReason:  "page_load_timeout",
			apperr.MetaStage:   apperr.StageWait,
			apperr.MetaTimeout: timeout.Milliseconds(),
		})
	}

	return apperr.CommandError(op, err, "")
}

func (r *Remote) Click(ctx context.Context, raw string) error {
	return r.element(ctx, "Click", raw, chromedp.Click)
}

func (r *Remote) DoubleClick(ctx context.Context, raw string) error {
	return r.element(ctx, "DoubleClick", raw, chromedp.DoubleClick)
}

func (r *Remote) Type(ctx context.Context, raw, value string) error {
	const op = "Type"

	sel, opts := query(raw)

	if err := r.run(ctx, chromedp.Clear(sel, opts...), chromedp.SendKeys(sel, value, opts...)); err != nil {
		return apperr.CommandError(op, err, raw)
	}

	return nil
}

// evalElement runs fn(el, arg) in the page, where el is the element matched by
// raw. The script must throw if el is null.
func (r *Remote) evalElement(ctx context.Context, raw, fn string, arg any, res any) error {
	argJSON, err := json.Marshal(arg)
	if err != nil {
		return err
	}

	script := fmt.Sprintf("(%s)(%s, %s)", fn, elementJS(raw), argJSON)

	return r.run(ctx, chromedp.Evaluate(script, res))
}

const selectScript = `(sel, xp) => {
	if (!sel) throw new Error("select element not found");
	const opt = document.evaluate(xp, sel, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	if (!opt) throw new Error("option not found");
	opt.selected = true;
	sel.dispatchEvent(new Event("input", {bubbles: true}));
	sel.dispatchEvent(new Event("change", {bubbles: true}));
	return true;
}`

func (r *Remote) Select(ctx context.Context, selectLocator, optionLocator string) error {
	const op = "Select"

	opt, err := locator.ParseOption(optionLocator)
	if err != nil {
		return apperr.InvalidReqError(op, "option", err)
	}

	var ok bool
	if err := r.evalElement(ctx, selectLocator, selectScript, opt.ToXPath(), &ok); err != nil {
		return apperr.CommandError(op, err, selectLocator)
	}

	return nil
}

func (r *Remote) Check(ctx context.Context, raw string) error {
	return r.setChecked(ctx, "Check", raw, true)
}

func (r *Remote) Uncheck(ctx context.Context, raw string) error {
	return r.setChecked(ctx, "Uncheck", raw, false)
}

func (r *Remote) setChecked(ctx context.Context, op, raw string, want bool) error {
	checked, err := r.IsChecked(ctx, raw)
	if err != nil {
		return err
	}

	if checked == want {
		return nil
	}

	return r.element(ctx, op, raw, chromedp.Click)
}

func (r *Remote) Submit(ctx context.Context, formLocator string) error {
	return r.element(ctx, "Submit", formLocator, chromedp.Submit)
}

func (r *Remote) DragAndDropToObject(ctx context.Context, sourceLocator, targetLocator string) error {
	const op = "DragAndDropToObject"

	var sources, targets []*cdp.Node

	srcSel, srcOpts := query(sourceLocator)
	dstSel, dstOpts := query(targetLocator)

	err := r.run(ctx,
		chromedp.Nodes(srcSel, &sources, append(srcOpts, chromedp.NodeVisible)...),
		chromedp.Nodes(dstSel, &targets, append(dstOpts, chromedp.NodeVisible)...),
		chromedp.ActionFunc(func(ctx context.Context) error {
			x0, y0, err := center(ctx, sources[0])
			if err != nil {
				return err
			}

			x1, y1, err := center(ctx, targets[0])
			if err != nil {
				return err
			}

			return chromedp.Run(ctx,
				chromedp.MouseEvent(input.MouseMoved, x0, y0),
				chromedp.MouseEvent(input.MousePressed, x0, y0, chromedp.ButtonLeft, chromedp.ClickCount(1)),
				chromedp.MouseEvent(input.MouseMoved, (x0+x1)/2, (y0+y1)/2, chromedp.ButtonLeft),
				chromedp.MouseEvent(input.MouseMoved, x1, y1, chromedp.ButtonLeft),
				chromedp.MouseEvent(input.MouseReleased, x1, y1, chromedp.ButtonLeft, chromedp.ClickCount(1)),
			)
		}),
	)
	if err != nil {
		return apperr.CommandError(op, err, sourceLocator)
	}

	return nil
}

func center(ctx context.Context, node *cdp.Node) (float64, float64, error) {
	box, err := dom.GetBoxModel().WithNodeID(node.NodeID).Do(ctx)
	if err != nil {
		return 0, 0, err
	}

	quad := box.Content
	if len(quad) < 8 {
		return 0, 0, errors.New("element has no layout box")
	}

	return (quad[0] + quad[2] + quad[4] + quad[6]) / 4, (quad[1] + quad[3] + quad[5] + quad[7]) / 4, nil
}

func (r *Remote) KeyPress(ctx context.Context, raw, key string) error {
	const op = "KeyPress"

	sel, opts := query(raw)

	if err := r.run(ctx, chromedp.SendKeys(sel, keySequence(key), opts...)); err != nil {
		return apperr.CommandError(op, err, raw)
	}

	return nil
}

func (r *Remote) IsElementPresent(ctx context.Context, raw string) (bool, error) {
	var present bool

	if err := r.run(ctx, chromedp.Evaluate(elementJS(raw)+" !== null", &present)); err != nil {
		return false, apperr.CommandError("IsElementPresent", err, raw)
	}

	return present, nil
}

const visibleScript = `(el) => {
	if (!el) throw new Error("element not found");
	const style = window.getComputedStyle(el);
	return style.visibility !== "hidden" && style.display !== "none" && !!(el.offsetWidth || el.offsetHeight || el.getClientRects().length);
}`

func (r *Remote) IsVisible(ctx context.Context, raw string) (bool, error) {
	var visible bool

	if err := r.evalElement(ctx, raw, visibleScript, nil, &visible); err != nil {
		return false, apperr.CommandError("IsVisible", err, raw)
	}

	return visible, nil
}

const checkedScript = `(el) => {
	if (!el) throw new Error("element not found");
	return !!el.checked;
}`

func (r *Remote) IsChecked(ctx context.Context, raw string) (bool, error) {
	var checked bool

	if err := r.evalElement(ctx, raw, checkedScript, nil, &checked); err != nil {
		return false, apperr.CommandError("IsChecked", err, raw)
	}

	return checked, nil
}

func (r *Remote) IsTextPresent(ctx context.Context, text string) (bool, error) {
	var present bool

	script := fmt.Sprintf("!!document.body && document.body.innerText.includes(%s)", jsString(text))

	if err := r.run(ctx, chromedp.Evaluate(script, &present)); err != nil {
		return false, apperr.CommandError("IsTextPresent", err, "")
	}

	return present, nil
}

func (r *Remote) GetText(ctx context.Context, raw string) (string, error) {
	var text string

	sel, opts := query(raw)

	if err := r.run(ctx, chromedp.Text(sel, &text, opts...)); err != nil {
		return "", apperr.CommandError("GetText", err, raw)
	}

	return strings.TrimSpace(text), nil
}

func (r *Remote) GetValue(ctx context.Context, raw string) (string, error) {
	var value string

	sel, opts := query(raw)

	if err := r.run(ctx, chromedp.Value(sel, &value, opts...)); err != nil {
		return "", apperr.CommandError("GetValue", err, raw)
	}

	return value, nil
}

func (r *Remote) GetAttribute(ctx context.Context, raw, name string) (string, error) {
	var (
		value string
		ok    bool
	)

	sel, opts := query(raw)

	if err := r.run(ctx, chromedp.AttributeValue(sel, name, &value, &ok, opts...)); err != nil {
		return "", apperr.CommandError("GetAttribute", err, raw)
	}

	return value, nil
}

const selectedLabelScript = `(sel) => {
	if (!sel) throw new Error("select element not found");
	if (sel.selectedIndex < 0) throw new Error("no option selected");
	return sel.options[sel.selectedIndex].text;
}`

func (r *Remote) GetSelectedLabel(ctx context.Context, selectLocator string) (string, error) {
	var label string

	if err := r.evalElement(ctx, selectLocator, selectedLabelScript, nil, &label); err != nil {
		return "", apperr.CommandError("GetSelectedLabel", err, selectLocator)
	}

	return label, nil
}

// SelectWindow attaches to the page target whose title equals name. An empty
// name or "null" returns to the tab the session started with.
func (r *Remote) SelectWindow(ctx context.Context, name string) error {
	const op = "SelectWindow"

	if name == "" || name == "null" {
		r.detach()

		return nil
	}

	targets, err := chromedp.Targets(r.root)
	if err != nil {
		return apperr.CommandError(op, err, name)
	}

	for _, t := range targets {
		if t.Type != "page" || (t.Title != name && string(t.TargetID) != name) {
			continue
		}

		tab, cancel := chromedp.NewContext(r.root, chromedp.WithTargetID(t.TargetID))
		if err := chromedp.Run(tab); err != nil {
			cancel()

			return apperr.CommandError(op, err, name)
		}

		r.detach()
		r.tab, r.cancelTab = tab, cancel

		return nil
	}

	return apperr.CommandError(op, fmt.Errorf("window %q not found", name), name)
}

func (r *Remote) detach() {
	if r.cancelTab != nil {
		r.cancelTab()
	}

	r.tab, r.cancelTab = r.root, nil
}

// SelectFrame only supports returning to the top document; element queries on
// this driver always run against the top-level document.
func (r *Remote) SelectFrame(ctx context.Context, raw string) error {
	if raw == "" || raw == "relative=top" {
		return nil
	}

	return apperr.Wrap("SelectFrame", apperr.CodeUnsupported, errors.New("frame selection is not supported over DevTools"), map[string]any{
		apperr.MetaLocator: raw,
		apperr.MetaReason:  "unsupported_locator",
	})
}

func (r *Remote) CreateCookie(ctx context.Context, cookie session.Cookie) error {
	const op = "CreateCookie"

	err := r.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		set := network.SetCookie(cookie.Name, cookie.Value).
			WithSecure(cookie.Secure).
			WithHTTPOnly(cookie.HTTPOnly)

		if cookie.Domain != "" {
			set = set.WithDomain(cookie.Domain)
		} else {
			var location string
			if err := chromedp.Location(&location).Do(ctx); err != nil {
				return err
			}

			set = set.WithURL(location)
		}

		if cookie.Path != "" {
			set = set.WithPath(cookie.Path)
		}

		if !cookie.Expires.IsZero() {
			expires := cdp.TimeSinceEpoch(cookie.Expires)
			set = set.WithExpires(&expires)
		}

		return set.Do(ctx)
	}))
	if err != nil {
		return apperr.CommandError(op, err, "")
	}

	return nil
}

func (r *Remote) GetCookieByName(ctx context.Context, name string) (*session.Cookie, error) {
	var cookies []*network.Cookie

	err := r.run(ctx, chromedp.ActionFunc(func(ctx context.Context) (err error) {
		cookies, err = network.GetCookies().Do(ctx)

		return err
	}))
	if err != nil {
		return nil, apperr.CommandError("GetCookieByName", err, "")
	}

	for _, c := range cookies {
		if c.Name != name {
			continue
		}

		cookie := &session.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		}
		if c.Expires > 0 {
			cookie.Expires = time.Unix(int64(c.Expires), 0)
		}

		return cookie, nil
	}

	return nil, nil
}

func (r *Remote) DeleteCookie(ctx context.Context, name string) error {
	err := r.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var location string
		if err := chromedp.Location(&location).Do(ctx); err != nil {
			return err
		}

		return network.DeleteCookies(name).WithURL(location).Do(ctx)
	}))
	if err != nil {
		return apperr.CommandError("DeleteCookie", err, "")
	}

	return nil
}

func (r *Remote) DeleteAllVisibleCookies(ctx context.Context) error {
	err := r.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := network.GetCookies().Do(ctx)
		if err != nil {
			return err
		}

		for _, c := range cookies {
			if err := network.DeleteCookies(c.Name).WithDomain(c.Domain).WithPath(c.Path).Do(ctx); err != nil {
				return err
			}
		}

		return nil
	}))
	if err != nil {
		return apperr.CommandError("DeleteAllVisibleCookies", err, "")
	}

	return nil
}

func (r *Remote) GetEval(ctx context.Context, script string) (any, error) {
	var result any

	if err := r.run(ctx, chromedp.Evaluate(script, &result)); err != nil {
		return nil, apperr.CommandError("GetEval", err, "")
	}

	return result, nil
}

func (r *Remote) CaptureScreenshot(ctx context.Context) ([]byte, error) {
	var data []byte

	if err := r.run(ctx, chromedp.CaptureScreenshot(&data)); err != nil {
		return nil, apperr.CommandError("CaptureScreenshot", err, "")
	}

	return data, nil
}

func (r *Remote) AddCustomRequestHeader(ctx context.Context, name, value string) error {
	r.headers[name] = value

	err := r.run(ctx, network.Enable(), network.SetExtraHTTPHeaders(network.Headers(r.headers)))
	if err != nil {
		delete(r.headers, name)

		return apperr.CommandError("AddCustomRequestHeader", err, "")
	}

	return nil
}

func (r *Remote) SetTimeout(ctx context.Context, timeout time.Duration) error {
	r.timeout = timeout

	return nil
}

// Stop closes the tab the session started with and disconnects from the
// browser. The browser itself keeps running.
func (r *Remote) Stop(ctx context.Context) error {
	r.logger.Debug("Closing devtools tab")

	r.detach()

	err := chromedp.Cancel(r.root)
	r.cancelRoot()
	r.cancelAlloc()

	if err != nil && !errors.Is(err, context.Canceled) {
		return apperr.CommandError("Stop", err, "")
	}

	return nil
}
