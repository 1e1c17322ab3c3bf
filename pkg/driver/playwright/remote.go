package playwright

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/locator"
	"webui-harness/pkg/session"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	remoteName = "PlaywrightRemote"

	textPresentScript   = `t => !!document.body && document.body.innerText.includes(t)`
	selectedLabelScript = `s => s.selectedIndex < 0 ? null : s.options[s.selectedIndex].text`
	submitScript        = `el => { const f = el.form || el.closest('form') || el; f.submit(); }`
	windowNameScript    = `() => window.name`
)

// Remote is one browser context on a Playwright server. frame is the frame
// commands run in; nil means the page's main frame.
type Remote struct {
	id      string
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	frame   playwright.Frame
	headers map[string]string
	logger  *zap.Logger
}

func (r *Remote) ID() string {
	return r.id
}

// activePage returns the selected page, falling back to any open page of the
// context when the selected one was closed (a popup that closed itself).
func (r *Remote) activePage() (playwright.Page, error) {
	if r.page != nil && !r.page.IsClosed() {
		return r.page, nil
	}

	r.logger.Info("Selected page closed, reconnecting to an open page")

	for _, p := range r.context.Pages() {
		if !p.IsClosed() {
			r.page, r.frame = p, nil

			return p, nil
		}
	}

	return nil, errors.New("no open page in browser context")
}

func (r *Remote) scope(op string) (playwright.Frame, error) {
	page, err := r.activePage()
	if err != nil {
		return nil, apperr.CommandError(op, err, "")
	}

	if r.frame != nil && !r.frame.IsDetached() {
		return r.frame, nil
	}

	r.frame = nil

	return page.MainFrame(), nil
}

func (r *Remote) locate(op, raw string) (playwright.Locator, error) {
	frame, err := r.scope(op)
	if err != nil {
		return nil, err
	}

	return frame.Locator(selector(raw)).First(), nil
}

func (r *Remote) onLocator(op, raw string, fn func(playwright.Locator) error) error {
	loc, err := r.locate(op, raw)
	if err != nil {
		return err
	}

	if err := fn(loc); err != nil {
		return commandError(op, err, raw)
	}

	return nil
}

// selector renders a locator in Playwright's selector syntax.
func selector(raw string) string {
	loc := locator.Parse(raw)
	if xpath, ok := loc.ToXPath(); ok {
		return "xpath=" + xpath
	}

	return "css=" + loc.Value
}

func commandError(op string, err error, raw string) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return apperr.Wrap(op, apperr.CodeTimeout, err, map[string]any{
			apperr.MetaReason:  "playwright_timeout",
			apperr.MetaStage:   apperr.StageCommand,
			apperr.MetaCommand: op,
			apperr.MetaLocator: raw,
		})
	}

	return apperr.CommandError(op, err, raw)
}

func (r *Remote) Open(ctx context.Context, url string) error {
	const op = "Open"

	page, err := r.activePage()
	if err != nil {
		return apperr.CommandError(op, err, "")
	}

	if _, err := page.Goto(url, playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad}); err != nil {
		return commandError(op, err, "")
	}

	r.frame = nil

	return nil
}

func (r *Remote) GoBack(ctx context.Context) error {
	page, err := r.activePage()
	if err != nil {
		return apperr.CommandError("GoBack", err, "")
	}

	if _, err := page.GoBack(); err != nil {
		return commandError("GoBack", err, "")
	}

	r.frame = nil

	return nil
}

func (r *Remote) Refresh(ctx context.Context) error {
	page, err := r.activePage()
	if err != nil {
		return apperr.CommandError("Refresh", err, "")
	}

	if _, err := page.Reload(); err != nil {
		return commandError("Refresh", err, "")
	}

	r.frame = nil

	return nil
}

func (r *Remote) GetLocation(ctx context.Context) (string, error) {
	page, err := r.activePage()
	if err != nil {
		return "", apperr.CommandError("GetLocation", err, "")
	}

	return page.URL(), nil
}

func (r *Remote) GetTitle(ctx context.Context) (string, error) {
	page, err := r.activePage()
	if err != nil {
		return "", apperr.CommandError("GetTitle", err, "")
	}

	title, err := page.Title()
	if err != nil {
		return "", commandError("GetTitle", err, "")
	}

	return title, nil
}

func (r *Remote) GetHTMLSource(ctx context.Context) (string, error) {
	frame, err := r.scope("GetHTMLSource")
	if err != nil {
		return "", err
	}

	content, err := frame.Content()
	if err != nil {
		return "", commandError("GetHTMLSource", err, "")
	}

	return content, nil
}

func (r *Remote) WaitForPageToLoad(ctx context.Context, timeout time.Duration) error {
	const op = "WaitForPageToLoad"

	page, err := r.activePage()
	if err != nil {
		return apperr.CommandError(op, err, "")
	}

	err = page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateLoad,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, playwright.ErrTimeout) {
		return apperr.Wrap(op, apperr.CodeTimeout, err, map[string]any{
			apperr.MetaReason:  "page_load_timeout",
			apperr.MetaStage:   apperr.StageWait,
			apperr.MetaTimeout: timeout.Milliseconds(),
		})
	}

	return apperr.CommandError(op, err, "")
}

// ExpectNavigation runs action and waits for the main frame to navigate and
// reach the load state. Submit evaluates form.submit() and returns before the
// navigation begins, so waiting for the load state afterwards would see the
// old page.
func (r *Remote) ExpectNavigation(ctx context.Context, timeout time.Duration, action func(context.Context) error) error {
	const op = "ExpectNavigation"

	page, err := r.activePage()
	if err != nil {
		return apperr.CommandError(op, err, "")
	}

	var actionErr error

	_, err = page.ExpectNavigation(func() error {
		actionErr = action(ctx)

		return actionErr
	}, playwright.PageExpectNavigationOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if actionErr != nil {
		return actionErr
	}

	if err == nil {
		r.frame = nil

		return nil
	}

	if errors.Is(err, playwright.ErrTimeout) {
		return apperr.Wrap(op, apperr.CodeTimeout, err, map[string]any{
			apperr.MetaReason:  "page_load_timeout",
			apperr.MetaStage:   apperr.StageWait,
			apperr.MetaTimeout: timeout.Milliseconds(),
		})
	}

	return apperr.CommandError(op, err, "")
}

func (r *Remote) Click(ctx context.Context, raw string) error {
	return r.onLocator("Click", raw, func(l playwright.Locator) error {
		return l.Click()
	})
}

func (r *Remote) DoubleClick(ctx context.Context, raw string) error {
	return r.onLocator("DoubleClick", raw, func(l playwright.Locator) error {
		return l.Dblclick()
	})
}

func (r *Remote) Type(ctx context.Context, raw, value string) error {
	return r.onLocator("Type", raw, func(l playwright.Locator) error {
		return l.Fill(value)
	})
}

func (r *Remote) Select(ctx context.Context, selectLocator, optionLocator string) error {
	const op = "Select"

	opt, err := locator.ParseOption(optionLocator)
	if err != nil {
		return apperr.InvalidReqError(op, "option", err)
	}

	var values playwright.SelectOptionValues

	switch opt.Strategy {
	case locator.OptionValue:
		values.Values = &[]string{opt.Value}
	case locator.OptionIndex:
		values.Indexes = &[]int{opt.Index}
	default:
		values.Labels = &[]string{opt.Value}
	}

	return r.onLocator(op, selectLocator, func(l playwright.Locator) error {
		_, err := l.SelectOption(values)

		return err
	})
}

func (r *Remote) Check(ctx context.Context, raw string) error {
	return r.onLocator("Check", raw, func(l playwright.Locator) error {
		return l.Check()
	})
}

func (r *Remote) Uncheck(ctx context.Context, raw string) error {
	return r.onLocator("Uncheck", raw, func(l playwright.Locator) error {
		return l.Uncheck()
	})
}

func (r *Remote) Submit(ctx context.Context, formLocator string) error {
	return r.onLocator("Submit", formLocator, func(l playwright.Locator) error {
		_, err := l.Evaluate(submitScript, nil)

		return err
	})
}

func (r *Remote) DragAndDropToObject(ctx context.Context, sourceLocator, targetLocator string) error {
	const op = "DragAndDropToObject"

	target, err := r.locate(op, targetLocator)
	if err != nil {
		return err
	}

	return r.onLocator(op, sourceLocator, func(l playwright.Locator) error {
		return l.DragTo(target)
	})
}

func (r *Remote) KeyPress(ctx context.Context, raw, key string) error {
	return r.onLocator("KeyPress", raw, func(l playwright.Locator) error {
		return l.Press(keyName(key))
	})
}

func (r *Remote) IsElementPresent(ctx context.Context, raw string) (bool, error) {
	const op = "IsElementPresent"

	frame, err := r.scope(op)
	if err != nil {
		return false, err
	}

	count, err := frame.Locator(selector(raw)).Count()
	if err != nil {
		return false, commandError(op, err, raw)
	}

	return count > 0, nil
}

func (r *Remote) IsVisible(ctx context.Context, raw string) (visible bool, err error) {
	err = r.onLocator("IsVisible", raw, func(l playwright.Locator) (err error) {
		visible, err = l.IsVisible()

		return err
	})

	return visible, err
}

func (r *Remote) IsChecked(ctx context.Context, raw string) (checked bool, err error) {
	err = r.onLocator("IsChecked", raw, func(l playwright.Locator) (err error) {
		checked, err = l.IsChecked()

		return err
	})

	return checked, err
}

func (r *Remote) IsTextPresent(ctx context.Context, text string) (bool, error) {
	const op = "IsTextPresent"

	frame, err := r.scope(op)
	if err != nil {
		return false, err
	}

	result, err := frame.Evaluate(textPresentScript, text)
	if err != nil {
		return false, commandError(op, err, "")
	}

	present, _ := result.(bool)

	return present, nil
}

func (r *Remote) GetText(ctx context.Context, raw string) (text string, err error) {
	err = r.onLocator("GetText", raw, func(l playwright.Locator) (err error) {
		text, err = l.InnerText()

		return err
	})

	return text, err
}

func (r *Remote) GetValue(ctx context.Context, raw string) (value string, err error) {
	err = r.onLocator("GetValue", raw, func(l playwright.Locator) (err error) {
		value, err = l.InputValue()

		return err
	})

	return value, err
}

func (r *Remote) GetAttribute(ctx context.Context, raw, name string) (value string, err error) {
	err = r.onLocator("GetAttribute", raw, func(l playwright.Locator) (err error) {
		value, err = l.GetAttribute(name)

		return err
	})

	return value, err
}

func (r *Remote) GetSelectedLabel(ctx context.Context, selectLocator string) (label string, err error) {
	err = r.onLocator("GetSelectedLabel", selectLocator, func(l playwright.Locator) error {
		result, err := l.Evaluate(selectedLabelScript, nil)
		if err != nil {
			return err
		}

		s, ok := result.(string)
		if !ok {
			return errors.New("no option selected")
		}

		label = s

		return nil
	})

	return label, err
}

// SelectWindow selects the page whose window.name or title equals name. An
// empty name or "null" selects the first page of the context.
func (r *Remote) SelectWindow(ctx context.Context, name string) error {
	const op = "SelectWindow"

	pages := r.context.Pages()
	if len(pages) == 0 {
		return apperr.CommandError(op, errors.New("no open windows"), name)
	}

	if name == "" || name == "null" {
		r.page, r.frame = pages[0], nil

		return nil
	}

	for _, p := range pages {
		if p.IsClosed() {
			continue
		}

		if windowName, err := p.Evaluate(windowNameScript); err == nil && windowName == name {
			r.page, r.frame = p, nil

			return nil
		}

		if title, err := p.Title(); err == nil && title == name {
			r.page, r.frame = p, nil

			return nil
		}
	}

	return apperr.CommandError(op, fmt.Errorf("window %q not found", name), name)
}

func (r *Remote) SelectFrame(ctx context.Context, raw string) error {
	const op = "SelectFrame"

	current, err := r.scope(op)
	if err != nil {
		return err
	}

	switch raw {
	case "relative=top", "":
		r.frame = nil

		return nil
	case "relative=parent":
		if parent := current.ParentFrame(); parent != nil {
			r.frame = parent
		}

		return nil
	}

	return r.onLocator(op, raw, func(l playwright.Locator) error {
		handle, err := l.ElementHandle()
		if err != nil {
			return err
		}

		frame, err := handle.ContentFrame()
		if err != nil {
			return err
		}

		if frame == nil {
			return errors.New("element is not a frame")
		}

		r.frame = frame

		return nil
	})
}

func (r *Remote) CreateCookie(ctx context.Context, cookie session.Cookie) error {
	const op = "CreateCookie"

	c := playwright.OptionalCookie{
		Name:     cookie.Name,
		Value:    cookie.Value,
		Secure:   playwright.Bool(cookie.Secure),
		HttpOnly: playwright.Bool(cookie.HTTPOnly),
	}

	if cookie.Domain != "" {
		c.Domain = playwright.String(cookie.Domain)
		c.Path = playwright.String(cookie.Path)

		if cookie.Path == "" {
			c.Path = playwright.String("/")
		}
	} else {
		page, err := r.activePage()
		if err != nil {
			return apperr.CommandError(op, err, "")
		}

		c.URL = playwright.String(page.URL())
	}

	if !cookie.Expires.IsZero() {
		c.Expires = playwright.Float(float64(cookie.Expires.Unix()))
	}

	if err := r.context.AddCookies([]playwright.OptionalCookie{c}); err != nil {
		return commandError(op, err, "")
	}

	return nil
}

func (r *Remote) visibleCookies(op string) ([]playwright.Cookie, error) {
	page, err := r.activePage()
	if err != nil {
		return nil, apperr.CommandError(op, err, "")
	}

	cookies, err := r.context.Cookies(page.URL())
	if err != nil {
		return nil, commandError(op, err, "")
	}

	return cookies, nil
}

func (r *Remote) GetCookieByName(ctx context.Context, name string) (*session.Cookie, error) {
	cookies, err := r.visibleCookies("GetCookieByName")
	if err != nil {
		return nil, err
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
			HTTPOnly: c.HttpOnly,
		}
		if c.Expires > 0 {
			cookie.Expires = time.Unix(int64(c.Expires), 0)
		}

		return cookie, nil
	}

	return nil, nil
}

// DeleteCookie clears the context's cookies and restores every cookie except
// name.
func (r *Remote) DeleteCookie(ctx context.Context, name string) error {
	const op = "DeleteCookie"

	all, err := r.context.Cookies()
	if err != nil {
		return commandError(op, err, "")
	}

	keep := make([]playwright.OptionalCookie, 0, len(all))

	for _, c := range all {
		if c.Name == name {
			continue
		}

		keep = append(keep, optionalCookie(c))
	}

	if len(keep) == len(all) {
		return nil
	}

	if err := r.context.ClearCookies(); err != nil {
		return commandError(op, err, "")
	}

	if len(keep) == 0 {
		return nil
	}

	if err := r.context.AddCookies(keep); err != nil {
		return commandError(op, err, "")
	}

	return nil
}

func optionalCookie(c playwright.Cookie) playwright.OptionalCookie {
	return playwright.OptionalCookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   playwright.String(c.Domain),
		Path:     playwright.String(c.Path),
		Expires:  playwright.Float(c.Expires),
		HttpOnly: playwright.Bool(c.HttpOnly),
		Secure:   playwright.Bool(c.Secure),
		SameSite: c.SameSite,
	}
}

// DeleteAllVisibleCookies deletes the cookies the current page can see.
// Cookies of other domains and paths stay in the context.
func (r *Remote) DeleteAllVisibleCookies(ctx context.Context) error {
	const op = "DeleteAllVisibleCookies"

	visible, err := r.visibleCookies(op)
	if err != nil {
		return err
	}

	for _, c := range visible {
		if err := r.context.ClearCookies(visibleCookieFilter(c)); err != nil {
			return commandError(op, err, "")
		}
	}

	return nil
}

func visibleCookieFilter(c playwright.Cookie) playwright.BrowserContextClearCookiesOptions {
	return playwright.BrowserContextClearCookiesOptions{
		Name:   c.Name,
		Domain: c.Domain,
		Path:   c.Path,
	}
}

func (r *Remote) GetEval(ctx context.Context, script string) (any, error) {
	frame, err := r.scope("GetEval")
	if err != nil {
		return nil, err
	}

	result, err := frame.Evaluate(script)
	if err != nil {
		return nil, commandError("GetEval", err, "")
	}

	return result, nil
}

func (r *Remote) CaptureScreenshot(ctx context.Context) ([]byte, error) {
	page, err := r.activePage()
	if err != nil {
		return nil, apperr.CommandError("CaptureScreenshot", err, "")
	}

	data, err := page.Screenshot()
	if err != nil {
		return nil, commandError("CaptureScreenshot", err, "")
	}

	return data, nil
}

func (r *Remote) AddCustomRequestHeader(ctx context.Context, name, value string) error {
	r.headers[name] = value

	if err := r.context.SetExtraHTTPHeaders(r.headers); err != nil {
		delete(r.headers, name)

		return commandError("AddCustomRequestHeader", err, "")
	}

	return nil
}

func (r *Remote) SetTimeout(ctx context.Context, timeout time.Duration) error {
	ms := float64(timeout.Milliseconds())

	r.context.SetDefaultTimeout(ms)
	r.context.SetDefaultNavigationTimeout(ms)

	return nil
}

func (r *Remote) Stop(ctx context.Context) error {
	r.logger.Debug("Closing playwright session")

	var errs error

	if err := r.context.Close(); err != nil {
		r.logger.Warn("Failed to close context", zap.Error(err))
		errs = multierr.Append(errs, err)
	}

	if err := r.browser.Close(); err != nil {
		r.logger.Warn("Failed to close browser", zap.Error(err))
		errs = multierr.Append(errs, err)
	}

	if err := r.pw.Stop(); err != nil {
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		return apperr.CommandError("Stop", errs, "")
	}

	return nil
}

var keyNames = map[string]string{
	"enter":     "Enter",
	"return":    "Enter",
	"tab":       "Tab",
	"escape":    "Escape",
	"esc":       "Escape",
	"space":     "Space",
	"backspace": "Backspace",
	"delete":    "Delete",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pagedown":  "PageDown",
	`\13`:       "Enter",
	`\9`:        "Tab",
	`\27`:       "Escape",
	`\8`:        "Backspace",
}

func keyName(key string) string {
	if k, ok := keyNames[strings.ToLower(key)]; ok {
		return k
	}

	return key
}
