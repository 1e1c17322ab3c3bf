package webdriver

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/locator"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"
)

const (
	remoteName = "WebDriverRemote"

	readyStateScript    = `return document.readyState;`
	textPresentScript   = `return !!document.body && document.body.innerText.indexOf(arguments[0]) !== -1;`
	valueScript         = `return arguments[0].value;`
	selectedLabelScript = `var s = arguments[0]; return s.selectedIndex < 0 ? null : s.options[s.selectedIndex].text;`
	evalScript          = `return eval(arguments[0]);`
	pollInterval        = 100 * time.Millisecond
)

type Remote struct {
	wd      selenium.WebDriver
	baseURL string
	logger  *zap.Logger
	auth    *url.Userinfo
}

func newRemote(wd selenium.WebDriver, baseURL string, logger *zap.Logger) *Remote {
	return &Remote{
		wd:      wd,
		baseURL: baseURL,
		logger:  logger.With(zap.String(logg.Layer, remoteName), zap.String(logg.SessionID, wd.SessionID())),
	}
}

func (r *Remote) ID() string {
	return r.wd.SessionID()
}

// resolve turns a path relative to the base URL into an absolute URL and adds
// the basic-auth credentials, if any were configured.
func (r *Remote) resolve(raw string) (string, error) {
	target, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	if !target.IsAbs() && r.baseURL != "" {
		base, err := url.Parse(r.baseURL)
		if err != nil {
			return "", err
		}

		target = base.ResolveReference(target)
	}

	if r.auth != nil && target.IsAbs() && target.User == nil {
		target.User = r.auth
	}

	return target.String(), nil
}

func (r *Remote) find(op, raw string) (selenium.WebElement, error) {
	loc := locator.Parse(raw)

	by, value := selenium.ByCSSSelector, loc.Value
	if xpath, ok := loc.ToXPath(); ok {
		by, value = selenium.ByXPATH, xpath
	}

	elem, err := r.wd.FindElement(by, value)
	if err != nil {
		return nil, apperr.CommandError(op, fmt.Errorf("element %s not found: %w", raw, err), raw)
	}

	return elem, nil
}

func (r *Remote) onElement(op, raw string, fn func(selenium.WebElement) error) error {
	elem, err := r.find(op, raw)
	if err != nil {
		return err
	}

	if err := fn(elem); err != nil {
		return apperr.CommandError(op, err, raw)
	}

	return nil
}

func (r *Remote) Open(ctx context.Context, raw string) error {
	const op = "Open"

	target, err := r.resolve(raw)
	if err != nil {
		return apperr.InvalidReqError(op, "url", err)
	}

	r.logger.Debug("Opening page", zap.String(logg.URL, raw))

	if err := r.wd.Get(target); err != nil {
		return apperr.CommandError(op, err, "")
	}

	return nil
}

func (r *Remote) GoBack(ctx context.Context) error {
	if err := r.wd.Back(); err != nil {
		return apperr.CommandError("GoBack", err, "")
	}

	return nil
}

func (r *Remote) Refresh(ctx context.Context) error {
	if err := r.wd.Refresh(); err != nil {
		return apperr.CommandError("Refresh", err, "")
	}

	return nil
}

func (r *Remote) GetLocation(ctx context.Context) (string, error) {
	location, err := r.wd.CurrentURL()
	if err != nil {
		return "", apperr.CommandError("GetLocation", err, "")
	}

	return location, nil
}

func (r *Remote) GetTitle(ctx context.Context) (string, error) {
	title, err := r.wd.Title()
	if err != nil {
		return "", apperr.CommandError("GetTitle", err, "")
	}

	return title, nil
}

func (r *Remote) GetHTMLSource(ctx context.Context) (string, error) {
	source, err := r.wd.PageSource()
	if err != nil {
		return "", apperr.CommandError("GetHTMLSource", err, "")
	}

	return source, nil
}

// WaitForPageToLoad polls document.readyState until it is "complete". Errors
// from individual polls are tolerated while a navigation is in flight.
func (r *Remote) WaitForPageToLoad(ctx context.Context, timeout time.Duration) error {
	const op = "WaitForPageToLoad"

	var lastErr error

	err := r.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		state, err := wd.ExecuteScript(readyStateScript, nil)
		if err != nil {
			lastErr = err

			return false, nil
		}

		return state == "complete", nil
	}, timeout, pollInterval)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}

	return apperr.Wrap(op, apperr.CodeTimeout, errors.Join(err, lastErr), map[string]any{
		apperr.MetaReason:  "page_load_timeout",
		apperr.MetaStage:   apperr.StageWait,
		apperr.MetaTimeout: timeout.Milliseconds(),
	})
}

func (r *Remote) Click(ctx context.Context, raw string) error {
	return r.onElement("Click", raw, selenium.WebElement.Click)
}

func (r *Remote) DoubleClick(ctx context.Context, raw string) error {
	return r.onElement("DoubleClick", raw, func(elem selenium.WebElement) error {
		if err := elem.MoveTo(0, 0); err != nil {
			return err
		}

		return r.wd.DoubleClick()
	})
}

func (r *Remote) Type(ctx context.Context, raw, value string) error {
	return r.onElement("Type", raw, func(elem selenium.WebElement) error {
		if err := elem.Clear(); err != nil {
			return err
		}

		return elem.SendKeys(value)
	})
}

func (r *Remote) Select(ctx context.Context, selectLocator, optionLocator string) error {
	const op = "Select"

	opt, err := locator.ParseOption(optionLocator)
	if err != nil {
		return apperr.InvalidReqError(op, "option", err)
	}

	return r.onElement(op, selectLocator, func(elem selenium.WebElement) error {
		option, err := elem.FindElement(selenium.ByXPATH, opt.ToXPath())
		if err != nil {
			return fmt.Errorf("option %s not found: %w", optionLocator, err)
		}

		return option.Click()
	})
}

func (r *Remote) Check(ctx context.Context, raw string) error {
	return r.setChecked("Check", raw, true)
}

func (r *Remote) Uncheck(ctx context.Context, raw string) error {
	return r.setChecked("Uncheck", raw, false)
}

func (r *Remote) setChecked(op, raw string, want bool) error {
	return r.onElement(op, raw, func(elem selenium.WebElement) error {
		selected, err := elem.IsSelected()
		if err != nil {
			return err
		}

		if selected == want {
			return nil
		}

		return elem.Click()
	})
}

func (r *Remote) Submit(ctx context.Context, formLocator string) error {
	return r.onElement("Submit", formLocator, selenium.WebElement.Submit)
}

func (r *Remote) DragAndDropToObject(ctx context.Context, sourceLocator, targetLocator string) error {
	const op = "DragAndDropToObject"

	target, err := r.find(op, targetLocator)
	if err != nil {
		return err
	}

	return r.onElement(op, sourceLocator, func(source selenium.WebElement) error {
		if err := source.MoveTo(0, 0); err != nil {
			return err
		}

		if err := r.wd.ButtonDown(); err != nil {
			return err
		}

		if err := target.MoveTo(0, 0); err != nil {
			return err
		}

		return r.wd.ButtonUp()
	})
}

func (r *Remote) KeyPress(ctx context.Context, raw, key string) error {
	return r.onElement("KeyPress", raw, func(elem selenium.WebElement) error {
		return elem.SendKeys(keySequence(key))
	})
}

func (r *Remote) IsElementPresent(ctx context.Context, raw string) (bool, error) {
	loc := locator.Parse(raw)

	by, value := selenium.ByCSSSelector, loc.Value
	if xpath, ok := loc.ToXPath(); ok {
		by, value = selenium.ByXPATH, xpath
	}

	elems, err := r.wd.FindElements(by, value)
	if err != nil {
		return false, apperr.CommandError("IsElementPresent", err, raw)
	}

	return len(elems) > 0, nil
}

func (r *Remote) IsVisible(ctx context.Context, raw string) (visible bool, err error) {
	err = r.onElement("IsVisible", raw, func(elem selenium.WebElement) (err error) {
		visible, err = elem.IsDisplayed()

		return err
	})

	return visible, err
}

func (r *Remote) IsChecked(ctx context.Context, raw string) (checked bool, err error) {
	err = r.onElement("IsChecked", raw, func(elem selenium.WebElement) (err error) {
		checked, err = elem.IsSelected()

		return err
	})

	return checked, err
}

func (r *Remote) IsTextPresent(ctx context.Context, text string) (bool, error) {
	result, err := r.wd.ExecuteScript(textPresentScript, []any{text})
	if err != nil {
		return false, apperr.CommandError("IsTextPresent", err, "")
	}

	present, _ := result.(bool)

	return present, nil
}

func (r *Remote) GetText(ctx context.Context, raw string) (text string, err error) {
	err = r.onElement("GetText", raw, func(elem selenium.WebElement) (err error) {
		text, err = elem.Text()

		return err
	})

	return text, err
}

func (r *Remote) GetValue(ctx context.Context, raw string) (value string, err error) {
	err = r.onElement("GetValue", raw, func(elem selenium.WebElement) error {
		result, err := r.wd.ExecuteScript(valueScript, []any{elem})
		if err != nil {
			return err
		}

		value = stringify(result)

		return nil
	})

	return value, err
}

func (r *Remote) GetAttribute(ctx context.Context, raw, name string) (value string, err error) {
	err = r.onElement("GetAttribute", raw, func(elem selenium.WebElement) (err error) {
		value, err = elem.GetAttribute(name)

		return err
	})

	return value, err
}

func (r *Remote) GetSelectedLabel(ctx context.Context, selectLocator string) (label string, err error) {
	err = r.onElement("GetSelectedLabel", selectLocator, func(elem selenium.WebElement) error {
		result, err := r.wd.ExecuteScript(selectedLabelScript, []any{elem})
		if err != nil {
			return err
		}

		if result == nil {
			return errors.New("no option selected")
		}

		label = stringify(result)

		return nil
	})

	return label, err
}

// SelectWindow switches to the window with the given name or handle. An empty
// name or "null" selects the main window.
func (r *Remote) SelectWindow(ctx context.Context, name string) error {
	const op = "SelectWindow"

	if name == "" || name == "null" {
		handles, err := r.wd.WindowHandles()
		if err != nil {
			return apperr.CommandError(op, err, "")
		}

		if len(handles) == 0 {
			return apperr.CommandError(op, errors.New("no open windows"), "")
		}

		name = handles[0]
	}

	if err := r.wd.SwitchWindow(name); err != nil {
		return apperr.CommandError(op, err, name)
	}

	return nil
}

// SelectFrame switches into the frame element matched by raw, or back to the
// top document for "relative=top".
func (r *Remote) SelectFrame(ctx context.Context, raw string) error {
	const op = "SelectFrame"

	switch raw {
	case "relative=top", "":
		if err := r.wd.SwitchFrame(nil); err != nil {
			return apperr.CommandError(op, err, raw)
		}

		return nil
	case "relative=parent":
		return apperr.Wrap(op, apperr.CodeUnsupported, errors.New("parent frame selection is not supported by this driver"), map[string]any{
			apperr.MetaLocator: raw,
			apperr.MetaReason:  "unsupported_locator",
		})
	}

	return r.onElement(op, raw, func(elem selenium.WebElement) error {
		return r.wd.SwitchFrame(elem)
	})
}

func (r *Remote) CreateCookie(ctx context.Context, cookie session.Cookie) error {
	c := &selenium.Cookie{
		Name:   cookie.Name,
		Value:  cookie.Value,
		Path:   cookie.Path,
		Domain: cookie.Domain,
		Secure: cookie.Secure,
	}
	if !cookie.Expires.IsZero() {
		c.Expiry = uint(cookie.Expires.Unix())
	}

	if err := r.wd.AddCookie(c); err != nil {
		return apperr.CommandError("CreateCookie", err, "")
	}

	return nil
}

func (r *Remote) GetCookieByName(ctx context.Context, name string) (*session.Cookie, error) {
	cookies, err := r.wd.GetCookies()
	if err != nil {
		return nil, apperr.CommandError("GetCookieByName", err, "")
	}

	for _, c := range cookies {
		if c.Name != name {
			continue
		}

		cookie := &session.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
			Secure: c.Secure,
		}
		if c.Expiry > 0 {
			cookie.Expires = time.Unix(int64(c.Expiry), 0)
		}

		return cookie, nil
	}

	return nil, nil
}

func (r *Remote) DeleteCookie(ctx context.Context, name string) error {
	if err := r.wd.DeleteCookie(name); err != nil {
		return apperr.CommandError("DeleteCookie", err, "")
	}

	return nil
}

func (r *Remote) DeleteAllVisibleCookies(ctx context.Context) error {
	if err := r.wd.DeleteAllCookies(); err != nil {
		return apperr.CommandError("DeleteAllVisibleCookies", err, "")
	}

	return nil
}

func (r *Remote) GetEval(ctx context.Context, script string) (any, error) {
	result, err := r.wd.ExecuteScript(evalScript, []any{script})
	if err != nil {
		return nil, apperr.CommandError("GetEval", err, "")
	}

	return result, nil
}

func (r *Remote) CaptureScreenshot(ctx context.Context) ([]byte, error) {
	data, err := r.wd.Screenshot()
	if err != nil {
		return nil, apperr.CommandError("CaptureScreenshot", err, "")
	}

	return data, nil
}

// AddCustomRequestHeader only understands a basic Authorization header: the
// WebDriver protocol cannot inject headers, so the credentials are embedded in
// every URL opened afterwards.
func (r *Remote) AddCustomRequestHeader(ctx context.Context, name, value string) error {
	const op = "AddCustomRequestHeader"

	if !strings.EqualFold(name, "Authorization") {
		return apperr.Wrap(op, apperr.CodeUnsupported, fmt.Errorf("custom header %q is not supported over WebDriver", name), map[string]any{
			apperr.MetaReason:  "unsupported_header",
			apperr.MetaCommand: op,
		})
	}

	scheme, encoded, _ := strings.Cut(value, " ")
	if !strings.EqualFold(scheme, "Basic") {
		return apperr.WrapErrorWithReason(op, apperr.CodeUnsupported, "unsupported_auth_scheme")
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return apperr.InvalidReqError(op, "value", err)
	}

	user, password, _ := strings.Cut(string(decoded), ":")
	r.auth = url.UserPassword(user, password)

	return nil
}

func (r *Remote) SetTimeout(ctx context.Context, timeout time.Duration) error {
	const op = "SetTimeout"

	if err := r.wd.SetPageLoadTimeout(timeout); err != nil {
		return apperr.CommandError(op, err, "")
	}

	if err := r.wd.SetAsyncScriptTimeout(timeout); err != nil {
		return apperr.CommandError(op, err, "")
	}

	return nil
}

func (r *Remote) Stop(ctx context.Context) error {
	r.logger.Debug("Quitting WebDriver session")

	if err := r.wd.Quit(); err != nil {
		return apperr.CommandError("Stop", err, "")
	}

	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
