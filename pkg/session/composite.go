package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"webui-harness/pkg/apperr"

	"go.opentelemetry.io/otel/attribute"
)

// WaitForPageToLoad blocks until the current page reports it has loaded, for
// at most the session timeout.
func (s *Session) WaitForPageToLoad(ctx context.Context) error {
	return s.WaitForPageToLoadTimeout(ctx, s.Timeout())
}

// WaitForPageToLoadTimeout is WaitForPageToLoad with an explicit timeout. An
// expired wait always surfaces as an apperr.CodeTimeout error.
func (s *Session) WaitForPageToLoadTimeout(ctx context.Context, timeout time.Duration) error {
	const op = "WaitForPageToLoad"

	attrs := []attribute.KeyValue{attribute.Int64(apperr.MetaTimeout, timeout.Milliseconds())}

	return exec(ctx, s, op, attrs, func(ctx context.Context, r Remote) error {
		return loadTimeout(op, timeout, r.WaitForPageToLoad(ctx, timeout))
	})
}

func loadTimeout(op string, timeout time.Duration, err error) error {
	if err == nil || apperr.Is(err, apperr.CodeTimeout) || !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return apperr.Wrap(op, apperr.CodeTimeout, err, map[string]any{
		apperr.MetaReason:  "page_load_timeout",
		apperr.MetaStage:   apperr.StageWait,
		apperr.MetaTimeout: timeout.Milliseconds(),
	})
}

// andWait runs action and waits, within the session timeout, for the page
// load it triggers.
func (s *Session) andWait(ctx context.Context, op string, attrs []attribute.KeyValue, action func(context.Context, Remote) error) error {
	timeout := s.Timeout()

	return exec(ctx, s, op, attrs, func(ctx context.Context, r Remote) error {
		if waiter, ok := r.(NavigationWaiter); ok {
			return loadTimeout(op, timeout, waiter.ExpectNavigation(ctx, timeout, func(ctx context.Context) error {
				return action(ctx, r)
			}))
		}

		if err := action(ctx, r); err != nil {
			return err
		}

		return loadTimeout(op, timeout, r.WaitForPageToLoad(ctx, timeout))
	})
}

func (s *Session) OpenAndWait(ctx context.Context, url string) error {
	if err := s.Open(ctx, url); err != nil {
		return err
	}

	return s.WaitForPageToLoad(ctx)
}

func (s *Session) ClickAndWait(ctx context.Context, locator string) error {
	return s.andWait(ctx, "ClickAndWait", locatorAttr(locator), func(ctx context.Context, r Remote) error {
		return r.Click(ctx, locator)
	})
}

func (s *Session) SelectAndWait(ctx context.Context, selectLocator, optionLocator string) error {
	return s.andWait(ctx, "SelectAndWait", locatorAttr(selectLocator), func(ctx context.Context, r Remote) error {
		return r.Select(ctx, selectLocator, optionLocator)
	})
}

// SubmitAndWait submits the form and waits for the resulting navigation. A
// failed submit is returned as the command error; a navigation that does not
// complete in time is returned as a timeout error.
func (s *Session) SubmitAndWait(ctx context.Context, formLocator string) error {
	return s.andWait(ctx, "SubmitAndWait", locatorAttr(formLocator), func(ctx context.Context, r Remote) error {
		return r.Submit(ctx, formLocator)
	})
}

func (s *Session) IsCookiePresent(ctx context.Context, name string) (bool, error) {
	cookie, err := s.GetCookieByName(ctx, name)
	if err != nil {
		return false, err
	}

	return cookie != nil, nil
}

func (s *Session) CaptureScreenshotToFile(ctx context.Context, path string) error {
	const op = "CaptureScreenshotToFile"

	data, err := s.CaptureScreenshot(ctx)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperr.WrapWithReason(op, apperr.CodeInternal, err, "mkdir_failed")
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperr.WrapWithReason(op, apperr.CodeInternal, fmt.Errorf("write %s: %w", path, err), "write_failed")
	}

	return nil
}
