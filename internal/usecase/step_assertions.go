package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"webui-harness/internal/entity"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/session"
)

// assert evaluates an assertion step. A mismatch is an apperr.CodeAssertion
// error; a failing query keeps the command error it produced.
func (s *StepService) assert(ctx context.Context, sess *session.Session, step entity.Step) (string, error) {
	arg := step.Arg

	switch step.Action {
	case entity.ActionTypeAssertText:
		if len(step.Args) == 1 {
			return assertTrue(step, "text %q is not on the page", arg(0))(sess.IsTextPresent(ctx, arg(0)))
		}

		return assertEqual(step, "text of "+arg(0), arg(1))(sess.GetText(ctx, arg(0)))
	case entity.ActionTypeAssertTitle:
		return assertEqual(step, "title", arg(0))(sess.GetTitle(ctx))
	case entity.ActionTypeAssertLocation:
		location, err := sess.GetLocation(ctx)
		if err != nil {
			return "", err
		}

		if !strings.HasSuffix(location, arg(0)) {
			return "", assertionError(step, fmt.Sprintf("location is %q, want it to end with %q", location, arg(0)))
		}

		return "Location is " + location, nil
	case entity.ActionTypeAssertPresent:
		return assertTrue(step, "element %s is not present", arg(0))(sess.IsElementPresent(ctx, arg(0)))
	case entity.ActionTypeAssertNotPresent:
		present, err := sess.IsElementPresent(ctx, arg(0))
		return assertTrue(step, "element %s is present", arg(0))(!present, err)
	case entity.ActionTypeAssertVisible:
		return assertTrue(step, "element %s is not visible", arg(0))(sess.IsVisible(ctx, arg(0)))
	case entity.ActionTypeAssertChecked:
		return assertTrue(step, "element %s is not checked", arg(0))(sess.IsChecked(ctx, arg(0)))
	case entity.ActionTypeAssertCookie:
		cookie, err := sess.GetCookieByName(ctx, arg(0))
		if err != nil {
			return "", err
		}

		if cookie == nil {
			return "", assertionError(step, fmt.Sprintf("cookie %q is not set", arg(0)))
		}

		if len(step.Args) == 2 && cookie.Value != arg(1) {
			return "", assertionError(step, fmt.Sprintf("cookie %q is %q, want %q", arg(0), cookie.Value, arg(1)))
		}

		return fmt.Sprintf("Cookie %s is %q", cookie.Name, cookie.Value), nil
	case entity.ActionTypeAssertValue:
		return assertEqual(step, "value of "+arg(0), arg(1))(sess.GetValue(ctx, arg(0)))
	case entity.ActionTypeAssertSelectedText:
		return assertEqual(step, "selected label of "+arg(0), arg(1))(sess.GetSelectedLabel(ctx, arg(0)))
	default:
		return "", apperr.WrapErrorWithReason("assert", apperr.CodeInvalidArgument, "unknown_assertion")
	}
}

func assertEqual(step entity.Step, what, want string) func(string, error) (string, error) {
	return func(got string, err error) (string, error) {
		if err != nil {
			return "", err
		}

		if got != want {
			return "", assertionError(step, fmt.Sprintf("%s is %q, want %q", what, got, want))
		}

		return fmt.Sprintf("%s is %q", upperFirst(what), got), nil
	}
}

func assertTrue(step entity.Step, format string, args ...any) func(bool, error) (string, error) {
	return func(ok bool, err error) (string, error) {
		if err != nil {
			return "", err
		}

		if !ok {
			return "", assertionError(step, fmt.Sprintf(format, args...))
		}

		return "OK", nil
	}
}

func assertionError(step entity.Step, message string) error {
	return apperr.Wrap(string(step.Action), apperr.CodeAssertion, errors.New(message), map[string]any{
		apperr.MetaReason: "assertion_failed",
		apperr.MetaStage:  apperr.StageScenario,
		apperr.MetaStep:   string(step.Action),
		apperr.MetaLine:   step.Line,
	})
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
