package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"webui-harness/internal/config"
	"webui-harness/internal/entity"
	"webui-harness/internal/ports"
	"webui-harness/internal/scenario"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"
	"webui-harness/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var _ ports.StepExecutor = (*StepService)(nil)

const (
	stepServiceName = "StepService"
	stepTracer      = "usecase.steps"
)

// StepService executes scenario steps against a live session. Each step maps
// onto one session command, a composite command, or an assertion built from
// query commands.
type StepService struct {
	config *config.Config
	logger *zap.Logger
	tracer trace.Tracer
}

type StepServiceParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func NewStepService(params StepServiceParams) *StepService {
	return &StepService{
		config: params.Config,
		logger: params.Logger.With(zap.String(logg.Layer, stepServiceName)),
		tracer: otel.Tracer(stepTracer),
	}
}

func (s *StepService) Execute(ctx context.Context, sess *session.Session, step entity.Step) (result string, err error) {
	const op = "Execute"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Step, string(step.Action)))

	ctx, span := tracing.StartSpan(ctx, s.tracer, logger, op,
		attribute.String(logg.Step, string(step.Action)),
		attribute.Int("line", step.Line))
	defer func() {
		span.End(err)
	}()

	if sess == nil {
		return "", apperr.InvalidReqError(op, "session", errors.New("no session to run the step in"))
	}

	if err := scenario.Validate(step); err != nil {
		return "", apperr.InvalidReqError(op, "step", err)
	}

	logger.Debug("Executing step", zap.String("description", describe(step)))

	return s.executeAction(ctx, sess, step)
}

func (s *StepService) Describe(step entity.Step) string {
	return describe(step)
}

func (s *StepService) executeAction(ctx context.Context, sess *session.Session, step entity.Step) (string, error) {
	const op = "executeAction"

	arg := step.Arg

	switch step.Action {
	case entity.ActionTypeOpen:
		return done(fmt.Sprintf("Opened %s", arg(0)), sess.Open(ctx, arg(0)))
	case entity.ActionTypeGoBack:
		return done("Went back", sess.GoBack(ctx))
	case entity.ActionTypeRefresh:
		return done("Refreshed", sess.Refresh(ctx))
	case entity.ActionTypeClick:
		return done("Clicked", sess.Click(ctx, arg(0)))
	case entity.ActionTypeClickAndWait:
		return done("Clicked and page loaded", sess.ClickAndWait(ctx, arg(0)))
	case entity.ActionTypeDoubleClick:
		return done("Double-clicked", sess.DoubleClick(ctx, arg(0)))
	case entity.ActionTypeType:
		return done("Typed", sess.Type(ctx, arg(0), arg(1)))
	case entity.ActionTypeSelect:
		return done("Selected", sess.Select(ctx, arg(0), arg(1)))
	case entity.ActionTypeCheck:
		return done("Checked", sess.Check(ctx, arg(0)))
	case entity.ActionTypeUncheck:
		return done("Unchecked", sess.Uncheck(ctx, arg(0)))
	case entity.ActionTypeSubmit:
		return done("Submitted", sess.Submit(ctx, arg(0)))
	case entity.ActionTypeSubmitAndWait:
		return done("Submitted and page loaded", sess.SubmitAndWait(ctx, arg(0)))
	case entity.ActionTypeWaitForPageToLoad:
		return s.actionWaitForPageToLoad(ctx, sess, step)
	case entity.ActionTypeKeyPress:
		return done("Pressed "+arg(1), sess.KeyPress(ctx, arg(0), arg(1)))
	case entity.ActionTypeDragAndDrop:
		return done("Dropped", sess.DragAndDropToObject(ctx, arg(0), arg(1)))
	case entity.ActionTypeSelectWindow:
		return done("Window selected", sess.SelectWindow(ctx, arg(0)))
	case entity.ActionTypeSelectFrame:
		return done("Frame selected", sess.SelectFrame(ctx, arg(0)))
	case entity.ActionTypeCreateCookie:
		return done("Cookie created", sess.CreateCookie(ctx, session.Cookie{Name: arg(0), Value: arg(1), Path: arg(2)}))
	case entity.ActionTypeDeleteCookie:
		return done("Cookie deleted", sess.DeleteCookie(ctx, arg(0)))
	case entity.ActionTypeDeleteAllCookies:
		return done("Cookies deleted", sess.DeleteAllVisibleCookies(ctx))
	case entity.ActionTypeEval:
		value, err := sess.GetEval(ctx, arg(0))
		if err != nil {
			return "", err
		}

		return fmt.Sprint(value), nil
	case entity.ActionTypeScreenshot:
		return s.actionScreenshot(ctx, sess, step)
	case entity.ActionTypeAssertText,
		entity.ActionTypeAssertTitle,
		entity.ActionTypeAssertLocation,
		entity.ActionTypeAssertPresent,
		entity.ActionTypeAssertNotPresent,
		entity.ActionTypeAssertVisible,
		entity.ActionTypeAssertChecked,
		entity.ActionTypeAssertCookie,
		entity.ActionTypeAssertValue,
		entity.ActionTypeAssertSelectedText:
		return s.assert(ctx, sess, step)
	default:
		return "", apperr.WrapErrorWithReason(op, apperr.CodeInvalidArgument, "unknown_action_type")
	}
}

func done(result string, err error) (string, error) {
	if err != nil {
		return "", err
	}

	return result, nil
}

func (s *StepService) actionWaitForPageToLoad(ctx context.Context, sess *session.Session, step entity.Step) (string, error) {
	const op = "actionWaitForPageToLoad"

	if len(step.Args) == 0 {
		return done("Page loaded", sess.WaitForPageToLoad(ctx))
	}

	ms, err := strconv.Atoi(step.Arg(0))
	if err != nil || ms <= 0 {
		return "", apperr.InvalidReqError(op, "timeout", fmt.Errorf("timeout must be a positive number of milliseconds, got %q", step.Arg(0)))
	}

	return done("Page loaded", sess.WaitForPageToLoadTimeout(ctx, time.Duration(ms)*time.Millisecond))
}

func (s *StepService) actionScreenshot(ctx context.Context, sess *session.Session, step entity.Step) (string, error) {
	name := step.Arg(0)
	if name == "" {
		name = "screenshot-" + uuid.NewString() + ".png"
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.config.SeleniumConfig.ScreenshotDir, name)
	}

	if err := sess.CaptureScreenshotToFile(ctx, path); err != nil {
		return "", err
	}

	return path, nil
}

// describe renders a step the way it would be typed in the shell.
func describe(step entity.Step) string {
	var b strings.Builder

	b.WriteString(string(step.Action))

	for _, arg := range step.Args {
		b.WriteByte(' ')

		if arg == "" || strings.ContainsAny(arg, " \t\"'\\") {
			b.WriteString(strconv.Quote(arg))
		} else {
			b.WriteString(arg)
		}
	}

	return b.String()
}
