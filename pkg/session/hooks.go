package session

import (
	"context"

	"go.uber.org/multierr"
)

// Hooks are the extension points around a session's start and stop. A nil
// field is a no-op.
type Hooks struct {
	// BeforeSessionStart runs before the remote session is requested, e.g. to
	// provision the application under test.
	BeforeSessionStart func(ctx context.Context) error
	// AfterSessionStart runs once the session is started and configured.
	AfterSessionStart func(ctx context.Context, s *Session) error
	// BeforeSessionStop runs while the session can still take commands.
	BeforeSessionStop func(ctx context.Context, s *Session) error
	// AfterSessionStop runs after the remote session was released, even if
	// releasing it failed.
	AfterSessionStop func(ctx context.Context) error
}

// ChainHooks composes hook sets. Start hooks run in the given order and stop at
// the first error; stop hooks run in reverse order and all of them run. When a
// before-start hook fails, the after-stop hooks of the sets that already
// started run in reverse order before the error is returned.
func ChainHooks(sets ...Hooks) Hooks {
	return Hooks{
		BeforeSessionStart: func(ctx context.Context) error {
			for i, h := range sets {
				if h.BeforeSessionStart == nil {
					continue
				}

				if err := h.BeforeSessionStart(ctx); err != nil {
					return multierr.Append(err, unwind(context.WithoutCancel(ctx), sets[:i]))
				}
			}

			return nil
		},
		AfterSessionStart: func(ctx context.Context, s *Session) error {
			for _, h := range sets {
				if h.AfterSessionStart == nil {
					continue
				}

				if err := h.AfterSessionStart(ctx, s); err != nil {
					return err
				}
			}

			return nil
		},
		BeforeSessionStop: func(ctx context.Context, s *Session) error {
			var errs error

			for i := len(sets) - 1; i >= 0; i-- {
				if sets[i].BeforeSessionStop != nil {
					errs = multierr.Append(errs, sets[i].BeforeSessionStop(ctx, s))
				}
			}

			return errs
		},
		AfterSessionStop: func(ctx context.Context) error {
			return unwind(ctx, sets)
		},
	}
}

func unwind(ctx context.Context, started []Hooks) error {
	var errs error

	for i := len(started) - 1; i >= 0; i-- {
		if started[i].AfterSessionStop != nil {
			errs = multierr.Append(errs, started[i].AfterSessionStop(ctx))
		}
	}

	return errs
}
