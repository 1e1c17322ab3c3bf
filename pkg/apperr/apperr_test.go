package apperr_test

import (
	"errors"
	"fmt"
	"testing"
	"webui-harness/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestIs(t *testing.T) {
	base := errors.New("no such element")
	cmd := apperr.CommandError("Click", base, "id=submit")

	assert.True(t, apperr.Is(cmd, apperr.CodeCommand))
	assert.False(t, apperr.Is(cmd, apperr.CodeTimeout))
	assert.ErrorIs(t, cmd, base)

	wrapped := fmt.Errorf("step 3: %w", cmd)
	assert.True(t, apperr.Is(wrapped, apperr.CodeCommand))
	assert.Equal(t, apperr.CodeCommand, apperr.CodeOf(wrapped))

	combined := multierr.Append(
		apperr.WrapWithReason("BeforeSessionStop", apperr.CodeHook, base, "hook_failed"),
		apperr.WrapWithReason("stop", apperr.CodeSessionStop, base, "stop_failed"),
	)
	assert.True(t, apperr.Is(combined, apperr.CodeHook))
	assert.True(t, apperr.Is(combined, apperr.CodeSessionStop))
	assert.False(t, apperr.Is(combined, apperr.CodeCommand))

	assert.False(t, apperr.Is(nil, apperr.CodeCommand))
	assert.False(t, apperr.Is(base, apperr.CodeCommand))
}

func TestIsCommandError(t *testing.T) {
	assert.True(t, apperr.IsCommandError(apperr.CommandError("Type", errors.New("x"), "")))
	assert.True(t, apperr.IsCommandError(apperr.WrapErrorWithReason("Open", apperr.CodeSessionClosed, "session_not_started")))
	assert.False(t, apperr.IsCommandError(apperr.WrapErrorWithReason("Wait", apperr.CodeTimeout, "page_load_timeout")))
}

func TestMetadata(t *testing.T) {
	err := apperr.ConfigurationError("Load", "SELENIUM_PORT", errors.New("not a number"))

	var appErr *apperr.Error
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SELENIUM_PORT", appErr.Metadata[apperr.MetaField])
	assert.Equal(t, "invalid_configuration", apperr.Reason(err))
	assert.Equal(t, "Load: not a number", err.Error())

	cmd := apperr.CommandError("Click", errors.New("x"), "")
	assert.ErrorAs(t, cmd, &appErr)
	assert.NotContains(t, appErr.Metadata, apperr.MetaLocator)

	assert.Empty(t, apperr.Reason(errors.New("plain")))
	assert.Empty(t, apperr.CodeOf(errors.New("plain")))
}
