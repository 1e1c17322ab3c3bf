package driver_test

import (
	"testing"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/driver"
	"webui-harness/pkg/driver/cdp"
	"webui-harness/pkg/driver/playwright"
	"webui-harness/pkg/driver/webdriver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNew(t *testing.T) {
	logger := zaptest.NewLogger(t)

	client, err := driver.New("", logger, driver.Options{})
	require.NoError(t, err)
	assert.IsType(t, &webdriver.Client{}, client)

	client, err = driver.New("Playwright", logger, driver.Options{})
	require.NoError(t, err)
	assert.IsType(t, &playwright.Client{}, client)

	client, err = driver.New(driver.CDP, nil, driver.Options{})
	require.NoError(t, err)
	assert.IsType(t, &cdp.Client{}, client)

	_, err = driver.New("selenium-rc", logger, driver.Options{})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeConfiguration))
}
