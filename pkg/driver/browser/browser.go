// Package browser translates the classic "*name" browser identifiers into the
// plain names the drivers request from the remote end.
package browser

import (
	"strings"
)

const (
	Firefox          = "firefox"
	Chrome           = "chrome"
	InternetExplorer = "internet explorer"
	Safari           = "safari"
	Opera            = "opera"
)

var launchers = map[string]string{
	"*chrome":        Firefox,
	"*firefox":       Firefox,
	"*firefoxproxy":  Firefox,
	"*pifirefox":     Firefox,
	"*googlechrome":  Chrome,
	"*iexplore":      InternetExplorer,
	"*iehta":         InternetExplorer,
	"*iexploreproxy": InternetExplorer,
	"*piiexplore":    InternetExplorer,
	"*safari":        Safari,
	"*safariproxy":   Safari,
	"*opera":         Opera,
}

// Resolve returns the plain browser name for id. The "*chrome" launcher is the
// Firefox chrome-privileged mode and therefore resolves to firefox. Unknown
// launchers lose their star; plain names pass through lowercased.
func Resolve(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))

	// "*custom /path/to/browser" carries the executable after the launcher.
	launcher, _, _ := strings.Cut(id, " ")

	if name, ok := launchers[launcher]; ok {
		return name
	}

	return strings.TrimPrefix(launcher, "*")
}

// IsChromium reports whether the resolved name is served by a Chromium engine.
func IsChromium(name string) bool {
	switch name {
	case Chrome, "chromium", "googlechrome", "msedge", "edge", "microsoftedge":
		return true
	}

	return false
}
