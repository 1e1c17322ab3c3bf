package cdp

import (
	"strings"

	"github.com/chromedp/chromedp/kb"
)

var namedKeys = map[string]string{
	"enter":     kb.Enter,
	"return":    kb.Enter,
	"tab":       kb.Tab,
	"escape":    kb.Escape,
	"esc":       kb.Escape,
	"space":     " ",
	"backspace": kb.Backspace,
	"delete":    kb.Delete,
	"up":        kb.ArrowUp,
	"down":      kb.ArrowDown,
	"left":      kb.ArrowLeft,
	"right":     kb.ArrowRight,
	"home":      kb.Home,
	"end":       kb.End,
	"pageup":    kb.PageUp,
	"pagedown":  kb.PageDown,
	`\13`:       kb.Enter,
	`\9`:        kb.Tab,
	`\27`:       kb.Escape,
	`\8`:        kb.Backspace,
}

func keySequence(key string) string {
	if k, ok := namedKeys[strings.ToLower(key)]; ok {
		return k
	}

	return key
}
