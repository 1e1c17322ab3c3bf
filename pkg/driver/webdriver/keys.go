package webdriver

import (
	"strconv"
	"strings"

	"github.com/tebeka/selenium"
)

var namedKeys = map[string]string{
	"enter":     selenium.EnterKey,
	"return":    selenium.ReturnKey,
	"tab":       selenium.TabKey,
	"escape":    selenium.EscapeKey,
	"esc":       selenium.EscapeKey,
	"space":     selenium.SpaceKey,
	"backspace": selenium.BackspaceKey,
	"delete":    selenium.DeleteKey,
	"up":        selenium.UpArrowKey,
	"down":      selenium.DownArrowKey,
	"left":      selenium.LeftArrowKey,
	"right":     selenium.RightArrowKey,
	"home":      selenium.HomeKey,
	"end":       selenium.EndKey,
	"pageup":    selenium.PageUpKey,
	"pagedown":  selenium.PageDownKey,
}

// keySequence accepts a key name ("enter"), a "\13" style ASCII code or a
// literal character sequence.
func keySequence(key string) string {
	if k, ok := namedKeys[strings.ToLower(key)]; ok {
		return k
	}

	if code, ok := strings.CutPrefix(key, `\`); ok {
		if n, err := strconv.Atoi(code); err == nil {
			switch n {
			case 13:
				return selenium.EnterKey
			case 9:
				return selenium.TabKey
			case 27:
				return selenium.EscapeKey
			case 8:
				return selenium.BackspaceKey
			}

			return string(rune(n))
		}
	}

	return key
}
