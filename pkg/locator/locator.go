// Package locator parses the strategy=value element and option locators used
// throughout the command vocabulary and translates them into expressions the
// individual drivers understand.
package locator

import (
	"fmt"
	"strconv"
	"strings"
)

type Strategy string

const (
	ID         Strategy = "id"
	Name       Strategy = "name"
	Identifier Strategy = "identifier"
	CSS        Strategy = "css"
	XPath      Strategy = "xpath"
	Link       Strategy = "link"
)

type Locator struct {
	Strategy Strategy
	Value    string
}

// Parse splits raw into strategy and value. Values starting with "//" are
// xpath expressions, unknown or missing prefixes fall back to identifier
// (id first, then name).
func Parse(raw string) Locator {
	if strings.HasPrefix(raw, "//") {
		return Locator{Strategy: XPath, Value: raw}
	}

	if prefix, value, ok := strings.Cut(raw, "="); ok {
		switch s := Strategy(strings.ToLower(prefix)); s {
		case ID, Name, Identifier, CSS, XPath, Link:
			return Locator{Strategy: s, Value: value}
		}
	}

	return Locator{Strategy: Identifier, Value: raw}
}

func (l Locator) String() string {
	return string(l.Strategy) + "=" + l.Value
}

// ToXPath renders every strategy except CSS as an equivalent xpath expression.
// CSS locators are returned unchanged with ok=false.
func (l Locator) ToXPath() (expr string, ok bool) {
	switch l.Strategy {
	case XPath:
		return l.Value, true
	case ID:
		return "//*[@id=" + Literal(l.Value) + "]", true
	case Name:
		return "//*[@name=" + Literal(l.Value) + "]", true
	case Identifier:
		lit := Literal(l.Value)

		return "//*[@id=" + lit + " or @name=" + lit + "]", true
	case Link:
		return "//a[normalize-space(.)=" + Literal(strings.TrimSpace(l.Value)) + "]", true
	default:
		return l.Value, false
	}
}

// Literal quotes s as an xpath string literal, falling back to concat() when s
// contains both quote characters.
func Literal(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}

	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)

	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}

		if part != "" {
			quoted = append(quoted, `"`+part+`"`)
		}
	}

	return "concat(" + strings.Join(quoted, ", ") + ")"
}

type OptionStrategy string

const (
	OptionLabel OptionStrategy = "label"
	OptionValue OptionStrategy = "value"
	OptionIndex OptionStrategy = "index"
)

type Option struct {
	Strategy OptionStrategy
	Value    string
	Index    int
}

// ParseOption parses an option locator such as "label=Germany", "value=de" or
// "index=2". A bare value is treated as a label.
func ParseOption(raw string) (Option, error) {
	prefix, value, ok := strings.Cut(raw, "=")
	if !ok {
		return Option{Strategy: OptionLabel, Value: raw}, nil
	}

	switch s := OptionStrategy(strings.ToLower(prefix)); s {
	case OptionLabel, OptionValue:
		return Option{Strategy: s, Value: value}, nil
	case OptionIndex:
		idx, err := strconv.Atoi(value)
		if err != nil || idx < 0 {
			return Option{}, fmt.Errorf("invalid option index %q", value)
		}

		return Option{Strategy: OptionIndex, Value: value, Index: idx}, nil
	default:
		return Option{Strategy: OptionLabel, Value: raw}, nil
	}
}

// ToXPath returns an xpath, relative to a select element, that matches the option.
func (o Option) ToXPath() string {
	switch o.Strategy {
	case OptionValue:
		return ".//option[@value=" + Literal(o.Value) + "]"
	case OptionIndex:
		return "(.//option)[" + strconv.Itoa(o.Index+1) + "]"
	default:
		return ".//option[normalize-space(.)=" + Literal(strings.TrimSpace(o.Value)) + "]"
	}
}
