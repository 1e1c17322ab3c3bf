package scenario

import (
	"errors"
	"fmt"
	"strings"
	"webui-harness/internal/entity"
	"webui-harness/pkg/apperr"

	"github.com/mattn/go-shellwords"
)

// ParseLine reads a step typed in the shell: the action followed by its
// arguments, split with shell quoting rules. Arguments containing blanks or
// one of ; & | < > are quoted with single or double quotes, or the character
// is escaped with a backslash.
//
//	type id=user "Alice Smith"
func ParseLine(line string) (entity.Step, error) {
	const op = "scenario.ParseLine"

	parser := shellwords.NewParser()

	words, err := parser.Parse(line)
	if err != nil {
		return entity.Step{}, apperr.InvalidReqError(op, "line", err)
	}

	if parser.Position >= 0 {
		return entity.Step{}, apperr.InvalidReqError(op, "line",
			fmt.Errorf("unquoted shell operator in %q, quote the argument", line))
	}

	if len(words) == 0 {
		return entity.Step{}, apperr.InvalidReqError(op, "line", errors.New("empty step"))
	}

	step := entity.Step{
		Action: entity.ActionType(strings.ToLower(words[0])),
		Args:   words[1:],
	}

	if len(step.Args) == 0 {
		step.Args = nil
	}

	if err := Validate(step); err != nil {
		return step, apperr.InvalidReqError(op, "line", err)
	}

	return step, nil
}
