// Package scenario reads browser scenarios from YAML files. A file holds one
// or more documents of the form
//
//	name: login
//	browser: "*firefox"
//	base_url: https://example.test/
//	timeout: 10s
//	steps:
//	  - open: /login
//	  - type: [id=user, alice]
//	  - submit_and_wait: id=login-form
//	  - assert_title: Dashboard
//	  - delete_all_cookies
//
// A step is a single-key map from action to its argument (a scalar, or a
// list when the action takes several), or a bare action name.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"webui-harness/internal/entity"
	"webui-harness/pkg/apperr"

	"gopkg.in/yaml.v3"
)

type document struct {
	Name    string      `yaml:"name"`
	Browser string      `yaml:"browser"`
	BaseURL string      `yaml:"base_url"`
	Timeout yaml.Node   `yaml:"timeout"`
	Steps   []yaml.Node `yaml:"steps"`
}

// ParseFile reads every scenario in the file at path. Scenarios without a name
// are named after the file.
func ParseFile(path string) ([]entity.Scenario, error) {
	const op = "scenario.ParseFile"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.NotFoundError(op, fmt.Errorf("read scenario file: %w", err))
	}

	return Parse(bytes.NewReader(data), path)
}

// ParseFiles reads the scenarios of all files in order.
func ParseFiles(paths ...string) ([]entity.Scenario, error) {
	var all []entity.Scenario

	for _, path := range paths {
		scenarios, err := ParseFile(path)
		if err != nil {
			return nil, err
		}

		all = append(all, scenarios...)
	}

	return all, nil
}

func Parse(r io.Reader, source string) ([]entity.Scenario, error) {
	const op = "scenario.Parse"

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var scenarios []entity.Scenario

	for i := 0; ; i++ {
		var doc document

		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, apperr.InvalidReqError(op, source, fmt.Errorf("%s: %w", source, err))
		}

		sc, err := build(doc, source, i)
		if err != nil {
			return nil, err
		}

		scenarios = append(scenarios, sc)
	}

	if len(scenarios) == 0 {
		return nil, apperr.InvalidReqError(op, source, fmt.Errorf("%s: no scenario found", source))
	}

	return scenarios, nil
}

func build(doc document, source string, index int) (entity.Scenario, error) {
	const op = "scenario.build"

	sc := entity.Scenario{
		Name:    doc.Name,
		Source:  source,
		Browser: doc.Browser,
		BaseURL: doc.BaseURL,
	}

	if sc.Name == "" {
		sc.Name = defaultName(source, index)
	}

	timeout, err := parseTimeout(&doc.Timeout)
	if err != nil {
		return sc, apperr.InvalidReqError(op, "timeout", fmt.Errorf("%s:%d: %w", source, doc.Timeout.Line, err))
	}

	sc.Timeout = timeout

	if len(doc.Steps) == 0 {
		return sc, apperr.InvalidReqError(op, "steps", fmt.Errorf("%s: scenario %q has no steps", source, sc.Name))
	}

	for i := range doc.Steps {
		step, err := parseStep(&doc.Steps[i])
		if err != nil {
			return sc, apperr.InvalidReqError(op, fmt.Sprintf("steps[%d]", i),
				fmt.Errorf("%s:%d: %w", source, doc.Steps[i].Line, err))
		}

		sc.Steps = append(sc.Steps, step)
	}

	return sc, nil
}

func defaultName(source string, index int) string {
	name := filepath.Base(source)
	name = name[:len(name)-len(filepath.Ext(name))]

	if index > 0 {
		name += "#" + strconv.Itoa(index+1)
	}

	return name
}

// parseTimeout accepts a Go duration ("10s") or a number of milliseconds.
func parseTimeout(node *yaml.Node) (time.Duration, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return 0, nil
	}

	if node.Kind != yaml.ScalarNode {
		return 0, errors.New("timeout must be a duration or milliseconds")
	}

	var (
		timeout time.Duration
		err     error
	)

	if node.Tag == "!!int" {
		var ms int64

		ms, err = strconv.ParseInt(node.Value, 10, 64)
		timeout = time.Duration(ms) * time.Millisecond
	} else {
		timeout, err = time.ParseDuration(node.Value)
	}

	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", node.Value, err)
	}

	if timeout <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %q", node.Value)
	}

	return timeout, nil
}

func parseStep(node *yaml.Node) (entity.Step, error) {
	step := entity.Step{Line: node.Line}

	switch node.Kind {
	case yaml.ScalarNode:
		step.Action = entity.ActionType(node.Value)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return step, errors.New("a step maps exactly one action to its arguments")
		}

		step.Action = entity.ActionType(node.Content[0].Value)

		args, err := parseArgs(node.Content[1])
		if err != nil {
			return step, fmt.Errorf("%s: %w", step.Action, err)
		}

		step.Args = args
	default:
		return step, errors.New("a step is an action name or a single-key map")
	}

	return step, Validate(step)
}

func parseArgs(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}

		return []string{node.Value}, nil
	case yaml.SequenceNode:
		args := make([]string, 0, len(node.Content))

		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: arguments must be scalars", item.Line)
			}

			args = append(args, item.Value)
		}

		return args, nil
	default:
		return nil, errors.New("arguments must be a scalar or a list of scalars")
	}
}

// Validate checks that step names a known action with an accepted number of
// arguments.
func Validate(step entity.Step) error {
	arity, ok := entity.ArityOf(step.Action)
	if !ok {
		return fmt.Errorf("unknown action %q", step.Action)
	}

	if n := len(step.Args); n < arity.Min || n > arity.Max {
		if arity.Min == arity.Max {
			return fmt.Errorf("%s takes %d argument(s), got %d", step.Action, arity.Min, n)
		}

		return fmt.Errorf("%s takes %d to %d arguments, got %d", step.Action, arity.Min, arity.Max, n)
	}

	return nil
}
