package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"webui-harness/internal/config"
	"webui-harness/internal/entity"
	"webui-harness/internal/scenario"
	"webui-harness/internal/usecase"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"

	"github.com/fatih/color"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var errExit = errors.New("exit")

var (
	okColor    = color.New(color.FgGreen)
	failColor  = color.New(color.FgRed)
	titleColor = color.New(color.FgCyan, color.Bold)
	dimColor   = color.New(color.Faint)
)

// Interface is the interactive shell: every line is one step run against the
// shell's session.
type Interface struct {
	config  *config.Config
	logger  *zap.Logger
	usecase *usecase.Service
	in      io.Reader
	out     io.Writer

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	stopping bool
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Usecase *usecase.Service
}

func NewInterface(params Params) *Interface {
	ctx, cancel := context.WithCancel(context.Background())

	return &Interface{
		config:  params.Config,
		logger:  params.Logger.With(zap.String(logg.Layer, "Console")),
		usecase: params.Usecase,
		in:      os.Stdin,
		out:     os.Stdout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetIO replaces stdin and stdout.
func (i *Interface) SetIO(in io.Reader, out io.Writer) {
	i.in, i.out = in, out
}

// Start reads steps until the input ends, "exit" is typed or Stop is called.
func (i *Interface) Start(sess *session.Session) error {
	i.printBanner(sess)
	i.printHelp()

	scanner := bufio.NewScanner(i.in)

	for !i.isStopping() {
		fmt.Fprint(i.out, "\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}

		if err := i.handleCommand(sess, input); err != nil {
			if errors.Is(err, errExit) {
				break
			}

			i.logger.Debug("Command error", zap.Error(err))
			failColor.Fprintf(i.out, "✗ %v\n", err)
		}
	}

	return scanner.Err()
}

// Stop makes Start return after the step in flight; the step's context is
// cancelled.
func (i *Interface) Stop() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.stopping {
		return nil
	}

	i.stopping = true
	i.logger.Info("Stopping console interface...")
	i.cancel()

	return nil
}

func (i *Interface) isStopping() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.stopping
}

func (i *Interface) handleCommand(sess *session.Session, input string) error {
	fields := strings.Fields(input)

	switch strings.ToLower(fields[0]) {
	case "help", "h":
		i.printHelp()

		return nil
	case "exit", "quit", "q":
		fmt.Fprintln(i.out, "Shutting down...")

		return errExit
	case "actions":
		i.printActions()

		return nil
	case "status":
		return i.printStatus(sess)
	case "run":
		if len(fields) < 2 {
			return errors.New("usage: run <scenario.yaml>...")
		}

		return i.runFiles(fields[1:])
	default:
		return i.executeStep(sess, input)
	}
}

func (i *Interface) executeStep(sess *session.Session, input string) error {
	step, err := scenario.ParseLine(input)
	if err != nil {
		return err
	}

	result, err := i.usecase.Steps.Execute(i.ctx, sess, step)
	if err != nil {
		return err
	}

	okColor.Fprintf(i.out, "✓ %s\n", result)

	return nil
}

// runFiles runs scenario files in sessions of their own, next to the shell's.
func (i *Interface) runFiles(paths []string) error {
	scenarios, err := scenario.ParseFiles(paths...)
	if err != nil {
		return err
	}

	for _, sc := range scenarios {
		titleColor.Fprintf(i.out, "▶ %s\n", sc.Name)

		run, err := i.usecase.Scenarios.Run(i.ctx, sc)
		PrintRun(i.out, run)

		if err != nil {
			i.logger.Debug("Scenario failed", zap.String(logg.Scenario, sc.Name), zap.Error(err))
		}
	}

	return nil
}

func (i *Interface) printStatus(sess *session.Session) error {
	if sess == nil {
		return errors.New("no session")
	}

	cfg := sess.Config()

	fmt.Fprintf(i.out, "Session:  %s (%s)\n", sess.ID(), sess.State())
	fmt.Fprintf(i.out, "Remote:   %s\n", sess.RemoteID())
	fmt.Fprintf(i.out, "Browser:  %s\n", cfg.Browser)
	fmt.Fprintf(i.out, "Base URL: %s\n", cfg.BaseURL)
	fmt.Fprintf(i.out, "Timeout:  %s\n", sess.Timeout())

	return nil
}

func (i *Interface) printActions() {
	for _, action := range entity.Actions() {
		arity, _ := entity.ArityOf(action)

		switch {
		case arity.Max == 0:
			fmt.Fprintf(i.out, "  %s\n", action)
		case arity.Min == arity.Max:
			fmt.Fprintf(i.out, "  %s (%d args)\n", action, arity.Min)
		default:
			fmt.Fprintf(i.out, "  %s (%d-%d args)\n", action, arity.Min, arity.Max)
		}
	}
}

func (i *Interface) printBanner(sess *session.Session) {
	titleColor.Fprintln(i.out, "webui-harness shell")

	if sess != nil {
		cfg := sess.Config()
		dimColor.Fprintf(i.out, "%s session on %s:%d, base URL %s\n",
			cfg.Browser, i.config.SeleniumConfig.Host, i.config.SeleniumConfig.Port, cfg.BaseURL)
	}
}

func (i *Interface) printHelp() {
	help := `
Available commands:
  help, h       - Show this help message
  actions       - List the step actions
  status        - Show the session
  run <file>... - Run scenario files, each in a session of its own
  exit, quit, q - Exit the application

Anything else is a step, run against the shell's session:
  open /login
  type id=user "Alice Smith"
  submit_and_wait id=login-form
  assert_title Dashboard`
	fmt.Fprintln(i.out, help)
}
