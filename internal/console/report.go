package console

import (
	"fmt"
	"io"
	"time"
	"webui-harness/internal/entity"
)

// PrintRun writes the step-by-step outcome of run.
func PrintRun(out io.Writer, run *entity.Run) {
	if run == nil {
		return
	}

	for _, rec := range run.Steps {
		if rec.Success {
			okColor.Fprintf(out, "  ✓ %s", rec.Description)
			dimColor.Fprintf(out, " (%s)\n", rec.Elapsed.Round(time.Millisecond))

			continue
		}

		failColor.Fprintf(out, "  ✗ %s\n", rec.Description)
		failColor.Fprintf(out, "    %s\n", rec.Error)

		if rec.Screenshot != "" {
			dimColor.Fprintf(out, "    screenshot: %s\n", rec.Screenshot)
		}
	}

	elapsed := time.Duration(0)
	if run.CompletedAt != nil {
		elapsed = run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond)
	}

	switch run.Status {
	case entity.RunStatusPassed:
		okColor.Fprintf(out, "PASS %s (%s)\n", run.Scenario, elapsed)
	default:
		failColor.Fprintf(out, "FAIL %s (%s)\n", run.Scenario, elapsed)

		if _, ok := run.Failed(); !ok && run.Error != "" {
			failColor.Fprintf(out, "  %s\n", run.Error)
		}
	}
}

// PrintSummary writes one line per run and the totals, and reports whether
// every run passed.
func PrintSummary(out io.Writer, runs []*entity.Run) bool {
	passed := 0

	for _, run := range runs {
		if run != nil && run.Status == entity.RunStatusPassed {
			passed++
		}
	}

	fmt.Fprintln(out)

	line := fmt.Sprintf("%d scenario(s), %d passed, %d failed", len(runs), passed, len(runs)-passed)
	if passed == len(runs) {
		okColor.Fprintln(out, line)

		return true
	}

	failColor.Fprintln(out, line)

	return false
}
