package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/WestonVoglesonger/Multifact-V3/internal/app"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/ui/style"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(style.Green)
	failStyle = lipgloss.NewStyle().Foreground(style.Red)
	skipStyle = lipgloss.NewStyle().Foreground(style.Slate).Faint(true)
	warnStyle = lipgloss.NewStyle().Foreground(style.Yellow)
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderResult prints a one-line run summary followed by the tokens that did
// not produce valid code.
func renderResult(w io.Writer, res *domain.CompileResult) {
	marker := okStyle.Render(style.Check)
	if !res.Ok() {
		marker = failStyle.Render(style.Cross)
	}
	_, _ = fmt.Fprintf(w, "%s %s: %d compiled, %d cached, %d repaired, %d failed, %d skipped in %s\n",
		marker,
		res.DocumentPath,
		res.Compiled, res.CacheHits, res.Repaired, res.Failed, res.Skipped,
		res.Duration.Round(time.Millisecond),
	)
	for _, outcome := range res.Outcomes {
		switch outcome.Status {
		case domain.TokenStatusFailed:
			_, _ = fmt.Fprintf(w, "  %s %s: %s\n", failStyle.Render(style.Cross+" failed"), outcome.TokenPath, outcome.Error)
		case domain.TokenStatusSkipped:
			_, _ = fmt.Fprintf(w, "  %s %s\n", skipStyle.Render(style.Circle+" skipped"), outcome.TokenPath)
		}
	}
	if res.Interrupted {
		_, _ = fmt.Fprintf(w, "  %s\n", warnStyle.Render(style.Warning+" interrupted before all tokens were compiled"))
	}
}

// renderPlan prints the tokens a compile run would schedule, in execution
// order.
func renderPlan(w io.Writer, plan *app.PlanResult) {
	_, _ = fmt.Fprintf(w, "%s: would compile %d token(s)\n", plan.DocumentPath, len(plan.TokenPaths))
	for i, path := range plan.TokenPaths {
		_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, path)
	}
}

// renderStatus prints the diff between the narrative and its stored state.
func renderStatus(w io.Writer, report *app.StatusReport) {
	if report.FirstCompile {
		_, _ = fmt.Fprintf(w, "%s: never compiled\n", report.DocumentPath)
	} else {
		_, _ = fmt.Fprintf(w, "%s: stored version %d, %d added, %d changed, %d removed, %d unchanged\n",
			report.DocumentPath,
			report.StoredVersion,
			len(report.Added), len(report.Changed), len(report.Removed), len(report.Unchanged),
		)
	}
	if len(report.Dirty) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", okStyle.Render(style.Check+" up to date"))
		return
	}
	_, _ = fmt.Fprintf(w, "  %d token(s) would be recompiled:\n", len(report.Dirty))
	for _, path := range report.Dirty {
		_, _ = fmt.Fprintf(w, "    %s %s\n", warnStyle.Render(style.Tilde), path)
	}
}
