// pkg/output/console.go

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/hardening"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	colorSuccess = lipgloss.Color("#00ff00")
	colorWarning = lipgloss.Color("#ffaa00")
	colorInfo    = lipgloss.Color("#0099ff")
	colorMuted   = lipgloss.Color("#666666")
)

// Console streams human-readable progress. It implements hardening.Observer.
type Console struct {
	w       io.Writer
	success lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
}

var _ hardening.Observer = (*Console)(nil)

// NewConsole writes to w, coloured only when colour is set and w supports it.
func NewConsole(w io.Writer, colour bool) *Console {
	r := lipgloss.NewRenderer(w)
	c := &Console{
		w:       w,
		success: r.NewStyle(),
		warning: r.NewStyle(),
		info:    r.NewStyle(),
		muted:   r.NewStyle(),
	}
	if colour {
		c.success = c.success.Foreground(colorSuccess)
		c.warning = c.warning.Foreground(colorWarning)
		c.info = c.info.Foreground(colorInfo)
		c.muted = c.muted.Foreground(colorMuted)
	}
	return c
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *Console) line(style lipgloss.Style, format string, args ...interface{}) {
	fmt.Fprintln(c.w, style.Render(fmt.Sprintf(format, args...)))
}

// Checking prints the per-service header, preceded by a blank line.
func (c *Console) Checking(service string) {
	fmt.Fprintln(c.w)
	c.line(c.info, "🔍 Checking status of %s...", service)
}

func (c *Console) Missing(service string) {
	c.line(c.muted, "⚠️  %s not found (not installed) or unit file missing.", service)
}

func (c *Console) Found(service string) {
	c.line(c.success, "✅ %s exists. Stopping and disabling it...", service)
}

// Step prints the outcome of a stop or disable.
func (c *Console) Step(service string, action hardening.Action, result hardening.StepResult) {
	switch result.Status {
	case hardening.StepPlanned:
		c.line(c.muted, "📝 Would %s %s (dry run).", action, service)
	case hardening.StepFailed:
		c.line(c.warning, "ℹ️  Could not %s %s: %s", action, service, result.Message)
	default:
		if action == hardening.ActionStop {
			c.line(c.success, "🛑 Stopped %s.", service)
		} else {
			c.line(c.success, "🚫 Disabled %s.", service)
		}
	}
}

// Warn prints a highlighted warning.
func (c *Console) Warn(format string, args ...interface{}) {
	c.line(c.warning, "⚠️  "+format, args...)
}

// Done prints the closing line and counts.
func (c *Console) Done(report *hardening.Report) {
	fmt.Fprintln(c.w)
	if report.ListError != "" {
		c.Warn("Could not list unit files: %s", report.ListError)
	}
	c.line(c.success, "✅ All specified services have been processed.")
	c.line(c.muted, "%s", SummaryLine(report.Summary(), report.DryRun))
}

// Interrupted prints the closing lines of a run cancelled after processed of total services.
func (c *Console) Interrupted(report *hardening.Report, total int) {
	fmt.Fprintln(c.w)
	if report.ListError != "" {
		c.Warn("Could not list unit files: %s", report.ListError)
	}
	c.Warn("Interrupted after %d of %d services; the rest were not processed.", len(report.Services), total)
	c.line(c.muted, "%s", SummaryLine(report.Summary(), report.DryRun))
}

// SummaryLine formats the counts of a run.
func SummaryLine(s hardening.Summary, dryRun bool) string {
	if dryRun {
		return fmt.Sprintf("Dry run: %d targets, %d installed, %d not installed, %d actions planned.",
			s.Targets, s.Installed, s.Missing, s.Planned)
	}
	return fmt.Sprintf("%d targets, %d installed, %d not installed, %d stopped, %d disabled, %d failed.",
		s.Targets, s.Installed, s.Missing, s.Stopped, s.Disabled, s.Failed)
}
