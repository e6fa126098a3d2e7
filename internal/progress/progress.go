// Package progress prints build progress lines in the style of a task
// logger: a coloured badge followed by a message.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Reporter writes progress lines to an output stream. It is safe for use by
// concurrent browser builds.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer

	await   lipgloss.Style
	success lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
}

// New returns a Reporter writing to out. A nil out writes to os.Stderr.
func New(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out:     out,
		await:   r.NewStyle().Foreground(lipgloss.Color("#2196F3")).Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("#4db6ac")).Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#FFC107")).Bold(true),
	}
}

// Discard returns a Reporter that prints nothing.
func Discard() *Reporter {
	return New(io.Discard)
}

// Await announces a step that is about to start.
func (r *Reporter) Await(format string, args ...any) {
	r.line(r.await, "…", "awaiting", format, args...)
}

// Success reports a finished step.
func (r *Reporter) Success(format string, args ...any) {
	r.line(r.success, "✔", "success", format, args...)
}

// Info prints an informational note.
func (r *Reporter) Info(format string, args ...any) {
	r.line(r.info, "ℹ", "info", format, args...)
}

// Warn prints a non-fatal warning.
func (r *Reporter) Warn(format string, args ...any) {
	r.line(r.warn, "⚠", "warning", format, args...)
}

func (r *Reporter) line(style lipgloss.Style, symbol, label, format string, args ...any) {
	if r == nil {
		return
	}
	badge := style.Render(fmt.Sprintf("%s  %-9s", symbol, label))
	msg := fmt.Sprintf(format, args...)

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s %s\n", badge, msg)
}
