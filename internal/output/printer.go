// Package output writes the colored diagnostics shown while tests run.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
)

// ColorMode selects when diagnostics are colored.
type ColorMode string

const (
	ColorAlways ColorMode = "always"
	ColorAuto   ColorMode = "auto"
	ColorNever  ColorMode = "never"
)

var _ pflag.Value = (*ColorMode)(nil)

func (m *ColorMode) String() string {
	if *m == "" {
		return string(ColorAuto)
	}
	return string(*m)
}

func (m *ColorMode) Set(s string) error {
	switch ColorMode(s) {
	case ColorAlways, ColorAuto, ColorNever:
		*m = ColorMode(s)
		return nil
	default:
		return fmt.Errorf("must be one of always, auto, never")
	}
}

func (m *ColorMode) Type() string { return "WHEN" }

// Printer writes bold, green and red lines.
type Printer struct {
	w     io.Writer
	bold  lipgloss.Style
	green lipgloss.Style
	red   lipgloss.Style
}

// New returns a Printer writing to w. In auto mode color is used only when
// w is a terminal.
func New(w io.Writer, mode ColorMode) *Printer {
	r := lipgloss.NewRenderer(w)
	if useColor(w, mode) {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:     w,
		bold:  r.NewStyle().Bold(true),
		green: r.NewStyle().Foreground(lipgloss.Color("2")),
		red:   r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) Bold(format string, args ...any) {
	p.line(p.bold, format, args...)
}

func (p *Printer) Green(format string, args ...any) {
	p.line(p.green, format, args...)
}

func (p *Printer) Red(format string, args ...any) {
	p.line(p.red, format, args...)
}

func (p *Printer) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf(format, args...)))
}
