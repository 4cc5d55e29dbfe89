package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes themed messages to w. Colors are only emitted when w is a
// terminal and the theme allows them.
type Printer struct {
	w     io.Writer
	r     *lipgloss.Renderer
	theme Theme
}

func NewPrinter(w io.Writer, theme Theme) *Printer {
	r := lipgloss.NewRenderer(w)
	if theme.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, r: r, theme: theme}
}

// To returns a printer on w that keeps p's theme and color profile.
func (p *Printer) To(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(p.r.ColorProfile())
	return &Printer{w: w, r: r, theme: p.theme}
}

func (p *Printer) Theme() Theme { return p.theme }

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

func (p *Printer) style(s lipgloss.Style) lipgloss.Style {
	return s.Renderer(p.r)
}

func (p *Printer) OK(msg string)    { fmt.Fprintln(p.w, p.style(p.theme.Success).Render(msg)) }
func (p *Printer) Fail(msg string)  { fmt.Fprintln(p.w, p.style(p.theme.Error).Render(msg)) }
func (p *Printer) Info(msg string)  { fmt.Fprintln(p.w, p.style(p.theme.Accent).Render(msg)) }
func (p *Printer) Muted(msg string) { fmt.Fprintln(p.w, p.style(p.theme.Muted).Render(msg)) }
func (p *Printer) Title(msg string) { fmt.Fprintln(p.w, p.style(p.theme.Title).Render(msg)) }

// Line writes s unstyled.
func (p *Printer) Line(s string) { fmt.Fprintln(p.w, s) }
