package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/todolist/internal/model"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the printer's theme.
func (p *Printer) Panel(lines []string) {
	border := p.r.NewStyle().
		Border(p.theme.Border).
		BorderForeground(p.theme.BorderColor).
		Padding(0, 1)
	fmt.Fprintln(p.w, border.Render(strings.Join(lines, "\n")))
}

// Stats counts done and pending tasks.
func Stats(tasks []model.Task) (done, pending int) {
	for _, t := range tasks {
		if t.State == model.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// TaskPanel prints all tasks with a header and progress bar. With group
// set, pending tasks are listed before done ones under their own headings.
func (p *Printer) TaskPanel(tasks []model.Task, group bool) {
	d, n := Stats(tasks)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		p.style(p.theme.Title).Render("Tasks"),
		p.style(p.theme.Success).Render("done"), d,
		p.style(p.theme.Pending).Render("todo"), n,
		p.style(p.theme.Accent).Render("total"), len(tasks),
	)

	lines := []string{header, p.style(p.theme.Muted).Render(ProgressBar(d, d+n, 28)), ""}
	switch {
	case len(tasks) == 0:
		lines = append(lines, p.style(p.theme.Muted).Render("no tasks"))
	case group:
		lines = append(lines, p.groupLines(tasks)...)
	default:
		for _, t := range tasks {
			lines = append(lines, p.taskRow(t))
		}
	}
	p.Panel(lines)
}

func (p *Printer) groupLines(tasks []model.Task) []string {
	var pend, done []model.Task
	for _, t := range tasks {
		if t.State == model.Done {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	section := func(title string, ts []model.Task) []string {
		out := []string{p.style(p.theme.Accent).Render(title)}
		if len(ts) == 0 {
			return append(out, p.style(p.theme.Muted).Render("(none)"))
		}
		for _, t := range ts {
			out = append(out, p.taskRow(t))
		}
		return out
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

func (p *Printer) taskRow(t model.Task) string {
	return TaskRow(t, p.theme, p.style)
}

// maxDescWidth is the widest description shown in a row, in terminal cells.
const maxDescWidth = 80

// TaskRow renders a single task as "box #id <priority> description".
func TaskRow(t model.Task, theme Theme, style func(lipgloss.Style) lipgloss.Style) string {
	box, color := theme.BoxUnchecked, theme.Muted
	if t.State == model.Done {
		box, color = theme.BoxChecked, theme.Success
	}
	desc := ansi.Truncate(t.Description, maxDescWidth, "...")
	return fmt.Sprintf("%s %s %s %s",
		style(color).Render(box),
		style(theme.Muted).Render(fmt.Sprintf("#%05d", t.ID)),
		style(theme.Accent).Render("<"+t.Priority+">"),
		desc)
}
