// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"taskflow/internal/service"
	"taskflow/internal/view"
)

// DateFormat is the short created-at date shown on each task line.
const DateFormat = "Jan 2"

// Printer renders tasks to a writer. Styling is applied only when the
// writer is a terminal; otherwise output is plain text.
type Printer struct {
	w      io.Writer
	title  lipgloss.Style
	muted  lipgloss.Style
	done   lipgloss.Style
	high   lipgloss.Style
	medium lipgloss.Style
	low    lipgloss.Style
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	if !isTerminal(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:      w,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("245")),
		done:   r.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("245")),
		high:   r.NewStyle().Foreground(lipgloss.Color("160")),
		medium: r.NewStyle().Foreground(lipgloss.Color("178")),
		low:    r.NewStyle().Foreground(lipgloss.Color("34")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Header prints the app title and the signed-in user's name.
func (p *Printer) Header(s *service.Session) {
	if s == nil {
		fmt.Fprintln(p.w, p.title.Render("TaskFlow"))
		return
	}
	fmt.Fprintf(p.w, "%s  Welcome back, %s\n", p.title.Render("TaskFlow"), s.Name)
}

// Task prints one task line.
// Format: "{N:>4}  [x] {TITLE}  ({PRIORITY})  #{CATEGORY}  {Jan 2}\n"
// followed by an indented description line when present.
func (p *Printer) Task(e view.Entry) {
	t := e.Task
	mark := "[ ]"
	title := normalizeTitle(t.Title)
	if t.Completed {
		mark = "[x]"
		title = p.done.Render(title)
	}

	parts := []string{title, p.priority(t.Priority)}
	if c := strings.TrimSpace(t.Category); c != "" {
		parts = append(parts, "#"+c)
	}
	parts = append(parts, p.muted.Render(t.CreatedAt.Local().Format(DateFormat)))

	fmt.Fprintf(p.w, "%4d  %s %s\n", e.Num, mark, strings.Join(parts, "  "))

	if d := normalizeText(t.Description); d != "" {
		if t.Completed {
			d = p.done.Render(d)
		} else {
			d = p.muted.Render(d)
		}
		fmt.Fprintf(p.w, "          %s\n", d)
	}
}

// Tasks prints entries, or the empty-state message when there are none.
// total is the size of the unfiltered list.
func (p *Printer) Tasks(entries []view.Entry, total int) {
	if len(entries) == 0 {
		fmt.Fprintln(p.w, p.muted.Render(view.EmptyMessage(total)))
		return
	}
	for _, e := range entries {
		p.Task(e)
	}
}

// Summary prints the completed/pending/high-priority counts.
func (p *Printer) Summary(s view.Summary) {
	fmt.Fprintf(p.w, "Completed:     %d\n", s.Completed)
	fmt.Fprintf(p.w, "Pending:       %d\n", s.Pending)
	fmt.Fprintf(p.w, "High Priority: %d\n", s.HighPriority)
}

// Detail prints every field of a task.
func (p *Printer) Detail(t service.Task) {
	status := "pending"
	if t.Completed {
		status = "completed"
	}
	fmt.Fprintf(p.w, "ID:          %s\n", t.ID)
	fmt.Fprintf(p.w, "Title:       %s\n", normalizeTitle(t.Title))
	if d := normalizeText(t.Description); d != "" {
		fmt.Fprintf(p.w, "Description: %s\n", d)
	}
	fmt.Fprintf(p.w, "Priority:    %s\n", p.priority(t.Priority))
	if c := strings.TrimSpace(t.Category); c != "" {
		fmt.Fprintf(p.w, "Category:    %s\n", c)
	}
	fmt.Fprintf(p.w, "Status:      %s\n", status)
	fmt.Fprintf(p.w, "Created:     %s\n", t.CreatedAt.Local().Format(DateFormat))
	if t.CompletedAt != nil {
		fmt.Fprintf(p.w, "Completed:   %s\n", t.CompletedAt.Local().Format(DateFormat))
	}
}

func (p *Printer) priority(pr service.Priority) string {
	label := "(" + string(pr) + ")"
	switch pr {
	case service.PriorityHigh:
		return p.high.Render(label)
	case service.PriorityMedium:
		return p.medium.Render(label)
	case service.PriorityLow:
		return p.low.Render(label)
	default:
		return label
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
