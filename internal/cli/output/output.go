// Package output renders command results in text, markdown, or JSON form.
// Text is styled for terminals, markdown suits piped and scripted use, and
// JSON is for programmatic consumers.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Styles holds the lipgloss styles used by text mode.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Artifact lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
}

func defaultStyles() *Styles {
	return &Styles{
		Header1:  lipgloss.NewStyle().Bold(true).Underline(true),
		Header2:  lipgloss.NewStyle().Bold(true),
		Artifact: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Label:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
	isTTY  bool
}

// NewRenderer creates a renderer for the given writers. An empty or auto
// mode resolves to text on a terminal and markdown when piped.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = termenv.NewOutput(f).ColorProfile() != termenv.Ascii
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: defaultStyles(),
		isTTY:  isTTY,
	}
}

// EffectiveMode resolves auto to a concrete mode.
func (r *Renderer) EffectiveMode() Mode {
	switch r.mode {
	case ModeText, ModeMarkdown, ModeJSON:
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the destination for command output.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Styles returns the text-mode style set.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Header prints a section header in the effective mode.
func (r *Renderer) Header(level int, text string) {
	switch {
	case r.EffectiveMode() == ModeMarkdown:
		r.Println(FormatHeader(level, text))
	case level == 1:
		r.Println(r.styles.Header1.Render(text))
	default:
		r.Println(r.styles.Header2.Render(text))
	}
}

// KeyValue prints a labeled value in the effective mode.
func (r *Renderer) KeyValue(key, value string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatKeyValue(key, value))
		return
	}
	r.Printf("%s %s\n", r.styles.Label.Render(key+":"), value)
}

// Warnf prints a styled warning to the error stream.
func (r *Renderer) Warnf(format string, args ...any) {
	fmt.Fprintln(r.errOut, r.styles.Warning.Render(fmt.Sprintf(format, args...)))
}

// Success prints a styled completion message.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(msg)
		return
	}
	r.Println(r.styles.Success.Render("✓ " + msg))
}

// StatusLine prints a per-item progress line, marked by status.
func (r *Renderer) StatusLine(name, status, note string) {
	marker, style := "•", r.styles.Info
	switch status {
	case "success":
		marker, style = "✓", r.styles.Success
	case "warning":
		marker, style = "!", r.styles.Warning
	case "error":
		marker, style = "✗", r.styles.Error
	}
	suffix := ""
	if note != "" {
		suffix = " (" + note + ")"
	}
	if r.EffectiveMode() == ModeMarkdown {
		r.Printf("- %s %s%s\n", marker, name, suffix)
		return
	}
	r.Println(style.Render(marker) + " " + name + r.styles.Muted.Render(suffix))
}
