// Package demo is the interactive showcase: a small event-inspector app
// built on the toolkit's own decoder, renderer, and transport.
package demo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"termkit/ansi"
	"termkit/input"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	eventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	pasteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

const historySize = 8

// App is the demo component tree: a banner, a rolling event log, and a
// status line. It implements both render.Component and render.InputHandler.
type App struct {
	history []string
	typed   strings.Builder
	keys    int
	pastes  int
}

// NewApp returns an empty inspector.
func NewApp() *App {
	return &App{}
}

// HandleEvent records the event in the rolling log and the typed line.
func (a *App) HandleEvent(ev input.Event) bool {
	switch ev.Type {
	case input.EventKey:
		a.keys++
		if ev.Key == input.KeyRune && ev.Mods == input.ModNone {
			a.typed.WriteRune(ev.Rune)
		}
		if ev.Key == input.KeyEnter && ev.Mods == input.ModNone {
			a.typed.Reset()
		}
		a.push(eventStyle.Render(describeKey(ev)))
	case input.EventPaste:
		a.pastes++
		a.typed.WriteString(ev.Text)
		a.push(pasteStyle.Render(fmt.Sprintf("paste (%d bytes)", len(ev.Text))))
	case input.EventResize:
		a.push(dimStyle.Render("resize"))
	case input.EventCellSize:
		a.push(dimStyle.Render(fmt.Sprintf("cell size %dx%d px", ev.WidthPx, ev.HeightPx)))
	default:
		return false
	}
	return true
}

func (a *App) push(line string) {
	a.history = append(a.history, line)
	if len(a.history) > historySize {
		a.history = a.history[len(a.history)-historySize:]
	}
}

// Render draws the full demo screen as styled lines.
func (a *App) Render(width int) []string {
	lines := banner([]string{
		titleStyle.Render("✻ termkit event inspector"),
		"",
		dimStyle.Render("type, paste, or resize; ctrl+c quits"),
	})
	lines = append(lines, "")
	lines = append(lines, titleStyle.Render("events"))
	if len(a.history) == 0 {
		lines = append(lines, dimStyle.Render("  (none yet)"))
	}
	for _, h := range a.history {
		lines = append(lines, "  "+h)
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("> %s", a.typed.String()))
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%d keys, %d pastes", a.keys, a.pastes)))
	return lines
}

// banner draws a rounded box around the given lines, sized to the widest
// line's display width.
func banner(lines []string) []string {
	max := 0
	for _, ln := range lines {
		if w := ansi.StringWidth(ln); w > max {
			max = w
		}
	}
	out := []string{"╭" + strings.Repeat("─", max+2) + "╮"}
	for _, ln := range lines {
		pad := max - ansi.StringWidth(ln)
		out = append(out, "│ "+ln+strings.Repeat(" ", pad)+" │")
	}
	return append(out, "╰"+strings.Repeat("─", max+2)+"╯")
}

func describeKey(ev input.Event) string {
	var parts []string
	if ev.Mods != input.ModNone {
		parts = append(parts, ev.Mods.String())
	}
	switch ev.Key {
	case input.KeyRune:
		parts = append(parts, string(ev.Rune))
	case input.KeyUnknown:
		parts = append(parts, fmt.Sprintf("unknown %q", ev.Text))
	default:
		parts = append(parts, ev.Key.String())
	}
	return strings.Join(parts, "+")
}
