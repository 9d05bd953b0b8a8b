package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/modalstack/modal"
)

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCrust).
			Padding(0, 1)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorFocus)

	dimStyle = lipgloss.NewStyle().Foreground(colorOverlay0)

	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	errStyle = lipgloss.NewStyle().Foreground(colorError)

	footerStyle = lipgloss.NewStyle().Foreground(colorOverlay0)

	cardTitleStyle = lipgloss.NewStyle().Bold(true)

	cardBodyStyle = lipgloss.NewStyle().Foreground(colorText)
)

// ---------------------------------------------------------------------------
// Base view
// ---------------------------------------------------------------------------

func (m model) renderBase() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderStackSection())
	b.WriteString("\n")
	b.WriteString(m.renderActivitySection())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	// Pad to full height so overlays composite onto a stable grid.
	lines := splitLines(b.String())
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

// renderHeader tints the title bar with the accent from app settings.
func (m model) renderHeader() string {
	title := headerStyle.Background(accentColor(m.cfg.UI.Accent)).Render(appName)
	return truncate(title, m.width)
}

// renderStackSection lists the open stack bottom to top, marking the modal
// that currently has focus.
func (m model) renderStackSection() string {
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render("Stack"))
	b.WriteString("\n")
	if m.ui.depth() == 0 {
		b.WriteString(dimStyle.Render("  (empty)"))
		b.WriteString("\n")
		return b.String()
	}
	top := m.ui.top()
	for i, inst := range m.ui.snap.Stack {
		marker := "  "
		if inst == top {
			marker = "> "
		}
		cfg, _ := m.ui.snap.Definition.Lookup(inst.Name)
		line := fmt.Sprintf("%s%d. %s (%s)", marker, i+1, cfg.Title, shortHash(inst.Hash))
		if inst == top {
			b.WriteString(line)
		} else {
			b.WriteString(dimStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderActivitySection() string {
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render("Activity"))
	b.WriteString("\n")
	if len(m.ui.activity) == 0 {
		b.WriteString(dimStyle.Render("  (none yet)"))
		b.WriteString("\n")
		return b.String()
	}
	for _, entry := range m.ui.activity {
		b.WriteString("  " + statusStyle.Render(entry))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderStatus() string {
	if m.ui.lastErr != nil {
		return errStyle.Render(truncate("error: "+m.ui.lastErr.Error(), m.width))
	}
	return statusStyle.Render(fmt.Sprintf("%d open, %d opened total", m.ui.depth(), m.opened))
}

func (m model) renderFooter() string {
	bindings := m.keys.BindingsForScope(m.activeScope())
	bindings = append(bindings, m.keys.BindingsForScope(scopeGlobal)...)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", b.Keys[0], b.Help))
	}
	return footerStyle.Render(truncate(strings.Join(parts, " · "), m.width))
}

// ---------------------------------------------------------------------------
// Modal cards
// ---------------------------------------------------------------------------

// renderCards renders every open instance bottom to top; overlayStack
// cascades them so the focused card lands on top.
func (m model) renderCards() []string {
	if m.ui.depth() == 0 {
		return nil
	}
	top := m.ui.top()
	cards := make([]string, 0, m.ui.depth())
	for _, inst := range m.ui.snap.Stack {
		cfg, _ := m.ui.snap.Definition.Lookup(inst.Name)
		cards = append(cards, m.renderModalCard(inst, cfg, inst == top))
	}
	return cards
}

func (m model) renderModalCard(inst *modal.Instance, cfg modal.Config, focused bool) string {
	accent := accentColor(cfg.Accent)
	border := lipgloss.RoundedBorder()
	style := lipgloss.NewStyle().
		Border(border).
		BorderForeground(accent).
		Background(colorSurface0).
		Padding(0, 2).
		Width(cfg.Width)
	if !focused {
		style = style.BorderForeground(colorSurface1)
	}

	title := cardTitleStyle.Foreground(accent).Render(cfg.Title)
	body := m.renderCardBody(inst, focused)
	return style.Render(title + "\n\n" + body)
}

func (m model) renderCardBody(inst *modal.Instance, focused bool) string {
	switch inst.Name {
	case "alert":
		msg := inst.Params.String("message", "Something happened.")
		return cardBodyStyle.Render(msg) + "\n\n" + dimStyle.Render("enter dismiss · esc back")
	case "confirm":
		q := inst.Params.String("question", "Are you sure?")
		return cardBodyStyle.Render(q) + "\n\n" + dimStyle.Render("y yes · n no · esc back")
	case "prompt":
		label := inst.Params.String("label", "Enter a value")
		input := m.promptInput.View()
		if !focused {
			input = dimStyle.Render(m.promptInput.Value())
		}
		return cardBodyStyle.Render(label) + "\n" + input + "\n" + dimStyle.Render("enter submit · esc back")
	default:
		return dimStyle.Render("(no content)")
	}
}

// shortHash trims an instance hash for display.
func shortHash(h string) string {
	if len(h) <= 8 {
		return h
	}
	return h[:8]
}
