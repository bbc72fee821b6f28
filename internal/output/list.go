// Package output renders the human-facing summaries printed by cc-ts-hooks.
package output

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Veraticus/cc-ts-hooks/internal/shared"
)

// ListRenderer formats titled lists and key/value tables.
type ListRenderer struct {
	titleStyle  lipgloss.Style
	itemStyle   lipgloss.Style
	bulletStyle lipgloss.Style
	bullet      string
	indent      string
}

// NewListRenderer creates a new list renderer with default styling.
func NewListRenderer() *ListRenderer {
	return &ListRenderer{
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(shared.Mauve),
		itemStyle:   lipgloss.NewStyle().Foreground(shared.Text),
		bulletStyle: lipgloss.NewStyle().Foreground(shared.Blue),
		bullet:      "•",
		indent:      "  ",
	}
}

// Render formats a title and list of items.
func (l *ListRenderer) Render(title string, items []string) string {
	var sb strings.Builder
	l.writeTitle(&sb, title)

	for _, item := range items {
		sb.WriteString(l.indent)
		sb.WriteString(l.bulletStyle.Render(l.bullet))
		sb.WriteString(" ")
		sb.WriteString(l.itemStyle.Render(item))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderMap formats a title and key/value pairs, sorted by key and aligned
// on display width.
func (l *ListRenderer) RenderMap(title string, items map[string]string) string {
	var sb strings.Builder
	l.writeTitle(&sb, title)

	keys := make([]string, 0, len(items))
	maxKeyLen := 0
	for key := range items {
		keys = append(keys, key)
		maxKeyLen = max(maxKeyLen, runewidth.StringWidth(key))
	}
	slices.Sort(keys)

	for _, key := range keys {
		sb.WriteString(l.indent)
		sb.WriteString(l.bulletStyle.Render(runewidth.FillRight(key, maxKeyLen)))
		sb.WriteString(": ")
		sb.WriteString(l.itemStyle.Render(items[key]))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderGrouped formats items grouped by category, groups sorted by name.
func (l *ListRenderer) RenderGrouped(title string, groups map[string][]string) string {
	var sb strings.Builder
	l.writeTitle(&sb, title)

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		sb.WriteString(l.indent)
		sb.WriteString(l.bulletStyle.Render(name))
		sb.WriteString(":\n")

		for _, item := range groups[name] {
			sb.WriteString(l.indent)
			sb.WriteString(l.indent)
			sb.WriteString(l.itemStyle.Render("- " + item))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (l *ListRenderer) writeTitle(sb *strings.Builder, title string) {
	if title == "" {
		return
	}
	sb.WriteString(l.titleStyle.Render(title))
	sb.WriteString("\n")
}
