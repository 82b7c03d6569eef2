package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/skype-archive/internal/search"
)

// linesPerItem is the number of terminal lines each result occupies.
const linesPerItem = 2

// renderList renders the left panel: chats or search hits with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No results")
		return empty
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatResultLine(r, width, i == m.cursor, m.archive.OwnerID)
		lines = append(lines, rows...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// shortDate turns "2019-06-05T12:00:00" into "2019-06-05".
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if runewidth.StringWidth(s) > limit {
		return runewidth.Truncate(s, limit, "")
	}
	return s
}

// formatResultLine formats a single row as two lines:
//
//	line 1: [>] date  chat name
//	line 2:    sender: snippet, or the message count for chat rows (dimmed)
func formatResultLine(r search.Result, width int, selected bool, ownerID string) []string {
	date := styleDate.Render(shortDate(r.Ts))
	name := strings.ReplaceAll(r.ChatName, "\n", " ")
	name = truncate(name, width-2-10-1) // prefix + date + space
	name = styleChatName.Render(name)

	line1 := fmt.Sprintf("%s %s", date, name)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	var detail string
	if r.Seq < 0 {
		detail = fmt.Sprintf("%d messages", r.Messages)
	} else {
		sender := r.Sender
		if sender == ownerID {
			sender = "You"
		}
		snippet := strings.ReplaceAll(r.Snippet, "\n", " ")
		snippet = strings.ReplaceAll(snippet, "\t", " ")
		snippet = strings.ReplaceAll(snippet, ">>>", "")
		snippet = strings.ReplaceAll(snippet, "<<<", "")
		detail = sender + ": " + snippet
	}
	detail = truncate(detail, width-4) // indent
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
