package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// layout holds the panel sizes for one terminal size. The list takes 40% of
// the width and the preview the rest.
type layout struct {
	listW    int
	previewW int
	panelH   int
}

func newLayout(width, height int) layout {
	lay := layout{listW: 40, previewW: 60, panelH: 20}
	if width > 0 {
		lay.listW = max(width*40/100-4, 20)
		lay.previewW = max(width*60/100-4, 20)
	}
	if height > 0 {
		// input row, status bar and the panels' top and bottom borders
		lay.panelH = max(height-6, 5)
	}
	return lay
}

func (m model) layout() layout {
	return newLayout(m.width, m.height)
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// panelTop is the first content row: the input row, then the top border.
const panelTop = 2

// locate maps a terminal cell to a panel and the content row inside it.
func (l layout) locate(x, y int) (mouseRegion, int) {
	row := y - panelTop
	if row < 0 || row >= l.panelH {
		return regionNone, -1
	}
	switch {
	case x >= 1 && x <= l.listW: // column 0 is the list's left border
		return regionList, row
	case x > l.listW+2: // past the list's right border and the preview's left one
		return regionPreview, row
	}
	return regionNone, -1
}

// View renders the input row, the two panels and the status bar.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	lay := m.layout()

	list := styleListPanel.
		Width(lay.listW).
		Height(lay.panelH).
		Render(m.renderList(lay.listW, lay.panelH))

	m.preview.Width = lay.previewW
	m.preview.Height = lay.panelH
	preview := stylePreviewPanel.
		Width(lay.previewW).
		Height(lay.panelH).
		Render(m.preview.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.filterInput.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, list, preview),
		m.statusBar(),
	)
}

func (m model) statusBar() string {
	noun := "results"
	if m.mode == modeList {
		noun = "chats"
	}
	parts := []string{
		fmt.Sprintf("%d %s", len(m.results), noun),
		"click/up/dn navigate",
		"scroll/C-u/C-d preview",
		"Enter copy chat key",
		"Tab chats/messages",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
