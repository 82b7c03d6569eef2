package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/skype-archive/internal/search"
)

func (m model) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	lay := m.layout()
	m.preview = viewport.New(lay.previewW, lay.panelH)
	// width changed, so the cached render is stale
	m.previewKey = ""
	return m, m.loadCurrentPreview()
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	half := m.layout().panelH / 2

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.SwitchMode):
		m = m.switchMode()
		return m, m.reload()

	case key.Matches(msg, keys.Copy):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.openResult = &r
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		return m.selectAt(m.cursor - 1)

	case key.Matches(msg, keys.Down):
		return m.selectAt(m.cursor + 1)

	case key.Matches(msg, keys.PreviewUp):
		m.preview.LineUp(half)
		return m, nil

	case key.Matches(msg, keys.PreviewDn):
		m.preview.LineDown(half)
		return m, nil

	case key.Matches(msg, keys.PageUp):
		m.preview.LineUp(2 * half)
		return m, nil

	case key.Matches(msg, keys.PageDown):
		m.preview.LineDown(2 * half)
		return m, nil
	}

	// everything else edits the filter/query
	var inputCmd tea.Cmd
	m.filterInput, inputCmd = m.filterInput.Update(msg)
	if q := m.filterInput.Value(); q != m.query {
		m.query = q
		return m, tea.Batch(inputCmd, m.scheduleDebouncedSearch(q))
	}
	return m, inputCmd
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready || len(m.results) == 0 {
		return m, nil
	}
	wheel := msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown

	region, row := m.layout().locate(msg.X, msg.Y)
	switch region {
	case regionList:
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.scrollList(-1)
		case msg.Button == tea.MouseButtonWheelDown:
			m.scrollList(1)
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			return m.selectAt(m.listOffset + row/linesPerItem)
		}
		return m, nil

	case regionPreview:
		if wheel {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) applyResults(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if msg.query != m.query {
		return m, nil // answer to an older query
	}
	m.results = msg.results
	m.cursor = 0
	m.listOffset = 0
	m.previewKey = ""

	switch {
	case msg.err != nil:
		m.results = nil
		m.preview.SetContent("Error: " + msg.err.Error())
		return m, nil
	case len(m.results) == 0:
		m.preview.SetContent("")
		return m, nil
	}
	return m, m.loadCurrentPreview()
}

func (m model) applyPreview(msg previewRenderedMsg) model {
	k := previewCacheKey(msg.chatKey, msg.seq)
	if k == m.previewKey {
		return m
	}
	if r, ok := m.selected(); ok && previewCacheKey(r.ChatKey, r.Seq) != k {
		return m // the cursor moved on
	}

	m.previewKey = k
	if msg.err != nil {
		m.preview.SetContent("Preview error: " + msg.err.Error())
		return m
	}
	m.preview.SetContent(msg.content)
	if msg.hitLine > 0 {
		// keep a little context above the hit
		m.preview.SetYOffset(max(msg.hitLine-2, 0))
	} else {
		m.preview.GotoTop()
	}
	return m
}

func (m model) selected() (search.Result, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return search.Result{}, false
	}
	return m.results[m.cursor], true
}

// selectAt moves the cursor to row i and loads its preview.
func (m model) selectAt(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.results) || i == m.cursor {
		return m, nil
	}
	m.cursor = i
	m.adjustListScroll(m.layout().panelH)
	return m, m.loadCurrentPreview()
}

// scrollList moves the list window without moving the cursor.
func (m *model) scrollList(delta int) {
	visible := max(m.layout().panelH/linesPerItem, 1)
	last := max(len(m.results)-visible, 0)
	m.listOffset = min(max(m.listOffset+delta, 0), last)
}

// switchMode flips between the chat list and message search, keeping the
// typed text as the new filter or query.
func (m model) switchMode() model {
	value := m.filterInput.Value()
	if m.mode == modeList {
		m.mode = modeSearch
		m.filterInput = newInput("Search messages...", value)
	} else {
		m.mode = modeList
		m.filterInput = newInput("Filter chats...", value)
	}
	m.query = value
	m.results = nil
	m.cursor = 0
	m.listOffset = 0
	m.previewKey = ""
	m.preview.SetContent("")
	return m
}

// reload fetches results for the current mode and query.
func (m model) reload() tea.Cmd {
	if m.mode == modeList {
		return m.doListAll(m.query)
	}
	return m.doSearch(m.query)
}
