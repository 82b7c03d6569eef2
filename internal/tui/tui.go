package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/skype-archive/internal/archive"
	"github.com/Zuo-Peng/skype-archive/internal/index"
	"github.com/Zuo-Peng/skype-archive/internal/search"
)

const debounceDelay = 200 * time.Millisecond

type tuiMode int

const (
	modeSearch tuiMode = iota
	modeList
)

// message types

type searchResultMsg struct {
	query   string
	results []search.Result
	err     error
}

type debounceTickMsg struct {
	query string
}

// model

type model struct {
	db          *index.DB
	archive     *archive.Archive
	searchOpts  search.Options
	mode        tuiMode
	query       string
	results     []search.Result
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // "chatKey:seq" to avoid duplicate renders
	width       int
	height      int
	ready       bool
	quitting    bool
	openResult  *search.Result
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.SetValue(value)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256
	return ti
}

func initialModel(db *index.DB, a *archive.Archive, query string, opts search.Options) model {
	return model{
		db:          db,
		archive:     a,
		searchOpts:  opts,
		query:       query,
		filterInput: newInput("Search messages...", query),
		preview:     viewport.New(0, 0),
	}
}

// Run starts the TUI in search mode and blocks until it exits.
// If the user selects a result, its chat key is copied to the clipboard.
func Run(db *index.DB, a *archive.Archive, query string, opts search.Options) error {
	return run(initialModel(db, a, query, opts))
}

// RunList starts the TUI in list mode, showing all chats in listing order.
// Typing filters chats by name.
func RunList(db *index.DB, a *archive.Archive, filter string, opts search.Options) error {
	m := initialModel(db, a, filter, opts)
	m.mode = modeList
	m.filterInput = newInput("Filter chats...", filter)
	return run(m)
}

func run(m model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.openResult != nil {
		return copyChatKey(fm.openResult.ChatKey)
	}
	return nil
}

// copyChatKey puts the chat key on the clipboard, or prints it when no
// clipboard is available.
func copyChatKey(chatKey string) error {
	if err := clipboard.WriteAll(chatKey); err != nil {
		fmt.Printf("%s\n", chatKey)
		return nil
	}
	fmt.Printf("Copied to clipboard: %s\n", chatKey)
	return nil
}

// Init triggers the initial search/list load.
func (m model) Init() tea.Cmd {
	if m.mode == modeSearch && m.query == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.reload())
}

// Update routes each message to its handler in update.go.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case debounceTickMsg:
		// the query moved on while waiting
		if msg.query != m.query {
			return m, nil
		}
		return m, m.reload()
	case searchResultMsg:
		return m.applyResults(msg)
	case previewRenderedMsg:
		return m.applyPreview(msg), nil
	}
	return m, nil
}

func (m model) doSearch(query string) tea.Cmd {
	db := m.db
	opts := m.searchOpts
	opts.Query = query
	return func() tea.Msg {
		if query == "" {
			return searchResultMsg{query: query}
		}
		results, err := search.Search(db, opts)
		return searchResultMsg{query: query, results: results, err: err}
	}
}

func (m model) doListAll(filter string) tea.Cmd {
	db := m.db
	opts := m.searchOpts
	opts.Query = filter
	return func() tea.Msg {
		results, err := search.ListAll(db, opts)
		return searchResultMsg{query: filter, results: results, err: err}
	}
}

func (m model) scheduleDebouncedSearch(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	if len(m.results) == 0 || m.cursor >= len(m.results) {
		return nil
	}
	r := m.results[m.cursor]
	key := previewCacheKey(r.ChatKey, r.Seq)
	if key == m.previewKey {
		return nil // already showing this preview
	}
	return loadPreviewCmd(m.archive, r, m.highlightQuery(), m.layout().previewW)
}

// highlightQuery is the text to highlight in previews; list mode filters by
// chat name, so nothing is highlighted there.
func (m model) highlightQuery() string {
	if m.mode == modeList {
		return ""
	}
	return m.query
}

func previewCacheKey(chatKey string, seq int) string {
	return fmt.Sprintf("%s:%d", chatKey, seq)
}
