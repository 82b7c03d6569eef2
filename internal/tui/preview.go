package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/skype-archive/internal/archive"
	"github.com/Zuo-Peng/skype-archive/internal/render"
	"github.com/Zuo-Peng/skype-archive/internal/search"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	chatKey string
	seq     int
	content string
	hitLine int
	err     error
}

// loadPreviewCmd returns a tea.Cmd that renders the chat preview async.
func loadPreviewCmd(a *archive.Archive, r search.Result, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderChat(a, r.ChatKey, render.Options{
			HitSeq:  r.Seq,
			Context: -1,
			Width:   width,
			Query:   query,
		})
		return previewRenderedMsg{
			chatKey: r.ChatKey,
			seq:     r.Seq,
			content: content,
			hitLine: hitLine,
			err:     err,
		}
	}
}
