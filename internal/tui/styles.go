package tui

import "github.com/charmbracelet/lipgloss"

// palette
var (
	colorAccent = lipgloss.Color("12")  // bright blue: names, prompt, preview frame
	colorDate   = lipgloss.Color("10")  // bright green
	colorCursor = lipgloss.Color("11")  // bright yellow
	colorDim    = lipgloss.Color("240") // gray: snippets, status
	colorFrame  = lipgloss.Color("238") // dark gray
)

var (
	styleInput       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleInputPrompt = styleInput

	styleListSelected = lipgloss.NewStyle().Foreground(colorCursor).Bold(true)
	styleChatName     = lipgloss.NewStyle().Foreground(colorAccent)
	styleDate         = lipgloss.NewStyle().Foreground(colorDate)

	styleListPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame)
	stylePreviewPanel = styleListPanel.BorderForeground(colorAccent)

	styleStatusBar = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
)
