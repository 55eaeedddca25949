package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/replydraft/internal/model"
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")) // bright blue

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	recruiterBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("28")). // green
			Padding(0, 1)

	skippedBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("130")). // amber
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

type viewerModel struct {
	resp       model.GenerateResponse
	prompt     string
	showPrompt bool
	vp         viewport.Model
	width      int
	height     int
	ready      bool
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := max(m.width-4, 10), max(m.height-5, 3)
		if !m.ready {
			m.vp = viewport.New(w, h)
			m.ready = true
		} else {
			m.vp.Width = w
			m.vp.Height = h
		}
		m.vp.SetContent(m.content())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "p":
			if m.prompt != "" {
				m.showPrompt = !m.showPrompt
				m.vp.SetContent(m.content())
				m.vp.GotoTop()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m viewerModel) content() string {
	text := m.resp.Reply
	if m.showPrompt {
		text = m.prompt
	}
	return bodyStyle.Render(wrapParagraphs(text, max(m.vp.Width-2, 20)))
}

func (m viewerModel) View() string {
	if !m.ready {
		return "loading..."
	}

	badge := recruiterBadge.Render(m.resp.Reason)
	if m.resp.Reason == model.ReasonSkipped {
		badge = skippedBadge.Render(m.resp.Reason)
	}
	title := "Drafted reply"
	if m.showPrompt {
		title = "Prompt sent upstream"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center, titleStyle.Render(title), badge)

	hint := "↑/↓ scroll  q quit"
	if m.prompt != "" {
		hint = "↑/↓ scroll  p toggle prompt  q quit"
	}
	status := statusBarStyle.Width(m.width).Render(
		fmt.Sprintf("%s   %3.0f%%", hint, m.vp.ScrollPercent()*100),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, frameStyle.Render(m.vp.View()), status)
}

// wrapParagraphs word-wraps each line to width while keeping blank lines,
// so the reply's paragraph structure survives.
func wrapParagraphs(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = wordWrap(line, width)
	}
	return strings.Join(lines, "\n")
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

// RunViewer shows the drafted reply in a scrollable full-screen view.
// prompt may be empty, which disables the prompt toggle.
func RunViewer(resp model.GenerateResponse, prompt string) error {
	m := viewerModel{resp: resp, prompt: prompt}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
