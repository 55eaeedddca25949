package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/replydraft/internal/model"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// DraftFunc produces one reply; it is what the loader waits on.
type DraftFunc func(ctx context.Context) (model.GenerateResponse, error)

type draftDoneMsg struct {
	resp model.GenerateResponse
	err  error
}

type spinnerTickMsg struct{}

type loaderModel struct {
	label   string
	draftFn DraftFunc
	ctx     context.Context
	cancel  context.CancelFunc
	frame   int
	started time.Time
	result  model.GenerateResponse
	err     error
	done    bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doDraft(), m.tick())
}

func (m loaderModel) doDraft() tea.Cmd {
	draftFn, ctx := m.draftFn, m.ctx
	return func() tea.Msg {
		resp, err := draftFn(ctx)
		return draftDoneMsg{resp: resp, err: err}
	}
}

func (m loaderModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case draftDoneMsg:
		m.result = msg.resp
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinnerTickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	spinner := lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Render(spinnerFrames[m.frame])
	elapsed := time.Since(m.started).Truncate(time.Second)
	return fmt.Sprintf("%s %s (%s)\n", spinner, m.label, elapsed)
}

// RunLoader shows a spinner while draftFn runs. It renders inline (no alt screen).
// ctrl+c cancels the context passed to draftFn.
func RunLoader(ctx context.Context, label string, draftFn DraftFunc) (model.GenerateResponse, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := loaderModel{
		label:   label,
		draftFn: draftFn,
		ctx:     ctx,
		cancel:  cancel,
		started: time.Now(),
	}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return model.GenerateResponse{}, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
