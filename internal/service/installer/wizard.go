package installer

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/edagent/internal/service/ui"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = ui.ErrorStyle.Bold(true)
	hintStyle  = ui.DescStyle.MarginTop(1)
)

// ErrCancelled is returned by RunWizard when the user quits before the
// configuration is saved.
var ErrCancelled = errors.New("edagent installation cancelled")

// Step is one screen of the wizard. Update returns a nil Step when the
// step is done.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// skipper is implemented by steps that only apply to some answers, e.g. the
// Telegram token when Telegram was not selected.
type skipper interface {
	Skip(state *InstallState) bool
}

func getSteps() []Step {
	return []Step{
		NewProviderStep(),
		NewBaseURLStep(),
		NewAPIKeyStep(),
		NewModelStep(),
		NewYouTubeKeyStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramUsersStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(),
	}
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type modelsMsg []list.Item
type errMsg error
type nextMsg struct{}

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	width       int
	height      int
}

func initialModel() model {
	return model{
		steps:       getSteps(),
		currentStep: 0,
		state:       NewInstallState(),
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) == 0 {
		return tea.Quit
	}
	return m.steps[0].Init()
}

// advance moves past the current step and any following steps that do not
// apply, and returns the Init command of the step that is now current.
func (m *model) advance() tea.Cmd {
	for m.currentStep++; m.currentStep < len(m.steps); m.currentStep++ {
		if sk, ok := m.steps[m.currentStep].(skipper); ok && sk.Skip(m.state) {
			continue
		}
		return m.steps[m.currentStep].Init()
	}
	return tea.Quit
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	next, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if next == nil {
		return m, m.advance()
	}
	m.steps[m.currentStep] = next
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Installation cancelled.\n"
	}

	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}

	header := titleStyle.Render("Setting up EdAgent 🎓") +
		ui.DescStyle.Render(fmt.Sprintf("  step %d of %d", m.currentStep+1, len(m.steps)))

	return header + "\n\n" +
		m.steps[m.currentStep].View(m.state) + "\n" +
		hintStyle.Render("ctrl+c to cancel")
}

// RunWizard runs the setup TUI and returns the saved state.
func RunWizard() (*InstallState, error) {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("installer: %w", err)
	}

	finalModel := m.(model)
	if finalModel.quitting || finalModel.currentStep < len(finalModel.steps) {
		return nil, ErrCancelled
	}

	return finalModel.state, nil
}
