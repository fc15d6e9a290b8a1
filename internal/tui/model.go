// Package tui implements the interactive full-screen menu: Transcribe,
// Settings, System status, Run tests, Exit.
package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ali-Raza-H/transcriber/internal/config"
	"github.com/Ali-Raza-H/transcriber/internal/media"
	"github.com/Ali-Raza-H/transcriber/internal/pipeline"
	"github.com/Ali-Raza-H/transcriber/internal/sysinfo"
	"github.com/Ali-Raza-H/transcriber/internal/testrun"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type screen int

const (
	screenMenu screen = iota
	screenTranscribe
	screenSettings
	screenStatus
	screenTests
)

var menuItems = []string{
	"Transcribe a file",
	"Settings",
	"System status",
	"Run tests",
	"Exit",
}

// indexes into Model.inputs
const (
	fieldInputPath = iota
	fieldOutputDir
	fieldModel
	fieldDevice
	fieldCount
)

// indexes into Model.settings
const (
	settingModel = iota
	settingDevice
	settingCount
)

type Model struct {
	logger *zap.Logger

	screen screen
	cursor int
	width  int
	height int

	cfg     config.Config
	cfgPath string

	inputs  []textinput.Model
	focused int
	busy    bool
	message string
	isError bool

	settings       []textinput.Model
	settingFocused int

	statusReport string

	testsRunning bool
	testOutput   string

	spinner spinner.Model

	// Seams for tests; default to the real implementations.
	runPipeline   func(ctx context.Context, logger *zap.Logger, req pipeline.Request) (string, error)
	runTests      func(ctx context.Context) (int, string, error)
	collectStatus func(ctx context.Context) (sysinfo.Snapshot, error)
	loadConfig    func() (config.Config, error)
	saveConfig    func(cfg config.Config) (string, error)
}

func NewModel(logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	inputs := make([]textinput.Model, fieldCount)
	placeholders := []string{
		"/path/to/audio.mp3",
		"Leave blank to use input folder",
		"Defaults to config",
		"Defaults to config",
	}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 512
		ti.Width = 56
		inputs[i] = ti
	}
	inputs[fieldInputPath].Focus()

	settings := make([]textinput.Model, settingCount)
	for i := range settings {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		settings[i] = ti
	}
	settings[settingModel].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	cfgPath, _ := config.Path()

	return Model{
		logger:   logger,
		screen:   screenMenu,
		cfg:      config.Default(),
		cfgPath:  cfgPath,
		inputs:   inputs,
		settings: settings,
		spinner:  sp,
		runPipeline: func(ctx context.Context, logger *zap.Logger, req pipeline.Request) (string, error) {
			return pipeline.New(logger).Run(ctx, req)
		},
		runTests:      testrun.Run,
		collectStatus: sysinfo.Collect,
		loadConfig: func() (config.Config, error) {
			return config.Load("")
		},
		saveConfig: func(cfg config.Config) (string, error) {
			return config.Save(cfg, "")
		},
	}
}

// Run starts the menu and blocks until the user exits.
func Run(logger *zap.Logger) error {
	_, err := tea.NewProgram(NewModel(logger), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenTranscribe:
			return m.updateTranscribe(msg)
		case screenSettings:
			return m.updateSettings(msg)
		case screenStatus:
			return m.updateStatus(msg)
		case screenTests:
			return m.updateTests(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case transcribeDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setMessage(presentError(msg.err), true)
		} else {
			m.setMessage("Saved transcript: "+msg.path, false)
		}
		return m, nil

	case testsDoneMsg:
		m.testsRunning = false
		m.testOutput = formatTestResult(msg)
		return m, nil

	case statusMsg:
		m.statusReport = string(msg)
		return m, nil

	case statusTickMsg:
		if m.screen != screenStatus {
			return m, nil
		}
		return m, tea.Batch(m.refreshStatusCmd(), statusTick())

	case spinner.TickMsg:
		if !m.busy && !m.testsRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "1", "2", "3", "4", "5":
		m.cursor = int(msg.String()[0] - '1')
		return m.selectMenuItem()
	case "enter":
		return m.selectMenuItem()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) selectMenuItem() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0:
		return m.enterTranscribe()
	case 1:
		return m.enterSettings()
	case 2:
		m.screen = screenStatus
		m.statusReport = ""
		return m, tea.Batch(m.refreshStatusCmd(), statusTick())
	case 3:
		m.screen = screenTests
		m.testsRunning = true
		m.testOutput = ""
		return m, tea.Batch(m.runTestsCmd(), m.spinner.Tick)
	default:
		return m, tea.Quit
	}
}

func (m Model) enterTranscribe() (tea.Model, tea.Cmd) {
	m.screen = screenTranscribe
	m.message = ""
	m.isError = false
	m.reloadConfig()
	m.focused = fieldInputPath
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[fieldInputPath].Focus()
	return m, textinput.Blink
}

func (m Model) enterSettings() (tea.Model, tea.Cmd) {
	m.screen = screenSettings
	m.message = ""
	m.isError = false
	m.reloadConfig()
	m.settings[settingModel].SetValue(m.cfg.Engine.Model)
	m.settings[settingDevice].SetValue(m.cfg.Engine.Device)
	m.settingFocused = settingModel
	for i := range m.settings {
		m.settings[i].Blur()
	}
	m.settings[settingModel].Focus()
	return m, textinput.Blink
}

func (m *Model) reloadConfig() {
	cfg, err := m.loadConfig()
	if err != nil {
		m.setMessage(presentError(err), true)
		m.cfg = config.Default()
		return
	}
	m.cfg = cfg
}

func (m Model) updateTranscribe(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !m.busy {
			m.screen = screenMenu
		}
		return m, nil
	case "tab", "down":
		m.focused = (m.focused + 1) % fieldCount
		return m.refocusInputs()
	case "shift+tab", "up":
		m.focused = (m.focused + fieldCount - 1) % fieldCount
		return m.refocusInputs()
	case "enter":
		return m.startTranscription()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) refocusInputs() (tea.Model, tea.Cmd) {
	for i := range m.inputs {
		if i == m.focused {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, textinput.Blink
}

// startTranscription validates the form and launches one pipeline run in
// the background. The Run affordance stays disabled while one is in
// flight; completion comes back as a transcribeDoneMsg.
func (m Model) startTranscription() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	inputValue := strings.TrimSpace(m.inputs[fieldInputPath].Value())
	if inputValue == "" {
		m.setMessage("Enter an input file path.", true)
		return m, nil
	}

	inputPath := expandHome(inputValue)
	if _, err := os.Stat(inputPath); err != nil {
		m.setMessage("Input file does not exist: "+inputPath, true)
		return m, nil
	}
	if !media.IsSupported(inputPath) {
		m.setMessage("Unsupported file type. Use .mp3 or .mp4.", true)
		return m, nil
	}

	outputDir := strings.TrimSpace(m.inputs[fieldOutputDir].Value())
	if outputDir != "" {
		outputDir = expandHome(outputDir)
	}

	model := strings.TrimSpace(m.inputs[fieldModel].Value())
	if model == "" {
		model = m.cfg.Engine.Model
	}
	device := strings.TrimSpace(m.inputs[fieldDevice].Value())
	if device == "" {
		device = m.cfg.Engine.Device
	}

	req := pipeline.Request{
		InputPath: inputPath,
		OutputDir: outputDir,
		Backend:   m.cfg.Engine.Backend,
		Model:     model,
		Device:    device,
	}

	m.busy = true
	m.setMessage("Transcribing... This may take a while.", false)
	return m, tea.Batch(m.transcribeCmd(req), m.spinner.Tick)
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenMenu
		return m, nil
	case "tab", "down", "shift+tab", "up":
		m.settingFocused = (m.settingFocused + 1) % settingCount
		for i := range m.settings {
			if i == m.settingFocused {
				m.settings[i].Focus()
			} else {
				m.settings[i].Blur()
			}
		}
		return m, textinput.Blink
	case "enter":
		return m.saveSettings(false)
	case "ctrl+d":
		return m.saveSettings(true)
	}

	var cmd tea.Cmd
	m.settings[m.settingFocused], cmd = m.settings[m.settingFocused].Update(msg)
	return m, cmd
}

func (m Model) saveSettings(reset bool) (tea.Model, tea.Cmd) {
	next := config.Default()
	if !reset {
		next = m.cfg
		if model := strings.TrimSpace(m.settings[settingModel].Value()); model != "" {
			next.Engine.Model = model
		}
		if device := strings.TrimSpace(m.settings[settingDevice].Value()); device != "" {
			next.Engine.Device = device
		}
	}

	path, err := m.saveConfig(next)
	if err != nil {
		m.setMessage(presentError(err), true)
		return m, nil
	}

	m.cfg = next
	m.settings[settingModel].SetValue(next.Engine.Model)
	m.settings[settingDevice].SetValue(next.Engine.Device)
	if reset {
		m.setMessage("Reset to defaults: "+path, false)
	} else {
		m.setMessage("Saved: "+path, false)
	}
	return m, nil
}

func (m Model) updateStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.screen = screenMenu
		return m, nil
	case "r":
		return m, m.refreshStatusCmd()
	}
	return m, nil
}

func (m Model) updateTests(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		if !m.testsRunning {
			m.screen = screenMenu
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) setMessage(text string, isError bool) {
	m.message = text
	m.isError = isError
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
