package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("62")
	colorError  = lipgloss.Color("9")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cursorStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenMenu:
		body = m.viewMenu()
	case screenTranscribe:
		body = m.viewTranscribe()
	case screenSettings:
		body = m.viewSettings()
	case screenStatus:
		body = m.viewStatus()
	case screenTests:
		body = m.viewTests()
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (m Model) viewMenu() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Transcriber Menu"))
	s.WriteString("\n")

	for i, item := range menuItems {
		line := fmt.Sprintf("  %d) %s", i+1, item)
		if i == m.cursor {
			line = cursorStyle.Render(fmt.Sprintf("> %d) %s", i+1, item))
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(faintStyle.Render("up/down: move  enter: select  q: quit"))
	return s.String()
}

func (m Model) viewTranscribe() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Transcribe a file"))
	s.WriteString("\n")
	s.WriteString(faintStyle.Render(fmt.Sprintf("Defaults: model=%s, device=%s", m.cfg.Engine.Model, m.cfg.Engine.Device)))
	s.WriteString("\n\n")

	labels := []string{
		"Input file (.mp3 or .mp4):",
		"Output directory (optional):",
		"Model (optional):",
		"Device (optional):",
	}
	for i, label := range labels {
		s.WriteString(labelStyle.Render(label))
		s.WriteString("\n")
		s.WriteString(m.inputs[i].View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.busy {
		s.WriteString(m.spinner.View())
		s.WriteString(" ")
	}
	s.WriteString(m.renderMessage())
	s.WriteString("\n\n")
	s.WriteString(faintStyle.Render("tab: next field  enter: run  esc: back"))
	return s.String()
}

func (m Model) viewSettings() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Settings"))
	s.WriteString("\n")
	s.WriteString(faintStyle.Render("Config: " + m.cfgPath))
	s.WriteString("\n\n")

	s.WriteString(labelStyle.Render("Model:"))
	s.WriteString("\n")
	s.WriteString(m.settings[settingModel].View())
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Device:"))
	s.WriteString("\n")
	s.WriteString(m.settings[settingDevice].View())
	s.WriteString("\n\n")

	s.WriteString(m.renderMessage())
	s.WriteString("\n\n")
	s.WriteString(faintStyle.Render("tab: next field  enter: save  ctrl+d: reset to defaults  esc: back"))
	return s.String()
}

func (m Model) viewStatus() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("System status (live)"))
	s.WriteString("\n")

	if m.statusReport == "" {
		s.WriteString("Collecting...")
	} else {
		s.WriteString(m.statusReport)
	}

	s.WriteString("\n\n")
	s.WriteString(faintStyle.Render("r: refresh  esc: back"))
	return s.String()
}

func (m Model) viewTests() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Run tests"))
	s.WriteString("\n")

	if m.testsRunning {
		s.WriteString(m.spinner.View())
		s.WriteString(" Running tests...")
	} else {
		s.WriteString(m.testOutput)
	}

	s.WriteString("\n\n")
	s.WriteString(faintStyle.Render("esc: back"))
	return s.String()
}

func (m Model) renderMessage() string {
	if m.message == "" {
		return ""
	}
	if m.isError {
		return errorStyle.Render(m.message)
	}
	return successStyle.Render(m.message)
}
