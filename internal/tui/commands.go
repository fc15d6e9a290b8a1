package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ali-Raza-H/transcriber/internal/config"
	"github.com/Ali-Raza-H/transcriber/internal/engine"
	"github.com/Ali-Raza-H/transcriber/internal/media"
	"github.com/Ali-Raza-H/transcriber/internal/pipeline"
	"github.com/Ali-Raza-H/transcriber/internal/testrun"
	tea "github.com/charmbracelet/bubbletea"
)

const maxTestOutput = 6000

type transcribeDoneMsg struct {
	path string
	err  error
}

type testsDoneMsg struct {
	code   int
	output string
	err    error
}

type statusMsg string

type statusTickMsg time.Time

// transcribeCmd runs one pipeline invocation off the UI loop; bubbletea
// delivers the resulting message back on the update goroutine, so UI
// state is never touched from the worker.
func (m Model) transcribeCmd(req pipeline.Request) tea.Cmd {
	run := m.runPipeline
	logger := m.logger
	return func() tea.Msg {
		path, err := run(context.Background(), logger, req)
		return transcribeDoneMsg{path: path, err: err}
	}
}

func (m Model) runTestsCmd() tea.Cmd {
	run := m.runTests
	return func() tea.Msg {
		code, output, err := run(context.Background())
		return testsDoneMsg{code: code, output: output, err: err}
	}
}

func (m Model) refreshStatusCmd() tea.Cmd {
	collect := m.collectStatus
	return func() tea.Msg {
		snap, err := collect(context.Background())
		if err != nil {
			return statusMsg("Failed to read system status: " + err.Error())
		}
		return statusMsg(snap.Render())
	}
}

func statusTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

// presentError maps the pipeline's error taxonomy to the distinct
// user-facing messages each class deserves.
func presentError(err error) string {
	var modelErr *engine.ModelLoadError
	switch {
	case media.IsMediaError(err):
		return "Media error: " + err.Error()
	case errors.Is(err, engine.ErrMissingDependency):
		return err.Error()
	case errors.Is(err, config.ErrInvalid):
		return "Config error: " + err.Error()
	case errors.Is(err, testrun.ErrGoToolchainMissing):
		return err.Error()
	case errors.As(err, &modelErr):
		return err.Error()
	default:
		return "Error: " + err.Error()
	}
}

func formatTestResult(msg testsDoneMsg) string {
	if msg.err != nil {
		return presentError(msg.err)
	}

	summary := "Tests passed."
	if msg.code != 0 {
		summary = fmt.Sprintf("Tests failed (exit code %d).", msg.code)
	}

	output := strings.TrimSpace(msg.output)
	combined := summary
	if output != "" {
		combined = summary + "\n\n" + output
	}
	if len(combined) > maxTestOutput {
		combined = combined[len(combined)-maxTestOutput:]
	}
	return combined
}
