package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// fasterWhisperCLI is the command-line front end of the faster-whisper
// project; it accepts model size keywords or local CTranslate2 model
// directories and handles model downloads itself.
const fasterWhisperCLI = "whisper-ctranslate2"

// FasterWhisper runs the faster-whisper backend. Construction does no
// I/O; the CLI is located lazily on first use and cached for the engine's
// lifetime. An engine instance is not safe for concurrent Transcribe
// calls.
type FasterWhisper struct {
	model  string
	device string
	logger *zap.Logger

	lookPath func(string) (string, error)
	exe      string
}

func NewFasterWhisper(model, device string, logger *zap.Logger) *FasterWhisper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FasterWhisper{
		model:    model,
		device:   device,
		logger:   logger,
		lookPath: exec.LookPath,
	}
}

func (e *FasterWhisper) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	exe, err := e.ensureCLI()
	if err != nil {
		return "", err
	}

	outDir, err := os.MkdirTemp("", "transcriber-stt-")
	if err != nil {
		return "", fmt.Errorf("create engine output directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	args := []string{
		"--model", e.model,
		"--device", e.device,
		"--output_format", "txt",
		"--output_dir", outDir,
	}
	if strings.EqualFold(strings.TrimSpace(e.device), "cpu") {
		args = append(args, "--compute_type", "int8")
	}
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang != "" && lang != "auto" {
		args = append(args, "--language", lang)
	}
	args = append(args, audioPath)

	cmd := exec.CommandContext(ctx, exe, args...)
	var stderr bytes.Buffer
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	e.logger.Debug("running inference", zap.String("engine", exe), zap.Strings("args", args))
	started := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		errText := strings.TrimSpace(stderr.String())
		if isModelLoadFailure(errText) {
			return "", &ModelLoadError{Model: e.model, Detail: errText}
		}
		return "", fmt.Errorf("transcription failed: %w (%s)", err, errText)
	}
	e.logger.Debug("inference finished", zap.Duration("elapsed", time.Since(started)))

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	content, err := os.ReadFile(filepath.Join(outDir, stem+".txt"))
	if err != nil {
		return "", fmt.Errorf("read engine output: %w", err)
	}

	return flattenTranscript(string(content)), nil
}

// ensureCLI resolves the backend executable once per engine instance.
func (e *FasterWhisper) ensureCLI() (string, error) {
	if e.exe != "" {
		return e.exe, nil
	}

	lookPath := e.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	exe, err := lookPath(fasterWhisperCLI)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not installed; install with `pip install %s`", ErrMissingDependency, fasterWhisperCLI, fasterWhisperCLI)
	}

	e.exe = exe
	return exe, nil
}

// flattenTranscript normalizes engine output: leading and trailing
// whitespace stripped, exactly one trailing newline when non-empty.
func flattenTranscript(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return trimmed + "\n"
}

func isModelLoadFailure(stderr string) bool {
	value := strings.ToLower(strings.TrimSpace(stderr))
	if value == "" {
		return false
	}

	patterns := []string{
		"invalid model size",
		"unable to open file",
		"repository not found",
		"huggingface.co",
		"does not appear to have a file named",
		"could not find model",
		"failed to load model",
		"connection error",
		"name or service not known",
	}

	for _, pattern := range patterns {
		if strings.Contains(value, pattern) {
			return true
		}
	}

	return false
}
