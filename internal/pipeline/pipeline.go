// Package pipeline composes media preparation, engine inference, and text
// output into the one-shot transcription run shared by every front end.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Ali-Raza-H/transcriber/internal/config"
	"github.com/Ali-Raza-H/transcriber/internal/engine"
	"github.com/Ali-Raza-H/transcriber/internal/media"
	"github.com/Ali-Raza-H/transcriber/internal/output"
	"go.uber.org/zap"
)

// Request carries the fully resolved parameters for one transcription
// run. Front ends apply flag/config/default precedence before building it.
// An empty Backend selects the default backend.
type Request struct {
	InputPath string
	OutputDir string
	Backend   string
	Model     string
	Device    string
}

// PreparedAudio is the scoped audio resource the pipeline consumes.
type PreparedAudio interface {
	Path() string
	Close() error
}

// Pipeline runs transcriptions. The function fields default to the real
// implementations and exist so tests can substitute stages.
type Pipeline struct {
	logger *zap.Logger

	newEngine func(cfg config.EngineConfig, logger *zap.Logger) (engine.Engine, error)
	prepare   func(ctx context.Context, logger *zap.Logger, inputPath string) (PreparedAudio, error)
}

func New(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		logger:    logger,
		newEngine: engine.New,
		prepare: func(ctx context.Context, logger *zap.Logger, inputPath string) (PreparedAudio, error) {
			prepared, err := media.Prepare(ctx, logger, inputPath)
			if err != nil {
				return nil, err
			}
			return prepared, nil
		},
	}
}

// Run executes validate, prepare, transcribe, write in order and returns
// the transcript path. Errors from any stage propagate unmodified; the
// temporary audio is released before the transcript is written, on success
// and failure alike.
func (p *Pipeline) Run(ctx context.Context, req Request) (string, error) {
	backend := req.Backend
	if backend == "" {
		backend = config.DefaultBackend
	}
	cfg := config.EngineConfig{
		Backend: backend,
		Model:   req.Model,
		Device:  req.Device,
	}

	eng, err := p.newEngine(cfg, p.logger)
	if err != nil {
		return "", err
	}

	prepared, err := p.prepare(ctx, p.logger, req.InputPath)
	if err != nil {
		return "", err
	}
	defer prepared.Close()

	p.logger.Info("transcribing", zap.String("input", filepath.Base(req.InputPath)), zap.String("model", req.Model), zap.String("device", req.Device))
	text, err := eng.Transcribe(ctx, prepared.Path(), "")
	if closeErr := prepared.Close(); closeErr != nil {
		p.logger.Warn("failed to release prepared audio", zap.Error(closeErr))
	}
	if err != nil {
		return "", err
	}

	outputPath := OutputPath(req.InputPath, req.OutputDir)
	if err := output.WriteTextFile(outputPath, text); err != nil {
		return "", err
	}

	p.logger.Info("transcript written", zap.String("path", outputPath))
	return outputPath, nil
}

// OutputPath resolves the transcript destination: <stem of input>.txt in
// outputDir, defaulting to the input file's directory.
func OutputPath(inputPath, outputDir string) string {
	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".txt")
}
