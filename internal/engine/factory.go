package engine

import (
	"strings"

	"github.com/Ali-Raza-H/transcriber/internal/config"
	"go.uber.org/zap"
)

// New maps a configuration's backend identifier to a concrete engine.
// Adding a backend means adding a case here; callers stay untouched.
func New(cfg config.EngineConfig, logger *zap.Logger) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "faster-whisper", "faster_whisper", "whisper":
		return NewFasterWhisper(cfg.Model, cfg.Device, logger), nil
	default:
		return nil, &UnsupportedBackendError{Backend: cfg.Backend}
	}
}
