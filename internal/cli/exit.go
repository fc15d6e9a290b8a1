package cli

import (
	"errors"

	"github.com/Ali-Raza-H/transcriber/internal/config"
	"github.com/Ali-Raza-H/transcriber/internal/engine"
	"github.com/Ali-Raza-H/transcriber/internal/media"
)

// ExitCode maps an error from a command run to the process exit status:
// 0 success, 2 for configuration, media, and missing-dependency errors
// the user can correct, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var backendErr *engine.UnsupportedBackendError
	switch {
	case media.IsMediaError(err),
		errors.Is(err, engine.ErrMissingDependency),
		errors.Is(err, config.ErrInvalid),
		errors.As(err, &backendErr):
		return 2
	default:
		return 1
	}
}

func configPathForDisplay() (string, error) {
	return config.Path()
}
