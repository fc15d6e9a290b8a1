// Package engine defines the speech-to-text contract and its concrete
// backends.
package engine

import (
	"context"
	"errors"
	"fmt"
)

// Engine transcribes a canonical-format audio file into plain text. The
// audio file must already be in the form produced by the media package.
// An empty language requests automatic detection.
type Engine interface {
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}

// ErrMissingDependency marks a required external inference tool that is
// not installed. Front ends print install guidance for it.
var ErrMissingDependency = errors.New("missing dependency")

// ModelLoadError reports that the backend ran but could not construct the
// requested model (unknown name, offline with no cache, corrupt artifact).
type ModelLoadError struct {
	Model  string
	Detail string
}

func (e *ModelLoadError) Error() string {
	msg := fmt.Sprintf("failed to load Whisper model %q; if you're offline, ensure the model is already cached or set --model to a local model path", e.Model)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// UnsupportedBackendError reports a backend identifier the factory does
// not recognize. It is a configuration-class error.
type UnsupportedBackendError struct {
	Backend string
}

func (e *UnsupportedBackendError) Error() string {
	return fmt.Sprintf("unsupported engine backend: %q", e.Backend)
}
