package cli

import (
	"bytes"
	"testing"
	"time"
)

func TestSpinnerDisabledStopIsNoOp(t *testing.T) {
	t.Parallel()

	s := newSpinner(false, "Transcribing")
	s.Stop()
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newSpinnerTo(true, "Transcribing", new(bytes.Buffer))
	time.Sleep(2 * spinnerInterval)
	s.Stop()
	s.Stop()
}
