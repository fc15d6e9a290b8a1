package cli

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// spinner animates an indeterminate progress indicator while a
// transcription runs. Stop clears the line and may be called more than
// once; a disabled spinner is a no-op.
type spinner struct {
	stopOnce sync.Once
	done     chan struct{}
	finished chan struct{}
	bar      *progressbar.ProgressBar
}

func newSpinner(enabled bool, description string) *spinner {
	return newSpinnerTo(enabled, description, os.Stderr)
}

func newSpinnerTo(enabled bool, description string, w io.Writer) *spinner {
	s := &spinner{}
	if !enabled {
		return s
	}

	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	s.done = make(chan struct{})
	s.finished = make(chan struct{})

	go s.animate()
	return s
}

func (s *spinner) animate() {
	defer close(s.finished)
	for {
		select {
		case <-s.done:
			return
		case <-time.After(spinnerInterval):
			_ = s.bar.Add(1)
		}
	}
}

func (s *spinner) Stop() {
	s.stopOnce.Do(func() {
		if s.bar == nil {
			return
		}
		close(s.done)
		<-s.finished
		_ = s.bar.Finish()
	})
}
