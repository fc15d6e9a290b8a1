// Package media turns supported input files into the 16 kHz mono PCM WAV
// that the transcription engine expects, using ffmpeg.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var SupportedExtensions = []string{".mp3", ".mp4"}

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrFfmpegNotFound   = errors.New("ffmpeg not found on PATH; install FFmpeg and ensure `ffmpeg` is available")
)

// FfmpegError reports a non-zero ffmpeg exit, carrying the attempted
// command line and whatever ffmpeg wrote to stderr.
type FfmpegError struct {
	Cmd    string
	Stderr string
}

func (e *FfmpegError) Error() string {
	msg := fmt.Sprintf("ffmpeg failed to process the file (command: %s)", e.Cmd)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// IsSupported reports whether the path's extension is one of the supported
// input types, ignoring case.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// PreparedAudio is a scoped handle to a converted WAV file in a private
// temporary directory. Close removes the directory and everything in it.
type PreparedAudio struct {
	wavPath string
	dir     string
	logger  *zap.Logger
}

// Path returns the location of the canonical 16 kHz mono WAV file.
func (p *PreparedAudio) Path() string {
	return p.wavPath
}

func (p *PreparedAudio) Close() error {
	if p == nil || p.dir == "" {
		return nil
	}
	err := os.RemoveAll(p.dir)
	p.dir = ""
	if err != nil {
		p.log().Warn("failed to remove temporary audio directory", zap.Error(err))
	}
	return err
}

func (p *PreparedAudio) log() *zap.Logger {
	if p.logger == nil {
		return zap.NewNop()
	}
	return p.logger
}

// Prepare converts inputPath into a temporary canonical WAV and returns a
// handle that the caller must Close. The temporary directory is removed
// before returning on every failure path.
func Prepare(ctx context.Context, logger *zap.Logger, inputPath string) (*PreparedAudio, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !IsSupported(inputPath) {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedMedia, filepath.Ext(inputPath), strings.Join(SupportedExtensions, ", "))
	}

	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, ErrFfmpegNotFound
	}

	tmpDir, err := os.MkdirTemp("", "transcriber-")
	if err != nil {
		return nil, fmt.Errorf("create temporary directory: %w", err)
	}

	wavPath := filepath.Join(tmpDir, "audio.wav")
	if err := convertToWAV(ctx, logger, ffmpeg, inputPath, wavPath); err != nil {
		if removeErr := os.RemoveAll(tmpDir); removeErr != nil {
			logger.Warn("failed to remove temporary audio directory", zap.Error(removeErr))
		}
		return nil, err
	}

	return &PreparedAudio{wavPath: wavPath, dir: tmpDir, logger: logger}, nil
}

func convertToWAV(ctx context.Context, logger *zap.Logger, ffmpeg, inputPath, wavPath string) error {
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-loglevel", "error",
		"-y",
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		wavPath,
	}

	cmd := exec.CommandContext(ctx, ffmpeg, args...)
	var stderr bytes.Buffer
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	logger.Debug("converting media", zap.String("input", inputPath), zap.Strings("args", args))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &FfmpegError{
			Cmd:    ffmpeg + " " + strings.Join(args, " "),
			Stderr: strings.TrimSpace(stderr.String()),
		}
	}

	return nil
}

// IsMediaError reports whether err belongs to this package's error
// taxonomy. Front ends use it to map media failures to their exit code.
func IsMediaError(err error) bool {
	var ffmpegErr *FfmpegError
	return errors.Is(err, ErrUnsupportedMedia) ||
		errors.Is(err, ErrFfmpegNotFound) ||
		errors.As(err, &ffmpegErr)
}
