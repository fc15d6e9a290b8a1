package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenTranscript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \n\t ", ""},
		{"plain", "Hello world.", "Hello world.\n"},
		{"surrounding whitespace", "  Hello world. \n\n", "Hello world.\n"},
		{"internal newlines kept", "Hello.\nSecond line.", "Hello.\nSecond line.\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, flattenTranscript(tt.raw))
		})
	}
}

func TestTranscribeReportsMissingCLI(t *testing.T) {
	t.Parallel()

	eng := NewFasterWhisper("small", "cpu", nil)
	eng.lookPath = func(string) (string, error) {
		return "", errors.New("executable file not found in $PATH")
	}

	_, err := eng.Transcribe(context.Background(), "/tmp/audio.wav", "")
	require.ErrorIs(t, err, ErrMissingDependency)
	require.Contains(t, err.Error(), "pip install")
}

// installFakeCLI puts a whisper-ctranslate2 stub on PATH. It records its
// arguments to ARGS_FILE, and either fails with a model error when
// FAKE_MODEL_FAIL is set or writes "<stem>.txt" into --output_dir.
func installFakeCLI(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}

	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	stub := "#!/bin/sh\n" +
		"set -eu\n" +
		"printf '%s\\n' \"$@\" > \"$ARGS_FILE\"\n" +
		"if [ -n \"${FAKE_MODEL_FAIL:-}\" ]; then\n" +
		"  echo \"Invalid model size 'bogus', expected one of: tiny, base, small\" >&2\n" +
		"  exit 1\n" +
		"fi\n" +
		"outdir=\"\"\n" +
		"prev=\"\"\n" +
		"for a; do\n" +
		"  if [ \"$prev\" = \"--output_dir\" ]; then outdir=\"$a\"; fi\n" +
		"  prev=\"$a\"\n" +
		"done\n" +
		"audio=\"$prev\"\n" +
		"stem=${audio##*/}\n" +
		"stem=\"${stem%.*}\"\n" +
		"printf ' Hello world. \\n' > \"$outdir/$stem.txt\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "whisper-ctranslate2"), []byte(stub), 0o755))
	t.Setenv("PATH", dir)
	t.Setenv("ARGS_FILE", argsFile)

	return argsFile
}

func TestTranscribeRunsCLIAndNormalizesOutput(t *testing.T) {
	argsFile := installFakeCLI(t)

	eng := NewFasterWhisper("small", "cpu", nil)
	text, err := eng.Transcribe(context.Background(), "/tmp/audio.wav", "")
	require.NoError(t, err)
	require.Equal(t, "Hello world.\n", text)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	require.Contains(t, string(args), "--model\nsmall\n")
	require.Contains(t, string(args), "--device\ncpu\n")
	require.Contains(t, string(args), "--compute_type\nint8\n")
	require.NotContains(t, string(args), "--language")
}

func TestTranscribePassesLanguageAndSkipsInt8OffCPU(t *testing.T) {
	argsFile := installFakeCLI(t)

	eng := NewFasterWhisper("small", "cuda", nil)
	_, err := eng.Transcribe(context.Background(), "/tmp/audio.wav", "de")
	require.NoError(t, err)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	require.Contains(t, string(args), "--language\nde\n")
	require.NotContains(t, string(args), "--compute_type")
}

func TestTranscribeCachesResolvedCLI(t *testing.T) {
	installFakeCLI(t)

	calls := 0
	eng := NewFasterWhisper("small", "cpu", nil)
	innerLookPath := eng.lookPath
	eng.lookPath = func(name string) (string, error) {
		calls++
		return innerLookPath(name)
	}

	_, err := eng.Transcribe(context.Background(), "/tmp/audio.wav", "")
	require.NoError(t, err)
	_, err = eng.Transcribe(context.Background(), "/tmp/audio.wav", "")
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestTranscribeClassifiesModelLoadFailure(t *testing.T) {
	installFakeCLI(t)
	t.Setenv("FAKE_MODEL_FAIL", "1")

	eng := NewFasterWhisper("bogus", "cpu", nil)
	_, err := eng.Transcribe(context.Background(), "/tmp/audio.wav", "")
	require.Error(t, err)

	var modelErr *ModelLoadError
	require.ErrorAs(t, err, &modelErr)
	require.Equal(t, "bogus", modelErr.Model)
	require.Contains(t, err.Error(), "local model path")
}

func TestIsModelLoadFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stderr string
		want   bool
	}{
		{"empty", "", false},
		{"invalid size", "Invalid model size 'huge'", true},
		{"offline fetch", "ConnectionError: huggingface.co unreachable", true},
		{"corrupt artifact", "unable to open file in model directory", true},
		{"unrelated failure", "RuntimeError: out of memory", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, isModelLoadFailure(tt.stderr))
		})
	}
}
