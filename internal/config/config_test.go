package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathForWindowsWithAppData(t *testing.T) {
	t.Parallel()

	got := PathFor("windows", `C:\Temp\AppData`, `C:\Users\dev`)
	require.Equal(t, filepath.Join(`C:\Temp\AppData`, "transcriber", "config.toml"), got)
}

func TestPathForWindowsWithoutAppData(t *testing.T) {
	t.Parallel()

	got := PathFor("windows", "", `C:\Users\dev`)
	require.Equal(t, filepath.Join(`C:\Users\dev`, "AppData", "Roaming", "transcriber", "config.toml"), got)
}

func TestPathForLinux(t *testing.T) {
	t.Parallel()

	got := PathFor("linux", "", "/home/testuser")
	require.Equal(t, filepath.Join("/home/testuser", ".config", "transcriber", "config.toml"), got)
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	require.Equal(t, "faster-whisper", cfg.Engine.Backend)
	require.Equal(t, "small", cfg.Engine.Model)
	require.Equal(t, "cpu", cfg.Engine.Device)
	require.Equal(t, "txt", cfg.Output.Extension)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[engine]\nmodel = \"medium\"\ndevice = \"cuda\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "faster-whisper", cfg.Engine.Backend)
	require.Equal(t, "medium", cfg.Engine.Model)
	require.Equal(t, "cuda", cfg.Engine.Device)
}

func TestLoadHonorsPersistedBackend(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[engine]\nbackend = \"vosk\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "vosk", cfg.Engine.Backend)
}

func TestLoadTrimsFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[engine]\nmodel = \"  medium  \"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "medium", cfg.Engine.Model)
}

func TestLoadRejectsEmptyField(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[engine]\nmodel = \"  \"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), "engine.model")
}

func TestLoadRejectsNonTxtExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[output]\nextension = \"srt\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), "Only plain text output")
}

func TestLoadAcceptsUppercaseTxtExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[output]\nextension = \"TXT\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "txt", cfg.Output.Extension)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml ==="), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Engine.Model = "large-v3"
	cfg.Engine.Device = "cuda"

	written, err := Save(cfg, path)
	require.NoError(t, err)
	require.Equal(t, path, written)

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestSaveOmitsBackendKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Engine.Backend = "whisper"

	_, err := Save(cfg, path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "backend")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultBackend, loaded.Engine.Backend)
}

func TestSaveRejectsNonTxtExtension(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Output.Extension = "srt"

	_, err := Save(cfg, filepath.Join(t.TempDir(), "config.toml"))
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), "Only plain text output")
}
