// Package config loads and saves the optional transcriber configuration
// file from its OS-specific location:
//
//   - Linux/macOS: ~/.config/transcriber/config.toml
//   - Windows:     %APPDATA%\transcriber\config.toml
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultBackend   = "faster-whisper"
	DefaultModel     = "small"
	DefaultDevice    = "cpu"
	DefaultExtension = "txt"
)

// ErrInvalid marks configuration validation failures. Front ends treat
// anything wrapping it as a user-correctable configuration error.
var ErrInvalid = errors.New("invalid config")

type EngineConfig struct {
	Backend string `toml:"backend,omitempty"`
	Model   string `toml:"model"`
	Device  string `toml:"device"`
}

type OutputConfig struct {
	Extension string `toml:"extension"`
}

type Config struct {
	Engine EngineConfig `toml:"engine"`
	Output OutputConfig `toml:"output"`
}

func Default() Config {
	return Config{
		Engine: EngineConfig{
			Backend: DefaultBackend,
			Model:   DefaultModel,
			Device:  DefaultDevice,
		},
		Output: OutputConfig{
			Extension: DefaultExtension,
		},
	}
}

// Path returns the configuration file location for the current OS.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return PathFor(runtime.GOOS, os.Getenv("APPDATA"), home), nil
}

// PathFor is the pure variant of Path, split out for tests.
func PathFor(goos, appData, homeDir string) string {
	if goos == "windows" {
		if appData != "" {
			return filepath.Join(appData, "transcriber", "config.toml")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "transcriber", "config.toml")
	}
	return filepath.Join(homeDir, ".config", "transcriber", "config.toml")
}

// Load reads the configuration file at path, falling back to defaults when
// the file does not exist. An empty path selects the OS default location.
//
// Fields left out of the file keep their defaults; fields that are present
// must be non-empty after trimming.
func Load(path string) (Config, error) {
	if path == "" {
		resolved, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = resolved
	}

	cfg := Default()

	var raw Config
	md, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
	}

	fields := []struct {
		dst   *string
		value string
		keys  []string
	}{
		{&cfg.Engine.Backend, raw.Engine.Backend, []string{"engine", "backend"}},
		{&cfg.Engine.Model, raw.Engine.Model, []string{"engine", "model"}},
		{&cfg.Engine.Device, raw.Engine.Device, []string{"engine", "device"}},
		{&cfg.Output.Extension, raw.Output.Extension, []string{"output", "extension"}},
	}
	for _, f := range fields {
		if !md.IsDefined(f.keys...) {
			continue
		}
		trimmed := strings.TrimSpace(f.value)
		if trimmed == "" {
			return Config{}, fmt.Errorf("%w: %s must be a non-empty string", ErrInvalid, strings.Join(f.keys, "."))
		}
		*f.dst = trimmed
	}

	if !strings.EqualFold(cfg.Output.Extension, DefaultExtension) {
		return Config{}, fmt.Errorf("%w: Only plain text output is supported: set [output].extension = %q", ErrInvalid, DefaultExtension)
	}
	cfg.Output.Extension = DefaultExtension

	return cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed. An empty path selects the OS default location. Returns the path
// that was written.
func Save(cfg Config, path string) (string, error) {
	if !strings.EqualFold(cfg.Output.Extension, DefaultExtension) {
		return "", fmt.Errorf("%w: Only plain text output is supported: set [output].extension = %q", ErrInvalid, DefaultExtension)
	}
	cfg.Output.Extension = DefaultExtension

	// The backend key is never written; only a hand-edited file selects
	// a backend other than the default.
	cfg.Engine.Backend = ""

	if path == "" {
		resolved, err := Path()
		if err != nil {
			return "", err
		}
		path = resolved
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}

	return path, nil
}
