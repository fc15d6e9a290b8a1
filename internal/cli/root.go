package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Ali-Raza-H/transcriber/internal/config"
	"github.com/Ali-Raza-H/transcriber/internal/logging"
	"github.com/Ali-Raza-H/transcriber/internal/pipeline"
	"github.com/Ali-Raza-H/transcriber/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

type appState struct {
	verbose    bool
	jsonLogs   bool
	noProgress bool
	outDir     string
	model      string
	device     string

	logger *zap.Logger

	loadConfigFn  func() (config.Config, error)
	runPipelineFn func(ctx context.Context, logger *zap.Logger, req pipeline.Request) (string, error)
}

func NewRootCmd() *cobra.Command {
	app := &appState{}
	app.loadConfigFn = func() (config.Config, error) {
		return config.Load("")
	}
	app.runPipelineFn = func(ctx context.Context, logger *zap.Logger, req pipeline.Request) (string, error) {
		return pipeline.New(logger).Run(ctx, req)
	}

	cmd := &cobra.Command{
		Use:           "transcriber",
		Short:         "Offline MP3/MP4 transcription to TXT using faster-whisper",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Resolve(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Options{Verbose: app.verbose, JSON: app.jsonLogs})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			app.logger = logger
			return nil
		},
	}

	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	bindLoggingFlags(cmd, app)
	bindProgressFlag(cmd, app)

	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newMenuCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func bindLoggingFlags(cmd *cobra.Command, app *appState) {
	cmd.PersistentFlags().BoolVar(&app.verbose, "verbose", app.verbose, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&app.jsonLogs, "json", app.jsonLogs, "Enable JSON logging")
}

func bindProgressFlag(cmd *cobra.Command, app *appState) {
	cmd.PersistentFlags().BoolVar(&app.noProgress, "no-progress", app.noProgress, "Disable progress indicators")
}

func (a *appState) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func (a *appState) progressEnabled() bool {
	if a.noProgress {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
