package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Ali-Raza-H/transcriber/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(app *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <input-file>",
		Short: "Transcribe a single MP3/MP4 file to a plain-text .txt file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := filepath.Clean(args[0])
			info, err := os.Stat(inputPath)
			if err != nil {
				return fmt.Errorf("input file not found: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("input must be a regular file: %s", inputPath)
			}

			cfg, err := app.loadConfigFn()
			if err != nil {
				if path, pathErr := configPathForDisplay(); pathErr == nil {
					return fmt.Errorf("%w (config: %s)", err, path)
				}
				return err
			}

			// Precedence: explicit flag > persisted config > default.
			// The backend has no flag; it comes from the config alone.
			model := app.model
			if model == "" {
				model = cfg.Engine.Model
			}
			device := app.device
			if device == "" {
				device = cfg.Engine.Device
			}

			req := pipeline.Request{
				InputPath: inputPath,
				OutputDir: app.outDir,
				Backend:   cfg.Engine.Backend,
				Model:     model,
				Device:    device,
			}

			app.log().Info("transcribing", zap.String("input", filepath.Base(inputPath)))
			spin := newSpinner(app.progressEnabled(), "Transcribing")
			started := time.Now()

			outputPath, err := app.runPipelineFn(cmd.Context(), app.log(), req)
			spin.Stop()
			if err != nil {
				app.log().Warn("transcription failed", zap.Duration("elapsed", time.Since(started)), zap.Error(err))
				return err
			}
			app.log().Info("transcription finished", zap.Duration("elapsed", time.Since(started)))

			fmt.Fprintln(cmd.OutOrStdout(), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&app.outDir, "out", "o", "", "Output directory for the .txt transcript (defaults to input file directory)")
	cmd.Flags().StringVar(&app.model, "model", "", "Whisper model size or local model path (defaults to config)")
	cmd.Flags().StringVar(&app.device, "device", "", "Inference device (defaults to config)")

	return cmd
}
