package cli

import (
	"github.com/Ali-Raza-H/transcriber/internal/tui"
	"github.com/spf13/cobra"
)

func newMenuCmd(app *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive full-screen menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(app.log())
		},
	}
}
