// Package cmd wires the command-line interface for the dashboard.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/app"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/ui"
)

var (
	configPath  string
	prefsPath   string
	tickSeconds int
)

// rootCmd represents the base command; running it starts the TUI.
var rootCmd = &cobra.Command{
	Use:   "intalksdash",
	Short: "Terminal dashboard for the INTALKS call-center backend",
	Long: `intalksdash renders a live operations dashboard for an INTALKS
call-center backend: the customer collection with filtering, selection
and pagination, batch-upload history, recent call activity, call
triggering and CSV export.

State is kept fresh through a combination of REST snapshots and websocket
push updates; the dashboard reconnects and resynchronizes on its own.

Examples:
  intalksdash
  intalksdash --config ~/ops/intalks.toml
  intalksdash --tick 10`,
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/intalksdash/config.toml)")
	rootCmd.Flags().StringVar(&prefsPath, "prefs", "", "preferences file (default ~/.config/intalksdash/prefs.toml)")
	rootCmd.Flags().IntVar(&tickSeconds, "tick", 0, "periodic refresh interval in seconds (default 30)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	opts := app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		TickEvery:  tickSeconds,
	}
	return app.Run(cmd.Context(), opts, ui.Frontend{})
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
