// Package cli implements the quizframe command-line interface.
//
// This package provides commands for rendering document manifests into
// self-contained HTML, serving renders over HTTP, and generating example
// documents. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Render a manifest to HTML, JSON, or compressed JSON
//   - serve: Run the HTTP render service
//   - examples: Generate example manifests and their renders
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quizframe/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "quizframe"

// Execute runs the quizframe CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, loads the optional TOML config
// file, and executes the command tree. Logger and config are attached to
// the context and accessible to all commands.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Quizframe renders quiz content into self-contained HTML",
		Long:         `Quizframe assembles text, LaTeX math, Plotly charts, and tables into self-contained HTML documents sized for sandboxed iframe embedding.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newExamplesCmd())

	return root.ExecuteContext(ctx)
}
