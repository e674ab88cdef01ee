package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/log"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "alchemist",
	Short: "A CLI tool to create goose tools and manage goose extensions.",
	Long: `alchemist scaffolds new goose tools as uv-managed Python MCP servers and
keeps the goose extension registry (config.yaml) in sync with them.
It edits the registry in place: comments, key order and settings it does not
understand are preserved, and every write is atomic.

Run 'alchemist serve' to expose the same operations to an agent over MCP.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		// Cobra already printed the error
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("registry", "", "Path to the goose config.yaml (overrides goose_config_path)")

	// Disable the auto-generated completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
