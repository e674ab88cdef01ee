package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/docs"
	"github.com/tool-alchemist/alchemist/internal/log"
)

// docsCmd represents the docs command
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Prints the MCP documentation served as " + docs.ResourceURI + ".",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		text, err := docs.NewFetcher(cfg.DocsURL).Fetch(cmd.Context())
		if err != nil {
			log.Fatal("Error fetching documentation: %v", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
