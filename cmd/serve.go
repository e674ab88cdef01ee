package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/docs"
	"github.com/tool-alchemist/alchemist/internal/log"
	"github.com/tool-alchemist/alchemist/internal/mcpserver"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the MCP server on stdio.",
	Long: `Starts an MCP server on stdin/stdout exposing the CreateNewToolBoilerplate,
GetToolPath and AddDependency tools and the ` + docs.ResourceURI + ` resource.
Add it to goose as a stdio extension:

  alchemist add extension --name alchemist --exec "alchemist serve"`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)

		// stdout carries the protocol
		log.Stdout = cmd.ErrOrStderr()

		handlers := &mcpserver.Handlers{
			Tools: newScaffolder(cfg),
			Docs:  docs.NewFetcher(cfg.DocsURL).Fetch,
		}
		log.Debug("Serving MCP on stdio (data path %s)", cfg.DataPath)
		if err := mcpserver.Serve(handlers); err != nil {
			log.Fatal("MCP server stopped: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
