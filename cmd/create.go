package cmd

import (
	"errors"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/log"
)

var createDescription string

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Creates a new goose tool and registers it as an extension.",
	Long: `Creates a uv-managed Python package for a new tool under data_path,
writes an MCP server boilerplate into src/<name>/server.py, adds the mcp
dependency and registers the tool in the goose config.yaml (run via uvx).`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("requires exactly one argument: the tool name")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := loadConfig(cmd)
		scaffolder := newScaffolder(cfg)

		log.Info("Creating tool '%s' in %s", name, cfg.DataPath)
		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		s.Suffix = " Running uv..."
		s.Start()
		root, err := scaffolder.CreateNewToolBoilerplate(cmd.Context(), name, createDescription)
		s.Stop()
		if err != nil {
			log.Fatal("Failed to create tool '%s': %v", name, err)
		}

		toolPath, err := scaffolder.GetToolPath(name)
		if err != nil {
			log.Fatal("%v", err)
		}
		log.Success("Created tool '%s' in %s", name, root)
		log.Detail("Implement it in %s", toolPath)
		log.Detail("Registered in %s. Restart goose to load it.", cfg.GooseConfigPath)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "One-line description of the tool")
}
