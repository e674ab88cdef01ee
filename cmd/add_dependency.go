package cmd

import (
	"errors"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/log"
)

// addDependencyCmd represents the add dependency command
var addDependencyCmd = &cobra.Command{
	Use:     "dependency [tool] [package...]",
	Aliases: []string{"dep"},
	Short:   "Adds Python dependencies to a tool with uv.",
	Long:    `Runs 'uv add' inside the tool's package and prints the dependencies recorded in its pyproject.toml.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return errors.New("requires a tool name and at least one package")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		name, deps := args[0], args[1:]
		scaffolder := newScaffolder(loadConfig(cmd))

		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		s.Suffix = " Running uv add..."
		s.Start()
		recorded, err := scaffolder.AddDependency(cmd.Context(), name, deps...)
		s.Stop()
		if err != nil {
			log.Fatal("Failed to add dependencies to '%s': %v", name, err)
		}

		log.Success("Dependencies of '%s':", name)
		for _, dep := range recorded {
			log.Printf(log.DetailColor, "  - %s\n", dep)
		}
	},
}

func init() {
	addCmd.AddCommand(addDependencyCmd)
}
