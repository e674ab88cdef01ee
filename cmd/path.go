package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/log"
)

// pathCmd represents the path command
var pathCmd = &cobra.Command{
	Use:   "path [name]",
	Short: "Prints the server.py path of a tool.",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("requires exactly one argument: the tool name")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		toolPath, err := newScaffolder(loadConfig(cmd)).GetToolPath(args[0])
		if err != nil {
			log.Fatal("%v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), toolPath)
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
