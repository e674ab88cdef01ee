package cmd

import (
	"github.com/spf13/cobra"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove",
	Short:   "Remove goose extensions.",
	Long:    `Parent command for removing resources managed by alchemist.`,
	Aliases: []string{"rm"},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
