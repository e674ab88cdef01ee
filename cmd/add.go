package cmd

import (
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add goose extensions or tool dependencies.",
	Long:  `Parent command for adding resources managed by alchemist.`,
}

func init() {
	rootCmd.AddCommand(addCmd)
}
