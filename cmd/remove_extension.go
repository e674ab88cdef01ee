package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/log"
	"github.com/tool-alchemist/alchemist/internal/registry"
	"github.com/tool-alchemist/alchemist/internal/util"
)

var removeYes bool

// removeExtensionCmd represents the remove extension command
var removeExtensionCmd = &cobra.Command{
	Use:   "extension [name]",
	Short: "Removes an extension from the goose registry.",
	Long:  `Removes a named extension from the goose config.yaml, leaving everything else in the file unchanged.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("requires exactly one argument: the name of the extension to remove")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := loadConfig(cmd)

		reg, err := registry.Load(cfg.GooseConfigPath)
		if err != nil {
			log.Fatal("Error loading registry: %v", err)
		}
		if _, err := reg.Get(name); err != nil {
			log.Fatal("Extension '%s' not found in %s", name, cfg.GooseConfigPath)
		}

		if !removeYes && util.IsInteractive() {
			confirmed := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Remove extension '%s' from %s?", name, cfg.GooseConfigPath),
				Default: false,
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				log.Fatal("Error during confirmation: %v", err)
			}
			if !confirmed {
				log.Info("Nothing removed.")
				return
			}
		}

		backupRegistry(cfg)
		if err := registry.RemoveExtension(cfg.GooseConfigPath, name); err != nil {
			log.Fatal("Error updating registry: %v", err)
		}
		log.Success("Successfully removed extension '%s'.", name)
	},
}

func init() {
	removeCmd.AddCommand(removeExtensionCmd)

	removeExtensionCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Do not ask for confirmation")
}
