package cmd

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/log"
	"github.com/tool-alchemist/alchemist/internal/registry"
	"github.com/tool-alchemist/alchemist/internal/util"
)

// enableCmd represents the enable command
var enableCmd = &cobra.Command{
	Use:   "enable [name]",
	Short: "Enables a registered extension, interactively if no name is provided.",
	Args:  maxOneName,
	Run: func(cmd *cobra.Command, args []string) {
		setEnabled(cmd, args, true)
	},
}

// disableCmd represents the disable command
var disableCmd = &cobra.Command{
	Use:   "disable [name]",
	Short: "Disables a registered extension without removing it, interactively if no name is provided.",
	Args:  maxOneName,
	Run: func(cmd *cobra.Command, args []string) {
		setEnabled(cmd, args, false)
	},
}

func maxOneName(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("accepts at most one argument: the extension name")
	}
	if len(args) == 1 && args[0] == "" {
		return errors.New("extension name cannot be empty if provided")
	}
	return nil
}

// setEnabled flips the enabled field of the entry stored under one key.
// Every other field, and any key alchemist does not know, is written back as
// it was.
func setEnabled(cmd *cobra.Command, args []string, enabled bool) {
	cfg := loadConfig(cmd)
	reg, err := registry.Load(cfg.GooseConfigPath)
	if err != nil {
		log.Fatal("Error loading registry: %v", err)
	}

	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		key = pickExtension(reg, enabled)
		if key == "" {
			return
		}
	}

	changed, err := reg.SetEnabled(key, enabled)
	if errors.Is(err, registry.ErrNotFound) {
		log.Fatal("Extension '%s' not found in %s", key, cfg.GooseConfigPath)
	}
	if err != nil {
		log.Fatal("Error updating extension '%s': %v", key, err)
	}
	if !changed {
		log.Info("Extension '%s' is already %s.", key, stateName(enabled))
		return
	}

	backupRegistry(cfg)
	if err := registry.Save(cfg.GooseConfigPath, reg); err != nil {
		log.Fatal("Error updating registry: %v", err)
	}
	log.Success("Extension '%s' %s. Restart goose to apply.", key, stateName(enabled))
}

// pickExtension prompts for the key of an extension whose state differs
// from enabled.
func pickExtension(reg *registry.Registry, enabled bool) string {
	if !util.IsInteractive() {
		log.Fatal("No extension name given and not running in a terminal")
	}

	var choices []string
	for _, key := range reg.Names() {
		entry, err := reg.Get(key)
		if err != nil {
			log.Fatal("Error reading extension '%s': %v", key, err)
		}
		if entry.Enabled != enabled {
			choices = append(choices, key)
		}
	}
	if len(choices) == 0 {
		log.Info("No extensions to change.")
		return ""
	}

	var key string
	prompt := &survey.Select{
		Message:  "Choose an extension:",
		Options:  choices,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &key); err != nil {
		log.Fatal("Error during selection: %v", err)
	}
	return key
}

func stateName(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}
