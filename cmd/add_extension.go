package cmd

import (
	"errors"
	"slices"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/log"
	"github.com/tool-alchemist/alchemist/internal/registry"
)

var (
	extName     string
	extCmd      string
	extArgs     []string
	extExec     string
	extType     string
	extDisabled bool
	extEnvs     = envFlag{}
)

// addExtensionCmd represents the add extension command
var addExtensionCmd = &cobra.Command{
	Use:   "extension",
	Short: "Adds or replaces an extension in the goose registry.",
	Long: `Adds a named extension to the goose config.yaml, or replaces every field of
an existing extension with the same name. Other extensions, comments and
settings in the file are left untouched.

The command line can be given as --cmd plus repeated --arg flags, or as a
single shell-quoted --exec string:

  alchemist add extension --name weather --exec "uvx --from /tools/weather weather"`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return errors.New("add extension takes no positional arguments; use --name and --cmd")
		}
		if extExec != "" && (extCmd != "" || len(extArgs) > 0) {
			return errors.New("--exec cannot be combined with --cmd or --arg")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		command, commandArgs := extCmd, extArgs
		if extExec != "" {
			words, err := shellquote.Split(extExec)
			if err != nil {
				log.Fatal("Invalid --exec value: %v", err)
			}
			if len(words) == 0 {
				log.Fatal("--exec must contain a command")
			}
			command, commandArgs = words[0], words[1:]
		}

		entry := registry.NewEntry(extName, command, slices.Clone(commandArgs)...)
		entry.Type = extType
		entry.Enabled = !extDisabled
		for k, v := range extEnvs {
			entry.Envs[k] = v
		}
		if err := entry.Validate(); err != nil {
			log.Fatal("%v", err)
		}

		cfg := loadConfig(cmd)
		backupRegistry(cfg)

		log.Info("Writing extension '%s' to %s", entry.Name, cfg.GooseConfigPath)
		if err := registry.UpsertExtension(cfg.GooseConfigPath, entry); err != nil {
			log.Fatal("Error updating registry: %v", err)
		}
		log.Success("Extension '%s' saved. Restart goose to load it.", entry.Name)
	},
}

func init() {
	addCmd.AddCommand(addExtensionCmd)

	addExtensionCmd.Flags().StringVar(&extName, "name", "", "Extension name (registry key)")
	addExtensionCmd.Flags().StringVar(&extCmd, "cmd", "", "Executable that starts the extension")
	addExtensionCmd.Flags().StringArrayVar(&extArgs, "arg", nil, "Argument passed to the command (repeatable)")
	addExtensionCmd.Flags().StringVar(&extExec, "exec", "", "Full shell-quoted command line, instead of --cmd/--arg")
	addExtensionCmd.Flags().Var(extEnvs, "env", "Environment variable KEY=VALUE (repeatable)")
	addExtensionCmd.Flags().StringVar(&extType, "type", registry.TypeStdio, "Transport: stdio, sse, builtin or streamable_http")
	addExtensionCmd.Flags().BoolVar(&extDisabled, "disabled", false, "Register the extension without enabling it")
	_ = addExtensionCmd.MarkFlagRequired("name")
}
