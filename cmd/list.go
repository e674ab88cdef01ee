package cmd

import (
	"sort"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/log"
	"github.com/tool-alchemist/alchemist/internal/registry"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the extensions registered with goose.",
	Long:  `Reads the goose config.yaml and displays every registered extension with its command line and state.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)

		reg, err := registry.Load(cfg.GooseConfigPath)
		if err != nil {
			log.Fatal("Error loading registry: %v", err)
		}
		keys := reg.Names()
		if len(keys) == 0 {
			log.Warn("No extensions registered in %s. Use 'alchemist add extension' or 'alchemist create' to add one.", cfg.GooseConfigPath)
			return
		}

		log.Info("Extensions in %s:", cfg.GooseConfigPath)
		for _, key := range keys {
			entry, err := reg.Get(key)
			if err != nil {
				log.Fatal("Error reading extension '%s': %v", key, err)
			}
			state, c := "enabled", log.SuccessColor
			if !entry.Enabled {
				state, c = "disabled", log.WarnColor
			}
			label := key
			if entry.Name != key {
				label += " \"" + entry.Name + "\""
			}
			log.Printf(c, "- %s (%s, %s)\n", label, entry.Type, state)
			if entry.Cmd != "" {
				log.Printf(log.DetailColor, "    %s\n", shellquote.Join(append([]string{entry.Cmd}, entry.Args...)...))
			}

			envKeys := make([]string, 0, len(entry.Envs))
			for k := range entry.Envs {
				envKeys = append(envKeys, k)
			}
			sort.Strings(envKeys)
			for _, k := range envKeys {
				// Values may hold secrets
				log.Printf(log.DetailColor, "    %s=***\n", k)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
