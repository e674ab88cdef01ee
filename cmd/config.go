package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/config"
	"github.com/tool-alchemist/alchemist/internal/log"
	"gopkg.in/yaml.v3"
)

var configForce bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Shows the effective alchemist configuration.",
	Long: `Prints the configuration alchemist runs with: config.yaml merged with
TOOL_ALCHEMIST_MCP_* environment variables and defaults.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		path, _ := config.ConfigPath()
		log.Detail("# %s", path)

		out, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatal("Error encoding config: %v", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes the effective configuration to config.yaml.",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.ConfigPath()
		if err != nil {
			log.Fatal("Error locating config.yaml: %v", err)
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			log.Fatal("%s already exists; use --force to overwrite it", path)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}
		if err := config.SaveConfig(cfg); err != nil {
			log.Fatal("Error saving config: %v", err)
		}
		log.Success("Wrote %s", path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config.yaml")
}
