package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/log"
	"github.com/tool-alchemist/alchemist/internal/registry"
	"github.com/tool-alchemist/alchemist/internal/util"
)

var loadFile string

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load extensions from an mcpServers JSON snippet",
	Long: `Reads an {"mcpServers": {...}} JSON snippet, as published in most MCP server
READMEs, from the clipboard (or --file, '-' for stdin) and registers every
command-based server as an enabled stdio extension in the goose config.yaml.`,
	Run: func(cmd *cobra.Command, args []string) {
		content, err := readSnippet(cmd)
		if err != nil {
			log.Fatal("Failed to read configuration: %v", err)
		}
		if len(content) == 0 {
			log.Fatal("No configuration to load (input is empty)")
		}

		entries, skipped, err := registry.ParseMCPServers(content)
		if err != nil {
			log.Fatal("Failed to parse configuration: %v", err)
		}
		for _, name := range skipped {
			log.Warn("Skipping '%s': only command-based servers can be loaded", name)
		}
		if len(entries) == 0 {
			log.Warn("No servers to load.")
			return
		}

		cfg := loadConfig(cmd)
		reg, err := registry.Load(cfg.GooseConfigPath)
		if err != nil {
			log.Fatal("Error loading registry: %v", err)
		}
		for _, entry := range entries {
			if err := reg.Upsert(entry); err != nil {
				log.Fatal("Error adding '%s': %v", entry.Name, err)
			}
			log.Info("Added extension: %s", entry.Name)
		}

		backupRegistry(cfg)
		if err := registry.Save(cfg.GooseConfigPath, reg); err != nil {
			log.Fatal("Failed to save registry: %v", err)
		}
		log.Success("Successfully loaded %d extension(s) into %s", len(entries), cfg.GooseConfigPath)
	},
}

func readSnippet(cmd *cobra.Command) ([]byte, error) {
	switch loadFile {
	case "":
		log.Info("Reading configuration from clipboard...")
		text, err := util.ReadClipboard()
		return []byte(text), err
	case "-":
		return io.ReadAll(cmd.InOrStdin())
	default:
		path, err := util.ExpandPath(loadFile)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(path)
	}
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVarP(&loadFile, "file", "f", "", "Read the snippet from a file ('-' for stdin) instead of the clipboard")
}
