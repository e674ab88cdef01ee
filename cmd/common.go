package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/backup"
	"github.com/tool-alchemist/alchemist/internal/config"
	"github.com/tool-alchemist/alchemist/internal/log"
	"github.com/tool-alchemist/alchemist/internal/scaffold"
	"github.com/tool-alchemist/alchemist/internal/util"
)

// loadConfig loads config.yaml and applies the --registry override.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config.yaml: %v", err)
	}
	if override, _ := cmd.Flags().GetString("registry"); override != "" {
		path, err := util.ExpandPath(override)
		if err != nil {
			log.Fatal("Error expanding registry path '%s': %v", override, err)
		}
		cfg.GooseConfigPath = path
	}
	log.Debug("Using goose registry: %s", cfg.GooseConfigPath)
	return cfg
}

func newBackupManager(cfg *config.Config) *backup.Manager {
	return backup.NewManager(cfg.Backups.Path, cfg.Backups.Retention)
}

func newScaffolder(cfg *config.Config) *scaffold.Scaffolder {
	s := scaffold.New(cfg.DataPath, cfg.GooseConfigPath)
	s.TemplatePath = cfg.TemplatePath
	s.Backups = newBackupManager(cfg)
	return s
}

// backupRegistry snapshots the registry before a command modifies it.
func backupRegistry(cfg *config.Config) {
	backupPath, err := newBackupManager(cfg).Backup(cfg.GooseConfigPath)
	if err != nil {
		log.Fatal("Error backing up '%s': %v", cfg.GooseConfigPath, err)
	}
	if backupPath != "" {
		log.Detail("Backed up %s to %s", cfg.GooseConfigPath, backupPath)
	}
}
