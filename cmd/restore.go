package cmd

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/tool-alchemist/alchemist/internal/backup"
	"github.com/tool-alchemist/alchemist/internal/log"
	"github.com/tool-alchemist/alchemist/internal/util"
)

var restoreLatest bool

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restores the goose registry from a backup.",
	Long: `Restores the goose config.yaml from a backup taken before an earlier
alchemist command modified it. On a terminal you pick the backup from a list;
with --latest, or when not interactive, the most recent backup is used.
The current file is backed up first, so a restore can itself be undone.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		manager := newBackupManager(cfg)

		selected, err := manager.Latest(cfg.GooseConfigPath)
		if errors.Is(err, backup.ErrNoBackups) {
			log.Warn("No backups of %s found in %s. Nothing to restore.", cfg.GooseConfigPath, manager.Dir)
			return
		}
		if err != nil {
			log.Fatal("Error reading backup directory '%s': %v", manager.Dir, err)
		}

		if !restoreLatest && util.IsInteractive() {
			backups, err := manager.List(cfg.GooseConfigPath)
			if err != nil {
				log.Fatal("Error reading backup directory '%s': %v", manager.Dir, err)
			}
			options := make([]string, len(backups))
			for i, b := range backups {
				options[i] = filepath.Base(b)
			}
			var choice string
			prompt := &survey.Select{
				Message:  "Choose a backup to restore:",
				Options:  options,
				PageSize: 15,
			}
			if err := survey.AskOne(prompt, &choice); err != nil {
				log.Fatal("Error during selection: %v", err)
			}
			selected = filepath.Join(manager.Dir, choice)
		}

		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		s.Suffix = " Restoring..."
		s.Start()
		current, err := manager.Rollback(selected, cfg.GooseConfigPath)
		s.Stop()

		if err != nil {
			log.Fatal("Failed to restore %s from %s: %v", cfg.GooseConfigPath, filepath.Base(selected), err)
		}
		if current != "" {
			log.Detail("Previous registry saved as %s", filepath.Base(current))
		}
		log.Success("Successfully restored %s from %s", cfg.GooseConfigPath, filepath.Base(selected))
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().BoolVar(&restoreLatest, "latest", false, "Restore the most recent backup without prompting")
}
