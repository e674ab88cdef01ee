// Package backup keeps timestamped copies of the goose registry so a bad
// edit can be rolled back with `alchemist restore`.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tool-alchemist/alchemist/internal/util"
)

const timestampFormat = "20060102-150405.000000" // YYYYMMDD-HHMMSS.micro

// maxCollisions bounds the numeric suffixes tried for one timestamp.
const maxCollisions = 1000

// ErrNoBackups is returned when a registry has never been backed up.
var ErrNoBackups = errors.New("no backups found")

// now is a variable so tests can produce distinct timestamps.
var now = time.Now

// Manager creates, lists, prunes and restores registry backups.
type Manager struct {
	Dir       string
	Retention int // 0 keeps every backup
}

// NewManager creates a Manager writing into dir.
func NewManager(dir string, retention int) *Manager {
	return &Manager{Dir: dir, Retention: retention}
}

// prefix is the file name prefix shared by every backup of target.
func prefix(target string) string {
	base := filepath.Base(target)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-"
}

// Backup copies target into the backup directory. It returns an empty path
// and no error when target does not exist yet.
func (m *Manager) Backup(target string) (string, error) {
	srcInfo, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil // Nothing to back up
		}
		return "", fmt.Errorf("failed to stat source file '%s': %w", target, err)
	}
	if srcInfo.IsDir() {
		return "", fmt.Errorf("source path '%s' is a directory, not a file", target)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return "", fmt.Errorf("failed to read source file '%s': %w", target, err)
	}

	backupFilePath, err := m.write(target, data)
	if err != nil {
		return "", err
	}
	if err := m.Prune(target); err != nil {
		return backupFilePath, err
	}
	return backupFilePath, nil
}

// write stores data under a name no other backup uses. The name is reserved
// with O_EXCL before the content is written, so a backup is never replaced.
func (m *Manager) write(target string, data []byte) (string, error) {
	if err := os.MkdirAll(m.Dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create backup directory '%s': %w", m.Dir, err)
	}
	stamp := now().Format(timestampFormat)
	for seq := 0; seq < maxCollisions; seq++ {
		name := prefix(target) + stamp
		if seq > 0 {
			name += fmt.Sprintf("-%d", seq)
		}
		backupFilePath := filepath.Join(m.Dir, name+filepath.Ext(target))

		f, err := os.OpenFile(backupFilePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create backup file '%s': %w", backupFilePath, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(backupFilePath)
			return "", fmt.Errorf("failed to create backup file '%s': %w", backupFilePath, err)
		}

		if err := util.WriteFileAtomic(backupFilePath, data, 0600); err != nil {
			os.Remove(backupFilePath)
			return "", fmt.Errorf("failed to write backup file '%s': %w", backupFilePath, err)
		}
		return backupFilePath, nil
	}
	return "", fmt.Errorf("failed to find a free backup name for '%s' in '%s'", target, m.Dir)
}

// backupName is a parsed backup file name.
type backupName struct {
	path string
	at   time.Time
	seq  int
}

// parseName parses "<stamp>[-<seq>]" as produced by write. Second
// resolution stamps from older versions are accepted too.
func parseName(stamp string) (time.Time, int, bool) {
	seq := 0
	if i := strings.LastIndex(stamp, "-"); i > len("20060102") {
		n, err := strconv.Atoi(stamp[i+1:])
		if err != nil || n <= 0 {
			return time.Time{}, 0, false
		}
		stamp, seq = stamp[:i], n
	}
	for _, layout := range []string{timestampFormat, "20060102-150405"} {
		if at, err := time.Parse(layout, stamp); err == nil {
			return at, seq, true
		}
	}
	return time.Time{}, 0, false
}

// List returns the backups of target, newest first.
func (m *Manager) List(target string) ([]string, error) {
	entries, err := os.ReadDir(m.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory '%s': %w", m.Dir, err)
	}

	p := prefix(target)
	ext := filepath.Ext(target)
	var found []backupName
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, p) || !strings.HasSuffix(name, ext) {
			continue
		}
		at, seq, ok := parseName(strings.TrimSuffix(strings.TrimPrefix(name, p), ext))
		if !ok {
			continue // Not one of ours
		}
		found = append(found, backupName{path: filepath.Join(m.Dir, name), at: at, seq: seq})
	}

	// Newest first
	sort.Slice(found, func(i, j int) bool {
		if !found[i].at.Equal(found[j].at) {
			return found[i].at.After(found[j].at)
		}
		return found[i].seq > found[j].seq
	})
	backups := make([]string, len(found))
	for i, b := range found {
		backups[i] = b.path
	}
	return backups, nil
}

// Latest returns the newest backup of target.
func (m *Manager) Latest(target string) (string, error) {
	backups, err := m.List(target)
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", fmt.Errorf("%w for '%s' in '%s'", ErrNoBackups, target, m.Dir)
	}
	return backups[0], nil
}

// Prune deletes all but the newest Retention backups of target.
func (m *Manager) Prune(target string) error {
	if m.Retention <= 0 {
		return nil
	}
	backups, err := m.List(target)
	if err != nil {
		return err
	}
	for _, old := range backups[min(m.Retention, len(backups)):] {
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove old backup '%s': %w", old, err)
		}
	}
	return nil
}

// Restore atomically replaces target with the contents of backupFile.
func (m *Manager) Restore(backupFile, target string) error {
	data, err := readBackup(backupFile)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(target, data, 0600); err != nil {
		return fmt.Errorf("failed to restore '%s': %w", target, err)
	}
	return nil
}

// Rollback restores backupFile over target after saving the current target
// as a new backup, so the rollback can itself be undone. It returns the path
// of that new backup, or "" when target did not exist.
func (m *Manager) Rollback(backupFile, target string) (string, error) {
	data, err := readBackup(backupFile)
	if err != nil {
		return "", err
	}

	var saved string
	current, err := os.ReadFile(target)
	switch {
	case err == nil:
		if saved, err = m.write(target, current); err != nil {
			return "", err
		}
	case !os.IsNotExist(err):
		return "", fmt.Errorf("failed to read '%s': %w", target, err)
	}

	if err := util.WriteFileAtomic(target, data, 0600); err != nil {
		return saved, fmt.Errorf("failed to restore '%s': %w", target, err)
	}
	return saved, m.Prune(target)
}

func readBackup(backupFile string) ([]byte, error) {
	info, err := os.Stat(backupFile)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", backupFile)
	}
	data, err := os.ReadFile(backupFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup '%s': %w", backupFile, err)
	}
	return data, nil
}
