package backup

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// fakeClock advances one second per call so every backup gets its own name.
func fakeClock(t *testing.T) {
	t.Helper()
	originalNow := now
	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	t.Cleanup(func() { now = originalNow })
}

func writeTarget(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write '%s': %v", path, err)
	}
}

func TestBackupMissingTarget(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "backups"), 0)

	path, err := m.Backup(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if path != "" {
		t.Errorf("Expected no backup for a missing file, got %s", path)
	}
}

func TestBackupAndRestore(t *testing.T) {
	fakeClock(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")
	m := NewManager(filepath.Join(dir, "backups"), 0)

	writeTarget(t, target, "version: 1\n")
	first, err := m.Backup(target)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if filepath.Base(first) != "config-20250301-120001.000000.yaml" {
		t.Errorf("Unexpected backup name: %s", filepath.Base(first))
	}

	writeTarget(t, target, "version: 2\n")
	second, err := m.Backup(target)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	latest, err := m.Latest(target)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest != second {
		t.Errorf("Expected latest backup %s, got %s", second, latest)
	}

	writeTarget(t, target, "version: broken\n")
	if err := m.Restore(first, target); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	data, _ := os.ReadFile(target)
	if string(data) != "version: 1\n" {
		t.Errorf("Restore wrote unexpected content: %q", data)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	fakeClock(t)
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	target := filepath.Join(dir, "config.yaml")
	m := NewManager(backupDir, 0)

	writeTarget(t, target, "a: 1\n")
	if _, err := m.Backup(target); err != nil {
		t.Fatal(err)
	}
	writeTarget(t, filepath.Join(backupDir, "config-notes.yaml"), "x")
	writeTarget(t, filepath.Join(backupDir, "other-20250301-120001.yaml"), "x")
	if err := os.Mkdir(filepath.Join(backupDir, "config-20250301-120009.yaml"), 0750); err != nil {
		t.Fatal(err)
	}

	backups, err := m.List(target)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("Expected exactly one backup, got %v", backups)
	}
}

func TestRetention(t *testing.T) {
	fakeClock(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")
	m := NewManager(filepath.Join(dir, "backups"), 2)

	var created []string
	for i := 0; i < 4; i++ {
		writeTarget(t, target, "n: "+string(rune('0'+i))+"\n")
		path, err := m.Backup(target)
		if err != nil {
			t.Fatalf("Backup %d failed: %v", i, err)
		}
		created = append(created, path)
	}

	backups, err := m.List(target)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{created[3], created[2]}
	if len(backups) != 2 || backups[0] != want[0] || backups[1] != want[1] {
		t.Errorf("Expected %v to be kept, got %v", want, backups)
	}
}

func TestLatestWithoutBackups(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing"), 0)
	if _, err := m.Latest("config.yaml"); !errors.Is(err, ErrNoBackups) {
		t.Errorf("Expected ErrNoBackups, got %v", err)
	}
}

func TestRollback(t *testing.T) {
	fakeClock(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")
	m := NewManager(filepath.Join(dir, "backups"), 2)

	writeTarget(t, target, "version: 1\n")
	oldest, err := m.Backup(target)
	if err != nil {
		t.Fatal(err)
	}
	writeTarget(t, target, "version: 2\n")
	if _, err := m.Backup(target); err != nil {
		t.Fatal(err)
	}
	writeTarget(t, target, "version: 3\n")

	// Rolling back to the oldest backup at full retention must not lose it
	// before its content is written.
	saved, err := m.Rollback(oldest, target)
	if err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
	data, _ := os.ReadFile(target)
	if string(data) != "version: 1\n" {
		t.Errorf("Rollback wrote unexpected content: %q", data)
	}

	savedData, err := os.ReadFile(saved)
	if err != nil {
		t.Fatalf("Expected the previous content to be saved: %v", err)
	}
	if string(savedData) != "version: 3\n" {
		t.Errorf("Saved backup has unexpected content: %q", savedData)
	}

	backups, _ := m.List(target)
	if len(backups) != 2 || backups[0] != saved {
		t.Errorf("Expected retention to keep 2 backups with the new one first, got %v", backups)
	}
}

func TestRollbackMissingBackup(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")
	writeTarget(t, target, "keep: me\n")
	m := NewManager(filepath.Join(dir, "backups"), 0)

	if _, err := m.Rollback(filepath.Join(dir, "backups", "config-20250301-120001.yaml"), target); err == nil {
		t.Fatal("Expected error for a missing backup")
	}
	data, _ := os.ReadFile(target)
	if string(data) != "keep: me\n" {
		t.Errorf("Target changed after failed rollback: %q", data)
	}
}

func TestBackupsInTheSameInstantAreKept(t *testing.T) {
	originalNow := now
	frozen := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return frozen }
	defer func() { now = originalNow }()

	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")
	m := NewManager(filepath.Join(dir, "backups"), 0)

	var created []string
	for _, content := range []string{"v1\n", "v2\n", "v3\n"} {
		writeTarget(t, target, content)
		path, err := m.Backup(target)
		if err != nil {
			t.Fatalf("Backup failed: %v", err)
		}
		created = append(created, path)
	}

	backups, err := m.List(target)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{created[2], created[1], created[0]}
	if !reflect.DeepEqual(backups, want) {
		t.Fatalf("Expected all backups newest first.\nExpected: %v\nGot:      %v", want, backups)
	}
	for i, content := range []string{"v1\n", "v2\n", "v3\n"} {
		data, _ := os.ReadFile(created[i])
		if string(data) != content {
			t.Errorf("Backup %s holds %q, want %q", created[i], data, content)
		}
	}

	// Rolling back to the oldest snapshot in the same instant saves the
	// current state under a new name instead of over the chosen backup.
	writeTarget(t, target, "v4\n")
	saved, err := m.Rollback(created[0], target)
	if err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
	if saved == created[0] {
		t.Fatalf("Rollback reused the name of the restored backup: %s", saved)
	}
	data, _ := os.ReadFile(created[0])
	if string(data) != "v1\n" {
		t.Errorf("Restored backup was overwritten: %q", data)
	}
}

func TestListAcceptsSecondResolutionNames(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backupDir, 0750); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "config.yaml")
	older := filepath.Join(backupDir, "config-20250301-120001.yaml")
	newer := filepath.Join(backupDir, "config-20250301-120002.500000.yaml")
	writeTarget(t, older, "old")
	writeTarget(t, newer, "new")

	backups, err := NewManager(backupDir, 0).List(target)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(backups, []string{newer, older}) {
		t.Errorf("Unexpected backups: %v", backups)
	}
}
