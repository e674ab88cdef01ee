package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content string) string {
	t.Helper()
	tmpFilePath := filepath.Join(dir, filename)
	err := os.WriteFile(tmpFilePath, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write temporary config file '%s': %v", tmpFilePath, err)
	}
	return tmpFilePath
}

// useConfigPath points getConfigPath at path for the duration of the test.
func useConfigPath(t *testing.T, path string) {
	t.Helper()
	originalGetConfigPath := getConfigPath
	getConfigPath = func() (string, error) {
		return path, nil
	}
	t.Cleanup(func() { getConfigPath = originalGetConfigPath })
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	t.Run("Load existing config", func(t *testing.T) {
		tempDir := t.TempDir()
		expectedConfig := &Config{
			DataPath:        filepath.Join(tempDir, "tools"),
			GooseConfigPath: filepath.Join(tempDir, "goose.yaml"),
			TemplatePath:    filepath.Join(tempDir, "templates"),
			DocsURL:         "http://example.com/docs.txt",
			Backups: BackupConfig{
				Path:      filepath.Join(tempDir, "backups"),
				Retention: 3,
			},
		}
		yamlData, _ := yaml.Marshal(expectedConfig)
		useConfigPath(t, createTempConfigFile(t, tempDir, DefaultConfigFileName, string(yamlData)))

		loadedConfig, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if !reflect.DeepEqual(loadedConfig, expectedConfig) {
			t.Errorf("Loaded config does not match expected.\nExpected: %+v\nGot:      %+v", expectedConfig, loadedConfig)
		}
	})

	t.Run("Load non-existent config returns defaults", func(t *testing.T) {
		nonExistentPath := filepath.Join(t.TempDir(), DefaultConfigFileName)
		useConfigPath(t, nonExistentPath)

		loadedConfig, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig failed for non-existent file: %v", err)
		}

		if _, err := os.Stat(nonExistentPath); !os.IsNotExist(err) {
			t.Errorf("LoadConfig should not create %s", nonExistentPath)
		}

		defaultConfig := GetDefaultConfig()
		if !reflect.DeepEqual(loadedConfig, defaultConfig) {
			t.Errorf("Loaded config is not the default one.\nExpected: %+v\nGot:      %+v", defaultConfig, loadedConfig)
		}
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		tempDir := t.TempDir()
		useConfigPath(t, createTempConfigFile(t, tempDir, DefaultConfigFileName, "data_path: /from/file\n"))

		t.Setenv("TOOL_ALCHEMIST_MCP_DATA_PATH", "/from/env")
		t.Setenv("TOOL_ALCHEMIST_MCP_GOOSE_CONFIG_PATH", "/env/goose.yaml")
		t.Setenv("TOOL_ALCHEMIST_MCP_BACKUPS_RETENTION", "2")

		loadedConfig, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if loadedConfig.DataPath != "/from/env" {
			t.Errorf("Expected data path from env, got %s", loadedConfig.DataPath)
		}
		if loadedConfig.GooseConfigPath != "/env/goose.yaml" {
			t.Errorf("Expected goose config path from env, got %s", loadedConfig.GooseConfigPath)
		}
		if loadedConfig.Backups.Retention != 2 {
			t.Errorf("Expected retention 2 from env, got %d", loadedConfig.Backups.Retention)
		}
	})

	t.Run("Tilde paths are expanded", func(t *testing.T) {
		tempDir := t.TempDir()
		useConfigPath(t, createTempConfigFile(t, tempDir, DefaultConfigFileName, "data_path: ~/tools\n"))

		loadedConfig, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, "tools"); loadedConfig.DataPath != want {
			t.Errorf("Expected %s, got %s", want, loadedConfig.DataPath)
		}
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		tempDir := t.TempDir()
		useConfigPath(t, createTempConfigFile(t, tempDir, DefaultConfigFileName, "data_path: [oops\n"))

		if _, err := LoadConfig(); err == nil {
			t.Error("Expected error for invalid YAML, got nil")
		}
	})
}

func TestSaveConfig(t *testing.T) {
	tempDir := t.TempDir()
	savePath := filepath.Join(tempDir, "nested", "test_config_save.yaml")

	configToSave := &Config{
		DataPath:        "/tmp/tools",
		GooseConfigPath: "/tmp/goose/config.yaml",
		DocsURL:         DefaultDocsURL,
		Backups:         BackupConfig{Path: "/tmp/alchemist_backups", Retention: 5},
	}

	useConfigPath(t, savePath)

	err := SaveConfig(configToSave)
	if err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	// Read the saved file back
	savedData, err := os.ReadFile(savePath)
	if err != nil {
		t.Fatalf("Failed to read back saved config file: %v", err)
	}

	var loadedConfig Config
	err = yaml.Unmarshal(savedData, &loadedConfig)
	if err != nil {
		t.Fatalf("Failed to unmarshal saved config data: %v", err)
	}

	if !reflect.DeepEqual(&loadedConfig, configToSave) {
		t.Errorf("Saved config does not match original.\nExpected: %+v\nGot:      %+v", configToSave, &loadedConfig)
	}

	err = SaveConfig(nil)
	if err == nil {
		t.Errorf("Expected error when saving nil config, but got nil")
	}
}
