package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tool-alchemist/alchemist/internal/util"
)

const DefaultConfigFileName = "config.yaml"

// EnvPrefix prefixes every environment override, e.g. TOOL_ALCHEMIST_MCP_DATA_PATH.
const EnvPrefix = "TOOL_ALCHEMIST_MCP"

// DefaultDocsURL is the MCP reference documentation served as llmcontext://mcpdocs.
const DefaultDocsURL = "https://modelcontextprotocol.io/llms-full.txt"

const defaultRetention = 10

// getConfigDir returns the application's configuration directory path.
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "alchemist"), nil
}

// Variable to allow mocking in tests
var getConfigPath = func() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, DefaultConfigFileName), nil
}

// ConfigPath returns the location of config.yaml.
func ConfigPath() (string, error) {
	return getConfigPath()
}

// DefaultGooseConfigPath returns where goose keeps its extension registry.
func DefaultGooseConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "goose", DefaultConfigFileName)
	}
	return util.MustExpandPath(filepath.Join("~", ".config", "goose", DefaultConfigFileName))
}

// GetDefaultConfig returns the default configuration structure.
func GetDefaultConfig() *Config {
	configDir, _ := getConfigDir()              // Ignore error for default path generation
	backupPath := "~/.config/alchemist/backups" // Default string
	if configDir != "" {
		backupPath = filepath.Join(configDir, "backups")
	}

	return &Config{
		DataPath:        util.MustExpandPath(filepath.Join("~", ".local", "share", "tool-alchemist")),
		GooseConfigPath: DefaultGooseConfigPath(),
		DocsURL:         DefaultDocsURL,
		Backups: BackupConfig{
			Path:      backupPath,
			Retention: defaultRetention,
		},
	}
}

// newViper binds defaults, config.yaml and TOOL_ALCHEMIST_MCP_* overrides.
func newViper(configFilePath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configFilePath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := GetDefaultConfig()
	v.SetDefault("data_path", defaults.DataPath)
	v.SetDefault("goose_config_path", defaults.GooseConfigPath)
	v.SetDefault("template_path", defaults.TemplatePath)
	v.SetDefault("docs_url", defaults.DocsURL)
	v.SetDefault("backups.path", defaults.Backups.Path)
	v.SetDefault("backups.retention", defaults.Backups.Retention)
	return v
}

// LoadConfig loads the application configuration from the default path.
// A missing file is not an error: defaults and environment overrides apply.
func LoadConfig() (*Config, error) {
	configFilePath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	v := newViper(configFilePath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", configFilePath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file '%s': %w", configFilePath, err)
	}

	for _, p := range []*string{&cfg.DataPath, &cfg.GooseConfigPath, &cfg.TemplatePath, &cfg.Backups.Path} {
		expanded, err := util.ExpandPath(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}
	if cfg.Backups.Retention < 0 {
		return nil, fmt.Errorf("backups.retention must not be negative, got %d", cfg.Backups.Retention)
	}

	return &cfg, nil
}

// SaveConfig saves the application configuration to the default path.
func SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save a nil config")
	}
	configFilePath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to determine config path for saving: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := util.WriteFileAtomic(configFilePath, data, 0600); err != nil { // Use 0600 for config files
		return fmt.Errorf("failed to write config file '%s': %w", configFilePath, err)
	}

	return nil
}
