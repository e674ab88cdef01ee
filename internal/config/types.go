package config

// Config represents the structure of config.yaml
type Config struct {
	DataPath        string       `mapstructure:"data_path" yaml:"data_path"`
	GooseConfigPath string       `mapstructure:"goose_config_path" yaml:"goose_config_path"`
	TemplatePath    string       `mapstructure:"template_path" yaml:"template_path,omitempty"`
	DocsURL         string       `mapstructure:"docs_url" yaml:"docs_url"`
	Backups         BackupConfig `mapstructure:"backups" yaml:"backups"`
}

// BackupConfig defines backup settings for the goose registry
type BackupConfig struct {
	Path      string `mapstructure:"path" yaml:"path"`
	Retention int    `mapstructure:"retention" yaml:"retention"`
}
