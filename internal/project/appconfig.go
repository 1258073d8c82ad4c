package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// configEnvVar overrides the config file location when set, keeping
// scripted runs away from the user's real preferences.
const configEnvVar = "LEDPLAN_CONFIG"

// DefaultConfigPath returns the application config file location:
// $LEDPLAN_CONFIG when set, ~/.ledplan/config.json otherwise.
func DefaultConfigPath() string {
	if p := os.Getenv(configEnvVar); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ledplan", "config.json")
}

// ExportPath derives the default output path for an export document
// named after the layout file, as <layout>-<doc><ext>. Documents land
// next to the layout unless the config names an export directory.
func ExportPath(cfg model.AppConfig, layoutPath, doc, ext string) string {
	base := strings.TrimSuffix(filepath.Base(layoutPath), filepath.Ext(layoutPath))
	name := fmt.Sprintf("%s-%s%s", base, doc, ext)
	if cfg.ExportDir != "" {
		return filepath.Join(cfg.ExportDir, name)
	}
	return filepath.Join(filepath.Dir(layoutPath), name)
}

// SaveAppConfig persists the config as indented JSON, creating any
// missing parent directories.
func SaveAppConfig(path string, config model.AppConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadAppConfig reads the config file. A missing file is not an error;
// it yields the built-in defaults so first runs work unconfigured.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DefaultAppConfig(), nil
	}
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.RecentLayouts == nil {
		config.RecentLayouts = []string{}
	}
	return config, nil
}
