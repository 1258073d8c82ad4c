// Package project handles on-disk persistence: layout files, the
// application config, and full data backups. All files are indented
// JSON so they diff cleanly under version control.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
)

// LayoutFileVersion is written into every saved layout file.
const LayoutFileVersion = "1.0.0"

// LayoutFile wraps a layout with a version marker for forward
// compatibility checks on load.
type LayoutFile struct {
	Version string       `json:"version"`
	Layout  model.Layout `json:"layout"`
}

// SaveLayout persists a layout to the given path as JSON, creating any
// missing parent directories.
func SaveLayout(path string, l model.Layout) error {
	file := LayoutFile{
		Version: LayoutFileVersion,
		Layout:  l,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}

// LoadLayout reads a layout from the given path.
func LoadLayout(path string) (model.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	var file LayoutFile
	if err := json.Unmarshal(data, &file); err != nil {
		return model.Layout{}, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if file.Version == "" {
		return model.Layout{}, fmt.Errorf("invalid layout file: missing version field")
	}
	l := file.Layout
	if l.Settings.Controller == "" {
		l.Settings = model.DefaultSettings()
	}
	return l, nil
}
