package cli

import (
	"github.com/charmbracelet/log"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/project"
)

// applyUserDefaults copies the saved app config defaults into a freshly
// built layout. Config problems are logged, never fatal; the built-in
// defaults still apply.
func applyUserDefaults(logger *log.Logger, l *model.Layout) {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Debug("app config not applied", "err", err)
		return
	}
	cfg.ApplyToSettings(&l.Settings)
}

// recordRecentLayout adds a saved layout path to the recent list in the
// app config. Best effort only.
func recordRecentLayout(logger *log.Logger, path string) {
	configPath := project.DefaultConfigPath()
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		logger.Debug("recent layouts not updated", "err", err)
		return
	}
	cfg.AddRecentLayout(path)
	if err := project.SaveAppConfig(configPath, cfg); err != nil {
		logger.Debug("recent layouts not updated", "err", err)
	}
}
