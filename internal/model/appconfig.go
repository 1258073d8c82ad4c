package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new layouts
	DefaultMode       string  `json:"default_mode"` // "indoor" or "outdoor"
	DefaultGridStep   float64 `json:"default_grid_step"`
	DefaultPitch      float64 `json:"default_pitch"`
	DefaultController string  `json:"default_controller"`

	// Application preferences
	RecentLayouts []string `json:"recent_layouts"`
	ExportDir     string   `json:"export_dir,omitempty"`
}

// maxRecentLayouts caps the recent-file list.
const maxRecentLayouts = 10

// DefaultAppConfig returns an AppConfig populated with the same defaults
// a fresh layout gets from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMode:       ModeIndoor,
		DefaultGridStep:   defaults.GridStep,
		DefaultPitch:      defaults.DefaultPitch,
		DefaultController: defaults.Controller,
		RecentLayouts:     []string{},
	}
}

// ApplyToSettings copies the saved defaults into a LayoutSettings struct.
// Used when creating a new layout so it inherits the user's preferences.
func (c AppConfig) ApplyToSettings(s *LayoutSettings) {
	if c.DefaultGridStep > 0 {
		s.GridStep = c.DefaultGridStep
	}
	if c.DefaultPitch > 0 {
		s.DefaultPitch = c.DefaultPitch
	}
	if c.DefaultController != "" {
		s.Controller = c.DefaultController
	}
}

// AddRecentLayout prepends a path to the recent-layout list, removing any
// earlier occurrence and trimming to the cap.
func (c *AppConfig) AddRecentLayout(path string) {
	out := []string{path}
	for _, p := range c.RecentLayouts {
		if p != path && len(out) < maxRecentLayouts {
			out = append(out, p)
		}
	}
	c.RecentLayouts = out
}
