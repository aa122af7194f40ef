package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration.
// Colors maps a color key such as "bullet" to #RRGGBB, #RGB or rgb(r,g,b).
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// fields maps TOML color keys to the color they set
func (c *Colors) fields() map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"text":             &c.Text,
		"bullet":           &c.Bullet,
		"checkbox":         &c.Checkbox,
		"checkbox_done":    &c.CheckboxDone,
		"note":             &c.Note,
		"fold_marker":      &c.FoldMarker,
		"selection":        &c.Selection,
		"plain":            &c.Plain,
		"command_prompt":   &c.CommandPrompt,
		"command_text":     &c.CommandText,
		"palette_match":    &c.PaletteMatch,
		"palette_selected": &c.PaletteSelected,
		"help_background":  &c.HelpBackground,
		"help_border":      &c.HelpBorder,
		"help_title":       &c.HelpTitle,
		"status_mode":      &c.StatusMode,
		"status_message":   &c.StatusMessage,
		"status_modified":  &c.StatusModified,
		"header_title":     &c.HeaderTitle,
	}
}

// ColorKeys returns the color keys a theme file may set, sorted
func ColorKeys() []string {
	var c Colors
	keys := make([]string, 0)
	for key := range c.fields() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "outline-engine", "themes"),
			filepath.Join(home, ".local", "share", "outline-engine", "themes"),
		)
	}

	return paths
}

// findThemeFile searches for a theme file in the given directories
func findThemeFile(themeName string, dirs []string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range dirs {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config)
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName, getThemePaths())
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo Night
// for missing colors. Unknown color keys are an error.
func configToTheme(config ThemeConfig) (*Theme, error) {
	theme := TokyoNight()
	fields := theme.Colors.fields()

	for key, value := range config.Colors {
		field, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("unknown theme color %q", key)
		}
		*field = ParseColorString(value)
	}

	if config.Name != "" {
		theme.Name = config.Name
	}

	return theme, nil
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "tokyo-night":
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
