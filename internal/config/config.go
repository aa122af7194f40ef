package config

import (
	"cmp"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Cursor stick modes: which part of an item's first line the cursor is kept out of
const (
	StickBulletAndCheckbox = "bullet-and-checkbox"
	StickBulletOnly        = "bullet-only"
	StickNever             = "never"
)

const (
	defaultTheme  = "tokyo-night"
	defaultIndent = "\t"
)

// Config is the persisted configuration plus settings changed for this
// session only
type Config struct {
	Theme       string            `toml:"theme"`
	Indent      string            `toml:"indent"`
	StickCursor string            `toml:"stick_cursor"`
	Debug       bool              `toml:"debug"`
	Settings    map[string]string `toml:"settings"`

	session map[string]string
}

// Snapshot is the small set of toggles the outline engine is called with
type Snapshot struct {
	DefaultIndent    string
	CheckboxInPrefix bool
	KeepInContent    bool
	Debug            bool
}

func defaultConfig() *Config {
	return &Config{
		Theme:       defaultTheme,
		Indent:      defaultIndent,
		StickCursor: StickBulletAndCheckbox,
		Settings:    map[string]string{},
		session:     map[string]string{},
	}
}

// Dir returns ~/.config/outline-engine
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "outline-engine"), nil
}

// Load reads config.toml from Dir. Without a home directory the defaults apply.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return defaultConfig(), nil
	}
	return LoadFromFile(filepath.Join(dir, "config.toml"))
}

// LoadFromFile reads the TOML file at path over the defaults. A missing file
// gives the defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Theme == "" {
		c.Theme = defaultTheme
	}
	if c.Indent == "" {
		c.Indent = defaultIndent
	}
	switch c.StickCursor {
	case "":
		c.StickCursor = StickBulletAndCheckbox
	case StickBulletAndCheckbox, StickBulletOnly, StickNever:
	default:
		return fmt.Errorf("invalid stick_cursor %q", c.StickCursor)
	}
	if c.Settings == nil {
		c.Settings = map[string]string{}
	}
	return nil
}

// Set changes key for this session only
func (c *Config) Set(key, value string) {
	if c.session == nil {
		c.session = map[string]string{}
	}
	c.session[key] = value
}

// Get returns the session value of key, then the persisted one, then ""
func (c *Config) Get(key string) string {
	if v, ok := c.session[key]; ok {
		return v
	}
	return c.Settings[key]
}

// GetAll merges persisted and session settings, session winning
func (c *Config) GetAll() map[string]string {
	all := maps.Clone(c.Settings)
	if all == nil {
		all = map[string]string{}
	}
	maps.Copy(all, c.session)
	return all
}

// Snapshot returns the engine toggles, honoring "indent", "stick_cursor" and
// "debug" session overrides
func (c *Config) Snapshot() Snapshot {
	indent := cmp.Or(c.Get("indent"), c.Indent, defaultIndent)
	stick := cmp.Or(c.Get("stick_cursor"), c.StickCursor)
	return Snapshot{
		DefaultIndent:    indent,
		CheckboxInPrefix: stick == StickBulletAndCheckbox,
		KeepInContent:    stick != StickNever,
		Debug:            c.Debug || c.Get("debug") == "true",
	}
}

// SaveToFile writes the persisted settings to path. Session settings are not saved.
func (c *Config) SaveToFile(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
