package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"admindash/internal/dataset"
	"admindash/internal/errors"
	"admindash/internal/navigator"
	"admindash/internal/query"
)

// ScreenConfig overrides the opening sort and row limit of one screen
type ScreenConfig struct {
	Sort  string `yaml:"sort,omitempty"`  // Field to sort by
	Order string `yaml:"order,omitempty"` // asc or desc
	Limit int    `yaml:"limit,omitempty"` // Max rows printed by the CLI, 0 = all
}

// Config represents the application configuration structure.
type Config struct {
	Data struct {
		Dir        string `yaml:"dir"`         // Directory holding <screen>.yaml seed files; empty = built-in data
		Watch      bool   `yaml:"watch"`       // Reload seed files when they change
		DebounceMs int    `yaml:"debounce_ms"` // Quiet period before a reload
	} `yaml:"data"`
	Screens map[string]ScreenConfig `yaml:"screens"`
	Logging struct {
		Level string `yaml:"level"` // logrus level name
		JSON  bool   `yaml:"json"`  // One JSON object per line
		File  string `yaml:"file"`  // Optional file to tee logs into
	} `yaml:"logging"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Primary color for branding
		Success  string `yaml:"success"`  // Success message color
		Warning  string `yaml:"warning"`  // Warning message color
		Error    string `yaml:"error"`    // Error message color
		Info     string `yaml:"info"`     // Informational message color
		Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
		Border   string `yaml:"border"`   // Border color for frames
	} `yaml:"theme"`
}

// DefaultPath is ~/.config/admindash/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "admindash", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration. The result is not
// validated; callers apply their overrides and then call Validate.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if tempCfg.Data.Dir != "" {
		cfg.Data.Dir = tempCfg.Data.Dir
	}
	cfg.Data.Watch = tempCfg.Data.Watch
	if tempCfg.Data.DebounceMs > 0 {
		cfg.Data.DebounceMs = tempCfg.Data.DebounceMs
	}

	for name, sc := range tempCfg.Screens {
		merged := cfg.Screens[name]
		if sc.Sort != "" {
			merged.Sort = sc.Sort
		}
		if sc.Order != "" {
			merged.Order = sc.Order
		}
		if sc.Limit != 0 {
			merged.Limit = sc.Limit
		}
		cfg.Screens[name] = merged
	}

	if tempCfg.Logging.Level != "" {
		cfg.Logging.Level = tempCfg.Logging.Level
	}
	cfg.Logging.JSON = tempCfg.Logging.JSON
	cfg.Logging.File = tempCfg.Logging.File

	if tempCfg.Theme.Name != "" {
		cfg.ApplyTheme(tempCfg.Theme.Name)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration: built-in data, the screens'
// own default sorts and info logging.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Data.DebounceMs = 200
	cfg.Screens = make(map[string]ScreenConfig)
	for _, s := range dataset.Screens() {
		cfg.Screens[s.Name] = ScreenConfig{
			Sort:  s.Default.SortField,
			Order: s.Default.SortDirection.String(),
		}
	}
	cfg.Screens[dataset.ScreenFiles] = ScreenConfig{Sort: navigator.SortName, Order: query.Asc.String()}
	cfg.Logging.Level = "info"
	cfg.ApplyTheme("default")
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func invalid(param string, err error) error {
	return errors.NewConfigError("invalid configuration", param, errors.InvalidConfig, err)
}

func screenEngine(name string) (*query.Engine, bool) {
	if name == dataset.ScreenFiles {
		return navigator.ListingEngine, true
	}
	s, err := dataset.LookupScreen(name)
	if err != nil {
		return nil, false
	}
	return s.Engine, true
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	if c.Data.DebounceMs < 0 {
		return invalid("data.debounce_ms", fmt.Errorf("must be >= 0, got %d", c.Data.DebounceMs))
	}

	names := make([]string, 0, len(c.Screens))
	for name := range c.Screens {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sc := c.Screens[name]
		engine, ok := screenEngine(name)
		if !ok {
			return invalid("screens."+name, fmt.Errorf("unknown screen"))
		}
		if sc.Sort != "" {
			if _, ok := engine.Field(sc.Sort); !ok {
				return invalid("screens."+name+".sort", fmt.Errorf("unknown field %q", sc.Sort))
			}
		}
		if _, err := query.ParseDirection(sc.Order); err != nil {
			return invalid("screens."+name+".order", err)
		}
		if sc.Limit < 0 {
			return invalid("screens."+name+".limit", fmt.Errorf("must be >= 0, got %d", sc.Limit))
		}
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging.level", err)
	}

	if c.Theme.Name != "" {
		known := false
		for _, t := range ListThemes() {
			known = known || t == c.Theme.Name
		}
		if !known {
			return invalid("theme.name", fmt.Errorf("unknown theme %q", c.Theme.Name))
		}
	}

	if c.Data.Dir != "" {
		info, err := os.Stat(c.Data.Dir)
		if err != nil {
			return invalid("data.dir", err)
		}
		if !info.IsDir() {
			return invalid("data.dir", fmt.Errorf("%s is not a directory", c.Data.Dir))
		}
	}
	return nil
}

// Screen returns the settings of a screen, zero if it has none
func (c *Config) Screen(name string) ScreenConfig {
	return c.Screens[name]
}

// Query returns base with the screen's configured sort applied. The
// configuration is validated, so unknown values are ignored here.
func (c *Config) Query(name string, base query.Query) query.Query {
	sc := c.Screen(name)
	field, dir := base.SortField, base.SortDirection
	if sc.Sort != "" {
		field = sc.Sort
	}
	if sc.Order != "" {
		if d, err := query.ParseDirection(sc.Order); err == nil {
			dir = d
		}
	}
	return base.WithSort(field, dir)
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "255",
			"border":   "245",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme colors from a predefined theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
