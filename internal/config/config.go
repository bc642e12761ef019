// Package config provides configuration management for the start page.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/xvierd/startpage/internal/commands"
	"github.com/xvierd/startpage/internal/domain"
)

// Config holds all configuration for the start page.
type Config struct {
	Theme         ThemeConfig        `mapstructure:"theme"`
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Catalog       CatalogConfig      `mapstructure:"catalog"`
	Log           LogConfig          `mapstructure:"log"`
	Commands      []CommandConfig    `mapstructure:"commands"`
}

// ThemeConfig holds the starting theme and the palette of each theme.
type ThemeConfig struct {
	Default string        `mapstructure:"default"`
	Purple  PaletteConfig `mapstructure:"purple"`
	Green   PaletteConfig `mapstructure:"green"`
	Teal    PaletteConfig `mapstructure:"teal"`
}

// PaletteConfig is the set of colors one theme renders with.
type PaletteConfig struct {
	Accent string `mapstructure:"accent"`
	Muted  string `mapstructure:"muted"`
	Text   string `mapstructure:"text"`
	Border string `mapstructure:"border"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		Default: string(domain.DefaultTheme),
		Purple: PaletteConfig{
			Accent: "#7C6FE0",
			Muted:  "#6B7280",
			Text:   "#E5E7EB",
			Border: "#A78BFA",
		},
		Green: PaletteConfig{
			Accent: "#2ECC71",
			Muted:  "#4B5563",
			Text:   "#E5E7EB",
			Border: "#6EE7B7",
		},
		Teal: PaletteConfig{
			Accent: "#4ECDC4",
			Muted:  "#6B7280",
			Text:   "#E5E7EB",
			Border: "#5EEAD4",
		},
	}
}

// Palette returns the colors of theme t. Unknown themes get the purple palette.
func (c ThemeConfig) Palette(t domain.Theme) PaletteConfig {
	switch t {
	case domain.ThemeGreen:
		return c.Green
	case domain.ThemeTeal:
		return c.Teal
	default:
		return c.Purple
	}
}

// TimerConfig holds countdown settings.
type TimerConfig struct {
	WorkDuration  Duration `mapstructure:"work_duration"`
	BreakDuration Duration `mapstructure:"break_duration"`
	NoticeWindow  Duration `mapstructure:"notice_window"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// CatalogConfig holds link catalog settings.
type CatalogConfig struct {
	// Seed imports the built-in links into an empty store.
	Seed bool `mapstructure:"seed"`
	// CacheSize bounds the filter result cache.
	CacheSize int `mapstructure:"cache_size"`
	// File, when set, serves the catalog from a JSON, TOML or YAML file
	// instead of the store.
	File string `mapstructure:"file"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// CommandConfig is one entry of a command table override.
type CommandConfig struct {
	Trigger string `mapstructure:"trigger"`
	Target  string `mapstructure:"target"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

const defaultDataDir = "~/.startpage"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Theme: DefaultThemeConfig(),
		Timer: TimerConfig{
			WorkDuration:  Duration(25 * time.Minute),
			BreakDuration: Duration(5 * time.Minute),
			NoticeWindow:  Duration(3 * time.Second),
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   false,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
		Catalog: CatalogConfig{
			Seed:      true,
			CacheSize: 128,
		},
		Log: LogConfig{
			Level: "warn",
			File:  "startpage.log",
		},
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := unmarshal()
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	dataDir, err := expandHome(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// unmarshal decodes viper's current settings. Values written by Set arrive
// as strings, so input is weakly typed.
func unmarshal() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)), func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func expandHome(path string) (string, error) {
	if path == "" {
		path = defaultDataDir
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if _, err := domain.ValidateTheme(c.Theme.Default); err != nil {
		return err
	}
	if c.Timer.WorkDuration < Duration(time.Second) || c.Timer.BreakDuration < Duration(time.Second) {
		return fmt.Errorf("timer durations must be at least 1s")
	}
	if _, err := c.CommandTable(); err != nil {
		return err
	}
	return nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("theme.default", cfg.Theme.Default)
	for name, p := range map[string]PaletteConfig{
		"purple": cfg.Theme.Purple,
		"green":  cfg.Theme.Green,
		"teal":   cfg.Theme.Teal,
	} {
		viper.Set("theme."+name+".accent", p.Accent)
		viper.Set("theme."+name+".muted", p.Muted)
		viper.Set("theme."+name+".text", p.Text)
		viper.Set("theme."+name+".border", p.Border)
	}
	viper.Set("timer.work_duration", cfg.Timer.WorkDuration.String())
	viper.Set("timer.break_duration", cfg.Timer.BreakDuration.String())
	viper.Set("timer.notice_window", cfg.Timer.NoticeWindow.String())
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("catalog.seed", cfg.Catalog.Seed)
	viper.Set("catalog.cache_size", cfg.Catalog.CacheSize)
	viper.Set("catalog.file", cfg.Catalog.File)
	viper.Set("log.level", cfg.Log.Level)
	viper.Set("log.file", cfg.Log.File)

	if len(cfg.Commands) > 0 {
		entries := make([]map[string]any, 0, len(cfg.Commands))
		for _, c := range cfg.Commands {
			entries = append(entries, map[string]any{"trigger": c.Trigger, "target": c.Target})
		}
		viper.Set("commands", entries)
	}

	return viper.WriteConfig()
}

// Keys lists the settable scalar keys, sorted.
func Keys() []string {
	keys := []string{
		"theme.default",
		"timer.work_duration",
		"timer.break_duration",
		"timer.notice_window",
		"notifications.enabled",
		"notifications.sound",
		"storage.data_dir",
		"catalog.seed",
		"catalog.cache_size",
		"catalog.file",
		"log.level",
		"log.file",
	}
	for _, theme := range domain.Themes {
		for _, field := range []string{"accent", "muted", "text", "border"} {
			keys = append(keys, "theme."+string(theme)+"."+field)
		}
	}
	sort.Strings(keys)
	return keys
}

// Set changes one key and writes the file. Values are validated by
// reloading the result.
func Set(key, value string) error {
	known := false
	for _, k := range Keys() {
		if k == key {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown config key %q", key)
	}

	if _, err := Load(); err != nil {
		return err
	}
	previous := viper.Get(key)
	viper.Set(key, value)
	if _, err := decodeCurrent(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return viper.WriteConfig()
}

// Get returns the loaded value of key as text.
func Get(key string) string {
	return viper.GetString(key)
}

func decodeCurrent() (*Config, error) {
	cfg, err := unmarshal()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".startpage", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "startpage.db")
}

// GetLogPath returns the path of the log file used while the TUI runs.
func GetLogPath(cfg *Config) string {
	if filepath.IsAbs(cfg.Log.File) {
		return cfg.Log.File
	}
	name := cfg.Log.File
	if name == "" {
		name = "startpage.log"
	}
	return filepath.Join(cfg.Storage.DataDir, name)
}

// setDefaults sets default values for viper.
func setDefaults() {
	defaults := DefaultConfig()
	viper.SetDefault("theme.default", defaults.Theme.Default)
	for _, theme := range domain.Themes {
		p := defaults.Theme.Palette(theme)
		viper.SetDefault("theme."+string(theme)+".accent", p.Accent)
		viper.SetDefault("theme."+string(theme)+".muted", p.Muted)
		viper.SetDefault("theme."+string(theme)+".text", p.Text)
		viper.SetDefault("theme."+string(theme)+".border", p.Border)
	}
	viper.SetDefault("timer.work_duration", "25m0s")
	viper.SetDefault("timer.break_duration", "5m0s")
	viper.SetDefault("timer.notice_window", "3s")
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", false)
	viper.SetDefault("storage.data_dir", defaultDataDir)
	viper.SetDefault("catalog.seed", true)
	viper.SetDefault("catalog.cache_size", 128)
	viper.SetDefault("catalog.file", "")
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.file", "startpage.log")
}

// ToTimerConfig converts the timer section to the domain type.
func (c *Config) ToTimerConfig() domain.TimerConfig {
	cfg := domain.DefaultTimerConfig()
	if c.Timer.WorkDuration > 0 {
		cfg.WorkDuration = time.Duration(c.Timer.WorkDuration)
	}
	if c.Timer.BreakDuration > 0 {
		cfg.BreakDuration = time.Duration(c.Timer.BreakDuration)
	}
	if c.Timer.NoticeWindow > 0 {
		cfg.NoticeWindow = time.Duration(c.Timer.NoticeWindow)
	}
	return cfg
}

// StartTheme returns the theme the desk opens with.
func (c *Config) StartTheme() domain.Theme {
	t, err := domain.ValidateTheme(c.Theme.Default)
	if err != nil {
		return domain.DefaultTheme
	}
	return t
}

// CommandTable builds the command table: the override when one is
// configured, otherwise the built-in table.
func (c *Config) CommandTable() (*commands.Table, error) {
	if len(c.Commands) == 0 {
		return commands.Default(), nil
	}
	entries := make([]commands.Entry, 0, len(c.Commands))
	for _, cc := range c.Commands {
		action, err := commands.ParseAction(cc.Target)
		if err != nil {
			return nil, fmt.Errorf("%w: trigger %q: %v", domain.ErrInvalidCommand, cc.Trigger, err)
		}
		entries = append(entries, commands.Entry{Trigger: cc.Trigger, Action: action})
	}
	return commands.NewTable(entries)
}
