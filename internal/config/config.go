// Package config loads Fido's layered YAML configuration.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/phone"
	"github.com/Aman-CERP/fido/internal/phonetic"
	"github.com/Aman-CERP/fido/internal/telephony"
)

// Config represents the complete Fido configuration.
type Config struct {
	Version  int            `yaml:"version" json:"version"`
	Contacts ContactsConfig `yaml:"contacts" json:"contacts"`
	Phone    PhoneConfig    `yaml:"phone" json:"phone"`
	Search   SearchConfig   `yaml:"search" json:"search"`
	UI       UIConfig       `yaml:"ui" json:"ui"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Watch    WatchConfig    `yaml:"watch" json:"watch"`
}

// ContactsConfig lists where contacts come from.
type ContactsConfig struct {
	Sources []SourceConfig `yaml:"sources" json:"sources"`

	// SkipFailed loads the remaining sources when one fails.
	SkipFailed bool `yaml:"skip_failed" json:"skip_failed"`
}

// SourceConfig is one contact source.
type SourceConfig struct {
	// Type is vcard, yaml or sqlite. Empty infers it from the extension.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
	Path string `yaml:"path" json:"path"`
}

// PhoneConfig configures number display and calling.
type PhoneConfig struct {
	// DefaultRegion formats numbers written without a country code.
	DefaultRegion string `yaml:"default_region" json:"default_region"`

	// CallCommand opens tel:// URIs. Empty uses the OS default opener.
	CallCommand string `yaml:"call_command" json:"call_command"`

	// DryRun logs calls instead of placing them.
	DryRun bool `yaml:"dry_run" json:"dry_run"`
}

// SearchConfig configures filtering outside the keypad.
type SearchConfig struct {
	// MaxResults caps CLI and MCP result lists. 0 means no cap.
	MaxResults int `yaml:"max_results" json:"max_results"`

	// PhoneticCacheSize is the transliteration LRU size. 0 disables it.
	PhoneticCacheSize int `yaml:"phonetic_cache_size" json:"phonetic_cache_size"`
}

// UIConfig configures the keypad.
type UIConfig struct {
	NoColor bool `yaml:"no_color" json:"no_color"`
	Compact bool `yaml:"compact" json:"compact"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
}

// WatchConfig configures source reloading.
type WatchConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Debounce string `yaml:"debounce" json:"debounce"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Contacts: ContactsConfig{
			Sources: []SourceConfig{{Type: contact.KindSQLite, Path: DefaultStorePath()}},
		},
		Phone: PhoneConfig{
			DefaultRegion: phone.DefaultRegion,
		},
		Search: SearchConfig{
			MaxResults:        50,
			PhoneticCacheSize: phonetic.DefaultCacheSize,
		},
		Server: ServerConfig{
			Transport: "stdio",
			LogLevel:  "info",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: "250ms",
		},
	}
}

// DefaultDataDir is ~/.fido.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".fido")
	}
	return filepath.Join(home, ".fido")
}

// DefaultStorePath is the SQLite store `fido import` writes to.
func DefaultStorePath() string {
	return filepath.Join(DefaultDataDir(), "contacts.db")
}

// GetUserConfigPath returns the path to the user configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/fido/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/fido/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fido", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "fido", "config.yaml")
	}
	return filepath.Join(home, ".config", "fido", "config.yaml")
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	_, err := os.Stat(GetUserConfigPath())
	return err == nil
}

// Load builds the configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/fido/config.yaml)
//  3. The file at explicitPath, when non-empty (must exist)
//  4. Environment variables (FIDO_*)
func Load(explicitPath string) (*Config, error) {
	cfg := NewConfig()

	userPath := GetUserConfigPath()
	if _, err := os.Stat(userPath); err == nil {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, err
		}
	}

	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, errors.New(errors.ErrCodeConfigNotFound, "config file not found", err).
				WithDetail("path", explicitPath).
				WithSuggestion("Run 'fido config init' to create one")
		}
		if err := cfg.loadYAML(explicitPath); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML merges the file at path into c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.ErrCodeConfigNotFound, "failed to read config file", err).
			WithDetail("path", path)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return errors.New(errors.ErrCodeConfigInvalid, "failed to parse config file", err).
			WithDetail("path", path)
	}

	// Booleans are taken from the file only when the key is present.
	var present map[string]any
	_ = yaml.Unmarshal(data, &present)

	c.mergeWith(&parsed, present)
	return nil
}

func has(present map[string]any, section, key string) bool {
	s, ok := present[section].(map[string]any)
	if !ok {
		return false
	}
	_, ok = s[key]
	return ok
}

// mergeWith merges values set in other into c. present lists the keys the
// file actually contained, so explicit false values override.
func (c *Config) mergeWith(other *Config, present map[string]any) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if len(other.Contacts.Sources) > 0 {
		c.Contacts.Sources = other.Contacts.Sources
	}
	if has(present, "contacts", "skip_failed") {
		c.Contacts.SkipFailed = other.Contacts.SkipFailed
	}

	if other.Phone.DefaultRegion != "" {
		c.Phone.DefaultRegion = other.Phone.DefaultRegion
	}
	if other.Phone.CallCommand != "" {
		c.Phone.CallCommand = other.Phone.CallCommand
	}
	if has(present, "phone", "dry_run") {
		c.Phone.DryRun = other.Phone.DryRun
	}

	if has(present, "search", "max_results") {
		c.Search.MaxResults = other.Search.MaxResults
	}
	if has(present, "search", "phonetic_cache_size") {
		c.Search.PhoneticCacheSize = other.Search.PhoneticCacheSize
	}

	if has(present, "ui", "no_color") {
		c.UI.NoColor = other.UI.NoColor
	}
	if has(present, "ui", "compact") {
		c.UI.Compact = other.UI.Compact
	}

	if other.Server.Transport != "" {
		c.Server.Transport = other.Server.Transport
	}
	if other.Server.LogLevel != "" {
		c.Server.LogLevel = other.Server.LogLevel
	}

	if has(present, "watch", "enabled") {
		c.Watch.Enabled = other.Watch.Enabled
	}
	if other.Watch.Debounce != "" {
		c.Watch.Debounce = other.Watch.Debounce
	}
}

// applyEnvOverrides applies FIDO_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// FIDO_CONTACTS is a list of paths, type inferred from the extension.
	if v := os.Getenv("FIDO_CONTACTS"); v != "" {
		var sources []SourceConfig
		for _, p := range filepath.SplitList(v) {
			if p = strings.TrimSpace(p); p != "" {
				sources = append(sources, SourceConfig{Path: p})
			}
		}
		if len(sources) > 0 {
			c.Contacts.Sources = sources
		}
	}
	if v := os.Getenv("FIDO_REGION"); v != "" {
		c.Phone.DefaultRegion = v
	}
	if v := os.Getenv("FIDO_CALL_COMMAND"); v != "" {
		c.Phone.CallCommand = v
	}
	if v := os.Getenv("FIDO_DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Phone.DryRun = b
		}
	}
	if v := os.Getenv("FIDO_LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.Contacts.Sources) == 0 {
		return invalid("contacts.sources must list at least one source", "")
	}
	for _, s := range c.Contacts.Sources {
		if strings.TrimSpace(s.Path) == "" {
			return invalid("contacts.sources entries need a path", "")
		}
		kind := s.Type
		if kind == "" {
			kind = contact.KindFromPath(s.Path)
		}
		switch strings.ToLower(kind) {
		case contact.KindVCard, contact.KindYAML, contact.KindSQLite:
		default:
			return invalid("contacts.sources type must be 'vcard', 'yaml' or 'sqlite'", s.Path)
		}
	}

	if err := phone.ValidateRegion(c.Phone.DefaultRegion); err != nil {
		return err
	}

	if c.Search.MaxResults < 0 {
		return invalid("search.max_results must be non-negative", strconv.Itoa(c.Search.MaxResults))
	}
	if c.Search.PhoneticCacheSize < 0 {
		return invalid("search.phonetic_cache_size must be non-negative", strconv.Itoa(c.Search.PhoneticCacheSize))
	}

	if !strings.EqualFold(c.Server.Transport, "stdio") {
		return invalid("server.transport must be 'stdio'", c.Server.Transport)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Server.LogLevel)] {
		return invalid("server.log_level must be 'debug', 'info', 'warn', or 'error'", c.Server.LogLevel)
	}

	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	return nil
}

func invalid(msg, value string) error {
	err := errors.New(errors.ErrCodeConfigInvalid, msg, nil)
	if value != "" {
		err = err.WithDetail("value", value)
	}
	return err.WithSuggestion("Check " + GetUserConfigPath())
}

// DebounceDuration parses Watch.Debounce. Empty means the watcher default.
func (c *Config) DebounceDuration() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeConfigInvalid, "watch.debounce must be a duration like 250ms", err).
			WithDetail("value", c.Watch.Debounce)
	}
	return d, nil
}

// CallCommand returns the configured opener, or the OS default.
func (c *Config) CallCommand() string {
	if c.Phone.CallCommand != "" {
		return c.Phone.CallCommand
	}
	return telephony.DefaultCommand()
}

// WriteYAML writes the configuration to a YAML file, creating its directory.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.InternalError("failed to marshal config", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.New(errors.ErrCodeSourcePermission, "failed to create config directory", err).
			WithDetail("path", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.ErrCodeSourcePermission, "failed to write config file", err).
			WithDetail("path", path)
	}
	return nil
}
