package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"wikitree/internal/hierarchy"
)

// Config is the wikitree configuration file.
type Config struct {
	Identity ConfigIdentity `toml:"identity" yaml:"identity"`
	Wiki     ConfigWiki     `toml:"wiki" yaml:"wiki"`
	Markdown ConfigMarkdown `toml:"markdown" yaml:"markdown"`
	Render   ConfigRender   `toml:"render" yaml:"render"`
	Log      ConfigLog      `toml:"log" yaml:"log"`
}

// ConfigIdentity names the acting user and the scope their private pages
// belong to.
type ConfigIdentity struct {
	UserID  string `toml:"user_id" yaml:"user_id"`
	ScopeID string `toml:"scope_id" yaml:"scope_id"`
}

type ConfigWiki struct {
	DefaultMode string `toml:"default_mode" yaml:"default_mode"`
}

type ConfigMarkdown struct {
	Extensions []string `toml:"extensions" yaml:"extensions"`
	HardWraps  bool     `toml:"hard_wraps" yaml:"hard_wraps"`
	XHTML      bool     `toml:"xhtml" yaml:"xhtml"`
	CacheSize  int      `toml:"cache_size" yaml:"cache_size"`
}

type ConfigRender struct {
	WordWrap int    `toml:"word_wrap" yaml:"word_wrap"`
	Style    string `toml:"style" yaml:"style"`
}

type ConfigLog struct {
	Level string `toml:"level" yaml:"level"`
}

var glamourStyles = map[string]bool{
	"auto": true, "ascii": true, "dark": true, "dracula": true,
	"light": true, "notty": true, "pink": true, "tokyo-night": true,
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		Identity: ConfigIdentity{
			UserID: "local",
		},
		Wiki: ConfigWiki{
			DefaultMode: "public",
		},
		Markdown: ConfigMarkdown{
			Extensions: []string{"gfm", "table", "strikethrough", "tasklist", "linkify"},
			CacheSize:  128,
		},
		Render: ConfigRender{
			WordWrap: 80,
			Style:    "dark",
		},
		Log: ConfigLog{
			Level: "warn",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/wikitree/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "wikitree", "config.toml")
}

// Load reads a Config from path. TOML is the default format; .yaml and .yml
// files are decoded as YAML. Unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists and returns the defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

func decodeFile(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".toml":
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return err
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return fmt.Errorf("unknown config keys: %v", undec)
		}
		return nil
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported config file type %q (supported: .toml, .yaml, .yml)", ext)
	}
}

// ApplyEnv overrides file values with WIKITREE_USER, WIKITREE_SCOPE and
// WIKITREE_LOG_LEVEL when they are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("WIKITREE_USER")); v != "" {
		c.Identity.UserID = v
	}
	if v := strings.TrimSpace(getenv("WIKITREE_SCOPE")); v != "" {
		c.Identity.ScopeID = v
	}
	if v := strings.TrimSpace(getenv("WIKITREE_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
}

// Validate normalises the Config and rejects invalid values.
func (c *Config) Validate() error {
	c.Identity.UserID = strings.TrimSpace(c.Identity.UserID)
	c.Identity.ScopeID = strings.TrimSpace(c.Identity.ScopeID)
	if c.Identity.UserID == "" {
		return errors.New("identity.user_id is required")
	}

	if strings.TrimSpace(c.Wiki.DefaultMode) == "" {
		c.Wiki.DefaultMode = "public"
	}
	mode, err := hierarchy.ParseMode(c.Wiki.DefaultMode)
	if err != nil {
		return fmt.Errorf("wiki.default_mode: %w", err)
	}
	if mode == hierarchy.Private && c.Identity.ScopeID == "" {
		return errors.New("wiki.default_mode is private but identity.scope_id is empty")
	}

	if c.Markdown.CacheSize <= 0 {
		c.Markdown.CacheSize = 128
	}

	if c.Render.WordWrap < 0 {
		return fmt.Errorf("render.word_wrap must not be negative (got %d)", c.Render.WordWrap)
	}
	c.Render.Style = strings.ToLower(strings.TrimSpace(c.Render.Style))
	if c.Render.Style == "" {
		c.Render.Style = "dark"
	}
	if !glamourStyles[c.Render.Style] {
		return fmt.Errorf("render.style %q is not a known style", c.Render.Style)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Mode returns the parsed default tree mode.
func (c *Config) Mode() hierarchy.Visibility {
	mode, err := hierarchy.ParseMode(c.Wiki.DefaultMode)
	if err != nil {
		return hierarchy.Published
	}
	return mode
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (log.Level, error) {
	if strings.TrimSpace(c.Log.Level) == "" {
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(c.Log.Level)))
	if err != nil {
		return log.WarnLevel, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
