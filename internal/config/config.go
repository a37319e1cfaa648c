package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"

	"github.com/chronicle-dev/chronicle/internal/branding"
	"github.com/chronicle-dev/chronicle/internal/paths"
)

// Default values applied when chronicle.yaml omits the corresponding key.
const (
	DefaultArchiveFile  = "archive.md"
	DefaultTemplateFile = "templates/archive.md"
	DefaultRecents      = 10
)

// Section describes one directory of posts in the archive.
type Section struct {
	Title       string `mapstructure:"title" yaml:"title"`
	Dir         string `mapstructure:"dir" yaml:"dir"`
	Description string `mapstructure:"description" yaml:"description,omitempty"`

	// PlainDates suppresses the trailing date annotation on list items,
	// for sections whose entries are titled by date already.
	PlainDates bool `mapstructure:"plain_dates" yaml:"plain_dates,omitempty"`
}

// Config is the parsed chronicle.yaml.
type Config struct {
	ArchiveFile  string    `mapstructure:"archive_file" yaml:"archive_file"`
	TemplateFile string    `mapstructure:"template_file" yaml:"template_file"`
	Recents      int       `mapstructure:"recents" yaml:"recents"`
	Requires     string    `mapstructure:"requires" yaml:"requires,omitempty"`
	Sections     []Section `mapstructure:"sections" yaml:"sections"`
}

// Load reads and parses the config file at path. Keys can be overridden via
// CHRONICLE_-prefixed environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault("archive_file", DefaultArchiveFile)
	v.SetDefault("template_file", DefaultTemplateFile)
	v.SetDefault("recents", DefaultRecents)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if len(cfg.Sections) == 0 {
		return nil, fmt.Errorf("config %s declares no sections", path)
	}
	for i, s := range cfg.Sections {
		if s.Dir == "" {
			return nil, fmt.Errorf("config %s: sections[%d] is missing 'dir'", path, i)
		}
		if s.Title == "" {
			return nil, fmt.Errorf("config %s: sections[%d] is missing 'title'", path, i)
		}
	}
	if cfg.Recents < 0 {
		return nil, fmt.Errorf("config %s: recents must not be negative", path)
	}

	return &cfg, nil
}

// CheckRequires verifies that the running version satisfies the config's
// "requires" constraint, if one is set. Dev builds skip the check.
func (c *Config) CheckRequires(current string) error {
	if c.Requires == "" || current == "" || current == "dev" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("parsing requires constraint %q: %w", c.Requires, err)
	}
	ver, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return fmt.Errorf("parsing running version %q: %w", current, err)
	}

	if !constraint.Check(ver) {
		return fmt.Errorf("config requires %s %s, running version is %s",
			branding.CLIName(), c.Requires, current)
	}
	return nil
}

// Locate finds the config file for this run. The search order is: an
// explicit path, the CHRONICLE_CONFIG environment variable, the current
// working directory, and finally the directories derived from the binary's
// physical location (its own directory, then the parent — the layout where
// the binary lives in tools/ under the repo root). The invocation path is
// deliberately not consulted: when running as a .git/hooks symlink it points
// at the wrong directory.
func Locate(explicit string, self paths.Self) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if env := os.Getenv(branding.EnvVar("CONFIG")); env != "" {
		if _, err := os.Stat(env); err != nil {
			return "", fmt.Errorf("config file %s (from %s): %w", env, branding.EnvVar("CONFIG"), err)
		}
		return env, nil
	}

	name := branding.ConfigFile()
	var candidates []string
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, name))
	}
	if self.Dir != "" {
		candidates = append(candidates,
			filepath.Join(self.Dir, name),
			filepath.Join(filepath.Dir(self.Dir), name),
		)
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no %s found; run '%s init' or pass --config", name, branding.CLIName())
}
