package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Toolsets           []string     `toml:"toolsets"`
	ReadOnly           bool         `toml:"read_only"`
	DisableDestructive bool         `toml:"disable_destructive"`
	LogLevel           string       `toml:"log_level"`
	AWS                AWSConfig    `toml:"aws"`
	Safety             SafetyConfig `toml:"safety"`
	Policy             PolicyConfig `toml:"policy"`
	Audit              AuditConfig  `toml:"audit"`
}

// AWSConfig holds server-wide connection defaults. Explicit tool arguments
// always win over these.
type AWSConfig struct {
	Region   string `toml:"region"`
	Profile  string `toml:"profile"`
	// Endpoint overrides the service endpoint, e.g. for a local emulator.
	Endpoint string `toml:"endpoint"`
}

type SafetyConfig struct {
	AllowDestructiveTools []string `toml:"allow_destructive_tools"`
}

type PolicyConfig struct {
	AllowedTools []string `toml:"allowed_tools"`
}

type AuditConfig struct {
	Disabled bool `toml:"disabled"`
}

type Overrides struct {
	Toolsets           *[]string
	ReadOnly           *bool
	DisableDestructive *bool
	LogLevel           *string
	Region             *string
	Profile            *string
}

func DefaultConfig() Config {
	return Config{
		Toolsets: []string{"aws"},
		LogLevel: "info",
	}
}

func Load(path string, dir string, overrides Overrides) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		merge(&cfg, fileCfg)
	}

	if dir != "" {
		files, err := dropInFiles(dir)
		if err != nil {
			return cfg, err
		}
		for _, file := range files {
			fileCfg, err := readFile(file)
			if err != nil {
				return cfg, err
			}
			merge(&cfg, fileCfg)
		}
	}

	applyOverrides(&cfg, overrides)
	return cfg, nil
}

// DropInDir returns the conventional drop-in directory for a config path.
func DropInDir(path string) string {
	if path == "" {
		return ""
	}
	return path + ".d"
}

func readFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err != nil {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func dropInFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func merge(dst *Config, src Config) {
	if len(src.Toolsets) > 0 {
		dst.Toolsets = append([]string{}, src.Toolsets...)
	}
	if src.ReadOnly {
		dst.ReadOnly = src.ReadOnly
	}
	if src.DisableDestructive {
		dst.DisableDestructive = src.DisableDestructive
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.AWS.Region != "" {
		dst.AWS.Region = src.AWS.Region
	}
	if src.AWS.Profile != "" {
		dst.AWS.Profile = src.AWS.Profile
	}
	if src.AWS.Endpoint != "" {
		dst.AWS.Endpoint = src.AWS.Endpoint
	}
	if len(src.Safety.AllowDestructiveTools) > 0 {
		dst.Safety.AllowDestructiveTools = append([]string{}, src.Safety.AllowDestructiveTools...)
	}
	if len(src.Policy.AllowedTools) > 0 {
		dst.Policy.AllowedTools = append([]string{}, src.Policy.AllowedTools...)
	}
	if src.Audit.Disabled {
		dst.Audit.Disabled = src.Audit.Disabled
	}
}

func applyOverrides(cfg *Config, overrides Overrides) {
	if overrides.Toolsets != nil {
		cfg.Toolsets = append([]string{}, (*overrides.Toolsets)...)
	}
	if overrides.ReadOnly != nil {
		cfg.ReadOnly = *overrides.ReadOnly
	}
	if overrides.DisableDestructive != nil {
		cfg.DisableDestructive = *overrides.DisableDestructive
	}
	if overrides.LogLevel != nil {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.Region != nil {
		cfg.AWS.Region = *overrides.Region
	}
	if overrides.Profile != nil {
		cfg.AWS.Profile = *overrides.Profile
	}
}
