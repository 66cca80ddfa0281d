package affiliate

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Enabled        *bool      `yaml:"enabled"`
	AddUTMParams   *bool      `yaml:"add_utm_params"`
	TrackClicks    *bool      `yaml:"track_clicks"`
	RedirectDomain string     `yaml:"redirect_domain"`
	RedirectPath   string     `yaml:"redirect_path"`
	Merchants      []Merchant `yaml:"merchants"`
	UTM            []Param    `yaml:"utm"`
	DeniedParams   []string   `yaml:"denied_params"`
}

// LoadConfig builds the affiliate configuration from defaults, an optional YAML
// file and environment overrides, in that order.
func LoadConfig(path string) (*Config, error) {
	return loadConfig(path, os.LookupEnv)
}

func loadConfig(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := applyFile(config, path); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(config, lookupEnv); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid affiliate config: %w", err)
	}

	slog.Debug("Affiliate configuration loaded",
		"enabled", config.Enabled,
		"add_utm", config.AddUTMParams,
		"merchants", len(config.Merchants))

	return config, nil
}

func applyFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if raw.Enabled != nil {
		config.Enabled = *raw.Enabled
	}
	if raw.AddUTMParams != nil {
		config.AddUTMParams = *raw.AddUTMParams
	}
	if raw.TrackClicks != nil {
		config.TrackClicks = *raw.TrackClicks
	}
	if raw.RedirectDomain != "" {
		config.RedirectDomain = raw.RedirectDomain
	}
	if raw.RedirectPath != "" {
		config.RedirectPath = raw.RedirectPath
	}

	if len(raw.Merchants) > 0 {
		merchants := make([]Merchant, 0, len(raw.Merchants))
		for _, m := range raw.Merchants {
			m.Domain = strings.ToLower(strings.TrimSpace(m.Domain))
			if m.EnvKey == "" {
				m.EnvKey = EnvKeyFor(m.Domain)
			}
			merchants = append(merchants, m)
		}
		config.Merchants = merchants
	}

	if len(raw.UTM) > 0 {
		config.UTM = raw.UTM
	}

	config.DeniedParams = append(config.DeniedParams, raw.DeniedParams...)

	return nil
}

func applyEnv(config *Config, lookupEnv func(string) (string, bool)) error {
	for i, m := range config.Merchants {
		if tag, ok := lookupEnv(m.EnvKey); ok {
			config.Merchants[i].Tag = strings.TrimSpace(tag)
		}
	}

	boolOverrides := map[string]*bool{
		"AFFILIATE_ENABLED": &config.Enabled,
		"AFFILIATE_ADD_UTM": &config.AddUTMParams,
	}

	for key, target := range boolOverrides {
		value, ok := lookupEnv(key)
		if !ok || value == "" {
			continue
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		*target = parsed
	}

	return nil
}

func validateConfig(config *Config) error {
	seen := make(map[string]bool, len(config.Merchants))
	for i, m := range config.Merchants {
		if m.Domain == "" {
			return fmt.Errorf("merchant at index %d has no domain", i)
		}
		if seen[m.Domain] {
			return fmt.Errorf("duplicate merchant domain: %s", m.Domain)
		}
		seen[m.Domain] = true
	}

	for i, p := range config.UTM {
		if p.Key == "" {
			return fmt.Errorf("utm parameter at index %d has no key", i)
		}
	}

	if config.RedirectPath != "" && !strings.HasPrefix(config.RedirectPath, "/") {
		return fmt.Errorf("redirect path must start with '/': %s", config.RedirectPath)
	}

	return nil
}
