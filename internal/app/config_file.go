package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/quizlens/internal/llm"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Oracle struct {
		Provider string   `yaml:"provider" json:"provider"`
		APIKey   string   `yaml:"key" json:"key"`
		Model    string   `yaml:"model" json:"model"`
		BaseURL  string   `yaml:"base" json:"base"`
		Language string   `yaml:"language" json:"language"`
		Timeout  Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"oracle" json:"oracle"`

	Rules string `yaml:"rules" json:"rules"`

	Match struct {
		OptionThreshold *float64 `yaml:"optionThreshold" json:"optionThreshold"`
		ScanThreshold   *float64 `yaml:"scanThreshold" json:"scanThreshold"`
	} `yaml:"match" json:"match"`

	AutoSelect *bool `yaml:"autoSelect" json:"autoSelect"`
	Select     struct {
		Delay *Duration `yaml:"delay" json:"delay"`
	} `yaml:"select" json:"select"`

	Cache struct {
		Dir         string   `yaml:"dir" json:"dir"`
		MaxAge      Duration `yaml:"maxAge" json:"maxAge"`
		Clear       bool     `yaml:"clear" json:"clear"`
		StrictPerms bool     `yaml:"strictPerms" json:"strictPerms"`
		MaxBytes    int64    `yaml:"maxBytes" json:"maxBytes"`
		MaxCount    int      `yaml:"maxCount" json:"maxCount"`
	} `yaml:"cache" json:"cache"`

	Fetch struct {
		UserAgent string `yaml:"userAgent" json:"userAgent"`
	} `yaml:"fetch" json:"fetch"`

	Browser struct {
		URL     string `yaml:"url" json:"url"`
		Headful bool   `yaml:"headful" json:"headful"`
	} `yaml:"browser" json:"browser"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	for _, t := range []*float64{fc.Match.OptionThreshold, fc.Match.ScanThreshold} {
		if t != nil && (*t <= 0 || *t >= 1) {
			return fc, fmt.Errorf("config: match thresholds must be in (0, 1), got %v", *t)
		}
	}
	return fc, nil
}

// Duration reads "300ms"-style strings from both YAML and JSON. Plain
// numbers are nanoseconds.
type Duration time.Duration

func parseDuration(s string) (Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return Duration(d), nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		pd, err := parseDuration(x)
		if err != nil {
			return err
		}
		*d = pd
	case float64:
		*d = Duration(x)
	case nil:
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
	return nil
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var ns int64
	if err := n.Decode(&ns); err == nil {
		*d = Duration(ns)
		return nil
	}
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	pd, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = pd
	return nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset in cfg, so explicit flags are preserved.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
		}
	}
	setString(&cfg.Provider, fc.Oracle.Provider)
	setString(&cfg.APIKey, fc.Oracle.APIKey)
	setString(&cfg.Model, fc.Oracle.Model)
	setString(&cfg.BaseURL, fc.Oracle.BaseURL)
	setString(&cfg.Language, fc.Oracle.Language)
	setString(&cfg.Rules, fc.Rules)
	setString(&cfg.CacheDir, fc.Cache.Dir)
	setString(&cfg.UserAgent, fc.Fetch.UserAgent)
	setString(&cfg.BrowserURL, fc.Browser.URL)

	if cfg.OracleTimeout == 0 && fc.Oracle.Timeout > 0 {
		cfg.OracleTimeout = time.Duration(fc.Oracle.Timeout)
	}
	if cfg.OptionThreshold == 0 && fc.Match.OptionThreshold != nil {
		cfg.OptionThreshold = *fc.Match.OptionThreshold
	}
	if cfg.ScanThreshold == 0 && fc.Match.ScanThreshold != nil {
		cfg.ScanThreshold = *fc.Match.ScanThreshold
	}
	if cfg.AutoSelect == nil && fc.AutoSelect != nil {
		cfg.AutoSelect = boolPtr(*fc.AutoSelect)
	}
	if cfg.SelectDelay == nil && fc.Select.Delay != nil {
		d := time.Duration(*fc.Select.Delay)
		cfg.SelectDelay = &d
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = time.Duration(fc.Cache.MaxAge)
	}
	if !cfg.CacheClear && fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if !cfg.CacheStrictPerms && fc.Cache.StrictPerms {
		cfg.CacheStrictPerms = true
	}
	if cfg.CacheMaxBytes == 0 && fc.Cache.MaxBytes > 0 {
		cfg.CacheMaxBytes = fc.Cache.MaxBytes
	}
	if cfg.CacheMaxCount == 0 && fc.Cache.MaxCount > 0 {
		cfg.CacheMaxCount = fc.Cache.MaxCount
	}
	if !cfg.Headful && fc.Browser.Headful {
		cfg.Headful = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation. A missing API key is
// not an error here: detection works without one and solving reports it as
// a failed precondition.
func ValidateConfig(cfg Config) error {
	if p := strings.ToLower(strings.TrimSpace(cfg.Provider)); p != "" {
		if _, ok := llm.DefaultModels[p]; !ok {
			return fmt.Errorf("config: unknown provider %q", cfg.Provider)
		}
	}
	if cfg.OptionThreshold < 0 || cfg.OptionThreshold >= 1 || cfg.ScanThreshold < 0 || cfg.ScanThreshold >= 1 {
		return errors.New("config: thresholds must be in (0, 1), or 0 for the default")
	}
	if cfg.EffectiveDelay() < 0 || cfg.OracleTimeout < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative durations are not allowed")
	}
	if cfg.CacheMaxBytes < 0 || cfg.CacheMaxCount < 0 {
		return errors.New("config: negative cache limits are not allowed")
	}
	return nil
}
