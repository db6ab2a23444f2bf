package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hyperifyio/quizlens/internal/llm"
)

// Vendor key variables consulted when QUIZLENS_API_KEY is unset.
var vendorKeyEnv = map[string]string{
	llm.ProviderGemini:    "GEMINI_API_KEY",
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, key string) {
		if *dst == "" {
			*dst = strings.TrimSpace(os.Getenv(key))
		}
	}
	setString(&cfg.Provider, "QUIZLENS_PROVIDER")
	setString(&cfg.APIKey, "QUIZLENS_API_KEY")
	setString(&cfg.Model, "QUIZLENS_MODEL")
	setString(&cfg.BaseURL, "QUIZLENS_BASE_URL")
	setString(&cfg.Language, "QUIZLENS_LANGUAGE")
	setString(&cfg.Rules, "QUIZLENS_RULES")
	setString(&cfg.CacheDir, "QUIZLENS_CACHE_DIR")
	setString(&cfg.BrowserURL, "QUIZLENS_BROWSER_URL")

	if cfg.CacheMaxAge == 0 {
		if d, ok := envDuration("QUIZLENS_CACHE_MAX_AGE"); ok {
			cfg.CacheMaxAge = d
		}
	}
	if cfg.OracleTimeout == 0 {
		if d, ok := envDuration("QUIZLENS_ORACLE_TIMEOUT"); ok {
			cfg.OracleTimeout = d
		}
	}
	if cfg.AutoSelect == nil {
		if v, ok := envBool("QUIZLENS_AUTO_SELECT"); ok {
			cfg.AutoSelect = boolPtr(v)
		}
	}
	if !cfg.Verbose {
		if v, ok := envBool("QUIZLENS_VERBOSE"); ok && v {
			cfg.Verbose = true
		}
	}
	discoverVendorKey(cfg)
}

// discoverVendorKey falls back to the vendor's own key variable for the
// selected provider.
func discoverVendorKey(cfg *Config) {
	if cfg.APIKey != "" {
		return
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = llm.ProviderGemini
	}
	if key, ok := vendorKeyEnv[provider]; ok {
		cfg.APIKey = strings.TrimSpace(os.Getenv(key))
	}
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return n != 0, true
	}
	return false, false
}
