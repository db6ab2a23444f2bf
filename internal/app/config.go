package app

import (
	"time"

	"github.com/hyperifyio/quizlens/internal/actuate"
	"github.com/hyperifyio/quizlens/internal/llm"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Oracle
	Provider      string
	APIKey        string
	Model         string
	BaseURL       string
	Language      string
	OracleTimeout time.Duration

	// Detection and matching. A zero threshold means the matcher's
	// default; set thresholds are in (0, 1).
	Rules           string
	OptionThreshold float64
	ScanThreshold   float64

	// Actuation. AutoSelect nil means enabled; SelectDelay nil means
	// actuate.DefaultDelay and zero selects at once.
	AutoSelect  *bool
	SelectDelay *time.Duration

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool
	CacheMaxBytes    int64
	CacheMaxCount    int

	// Surfaces
	UserAgent  string
	BrowserURL string
	Headful    bool

	Verbose bool
}

// AutoSelectEnabled reports the effective auto-select setting. Unset means
// on.
func (c Config) AutoSelectEnabled() bool {
	return c.AutoSelect == nil || *c.AutoSelect
}

// EffectiveDelay is the wait between highlighting and selecting.
func (c Config) EffectiveDelay() time.Duration {
	if c.SelectDelay == nil {
		return actuate.DefaultDelay
	}
	return *c.SelectDelay
}

// LLMConfig is the provider part of the configuration.
func (c Config) LLMConfig() llm.Config {
	return llm.Config{
		Provider:   c.Provider,
		APIKey:     c.APIKey,
		Model:      c.Model,
		BaseURL:    c.BaseURL,
		HTTPClient: newHTTPClient(),
	}.Normalized()
}

func boolPtr(v bool) *bool { return &v }
