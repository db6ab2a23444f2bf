package llm

import (
	"fmt"
	"net/http"
	"strings"
)

// Provider names.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// DefaultModels are used when no model is configured.
var DefaultModels = map[string]string{
	ProviderGemini:    "gemini-2.5-flash-preview-05-20",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-haiku-4-5-20251001",
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the vendor endpoint, e.g. for an OpenAI-compatible
	// local server or a test stub.
	BaseURL string
	// HTTPClient is used for vendor calls when set.
	HTTPClient *http.Client
}

// Normalized returns the config with the provider name lowercased and the
// model defaulted.
func (c Config) Normalized() Config {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultModels[c.Provider]
	}
	return c
}

// Validate checks that the provider is known and has a key.
func (c Config) Validate() error {
	c = c.Normalized()
	if _, ok := DefaultModels[c.Provider]; !ok {
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("an API key is required for the %s provider", c.Provider)
	}
	return nil
}
