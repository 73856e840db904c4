package providers

import (
	"fmt"
	"os"
	"strings"

	"github.com/onecloudtech/insight/internal/ai"
	"github.com/onecloudtech/insight/internal/config"
)

// Factory creates AI providers based on configuration
type Factory struct {
	config *config.Config
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{config: cfg}
}

// CreateProvider creates an AI provider based on name and configuration.
// An empty name falls back to the configured provider.
func (f *Factory) CreateProvider(name string) (ai.Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = f.config.Chat.Provider
	}
	if name == "" {
		name = DefaultProvider
	}

	if !IsValidProvider(name) {
		return nil, fmt.Errorf("unknown provider: %s. Available: %s", name, strings.Join(ValidProviders, ", "))
	}

	apiKey := f.config.Chat.APIKey
	// Check if API key is a placeholder (starts with ${)
	if strings.HasPrefix(apiKey, "${") && strings.HasSuffix(apiKey, "}") {
		apiKey = ""
	}
	if apiKey == "" {
		envVar := fmt.Sprintf("%s_API_KEY", strings.ToUpper(name))
		apiKey = os.Getenv(envVar)
		if apiKey == "" {
			return nil, fmt.Errorf("%s API key not found. Set chat.api_key in config or %s env", name, envVar)
		}
	}

	return NewOpenAICompatibleProvider(name, ProviderConfig{
		APIKey:  apiKey,
		Model:   f.config.Chat.Model,
		BaseURL: f.config.Chat.BaseURL,
	})
}

// CreateDefaultProvider creates the configured provider.
func (f *Factory) CreateDefaultProvider() (ai.Provider, error) {
	return f.CreateProvider(f.config.Chat.Provider)
}
