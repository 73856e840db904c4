// Package providers contains AI provider implementations and configuration.
package providers

import "strings"

// ProviderDefaults contains default configuration for each provider.
type ProviderDefaults struct {
	Model   string // Default model
	BaseURL string // Default API base URL
}

// Defaults maps provider names to their default configuration. Every entry
// speaks the OpenAI-compatible chat API.
var Defaults = map[string]ProviderDefaults{
	"openai": {
		Model:   "gpt-4o-mini",
		BaseURL: "https://api.openai.com/v1",
	},
	"deepseek": {
		Model:   "deepseek-chat",
		BaseURL: "https://api.deepseek.com/v1",
	},
	"qwen": {
		Model:   "qwen-plus",
		BaseURL: "https://dashscope.aliyuncs.com/compatible-mode/v1",
	},
	"glm": {
		Model:   "glm-4.7",
		BaseURL: "https://open.bigmodel.cn/api/paas/v4",
	},
	"minimax": {
		Model:   "minimax-M2.1",
		BaseURL: "https://api.minimax.chat/v1",
	},
	"kimi": {
		Model:   "kimi-k2-5",
		BaseURL: "https://api.moonshot.cn/v1",
	},
}

// ValidProviders returns a list of all valid provider names.
var ValidProviders = []string{"openai", "deepseek", "qwen", "glm", "minimax", "kimi"}

// DefaultProvider is the default provider when none is specified.
const DefaultProvider = "openai"

// GetDefaultModel returns the default model for a provider.
func GetDefaultModel(provider string) string {
	provider = strings.ToLower(provider)
	if def, ok := Defaults[provider]; ok {
		return def.Model
	}
	return Defaults[DefaultProvider].Model
}

// GetDefaultBaseURL returns the default API base URL for a provider.
func GetDefaultBaseURL(provider string) string {
	provider = strings.ToLower(provider)
	if def, ok := Defaults[provider]; ok {
		return def.BaseURL
	}
	return ""
}

// IsValidProvider checks if a provider name is valid.
func IsValidProvider(provider string) bool {
	provider = strings.ToLower(provider)
	_, ok := Defaults[provider]
	return ok
}
