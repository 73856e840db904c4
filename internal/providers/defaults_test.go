package providers

import (
	"testing"
)

func TestGetDefaultModel(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "gpt-4o-mini"},
		{"deepseek", "deepseek-chat"},
		{"qwen", "qwen-plus"},
		{"glm", "glm-4.7"},
		{"minimax", "minimax-M2.1"},
		{"kimi", "kimi-k2-5"},
		// Unknown providers fall back to default (openai)
		{"unknown", "gpt-4o-mini"},
		{"", "gpt-4o-mini"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			got := GetDefaultModel(tt.provider)
			if got != tt.want {
				t.Errorf("GetDefaultModel(%q) = %q, want %q", tt.provider, got, tt.want)
			}
		})
	}
}

func TestGetDefaultBaseURL(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "https://api.openai.com/v1"},
		{"deepseek", "https://api.deepseek.com/v1"},
		{"qwen", "https://dashscope.aliyuncs.com/compatible-mode/v1"},
		{"glm", "https://open.bigmodel.cn/api/paas/v4"},
		{"minimax", "https://api.minimax.chat/v1"},
		{"kimi", "https://api.moonshot.cn/v1"},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			got := GetDefaultBaseURL(tt.provider)
			if got != tt.want {
				t.Errorf("GetDefaultBaseURL(%q) = %q, want %q", tt.provider, got, tt.want)
			}
		})
	}
}

func TestIsValidProvider(t *testing.T) {
	validProviders := []string{"openai", "deepseek", "qwen", "glm", "minimax", "kimi"}
	invalidProviders := []string{"claude", "anthropic", "unknown", ""}

	for _, p := range validProviders {
		t.Run("valid_"+p, func(t *testing.T) {
			if !IsValidProvider(p) {
				t.Errorf("IsValidProvider(%q) = false, want true", p)
			}
		})
	}

	for _, p := range invalidProviders {
		t.Run("invalid_"+p, func(t *testing.T) {
			if IsValidProvider(p) {
				t.Errorf("IsValidProvider(%q) = true, want false", p)
			}
		})
	}
}

func TestDefaultsMapCompleteness(t *testing.T) {
	// Ensure all providers in Defaults have both Model and BaseURL
	for provider, defaults := range Defaults {
		t.Run(provider, func(t *testing.T) {
			if defaults.Model == "" {
				t.Errorf("Provider %q has empty Model", provider)
			}
			if defaults.BaseURL == "" {
				t.Errorf("Provider %q has empty BaseURL", provider)
			}
		})
	}
}
