package providers

// ProviderConfig is what a provider constructor needs: credentials, the
// model to request, and an optional endpoint override.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string // overrides the provider's default endpoint
}
