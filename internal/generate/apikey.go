package generate

import (
	"fmt"
	"os"
	"strings"
)

// ProviderOpenRouter is the only supported generation provider.
const ProviderOpenRouter = "openrouter"

// APIKey is a credential accepted by NewClient. The zero value is not a
// valid key; obtain one through ParseAPIKey or APIKeyFromEnv.
type APIKey struct {
	value string
}

// ParseAPIKey trims and validates a raw key.
func ParseAPIKey(raw string) (APIKey, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return APIKey{}, fmt.Errorf("api key is required")
	}
	if strings.ContainsAny(value, " \t\r\n") {
		return APIKey{}, fmt.Errorf("api key must not contain whitespace")
	}
	return APIKey{value: value}, nil
}

// APIKeyFromEnv reads LLM_API_KEY after checking LLM_PROVIDER, when set,
// names a supported provider.
func APIKeyFromEnv() (APIKey, error) {
	provider := strings.TrimSpace(os.Getenv("LLM_PROVIDER"))
	if provider != "" && provider != ProviderOpenRouter {
		return APIKey{}, fmt.Errorf("unsupported provider %q", provider)
	}
	raw := os.Getenv("LLM_API_KEY")
	if strings.TrimSpace(raw) == "" {
		return APIKey{}, fmt.Errorf("LLM_API_KEY is required")
	}
	return ParseAPIKey(raw)
}

// IsZero reports whether the key was never parsed.
func (k APIKey) IsZero() bool {
	return k.value == ""
}

// String masks the key so it never reaches logs.
func (k APIKey) String() string {
	if len(k.value) <= 4 {
		return "****"
	}
	return "****" + k.value[len(k.value)-4:]
}
