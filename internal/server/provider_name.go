package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

// normalizeProviderName picks the provider label used in metrics and logs.
// Without a configured name it falls back to the implementing package, so
// *espn.Client reports as "espn" and *fixture.Provider as "fixture".
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if provider == nil {
		return "provider"
	}
	typeName := strings.TrimLeft(fmt.Sprintf("%T", provider), "*")
	if pkg, _, ok := strings.Cut(typeName, "."); ok && pkg != "" {
		return strings.ToLower(pkg)
	}
	return strings.ToLower(typeName)
}
