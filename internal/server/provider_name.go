package server

import (
	"fmt"
	"strings"

	"github.com/dinildamsith/game-explorer/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from instance when not explicitly configured.
// Used across server wiring and provider factory to keep naming consistent in metrics/logs.
func normalizeProviderName(raw string, catalog providers.Catalog) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if catalog != nil {
		return strings.ToLower(fmt.Sprintf("%T", catalog))
	}
	return "catalog"
}
