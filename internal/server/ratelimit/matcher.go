package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves the tier for a request path and method, or nil
// when only the global default applies. Exact paths win over prefix
// tiers; a tier path ending in "/" matches as a prefix, which is how the
// per-entry resume routes (/api/resume/suggest/...) and panel routes
// (/api/panels/...) share one budget.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health probes are never metered.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	return nil
}
