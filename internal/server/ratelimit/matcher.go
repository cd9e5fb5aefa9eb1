package ratelimit

import "strings"

// matchEndpoint resolves the budget for a request path and method, or nil
// when only the global default applies. An exact path match wins; configs
// whose path ends in "/" act as prefixes, which is how the run endpoints
// ("/runs/{id}", "/runs/{id}/resume") share one budget.
func matchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health probes are never throttled; load balancers poll this.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	for i := range configs {
		if configs[i].Method != method || !strings.HasSuffix(configs[i].Path, "/") {
			continue
		}
		if strings.HasPrefix(path, configs[i].Path) {
			return &configs[i]
		}
	}
	return nil
}
