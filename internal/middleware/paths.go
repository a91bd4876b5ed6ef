package middleware

import "strings"

// operationalPath reports health, metrics and docs endpoints, which stay out of request logs and HTTP metrics
func operationalPath(path string) bool {
	switch path {
	case "/metrics", "/health":
		return true
	}
	return strings.HasPrefix(path, "/swagger/")
}
