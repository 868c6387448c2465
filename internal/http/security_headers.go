// Package http provides the API server, middleware pipeline and routing.
package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersConfig controls the hardening headers applied to every
// response.
type SecurityHeadersConfig struct {
	// Development relaxes the Content-Security-Policy so browser tooling
	// (Swagger UI, inline scripts) keeps working against a local server.
	Development bool

	// HSTSEnabled adds Strict-Transport-Security. Only meaningful behind TLS,
	// so it stays off in development.
	HSTSEnabled bool

	// HSTSMaxAgeSeconds is the max-age for Strict-Transport-Security.
	HSTSMaxAgeSeconds int

	// HSTSIncludeSubdomains extends the HSTS policy to all subdomains.
	HSTSIncludeSubdomains bool

	// HSTSPreload marks the policy for browser preload lists.
	HSTSPreload bool
}

const (
	cspProduction  = "default-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'"
	cspDevelopment = "default-src 'self' 'unsafe-inline' 'unsafe-eval'; frame-ancestors 'none'"
)

// SecurityHeadersMiddleware sets browser hardening headers on every response
// and strips the Server header. Headers already set upstream (e.g. by a
// reverse proxy) are left untouched.
func SecurityHeadersMiddleware(cfg SecurityHeadersConfig) gin.HandlerFunc {
	csp := cspProduction
	if cfg.Development {
		csp = cspDevelopment
	}

	hsts := ""
	if cfg.HSTSEnabled {
		hsts = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAgeSeconds)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
	}

	return func(c *gin.Context) {
		header := c.Writer.Header()
		setIfAbsent := func(key, value string) {
			if header.Get(key) == "" {
				header.Set(key, value)
			}
		}

		setIfAbsent("X-Content-Type-Options", "nosniff")
		setIfAbsent("X-Frame-Options", "DENY")
		setIfAbsent("X-XSS-Protection", "1; mode=block")
		setIfAbsent("Content-Security-Policy", csp)
		setIfAbsent("Referrer-Policy", "strict-origin-when-cross-origin")
		setIfAbsent("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		setIfAbsent("Cross-Origin-Opener-Policy", "same-origin")
		setIfAbsent("Cross-Origin-Embedder-Policy", "require-corp")
		setIfAbsent("Cross-Origin-Resource-Policy", "same-origin")

		if hsts != "" {
			setIfAbsent("Strict-Transport-Security", hsts)
		}

		// Do not advertise the server implementation.
		header.Del("Server")

		c.Next()
	}
}

// sensitiveCacheControl keeps credential-bearing responses out of browser and
// proxy caches.
const sensitiveCacheControl = "no-cache, no-store, must-revalidate"

// NoStoreMiddleware marks responses as uncacheable. Applied to routes whose
// responses carry tokens or account data. Handlers that already set
// Cache-Control win.
func NoStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		if header.Get("Cache-Control") == "" {
			header.Set("Cache-Control", sensitiveCacheControl)
		}
		c.Next()
	}
}
