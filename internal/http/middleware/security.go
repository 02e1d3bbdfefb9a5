// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, a hardening middleware for the JSON
// API: baseline browser protections, cache policy, optional HSTS, and the
// list of response headers browser clients are allowed to read.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	// EnableHSTS emits Strict-Transport-Security on HTTPS requests only.
	// Enable it only when traffic is HTTPS end to end.
	EnableHSTS bool
	HSTSMaxAge time.Duration // default 180 days

	// NoStore forbids caching entirely. It wins over Revalidate.
	NoStore bool
	// Revalidate lets clients keep responses but forces an ETag check on
	// every use (Cache-Control: no-cache).
	Revalidate bool

	EnablePolicy bool // Permissions-Policy and friends

	// Expose lists response headers readable by browser scripts, in
	// addition to X-Request-ID.
	Expose []string
}

const headerExpose = "Access-Control-Expose-Headers"

// SecurityHeaders returns the hardening middleware. Headers are set before
// the handler runs so every response carries them, errors included.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"

	expose := []string{requestIDHeader}
	for _, h := range opt.Expose {
		if h = http.CanonicalHeaderKey(strings.TrimSpace(h)); h != "" && !containsFold(expose, h) {
			expose = append(expose, h)
		}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		switch {
		case opt.NoStore:
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		case opt.Revalidate:
			h.Set("Cache-Control", "no-cache")
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		h.Set(headerExpose, mergeExpose(h.Get(headerExpose), expose))

		c.Next()
	}
}

// mergeExpose appends names missing from the comma-separated list cur.
func mergeExpose(cur string, names []string) string {
	var have []string
	for _, p := range strings.Split(cur, ",") {
		if p = strings.TrimSpace(p); p != "" {
			have = append(have, p)
		}
	}
	for _, n := range names {
		if !containsFold(have, n) {
			have = append(have, n)
		}
	}
	return strings.Join(have, ", ")
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// isHTTPS reports TLS on the connection or X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
