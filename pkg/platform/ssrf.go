// Package platform provides SSRF protection for user-supplied base URLs.
package platform

import (
	"fmt"
	"net/url"
	"regexp"
)

// validURLPattern restricts base URLs to http and https schemes.
var validURLPattern = regexp.MustCompile(`^https?://`)

// privateIPPatterns match private and internal network addresses so a
// hostile base URL cannot point the client at cloud metadata endpoints or
// internal services. Localhost stays allowed for local development and
// tests.
var privateIPPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(^|\.)10\.`),                          // 10.0.0.0/8
	regexp.MustCompile(`(^|\.)172\.(1[6-9]|2[0-9]|3[0-1])\.`), // 172.16.0.0/12
	regexp.MustCompile(`(^|\.)192\.168\.`),                    // 192.168.0.0/16
	regexp.MustCompile(`(^|\.)169\.254\.169\.254$`),           // cloud metadata endpoint
	regexp.MustCompile(`(^|\.)fc00:`),                         // fc00::/7 IPv6 private
	regexp.MustCompile(`^fe80:`),                              // fe80::/10 IPv6 link-local
	regexp.MustCompile(`^::1`),                                // IPv6 loopback and zoned variants
}

// validateBaseURL rejects base URLs that could be used for SSRF: non-http
// schemes, missing hostnames, and private or internal network targets.
func validateBaseURL(baseURL string) error {
	if !validURLPattern.MatchString(baseURL) {
		return fmt.Errorf("invalid URL scheme: only http and https are allowed")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	hostname := parsed.Hostname()
	if hostname == "" {
		return fmt.Errorf("URL has no hostname")
	}

	for _, pattern := range privateIPPatterns {
		if pattern.MatchString(hostname) {
			return fmt.Errorf("refusing private/internal network target: %s", hostname)
		}
	}
	return nil
}
