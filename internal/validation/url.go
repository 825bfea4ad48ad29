package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ServiceURLValidator checks the base URL the client talks to.
type ServiceURLValidator struct {
	// AllowLocalhost permits localhost and loopback origins
	AllowLocalhost bool
	// AllowPrivateIPs permits RFC 1918 and link-local origins
	AllowPrivateIPs bool
	// MaxLength is the maximum allowed URL length
	MaxLength int
}

// NewServiceURLValidator creates a validator that only accepts public origins.
func NewServiceURLValidator() *ServiceURLValidator {
	return &ServiceURLValidator{
		AllowLocalhost:  false,
		AllowPrivateIPs: false,
		MaxLength:       2048,
	}
}

// NewPermissiveServiceURLValidator accepts local development origins such
// as http://localhost:3000.
func NewPermissiveServiceURLValidator() *ServiceURLValidator {
	return &ServiceURLValidator{
		AllowLocalhost:  true,
		AllowPrivateIPs: true,
		MaxLength:       2048,
	}
}

// ValidateAndNormalize validates a service base URL and returns it without
// a trailing slash, ready for path concatenation.
func (v *ServiceURLValidator) ValidateAndNormalize(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("base URL cannot be empty")
	}
	if len(input) > v.MaxLength {
		return "", fmt.Errorf("base URL too long (max %d characters)", v.MaxLength)
	}
	if strings.ContainsAny(input, "<>\"'` ") {
		return "", fmt.Errorf("base URL contains invalid characters")
	}

	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		input = "https://" + input
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", fmt.Errorf("base URL must use http or https protocol")
	}
	if parsedURL.Host == "" {
		return "", fmt.Errorf("base URL must have a valid hostname")
	}
	if parsedURL.User != nil {
		return "", fmt.Errorf("base URL must not carry credentials")
	}
	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return "", fmt.Errorf("base URL must not carry a query or fragment")
	}
	if strings.Contains(parsedURL.Path, "..") {
		return "", fmt.Errorf("directory traversal patterns not allowed in base URL path")
	}

	if err := v.validateHostSecurity(parsedURL.Host); err != nil {
		return "", err
	}

	parsedURL.Path = strings.TrimRight(parsedURL.Path, "/")
	return parsedURL.String(), nil
}

func (v *ServiceURLValidator) validateHostSecurity(host string) error {
	hostname := parsedHostname(host)
	if hostname == "" {
		return fmt.Errorf("invalid host format: %q", host)
	}

	if !v.AllowLocalhost && isLocalhost(hostname) {
		return fmt.Errorf("localhost URLs are not permitted")
	}

	if !v.AllowPrivateIPs {
		if ip := net.ParseIP(hostname); ip != nil && isPrivateIP(ip) {
			return fmt.Errorf("private IP addresses are not permitted")
		}
	}

	if isSuspiciousHostname(hostname) {
		return fmt.Errorf("suspicious hostname detected")
	}

	return nil
}

func parsedHostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return strings.Trim(h, "[]")
	}
	return strings.Trim(host, "[]")
}

func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLoopback()
}

// isSuspiciousHostname flags unroutable or obfuscated hosts.
func isSuspiciousHostname(hostname string) bool {
	switch strings.ToLower(hostname) {
	case "0.0.0.0", "255.255.255.255", "::":
		return true
	}

	if len(hostname) > 8 && strings.Count(hostname, ".") == 3 {
		if net.ParseIP(hostname) != nil {
			return false
		}

		parts := strings.Split(hostname, ".")
		hexPattern := true
		for _, part := range parts {
			if len(part) > 6 && !isHexString(part) {
				hexPattern = false
				break
			}
		}
		if hexPattern {
			return true
		}
	}

	return false
}

func isHexString(s string) bool {
	for _, char := range s {
		if !((char >= '0' && char <= '9') || (char >= 'a' && char <= 'f') || (char >= 'A' && char <= 'F')) {
			return false
		}
	}
	return true
}
