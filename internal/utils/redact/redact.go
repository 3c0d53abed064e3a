// Package redact strips credentials from strings before they reach logs.
package redact

import (
	"regexp"
	"strings"
)

var (
	bearerTokenRe = regexp.MustCompile(`(?i)\bBearer\s+[^\s"']+`)

	// key=value and header: value forms seen in upstream error strings.
	apiKeyKVRe = regexp.MustCompile(`(?i)\b(x-api-key|x-goog-api-key|api[_-]?key|gemini[_-]?api[_-]?key|openrouter[_-]?api[_-]?key)\b\s*[:=]\s*[^\s"'&]+`)

	// Gemini REST errors may echo the request URL with ?key=...
	urlKeyParamRe = regexp.MustCompile(`([?&])key=[^\s"'&]+`)
)

// Secrets removes obvious secret-bearing substrings from error/log strings.
// It is safe to call on any message, including user input.
func Secrets(s string) string {
	if s == "" {
		return ""
	}
	out := s
	out = bearerTokenRe.ReplaceAllString(out, "Bearer <redacted>")
	out = apiKeyKVRe.ReplaceAllString(out, "<redacted_kv>")
	out = urlKeyParamRe.ReplaceAllString(out, "${1}key=<redacted>")
	return strings.TrimSpace(out)
}

// Err is Secrets applied to err.Error(); nil yields "".
func Err(err error) string {
	if err == nil {
		return ""
	}
	return Secrets(err.Error())
}
