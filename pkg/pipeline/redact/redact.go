package redact

import (
	"regexp"
	"strings"
)

var (
	// Matches "Bearer <token>" (JWTs and opaque tokens).
	bearerTokenRe = regexp.MustCompile(`(?i)\bBearer\s+[^\s"']+`)

	// Common key=value formats that sometimes leak in error strings.
	apiKeyKVRe = regexp.MustCompile(`(?i)\b(api[_-]?key|google[_-]?api[_-]?key|openai[_-]?api[_-]?key)\b\s*[:=]\s*[^\s"']+`)

	// Raw provider key shapes (Google "AIza..." keys, OpenAI "sk-..." keys).
	rawKeyRe = regexp.MustCompile(`\b(AIza[0-9A-Za-z_-]{30,}|sk-[0-9A-Za-z_-]{20,})\b`)
)

// Secrets removes obvious secret-bearing substrings from error/log strings.
//
// This is intentionally conservative: it should be safe to call on any message,
// including user-provided inputs and upstream error strings.
func Secrets(s string) string {
	if s == "" {
		return ""
	}
	out := s
	out = bearerTokenRe.ReplaceAllString(out, "Bearer <redacted>")
	out = apiKeyKVRe.ReplaceAllString(out, "<redacted_kv>")
	out = rawKeyRe.ReplaceAllString(out, "<redacted_key>")
	return strings.TrimSpace(out)
}
