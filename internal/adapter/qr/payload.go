package qr

import (
	"fmt"
	"strings"
)

// The canonical proof payload is "PaymentProof:<sessionID>_<token>". The
// legacy client also printed scanner payloads as "Token: <value>"; lookup
// accepts those too so previously issued codes keep working.
const (
	proofPrefix       = "PaymentProof:"
	legacyTokenPrefix = "Token:"
)

// ProofPayload renders the canonical payload bound to a paid session.
func ProofPayload(sessionID, token string) string {
	return fmt.Sprintf("%s%s_%s", proofPrefix, sessionID, token)
}

// NormalizeContent maps a decoded QR text to the form stored as qrContent:
// trimmed and case-folded, so visually identical proofs always collide.
func NormalizeContent(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// ExtractToken recovers an order token from admin input: a raw token, a
// "Token: T1234" scanner payload, or a full PaymentProof payload.
func ExtractToken(raw string) string {
	s := strings.TrimSpace(raw)
	if rest, ok := cutPrefixFold(s, legacyTokenPrefix); ok {
		return strings.TrimSpace(rest)
	}
	if rest, ok := cutPrefixFold(s, proofPrefix); ok {
		if i := strings.LastIndex(rest, "_"); i >= 0 {
			return strings.TrimSpace(rest[i+1:])
		}
		return strings.TrimSpace(rest)
	}
	return s
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return "", false
}
