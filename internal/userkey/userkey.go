// Package userkey derives the per-request rate-limit partition key the
// gateway forwards to the backend chat function. The key is a coarse
// abuse-mitigation signal only: it is derived from caller-controlled
// headers, so anyone forging headers can change it. It is never an
// identity and is never stored.
package userkey

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

const keyLen = 32

// Derive hashes "ip:userAgent" and truncates to 32 hex characters.
func Derive(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(ip + ":" + userAgent))
	return hex.EncodeToString(sum[:])[:keyLen]
}

// FromHeaders extracts the caller's network identity from proxy headers and
// derives the key. Missing headers degrade to "unknown" rather than failing.
func FromHeaders(h http.Header) string {
	ip := ""
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if ip == "" {
		ip = strings.TrimSpace(h.Get("X-Real-Ip"))
	}
	if ip == "" {
		ip = "unknown"
	}

	ua := h.Get("User-Agent")
	if ua == "" {
		ua = "unknown"
	}

	return Derive(ip, ua)
}
