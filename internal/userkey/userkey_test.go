package userkey

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hexKey = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestDerive(t *testing.T) {
	k1 := Derive("1.2.3.4", "curl/8.0")
	k2 := Derive("1.2.3.4", "curl/8.0")
	k3 := Derive("1.2.3.5", "curl/8.0")

	assert.Regexp(t, hexKey, k1)
	assert.Equal(t, k1, k2, "derivation must be deterministic")
	assert.NotEqual(t, k1, k3)
}

func TestFromHeaders_ForwardedForWins(t *testing.T) {
	h := http.Header{}
	h.Set("X-Forwarded-For", " 9.9.9.9 , 10.0.0.1")
	h.Set("X-Real-Ip", "1.1.1.1")
	h.Set("User-Agent", "ua")

	assert.Equal(t, Derive("9.9.9.9", "ua"), FromHeaders(h))
}

func TestFromHeaders_RealIPFallback(t *testing.T) {
	h := http.Header{}
	h.Set("X-Real-Ip", "1.1.1.1")
	h.Set("User-Agent", "ua")

	assert.Equal(t, Derive("1.1.1.1", "ua"), FromHeaders(h))
}

func TestFromHeaders_UnknownFallbacks(t *testing.T) {
	assert.Equal(t, Derive("unknown", "unknown"), FromHeaders(http.Header{}))
}
