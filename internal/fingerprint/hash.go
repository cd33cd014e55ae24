package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// opaqueHash fabricates a rendering-style fingerprint hash: a fixed label
// mixed with fresh entropy, digested and truncated to 128 bits. Two calls
// never agree, which is the point.
func (g *Generator) opaqueHash(label string) string {
	data := fmt.Sprintf("%s_%v_%d", label, g.rnd.Float64(), g.rnd.IntN(1000001))
	sum := blake2b.Sum256([]byte(data))
	return hex.EncodeToString(sum[:16])
}

// Hash computes the aggregate fingerprint-family hash: SHA-256 over the
// five salient fields joined with "|", full-length hex. Records sharing
// these five fields share the hash, so downstream tooling can group by
// fingerprint family.
func Hash(userAgent, screenResolution, timezone, language, webglRenderer string) string {
	data := strings.Join([]string{userAgent, screenResolution, timezone, language, webglRenderer}, "|")
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
