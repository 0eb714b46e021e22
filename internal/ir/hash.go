package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes for content-addressed cache keys.
// Version suffix enables future algorithm migration.
const (
	DomainSource     = "didargs/source/v1"
	DomainResolution = "didargs/resolution/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SourceHash computes the content-addressed ID of an IDL source string.
// Resolution results are cached under (SourceHash, method): any textual
// change to the source, including comments, invalidates the cache entry.
func SourceHash(source string) string {
	return hashWithDomain(DomainSource, []byte(source))
}

// ResolutionHash computes the content-addressed ID of a resolution result,
// used to detect drift between cached and freshly resolved types.
func ResolutionHash(method string, argTypes []string) string {
	types := make(List, len(argTypes))
	for i, t := range argTypes {
		types[i] = Text(t)
	}
	// Text and List of Text always canonicalize.
	canonical, _ := MarshalCanonical(Map{
		"method":    Text(method),
		"arg_types": types,
	})
	return hashWithDomain(DomainResolution, canonical)
}
