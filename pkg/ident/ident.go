// Package ident generates short random string identifiers.
//
// Identifiers are base32-encoded bytes from crypto/rand, trimmed to the
// requested length. At 5 bits per character a 10-character identifier
// carries 50 bits of randomness, which is plenty for a single-process
// in-memory store.
package ident

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// New returns a lowercase identifier of n characters.
func New(n int) string {
	if n <= 0 {
		return ""
	}

	// ceil(n*5/8) random bytes yield at least n base32 characters.
	raw := make([]byte, (n*5+7)/8)

	_, err := rand.Read(raw)
	if err != nil {
		// crypto/rand never fails on supported platforms; if it does,
		// the process has no usable entropy source and cannot continue.
		panic("ident: read random bytes: " + err.Error())
	}

	return strings.ToLower(encoding.EncodeToString(raw)[:n])
}

// NewCode returns an uppercase identifier of n characters, suitable for
// codes that people read aloud or type.
func NewCode(n int) string {
	return strings.ToUpper(New(n))
}
