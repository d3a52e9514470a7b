package uniuri

import (
	"crypto/rand"
)

const (
	// SecretLen gives ~190 bits of entropy with the default alphabet.
	SecretLen = 32

	byteRange = 256
)

// Alphabet is the set of characters secrets are drawn from.
var Alphabet = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// New returns a secret of SecretLen characters.
func New() string {
	return NewLen(SecretLen)
}

// NewLen returns a secret of length characters drawn from Alphabet.
func NewLen(length int) string {
	return string(NewLenChars(length, Alphabet))
}

// NewLenChars returns length random characters of chars (2..256 characters).
// It panics when the system random source fails.
func NewLenChars(length int, chars []byte) []byte {
	if length <= 0 {
		return nil
	}

	clen := len(chars)
	if clen < 2 || clen > byteRange {
		panic("uniuri: wrong charset length")
	}

	// bytes above limit are rejected to keep the distribution uniform
	limit := byteRange - byteRange%clen
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2) //nolint:mnd

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return out
}
