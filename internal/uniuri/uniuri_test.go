package uniuri

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLen(t *testing.T) {
	testCases := []struct {
		name   string
		length int
	}{
		{name: "zero", length: 0},
		{name: "one", length: 1},
		{name: "default", length: SecretLen},
		{name: "long", length: 1000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewLen(tc.length)
			assert.Len(t, s, tc.length)

			for i := range len(s) {
				assert.True(t, bytes.IndexByte(Alphabet, s[i]) >= 0, "unexpected character %q", s[i])
			}
		})
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)

	for range 100 {
		s := New()
		_, dup := seen[s]
		assert.False(t, dup)
		seen[s] = struct{}{}
	}
}

func TestNewLenChars_PanicsOnBadCharset(t *testing.T) {
	assert.Panics(t, func() { NewLenChars(4, []byte("a")) })
}
