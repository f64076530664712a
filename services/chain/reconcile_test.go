package chain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufEq(t *testing.T) {
	a := bytes.Repeat([]byte{0xAB}, 200)
	b := bytes.Repeat([]byte{0xAB}, 200)
	assert.True(t, BufEq(a, b))

	b[137] ^= 0x01
	assert.False(t, BufEq(a, b), "a single flipped byte must be detected")

	assert.False(t, BufEq(a, a[:199]), "length mismatch")
	assert.True(t, BufEq(nil, nil))
	assert.True(t, BufEq([]byte{}, nil), "empty and nil compare equal")
}
