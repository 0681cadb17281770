package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHexAddr(t *testing.T) {
	type scenario struct {
		input    string
		valid    bool
		expected uint64
	}

	scenarios := []scenario{
		{"0x7ffdeadbeef0", true, 0x7ffdeadbeef0},
		{"7ffdeadbeef0", true, 0x7ffdeadbeef0},
		{"0X1400A0000", true, 0x1400a0000},
		{"", false, 0},
		{"0x", false, 0},
		{"zzzz", false, 0},
	}

	for _, s := range scenarios {
		addr, err := parseHexAddr(s.input)
		if !s.valid {
			assert.Error(t, err, "input %q", s.input)
			continue
		}
		assert.NoError(t, err, "input %q", s.input)
		assert.Equal(t, s.expected, addr, "input %q", s.input)
	}
}
