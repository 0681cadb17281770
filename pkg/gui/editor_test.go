package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAppendToQuery(t *testing.T) {
	type scenario struct {
		buffer  string
		ch      rune
		allowed bool
	}

	scenarios := []scenario{
		// an empty buffer only accepts a digit
		{"", '5', true},
		{"", '+', false},
		{"", '-', false},
		{"", ' ', false},
		{"", 'q', false},

		// after one digit: digit, modifier or space
		{"5", '0', true},
		{"5", '+', true},
		{"5", '-', true},
		{"5", ' ', true},
		{"5", 'x', false},

		// a third consecutive digit is rejected
		{"50", '1', false},
		{"50", '+', true},
		{"50", '-', true},
		{"50", ' ', true},

		// after a modifier, only a space may follow
		{"50+", ' ', true},
		{"50+", '1', false},
		{"50+", '+', false},
		{"50-", '-', false},

		// after a space, only a digit may follow
		{"50+ ", '9', true},
		{"50+ ", ' ', false},
		{"50+ ", '+', false},

		// second token builds up like the first
		{"50+ 9", '9', true},
		{"50+ 99", '+', true},
		{"50+ 99", '9', false},
		{"20 15", ' ', true},
	}

	for _, s := range scenarios {
		assert.Equal(t, s.allowed, canAppendToQuery(s.buffer, s.ch),
			"buffer %q char %q", s.buffer, s.ch)
	}
}

func TestQueryBufferAlwaysParses(t *testing.T) {
	// drive the DFA with arbitrary keystrokes; whatever it accepts must be a
	// buffer the matcher can parse once each token is complete
	keys := []rune("12+ 34- 5 q/!??  678 99+ +-")

	buffer := ""
	for _, ch := range keys {
		if canAppendToQuery(buffer, ch) {
			buffer += string(ch)
		}
	}

	assert.Equal(t, "12+ 34- 5 67 99+ ", buffer)
}
