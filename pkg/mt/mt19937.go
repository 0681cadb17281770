// Package mt implements a software mirror of the MT19937 generator found in
// the observed process. The mirror is reset from a state snapshot read out of
// the process's memory and can then be twisted ahead of it, so we can show
// random values before the game draws them.
package mt

// N is the number of 32-bit words in an MT19937 state.
const N = 624

const (
	m         = 397
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
	matrixA   = 0x9908b0df
)

// State is one full 624-word generator state.
type State [N]uint32

// Temper produces the next pseudorandom number from the supplied entry in the
// MT array. This is typically mt[mti].
func Temper(word uint32) uint32 {
	y := word
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18

	return y
}

// Twist advances a state by one full recurrence, returning a fresh state.
// Every input is read from the old buffer, so the last element sees the old
// value of state[0] and every element from N-m on reads old words at
// (i+m)%N. An in-place recurrence reads the words it has already rewritten
// there, so its result differs from this one from index N-m (227) on.
func Twist(s *State) *State {
	var next State

	for i := 0; i < N; i++ {
		y := (s[i] & upperMask) | (s[(i+1)%N] & lowerMask)
		v := s[(i+m)%N] ^ (y >> 1)
		if y&1 == 1 {
			v ^= matrixA
		}
		next[i] = v
	}

	return &next
}

// SeedState builds the canonical MT19937 initial state for a 32-bit seed.
// The result is a pre-twist state: the generator twists once before
// producing its first output.
func SeedState(seed uint32) *State {
	var s State
	s[0] = seed
	for i := 1; i < N; i++ {
		s[i] = 1812433253*(s[i-1]^(s[i-1]>>30)) + uint32(i)
	}
	return &s
}
