package mt

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// NumNextStates bounds how many twisted states the mirror keeps around. The
// game advances its own generator between our probes, so we hold a small
// window of future states and try to find the observed value inside it
// rather than resetting on every tick.
const NumNextStates = 10

// Mirror is a local MT19937 clone kept in approximate sync with the state
// observed in the target process. It owns a bounded cache of contiguous
// twisted states; element k of the cache is the state after k twists from
// the oldest cached one. The cursor mti indexes into the head state.
type Mirror struct {
	states []*State
	mti    int

	Log *logrus.Entry
}

// NewMirror returns an empty mirror. It has no data until ResetFromState.
func NewMirror(log *logrus.Entry) *Mirror {
	return &Mirror{
		states: make([]*State, 0, NumNextStates),
		mti:    -1,
		Log:    log,
	}
}

// ResetFromState discards any cached history and restarts the mirror from an
// observed snapshot. An observed mti of exactly N is a boundary value the
// game produces legitimately; it is normalized to 0.
func (mr *Mirror) ResetFromState(state *State, mti int) error {
	if state == nil {
		return fmt.Errorf("cannot reset mirror from a nil state")
	}
	if mti < 0 || mti > N {
		return fmt.Errorf("cannot reset mirror: mti %d out of range", mti)
	}
	if mti == N {
		mr.Log.Warnf("resetting an mti of %d to 0", mti)
		mti = 0
	}

	mr.states = append(mr.states[:0], state)
	mr.mti = mti
	return nil
}

// HasData reports whether the mirror has been reset from at least one
// observed state.
func (mr *Mirror) HasData() bool {
	return mr.mti >= 0 && len(mr.states) > 0
}

// Mti returns the current cursor into the head state.
func (mr *Mirror) Mti() int {
	return mr.mti
}

// NextElements returns the next n tempered outputs starting at the cursor.
// The cursor does not move; looking ahead past the cached states twists new
// ones into the cache, up to the NumNextStates bound.
func (mr *Mirror) NextElements(n int) ([]uint32, error) {
	if !mr.HasData() {
		return nil, fmt.Errorf("mirror has no state to read from")
	}

	els := make([]uint32, 0, n)
	for i := 0; i < n; i++ {
		offset := mr.mti + i
		mti := offset % N
		ahead := offset / N

		if err := mr.ensureStatesAhead(ahead); err != nil {
			return nil, err
		}

		els = append(els, Temper(mr.states[ahead][mti]))
	}

	return els, nil
}

// NextPercentages is NextElements with each output reduced modulo 100.
func (mr *Mirror) NextPercentages(n int) ([]int, error) {
	els, err := mr.NextElements(n)
	if err != nil {
		return nil, err
	}

	pcs := make([]int, len(els))
	for i, el := range els {
		pcs[i] = int(el % 100)
	}
	return pcs, nil
}

// Sync tries to line the mirror up with the observed generator without a
// reset. If the observed word is found at index observedMti of any cached
// state, the states before it are discarded (they are behind the live
// generator now) and the cursor moves to observedMti. Returns false when the
// observed value is in none of the cached states, in which case the caller
// should ResetFromState.
func (mr *Mirror) Sync(observedWord uint32, observedMti int) bool {
	if observedMti < 0 || observedMti >= N {
		mr.Log.Warnf("trying to sync a bad mti: %d", observedMti)
		return false
	}

	for k, state := range mr.states {
		if state[observedMti] != observedWord {
			continue
		}

		mr.states = mr.states[k:]
		mr.mti = observedMti
		return true
	}

	mr.Log.Warnf("can't find element %d with mti %d, need to reset", observedWord, observedMti)
	return false
}

// ensureStatesAhead twists and appends states until cache index ahead exists.
func (mr *Mirror) ensureStatesAhead(ahead int) error {
	if ahead >= NumNextStates {
		return fmt.Errorf("lookahead needs %d states, mirror caches at most %d", ahead+1, NumNextStates)
	}

	for len(mr.states) <= ahead {
		mr.states = append(mr.states, Twist(mr.states[len(mr.states)-1]))
	}
	return nil
}
