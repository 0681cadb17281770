package gui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSampleHistoryBound(t *testing.T) {
	h := NewSampleHistory(3)

	for i := 0; i < 10; i++ {
		h.Record(RecordedSample{
			RecordedAt: time.Unix(int64(i), 0),
			Mti:        float64(i),
			Percentage: float64(i % 100),
		})
	}

	assert.Equal(t, 3, h.Len())

	samples := h.Samples()
	// oldest first, and only the newest three survive
	assert.Equal(t, float64(7), samples[0].Mti)
	assert.Equal(t, float64(9), samples[2].Mti)
}

func TestSampleHistoryEmpty(t *testing.T) {
	h := NewSampleHistory(5)
	assert.Zero(t, h.Len())
	assert.Empty(t, h.Samples())
}
