package gui

import (
	"time"
)

// RecordedSample is one observed tick, kept for the history graph. The
// fields are addressed by name from GraphConfig.StatPath.
type RecordedSample struct {
	RecordedAt time.Time

	// the live index cursor at the time of the sample
	Mti float64

	// the value the game will draw next
	Percentage float64
}

// SampleHistory is a bounded FIFO of recorded samples.
type SampleHistory struct {
	samples []RecordedSample
	max     int
}

func NewSampleHistory(max int) *SampleHistory {
	return &SampleHistory{max: max}
}

// Record appends a sample, evicting the oldest once full.
func (h *SampleHistory) Record(sample RecordedSample) {
	h.samples = append(h.samples, sample)
	if len(h.samples) > h.max {
		h.samples = h.samples[len(h.samples)-h.max:]
	}
}

// Samples returns the recorded window, oldest first.
func (h *SampleHistory) Samples() []RecordedSample {
	return h.samples
}

func (h *SampleHistory) Len() int {
	return len(h.samples)
}

// recordSample captures the head of the freshly received percentage window.
// Callers hold the state mutex.
func (gui *Gui) recordSample() {
	if len(gui.State.NextPercentages) == 0 {
		return
	}
	gui.State.Samples.Record(RecordedSample{
		RecordedAt: time.Now(),
		Mti:        float64(gui.State.Mti),
		Percentage: float64(gui.State.NextPercentages[0]),
	})
}
