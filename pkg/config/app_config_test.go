package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsUsable(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.NotEmpty(t, cfg.Observer.ProcessName)
	assert.NotEmpty(t, cfg.Observer.Signature)
	assert.Greater(t, cfg.Observer.Lookahead, 0)
	assert.Greater(t, int64(cfg.Observer.ObserveInterval), int64(0))
	assert.Greater(t, int64(cfg.Observer.DiscoverInterval), int64(0))
	assert.Greater(t, int64(cfg.Gui.RefreshInterval), int64(0))
	assert.Greater(t, cfg.Gui.MessageBatchSize, 0)
	assert.Greater(t, cfg.Stats.MaxSamples, 0)
	assert.NotEmpty(t, cfg.Stats.Graphs)
}
