package game

import (
	"github.com/vovakirdan/word2048/internal/grid"
	"github.com/vovakirdan/word2048/internal/vocab"
)

// Placeholder is the tile content used when the active pool is empty.
var Placeholder = vocab.WordRecord{Word: "?", Level: vocab.LevelA1}

// IsPlaceholder reports whether w is the empty-pool stand-in.
func IsPlaceholder(w vocab.WordRecord) bool {
	return w.Word == Placeholder.Word && w.Meaning == ""
}

// samplerContent feeds tiles from a sampler, falling back to Placeholder.
type samplerContent struct {
	sampler *vocab.Sampler
}

var _ grid.ContentFactory = samplerContent{}

// NewTileContent implements grid.ContentFactory.
func (c samplerContent) NewTileContent() vocab.WordRecord {
	if c.sampler == nil {
		return Placeholder
	}
	w, ok := c.sampler.Draw()
	if !ok {
		return Placeholder
	}
	return w
}
