package audio

import (
	"github.com/vovakirdan/word2048/internal/core"
	"github.com/vovakirdan/word2048/internal/game"
	"github.com/vovakirdan/word2048/internal/grid"
)

// Volumes holds the user's audio preferences. Values are in [0, 1].
type Volumes struct {
	Effects bool
	Word    float64
	Music   float64
}

// DefaultVolumes matches a fresh install: effects on, full word volume,
// quiet music.
func DefaultVolumes() Volumes {
	return Volumes{Effects: true, Word: 1.0, Music: 0.2}
}

// MusicGain maps a music slider value to output gain along a square curve,
// so low settings stay quiet.
func MusicGain(v float64) float64 {
	v = core.ClampF(v, 0, 1)
	return v * v
}

// Planner decides which cues a game event produces.
type Planner struct {
	vol Volumes
}

// NewPlanner creates a planner with the given volumes.
func NewPlanner(v Volumes) *Planner {
	p := &Planner{}
	p.SetVolumes(v)
	return p
}

// Volumes returns the current settings.
func (p *Planner) Volumes() Volumes {
	return p.vol
}

// SetVolumes replaces the settings, clamping levels into range.
func (p *Planner) SetVolumes(v Volumes) {
	v.Word = core.ClampF(v.Word, 0, 1)
	v.Music = core.ClampF(v.Music, 0, 1)
	p.vol = v
}

// ToggleEffects flips sound effects and returns the new state.
func (p *Planner) ToggleEffects() bool {
	p.vol.Effects = !p.vol.Effects
	return p.vol.Effects
}

// PlanMove returns the effect cues for a move: the slide, one tone per
// merge pitched by the produced level, and the win or game-over jingle.
// Pronouncing the spawned word is left to PlanSpawn.
func (p *Planner) PlanMove(r game.MoveReport) []Cue {
	if !p.vol.Effects || !r.Changed() {
		return nil
	}

	cues := []Cue{moveCue()}
	for _, m := range r.Merges {
		cues = append(cues, mergeCue(m.Produced.Level))
	}
	if r.Won {
		cues = append(cues, winCue())
	}
	if r.Over {
		cues = append(cues, gameOverCue())
	}
	for i := range cues {
		cues[i].Volume = 1
	}
	return cues
}

// PlanMusic returns the cue that brings the background loop in line with
// the settings: the loop at MusicGain of the music volume, or a stop cue
// when effects are off or the volume is zero.
func (p *Planner) PlanMusic() Cue {
	gain := MusicGain(p.vol.Music)
	if !p.vol.Effects || gain <= 0 {
		return Cue{Kind: KindMusicStop}
	}
	return Cue{Kind: KindMusic, File: MusicFile, Volume: gain}
}

// PlanSpawn returns the pronunciation cue for a new tile. Placeholder
// tiles and a zero word volume produce nothing.
func (p *Planner) PlanSpawn(t grid.Tile) (Cue, bool) {
	if p.vol.Word <= 0 || t.Word.Word == "" || game.IsPlaceholder(t.Word) {
		return Cue{}, false
	}
	return Cue{
		Kind:   KindWord,
		Word:   t.Word.Word,
		File:   t.Word.Audio,
		Volume: p.vol.Word,
	}, true
}
