// Package audio turns game events into sound cues. Cues describe tones and
// word pronunciations; a Player decides what a terminal can actually do
// with them.
package audio

import (
	"fmt"
	"time"
)

// Waveform is the oscillator shape of a tone.
type Waveform string

const (
	Sine     Waveform = "sine"
	Square   Waveform = "square"
	Sawtooth Waveform = "sawtooth"
)

// Tone is one oscillator note. Gain is the starting amplitude; notes decay
// to silence over Duration.
type Tone struct {
	Freq     float64
	Wave     Waveform
	Gain     float64
	Offset   time.Duration
	Duration time.Duration
}

// Kind classifies a cue.
type Kind int

const (
	KindMove Kind = iota
	KindMerge
	KindWin
	KindGameOver
	KindWord
	KindMusic
	KindMusicStop
)

// MusicFile is the background loop played during a game.
const MusicFile = "bgm.mp3"

// String returns the cue kind name.
func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindMerge:
		return "merge"
	case KindWin:
		return "win"
	case KindGameOver:
		return "game_over"
	case KindWord:
		return "word"
	case KindMusic:
		return "music"
	case KindMusicStop:
		return "music_stop"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Cue is one sound to play. Word cues carry the word and an optional audio
// file, music cues the looped file; other cues carry tones.
type Cue struct {
	Kind   Kind
	Tones  []Tone
	Word   string
	File   string
	Volume float64
}

// End returns the time from cue start until its last tone stops.
func (c Cue) End() time.Duration {
	var end time.Duration
	for _, t := range c.Tones {
		if e := t.Offset + t.Duration; e > end {
			end = e
		}
	}
	return end
}

// MergeFrequency returns the pitch of the merge tone for a produced tile
// level; higher tiles sound higher.
func MergeFrequency(level int) float64 {
	return 220 + 50*float64(level)
}

// winNotes is a C major arpeggio.
var winNotes = []float64{523, 659, 784, 1047}

func moveCue() Cue {
	return Cue{Kind: KindMove, Tones: []Tone{
		{Freq: 220, Wave: Square, Gain: 0.1, Duration: 100 * time.Millisecond},
	}}
}

func mergeCue(level int) Cue {
	return Cue{Kind: KindMerge, Tones: []Tone{
		{Freq: MergeFrequency(level), Wave: Sine, Gain: 0.3, Duration: 300 * time.Millisecond},
	}}
}

func gameOverCue() Cue {
	return Cue{Kind: KindGameOver, Tones: []Tone{
		{Freq: 330, Wave: Sawtooth, Gain: 0.2, Duration: 500 * time.Millisecond},
	}}
}

func winCue() Cue {
	c := Cue{Kind: KindWin}
	for i, f := range winNotes {
		c.Tones = append(c.Tones, Tone{
			Freq:     f,
			Wave:     Sine,
			Gain:     0.2,
			Offset:   time.Duration(i) * 150 * time.Millisecond,
			Duration: 300 * time.Millisecond,
		})
	}
	return c
}
