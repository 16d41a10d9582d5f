package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/word2048/internal/game"
	"github.com/vovakirdan/word2048/internal/grid"
)

// Player renders cues.
type Player interface {
	Play(c Cue)
}

// LogPlayer writes every cue to a logger at debug level. It stands in for
// a sound device when none is available.
type LogPlayer struct {
	Logger *log.Logger
}

// Play implements Player.
func (p LogPlayer) Play(c Cue) {
	if p.Logger == nil {
		return
	}
	switch c.Kind {
	case KindWord:
		p.Logger.Debug("pronounce", "word", c.Word, "file", c.File, "volume", c.Volume)
		return
	case KindMusic:
		p.Logger.Debug("music", "file", c.File, "volume", c.Volume)
		return
	case KindMusicStop:
		p.Logger.Debug("music stopped")
		return
	}
	freqs := make([]float64, len(c.Tones))
	for i, t := range c.Tones {
		freqs[i] = t.Freq
	}
	p.Logger.Debug("cue", "kind", c.Kind, "freq", freqs, "length", c.End())
}

// BellPlayer rings the terminal bell for the cues worth an interruption:
// merges of high tiles, the win and game over. At most one bell is rung
// per interval.
type BellPlayer struct {
	mu       sync.Mutex
	w        io.Writer
	minLevel int
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

// NewBellPlayer creates a bell player writing to w. Merges ring only when
// the produced tile has at least minLevel (level 7 is 128).
func NewBellPlayer(w io.Writer, minLevel int) *BellPlayer {
	return &BellPlayer{
		w:        w,
		minLevel: minLevel,
		interval: 300 * time.Millisecond,
		now:      time.Now,
	}
}

// Play implements Player.
func (p *BellPlayer) Play(c Cue) {
	if p.w == nil || !p.rings(c) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < p.interval {
		return
	}
	p.last = now
	_, _ = io.WriteString(p.w, "\a")
}

func (p *BellPlayer) rings(c Cue) bool {
	switch c.Kind {
	case KindWin, KindGameOver:
		return true
	case KindMerge:
		return len(c.Tones) > 0 && c.Tones[0].Freq >= MergeFrequency(p.minLevel)
	default:
		return false
	}
}

// Multi fans cues out to several players.
type Multi []Player

// Play implements Player.
func (m Multi) Play(c Cue) {
	for _, p := range m {
		p.Play(c)
	}
}

// Sink connects a session to a player through a planner.
type Sink struct {
	Planner *Planner
	Player  Player
}

var _ game.Observer = (*Sink)(nil)

// NewSink creates a session observer that plays planned cues.
func NewSink(planner *Planner, player Player) *Sink {
	return &Sink{Planner: planner, Player: player}
}

// SyncMusic starts, adjusts or stops the background loop to match the
// planner's settings.
func (s *Sink) SyncMusic() {
	s.Player.Play(s.Planner.PlanMusic())
}

// StopMusic silences the background loop.
func (s *Sink) StopMusic() {
	s.Player.Play(Cue{Kind: KindMusicStop})
}

// OnSpawn pronounces the new tile's word.
func (s *Sink) OnSpawn(t grid.Tile) {
	if c, ok := s.Planner.PlanSpawn(t); ok {
		s.Player.Play(c)
	}
}

// OnMove plays the move effects.
func (s *Sink) OnMove(r game.MoveReport) {
	for _, c := range s.Planner.PlanMove(r) {
		s.Player.Play(c)
	}
}

// OnGameEnded implements game.Observer; the game-over cue is already part
// of the final move.
func (s *Sink) OnGameEnded(game.Summary) {}
