package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/word2048/internal/grid"
	"github.com/vovakirdan/word2048/internal/vocab"
)

// Outcome classifies the result of ApplyMove.
type Outcome int

const (
	// OutcomeRejected means the move arrived while the board was settling,
	// after game over, or while another move was in progress.
	OutcomeRejected Outcome = iota
	// OutcomeInvalid means the direction was not one of the four moves.
	OutcomeInvalid
	// OutcomeNoChange means no tile could move in that direction.
	OutcomeNoChange
	// OutcomeMoved means the board changed and a tile was spawned if room
	// was left.
	OutcomeMoved
)

// String returns a short name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeNoChange:
		return "no_change"
	case OutcomeMoved:
		return "moved"
	default:
		return "unknown"
	}
}

// MoveReport describes what one ApplyMove call did. Score, BestScore and
// Over are reported for every outcome; the rest only for OutcomeMoved.
type MoveReport struct {
	Outcome     Outcome
	Direction   grid.Direction
	Merges      []grid.Merge
	Relocations []grid.Relocation
	Spawned     *grid.Tile
	ScoreDelta  int
	Score       int
	BestScore   int
	NewBest     bool
	Won         bool // the target was reached by this move
	Over        bool
}

// Changed reports whether the board was modified.
func (r MoveReport) Changed() bool {
	return r.Outcome == OutcomeMoved
}

// Summary is emitted once per finished game.
type Summary struct {
	RunID     uuid.UUID
	Book      string
	Score     int
	BestScore int
	MaxTile   int
	Moves     int
	Won       bool
	Over      bool // ended on a full board rather than by restart or quit
	Words     []vocab.WordRecord
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns the wall time of the game.
func (s Summary) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// Observer receives session events. Methods are called synchronously on
// the goroutine that drives the session and must not call back into it.
type Observer interface {
	OnSpawn(tile grid.Tile)
	OnMove(report MoveReport)
	OnGameEnded(summary Summary)
}

// ObserverFuncs adapts optional callbacks to Observer.
type ObserverFuncs struct {
	Spawn func(grid.Tile)
	Move  func(MoveReport)
	Ended func(Summary)
}

// OnSpawn implements Observer.
func (o ObserverFuncs) OnSpawn(tile grid.Tile) {
	if o.Spawn != nil {
		o.Spawn(tile)
	}
}

// OnMove implements Observer.
func (o ObserverFuncs) OnMove(report MoveReport) {
	if o.Move != nil {
		o.Move(report)
	}
}

// OnGameEnded implements Observer.
func (o ObserverFuncs) OnGameEnded(summary Summary) {
	if o.Ended != nil {
		o.Ended(summary)
	}
}
