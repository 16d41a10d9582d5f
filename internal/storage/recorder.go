package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/word2048/internal/game"
	"github.com/vovakirdan/word2048/internal/grid"
)

// Recorder persists session events. Write failures are logged and never
// interrupt play.
type Recorder struct {
	store  *Store
	logger *log.Logger
}

var _ game.Observer = (*Recorder)(nil)

// NewRecorder creates an observer writing to store.
func NewRecorder(store *Store, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, logger: logger}
}

// OnSpawn implements game.Observer.
func (r *Recorder) OnSpawn(grid.Tile) {}

// OnMove saves a new best score.
func (r *Recorder) OnMove(rep game.MoveReport) {
	if !rep.NewBest {
		return
	}
	if err := r.store.SaveBestScore(rep.BestScore); err != nil {
		r.logger.Warn("saving best score", "err", err)
	}
}

// OnGameEnded records the finished game.
func (r *Recorder) OnGameEnded(sum game.Summary) {
	if err := r.store.RecordGame(RecordFromSummary(sum)); err != nil {
		r.logger.Warn("recording game", "run", sum.RunID, "err", err)
		return
	}
	r.logger.Debug("game recorded", "run", sum.RunID, "score", sum.Score, "words", len(sum.Words))
}
