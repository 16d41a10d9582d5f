// Package game runs one Word 2048 session: it applies moves to the grid,
// spawns tiles with words from the sampler, keeps score and tracks the
// words a player has seen.
package game

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/word2048/internal/grid"
	"github.com/vovakirdan/word2048/internal/vocab"
)

// State is the coarse session state reported in snapshots.
type State string

const (
	StateIdle     State = "idle"
	StatePlaying  State = "playing"
	StateSettling State = "settling"
	StateGameOver State = "game_over"
)

// Session is one player's game. A single goroutine normally drives it;
// a move that arrives while another is being applied is rejected, not
// queued.
type Session struct {
	mu sync.Mutex

	engine    *grid.Engine
	sampler   *vocab.Sampler
	content   grid.ContentFactory
	target    int
	settle    time.Duration
	spawn4    float64
	now       func() time.Time
	observers []Observer
	logger    *log.Logger

	runID       uuid.UUID
	started     bool
	ended       bool
	score       int
	best        int
	moves       int
	won         bool
	over        bool
	words       map[string]vocab.WordRecord
	startedAt   time.Time
	endedAt     time.Time
	settleUntil time.Time
	lastMove    MoveReport
}

// events collects notifications produced under the lock so they can be
// delivered after it is released.
type events struct {
	spawns  []grid.Tile
	move    *MoveReport
	summary *Summary
}

// NewSession creates a session over engine and sampler. Call Start before
// the first move.
func NewSession(engine *grid.Engine, sampler *vocab.Sampler, opts ...Option) *Session {
	if engine == nil {
		engine = grid.NewEngine(grid.DefaultSize, nil)
	}
	s := &Session{
		engine:  engine,
		sampler: sampler,
		content: samplerContent{sampler: sampler},
		target:  DefaultTarget,
		settle:  DefaultSettleDelay,
		spawn4:  DefaultSpawn4Prob,
		now:     time.Now,
		logger:  log.New(io.Discard),
		words:   make(map[string]vocab.WordRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a fresh game with two spawned tiles. The best score is kept.
func (s *Session) Start() {
	s.mu.Lock()
	ev := s.resetLocked()
	s.mu.Unlock()
	s.emit(ev)
}

// Restart ends the current game, reporting it to observers if any move
// was made, and starts a new one. Both happen under one lock hold; the
// end of the old game is delivered before the new game's spawns.
func (s *Session) Restart() {
	s.mu.Lock()
	var ended events
	if summary, ok := s.finishLocked(false); ok {
		ended.summary = &summary
	}
	started := s.resetLocked()
	s.mu.Unlock()

	s.emit(ended)
	s.emit(started)
}

// End finishes the current game without starting another, as on quit. It
// returns false if there was nothing to report.
func (s *Session) End() (Summary, bool) {
	s.mu.Lock()
	summary, ok := s.finishLocked(false)
	s.mu.Unlock()
	if ok {
		s.emit(events{summary: &summary})
	}
	return summary, ok
}

func (s *Session) resetLocked() events {
	s.engine.Reset()
	s.runID = uuid.New()
	s.started = true
	s.ended = false
	s.score = 0
	s.moves = 0
	s.won = false
	s.over = false
	s.words = make(map[string]vocab.WordRecord)
	s.startedAt = s.now()
	s.endedAt = time.Time{}
	s.settleUntil = time.Time{}
	s.lastMove = MoveReport{}

	var ev events
	for range 2 {
		if t, ok := s.engine.Spawn(s.content, s.spawn4); ok {
			s.learn(t.Word)
			ev.spawns = append(ev.spawns, t)
		}
	}

	s.logger.Debug("game started", "run", s.runID, "book", s.activeBook(), "levels", s.activeLevels())
	return ev
}

// finishLocked closes the current run once. Runs without a move are not
// reported.
func (s *Session) finishLocked(over bool) (Summary, bool) {
	if !s.started || s.ended || s.moves == 0 {
		return Summary{}, false
	}
	s.ended = true
	s.endedAt = s.now()

	words := make([]vocab.WordRecord, 0, len(s.words))
	for _, w := range s.words {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool { return words[i].Word < words[j].Word })

	summary := Summary{
		RunID:     s.runID,
		Book:      s.activeBook(),
		Score:     s.score,
		BestScore: s.best,
		MaxTile:   s.engine.MaxValue(),
		Moves:     s.moves,
		Won:       s.won,
		Over:      over,
		Words:     words,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
	}
	s.logger.Info("game ended", "run", s.runID, "score", s.score, "words", len(words), "max", summary.MaxTile)
	return summary, true
}

// ApplyMove slides the board in dir. On a change it adds the merge score,
// spawns exactly one tile, records new words, checks for a win and for
// game over, and opens the settling window during which further moves are
// rejected.
func (s *Session) ApplyMove(dir grid.Direction) MoveReport {
	if !s.mu.TryLock() {
		return MoveReport{Outcome: OutcomeRejected, Direction: dir}
	}
	report, ev := s.applyLocked(dir)
	s.mu.Unlock()
	s.emit(ev)
	return report
}

func (s *Session) applyLocked(dir grid.Direction) (MoveReport, events) {
	var ev events
	report := MoveReport{
		Direction: dir,
		Score:     s.score,
		BestScore: s.best,
		Over:      s.over,
	}

	now := s.now()
	if !s.started || s.over || now.Before(s.settleUntil) {
		report.Outcome = OutcomeRejected
		return report, ev
	}
	if !dir.Valid() {
		report.Outcome = OutcomeInvalid
		return report, ev
	}

	res := s.engine.Move(dir)
	if !res.Moved {
		report.Outcome = OutcomeNoChange
		return report, ev
	}

	s.moves++
	s.score += res.ScoreDelta
	for _, m := range res.Merges {
		s.learn(m.Produced.Word)
	}
	if s.score > s.best {
		s.best = s.score
		report.NewBest = true
	}

	if t, ok := s.engine.Spawn(s.content, s.spawn4); ok {
		s.learn(t.Word)
		report.Spawned = &t
		ev.spawns = append(ev.spawns, t)
	}

	if !s.won && s.engine.MaxValue() >= s.target {
		s.won = true
		report.Won = true
		s.logger.Info("target reached", "run", s.runID, "target", s.target, "score", s.score)
	}

	if s.engine.IsTerminal() {
		s.over = true
		if summary, ok := s.finishLocked(true); ok {
			ev.summary = &summary
		}
	}

	s.settleUntil = now.Add(s.settle)

	report.Outcome = OutcomeMoved
	report.Merges = res.Merges
	report.Relocations = res.Relocations
	report.ScoreDelta = res.ScoreDelta
	report.Score = s.score
	report.BestScore = s.best
	report.Over = s.over
	s.lastMove = report
	ev.move = &report

	return report, ev
}

func (s *Session) learn(w vocab.WordRecord) {
	if w.Word == "" || IsPlaceholder(w) {
		return
	}
	if _, ok := s.words[w.Word]; !ok {
		s.words[w.Word] = w
	}
}

func (s *Session) emit(ev events) {
	for _, t := range ev.spawns {
		for _, o := range s.observers {
			o.OnSpawn(t)
		}
	}
	if ev.move != nil {
		for _, o := range s.observers {
			o.OnMove(*ev.move)
		}
	}
	if ev.summary != nil {
		for _, o := range s.observers {
			o.OnGameEnded(*ev.summary)
		}
	}
}

// ConfigureLevels changes the sampler's active levels. The change applies
// from the next spawned tile. It returns the levels actually in effect.
func (s *Session) ConfigureLevels(levels []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sampler == nil {
		return nil
	}
	s.sampler.SetActiveLevels(levels)
	active := s.sampler.ActiveLevels()
	if len(levels) != len(active) {
		s.logger.Warn("levels adjusted", "requested", levels, "active", active)
	} else {
		s.logger.Debug("levels changed", "active", active, "pool", s.sampler.PoolSize())
	}
	return active
}

// ToggleLevel adds or removes one level; removing the last active level
// is refused.
func (s *Session) ToggleLevel(level string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sampler == nil {
		return false
	}
	ok := s.sampler.ToggleLevel(level)
	s.logger.Debug("level toggled", "level", level, "ok", ok, "active", s.sampler.ActiveLevels())
	return ok
}

// ConfigureCollection switches the active wordbook. Unknown ids are
// ignored and reported as false.
func (s *Session) ConfigureCollection(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sampler == nil {
		return false
	}
	if !s.sampler.SetActiveCollection(id) {
		s.logger.Warn("unknown wordbook", "id", id, "active", s.sampler.ActiveCollection())
		return false
	}
	s.logger.Debug("wordbook changed", "id", id, "levels", s.sampler.ActiveLevels())
	return true
}

func (s *Session) activeBook() string {
	if s.sampler == nil {
		return ""
	}
	return s.sampler.ActiveCollection()
}

func (s *Session) activeLevels() []string {
	if s.sampler == nil {
		return nil
	}
	return s.sampler.ActiveLevels()
}

// ActiveCollection returns the id of the wordbook new tiles are drawn from.
func (s *Session) ActiveCollection() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeBook()
}

// ActiveLevels returns the active level ids.
func (s *Session) ActiveLevels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLevels()
}

// PoolSize returns the number of words the active levels hold.
func (s *Session) PoolSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sampler == nil {
		return 0
	}
	return s.sampler.PoolSize()
}

// Vocabulary returns the wordbooks the session draws from.
func (s *Session) Vocabulary() *vocab.Source {
	if s.sampler == nil {
		return vocab.NewSource()
	}
	return s.sampler.Source()
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// BestScore returns the best score seen by this session, including the
// seeded value.
func (s *Session) BestScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best
}

// WordsSeen returns the distinct words of the current game, sorted.
func (s *Session) WordsSeen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// WordCount returns the number of distinct words of the current game.
func (s *Session) WordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.words)
}

// Won reports whether the target tile was reached in this game.
func (s *Session) Won() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.won
}

// Over reports whether the board is full with no moves left.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over
}

// Settling reports whether the settling window of the last move is open.
func (s *Session) Settling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.settleUntil)
}

// Elapsed returns the play time of the current game.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return 0
	}
	if s.ended {
		return s.endedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}

// RunID identifies the current game.
func (s *Session) RunID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// Target returns the winning tile value.
func (s *Session) Target() int {
	return s.target
}

// Size returns the board dimension.
func (s *Session) Size() int {
	return s.engine.Size()
}

// Board returns copies of the tiles in row-major order.
func (s *Session) Board() []grid.Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Tiles()
}

// LastMove returns the report of the most recent move that changed the
// board.
func (s *Session) LastMove() MoveReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMove
}

// Snapshot captures the session for determinism tests and debug output.
type Snapshot struct {
	Score     int
	BestScore int
	Moves     int
	Board     [][]int
	MaxTile   int
	Words     int
	Won       bool
	State     State
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := StatePlaying
	switch {
	case !s.started:
		state = StateIdle
	case s.over:
		state = StateGameOver
	case s.now().Before(s.settleUntil):
		state = StateSettling
	}

	return Snapshot{
		Score:     s.score,
		BestScore: s.best,
		Moves:     s.moves,
		Board:     s.engine.Snapshot(),
		MaxTile:   s.engine.MaxValue(),
		Words:     len(s.words),
		Won:       s.won,
		State:     state,
	}
}
