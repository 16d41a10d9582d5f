package game

import (
	"fmt"
	"math/bits"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/word2048/internal/grid"
	"github.com/vovakirdan/word2048/internal/vocab"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type recorder struct {
	spawns  []grid.Tile
	moves   []MoveReport
	endings []Summary
}

func (r *recorder) OnSpawn(t grid.Tile)     { r.spawns = append(r.spawns, t) }
func (r *recorder) OnMove(m MoveReport)     { r.moves = append(r.moves, m) }
func (r *recorder) OnGameEnded(sum Summary) { r.endings = append(r.endings, sum) }

func testSource() *vocab.Source {
	var words []vocab.WordRecord
	for _, w := range []string{"apple", "book", "cat", "dog", "egg", "fish"} {
		words = append(words, vocab.WordRecord{Word: w, Meaning: "m-" + w})
	}
	return vocab.NewSource(
		vocab.Wordbook{
			ID:    "test",
			Name:  "Test",
			Group: vocab.GroupGeneral,
			Levels: []vocab.Level{
				{ID: vocab.LevelA1, Words: words[:4]},
				{ID: vocab.LevelA2, Words: words[4:]},
			},
		},
		vocab.Wordbook{
			ID:     "empty",
			Levels: []vocab.Level{{ID: vocab.LevelAll}},
		},
	)
}

func newTestSession(t *testing.T, seed int64, opts ...Option) (*Session, *grid.Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	sampler := vocab.NewSampler(testSource(), rand.New(rand.NewSource(seed)))
	engine := grid.NewEngine(4, rand.New(rand.NewSource(seed+1)))
	all := append([]Option{WithClock(clock.Now)}, opts...)
	s := NewSession(engine, sampler, all...)
	s.Start()
	return s, engine, clock
}

// setBoard replaces the board with tiles of the given values. Each tile's
// word names its cell.
func setBoard(t *testing.T, e *grid.Engine, values [4][4]int) {
	t.Helper()
	e.Reset()
	for y := range 4 {
		for x := range 4 {
			v := values[y][x]
			if v == 0 {
				continue
			}
			w := vocab.WordRecord{Word: fmt.Sprintf("w%d%d", x, y), Level: vocab.LevelB1}
			if _, err := e.Place(grid.Pos{X: x, Y: y}, w, bits.TrailingZeros(uint(v))); err != nil {
				t.Fatalf("Place(%d,%d): %v", x, y, err)
			}
		}
	}
}

func TestStartSpawnsTwoTiles(t *testing.T) {
	rec := &recorder{}
	s, _, _ := newTestSession(t, 1, WithObserver(rec))

	if n := len(s.Board()); n != 2 {
		t.Fatalf("Board() has %d tiles, want 2", n)
	}
	if s.WordCount() != 2 {
		t.Errorf("WordCount() = %d, want 2", s.WordCount())
	}
	if len(rec.spawns) != 2 {
		t.Errorf("observer saw %d spawns, want 2", len(rec.spawns))
	}
	if s.Score() != 0 || s.Over() || s.Won() {
		t.Error("new game should start clean")
	}
	for _, tile := range s.Board() {
		if tile.Word.Level != vocab.LevelA1 {
			t.Errorf("tile %q drawn from level %q, want A1", tile.Word.Word, tile.Word.Level)
		}
	}
}

func TestMergeLeftKeepsMovingWord(t *testing.T) {
	s, e, _ := newTestSession(t, 1)
	e.Reset()
	if _, err := e.Place(grid.Pos{X: 0, Y: 0}, vocab.WordRecord{Word: "alpha"}, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Place(grid.Pos{X: 1, Y: 0}, vocab.WordRecord{Word: "beta"}, 1); err != nil {
		t.Fatal(err)
	}

	report := s.ApplyMove(grid.DirLeft)

	if report.Outcome != OutcomeMoved {
		t.Fatalf("Outcome = %s, want moved", report.Outcome)
	}
	if report.ScoreDelta != 4 || report.Score != 4 || s.Score() != 4 {
		t.Errorf("score delta=%d score=%d, want 4", report.ScoreDelta, report.Score)
	}
	if report.Spawned == nil {
		t.Fatal("a move should spawn one tile")
	}
	if len(s.Board()) != 2 {
		t.Errorf("Board() has %d tiles, want merged tile plus spawn", len(s.Board()))
	}

	merged, ok := e.At(grid.Pos{X: 0, Y: 0})
	if !ok || merged.Value != 4 || merged.Word.Word != "beta" {
		t.Errorf("merged tile = %+v", merged)
	}
	if !slices.Contains(s.WordsSeen(), "beta") {
		t.Errorf("WordsSeen() = %v, want it to include the merged word", s.WordsSeen())
	}
	if !slices.Contains(s.WordsSeen(), report.Spawned.Word.Word) {
		t.Error("spawned word should be recorded")
	}
	if !report.NewBest || report.BestScore != 4 {
		t.Errorf("best = %d (new=%v), want 4", report.BestScore, report.NewBest)
	}
}

func TestSettlingRejectsMoves(t *testing.T) {
	s, e, clock := newTestSession(t, 2)
	setBoard(t, e, [4][4]int{{2, 2, 0, 0}})

	if r := s.ApplyMove(grid.DirLeft); r.Outcome != OutcomeMoved {
		t.Fatalf("first move: %s", r.Outcome)
	}
	if !s.Settling() {
		t.Error("Settling() should be true right after a move")
	}

	before := e.Snapshot()
	if r := s.ApplyMove(grid.DirRight); r.Outcome != OutcomeRejected {
		t.Errorf("move while settling: %s, want rejected", r.Outcome)
	}
	if !slices.EqualFunc(before, e.Snapshot(), slices.Equal[[]int]) {
		t.Error("rejected move changed the board")
	}

	clock.Advance(DefaultSettleDelay)
	if s.Settling() {
		t.Error("Settling() should end after the delay")
	}
	if r := s.ApplyMove(grid.DirRight); r.Outcome != OutcomeMoved {
		t.Errorf("move after settling: %s, want moved", r.Outcome)
	}
}

func TestConcurrentMoveIsDropped(t *testing.T) {
	s, e, _ := newTestSession(t, 3)
	setBoard(t, e, [4][4]int{{2, 2, 0, 0}})

	s.mu.Lock()
	r := s.ApplyMove(grid.DirLeft)
	s.mu.Unlock()

	if r.Outcome != OutcomeRejected {
		t.Errorf("Outcome = %s, want rejected", r.Outcome)
	}
	if s.Score() != 0 {
		t.Error("dropped move should not score")
	}
}

func TestNoChangeMove(t *testing.T) {
	rec := &recorder{}
	s, e, _ := newTestSession(t, 4, WithObserver(rec))
	setBoard(t, e, [4][4]int{{4, 2, 0, 0}})

	r := s.ApplyMove(grid.DirLeft)
	if r.Outcome != OutcomeNoChange {
		t.Fatalf("Outcome = %s, want no_change", r.Outcome)
	}
	if r.Spawned != nil || len(s.Board()) != 2 {
		t.Error("a no-op move must not spawn")
	}
	if s.Settling() {
		t.Error("a no-op move must not open the settling window")
	}
	if len(rec.moves) != 0 {
		t.Error("observers should only see moves that changed the board")
	}
	if r := s.ApplyMove(grid.DirRight); r.Outcome != OutcomeMoved {
		t.Errorf("next move: %s, want moved", r.Outcome)
	}
}

func TestInvalidDirection(t *testing.T) {
	s, _, _ := newTestSession(t, 5)
	before := s.Snapshot()

	r := s.ApplyMove(grid.DirNone)
	if r.Outcome != OutcomeInvalid {
		t.Errorf("Outcome = %s, want invalid", r.Outcome)
	}
	after := s.Snapshot()
	if after.Score != before.Score || !slices.EqualFunc(before.Board, after.Board, slices.Equal[[]int]) {
		t.Error("invalid move changed the session")
	}
}

func TestMoveBeforeStartRejected(t *testing.T) {
	s := NewSession(nil, nil)
	if r := s.ApplyMove(grid.DirLeft); r.Outcome != OutcomeRejected {
		t.Errorf("Outcome = %s, want rejected", r.Outcome)
	}
	if s.Snapshot().State != StateIdle {
		t.Errorf("State = %s, want idle", s.Snapshot().State)
	}
}

func TestSaturatedBoardIsNoOp(t *testing.T) {
	s, e, _ := newTestSession(t, 6)
	setBoard(t, e, [4][4]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
	if !e.IsTerminal() {
		t.Fatal("board should be terminal")
	}

	for _, d := range []grid.Direction{grid.DirUp, grid.DirDown, grid.DirLeft, grid.DirRight} {
		r := s.ApplyMove(d)
		if r.Outcome != OutcomeNoChange {
			t.Errorf("ApplyMove(%s) = %s, want no_change", d, r.Outcome)
		}
	}
	if s.Score() != 0 || len(s.Board()) != 16 {
		t.Error("saturated board should not change")
	}
}

func TestGameOverAfterLastMove(t *testing.T) {
	rec := &recorder{}
	s, e, clock := newTestSession(t, 7, WithObserver(rec), WithSpawn4Prob(0))
	setBoard(t, e, [4][4]int{
		{2, 2, 8, 16},
		{8, 16, 32, 4},
		{16, 32, 64, 8},
		{32, 64, 128, 16},
	})

	r := s.ApplyMove(grid.DirLeft)
	if r.Outcome != OutcomeMoved {
		t.Fatalf("Outcome = %s", r.Outcome)
	}
	if r.Spawned == nil || r.Spawned.Pos != (grid.Pos{X: 3, Y: 0}) || r.Spawned.Value != 2 {
		t.Fatalf("Spawned = %+v, want a 2 in the only empty cell", r.Spawned)
	}
	if !r.Over || !s.Over() {
		t.Fatal("full board without pairs should end the game")
	}
	if s.Snapshot().State != StateGameOver {
		t.Errorf("State = %s, want game_over", s.Snapshot().State)
	}

	if len(rec.endings) != 1 {
		t.Fatalf("endings = %d, want 1", len(rec.endings))
	}
	sum := rec.endings[0]
	if !sum.Over || sum.Score != 4 || sum.Moves != 1 || sum.MaxTile != 128 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.RunID != s.RunID() {
		t.Error("summary should carry the run id")
	}

	clock.Advance(time.Second)
	if r := s.ApplyMove(grid.DirRight); r.Outcome != OutcomeRejected {
		t.Errorf("move after game over: %s, want rejected", r.Outcome)
	}

	s.Restart()
	if len(rec.endings) != 1 {
		t.Error("a finished game must not be reported twice")
	}
	if s.Over() || s.Score() != 0 || s.BestScore() != 4 {
		t.Errorf("after restart over=%v score=%d best=%d", s.Over(), s.Score(), s.BestScore())
	}
}

func TestWinIsReportedOnce(t *testing.T) {
	s, e, clock := newTestSession(t, 8, WithTarget(8))
	setBoard(t, e, [4][4]int{
		{4, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{4, 4, 0, 0},
	})

	r := s.ApplyMove(grid.DirLeft)
	if !r.Won || !s.Won() {
		t.Fatal("reaching the target should win")
	}
	if r.Over {
		t.Error("winning does not end the game")
	}

	clock.Advance(DefaultSettleDelay)
	// Keep merging; the win flag must not fire again.
	for _, d := range []grid.Direction{grid.DirUp, grid.DirDown, grid.DirRight} {
		r = s.ApplyMove(d)
		clock.Advance(DefaultSettleDelay)
		if r.Won {
			t.Errorf("ApplyMove(%s) reported the win again", d)
		}
	}
	if !s.Won() {
		t.Error("Won() should stay true")
	}
}

func TestRestartReportsPlayedGame(t *testing.T) {
	rec := &recorder{}
	s, e, clock := newTestSession(t, 9, WithObserver(rec), WithBestScore(100))

	s.Restart()
	if len(rec.endings) != 0 {
		t.Fatal("a game without moves should not be reported")
	}

	firstRun := s.RunID()
	setBoard(t, e, [4][4]int{{2, 2, 0, 0}})
	s.ApplyMove(grid.DirLeft)
	clock.Advance(2 * time.Minute)

	s.Restart()
	if len(rec.endings) != 1 {
		t.Fatalf("endings = %d, want 1", len(rec.endings))
	}
	sum := rec.endings[0]
	if sum.RunID != firstRun || sum.Over || sum.Score != 4 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Duration() != 2*time.Minute {
		t.Errorf("Duration() = %v, want 2m", sum.Duration())
	}
	if sum.BestScore != 100 {
		t.Errorf("BestScore = %d, want seeded 100", sum.BestScore)
	}
	if s.RunID() == firstRun {
		t.Error("restart should assign a new run id")
	}
	if s.BestScore() != 100 {
		t.Errorf("BestScore() = %d, want 100", s.BestScore())
	}
}

func TestRestartResetsBeforeNotifying(t *testing.T) {
	var events []string
	var s *Session
	var endedRun, runAtEnd string
	obs := ObserverFuncs{
		Spawn: func(grid.Tile) { events = append(events, "spawn") },
		Ended: func(sum Summary) {
			events = append(events, "ended")
			endedRun = sum.RunID.String()
			runAtEnd = s.RunID().String()
		},
	}
	s, e, _ := newTestSession(t, 12, WithObserver(obs))
	setBoard(t, e, [4][4]int{{2, 2, 0, 0}})
	s.ApplyMove(grid.DirLeft)
	events = nil

	s.Restart()

	if want := []string{"ended", "spawn", "spawn"}; !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if endedRun == "" || runAtEnd == endedRun {
		t.Errorf("new run should be in place when the old one is reported: ended=%s current=%s", endedRun, runAtEnd)
	}
	if snap := s.Snapshot(); snap.Moves != 0 || snap.Score != 0 {
		t.Errorf("snapshot after restart = %+v", snap)
	}
}

func TestEndReportsOnce(t *testing.T) {
	s, e, _ := newTestSession(t, 10)
	setBoard(t, e, [4][4]int{{2, 2, 0, 0}})
	s.ApplyMove(grid.DirLeft)

	if _, ok := s.End(); !ok {
		t.Fatal("End() should report a played game")
	}
	if _, ok := s.End(); ok {
		t.Error("End() twice should report nothing")
	}
}

func TestEmptyPoolUsesPlaceholder(t *testing.T) {
	s, _, _ := newTestSession(t, 11)
	if !s.ConfigureCollection("empty") {
		t.Fatal("ConfigureCollection(empty) failed")
	}
	s.Start()

	for _, tile := range s.Board() {
		if tile.Word.Word != Placeholder.Word {
			t.Errorf("tile word = %q, want placeholder", tile.Word.Word)
		}
	}
	if s.WordCount() != 0 {
		t.Errorf("placeholders should not count as words, got %d", s.WordCount())
	}
}

func TestConfigureLevels(t *testing.T) {
	s, _, _ := newTestSession(t, 12)

	if got := s.ConfigureLevels(nil); len(got) != 1 || got[0] != vocab.LevelA1 {
		t.Errorf("ConfigureLevels(nil) = %v, want [A1]", got)
	}
	got := s.ConfigureLevels([]string{vocab.LevelA2, "Z9"})
	if len(got) != 1 || got[0] != vocab.LevelA2 {
		t.Errorf("ConfigureLevels = %v, want [A2]", got)
	}
	if s.PoolSize() != 2 {
		t.Errorf("PoolSize() = %d, want 2", s.PoolSize())
	}
	if s.ToggleLevel(vocab.LevelA2) {
		t.Error("removing the last level should be refused")
	}
	if s.ConfigureCollection("missing") {
		t.Error("unknown wordbook should be refused")
	}
	if s.ActiveCollection() != "test" {
		t.Errorf("ActiveCollection() = %q", s.ActiveCollection())
	}
}

func TestDeterministicSessions(t *testing.T) {
	play := func() Snapshot {
		s, _, clock := newTestSession(t, 42)
		dirs := []grid.Direction{grid.DirLeft, grid.DirUp, grid.DirRight, grid.DirDown}
		for i := range 40 {
			s.ApplyMove(dirs[i%len(dirs)])
			clock.Advance(DefaultSettleDelay)
		}
		return s.Snapshot()
	}

	a, b := play(), play()
	if a.Score != b.Score || a.Moves != b.Moves || a.Words != b.Words {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
	if !slices.EqualFunc(a.Board, b.Board, slices.Equal[[]int]) {
		t.Errorf("boards differ:\n%v\n%v", a.Board, b.Board)
	}
}

func TestElapsedUsesClock(t *testing.T) {
	s, _, clock := newTestSession(t, 13)
	clock.Advance(90 * time.Second)
	if s.Elapsed() != 90*time.Second {
		t.Errorf("Elapsed() = %v, want 90s", s.Elapsed())
	}
}
