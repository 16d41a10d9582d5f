package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/word2048/internal/audio"
	"github.com/vovakirdan/word2048/internal/config"
	"github.com/vovakirdan/word2048/internal/core"
	"github.com/vovakirdan/word2048/internal/grid"
	"github.com/vovakirdan/word2048/internal/storage"
	"github.com/vovakirdan/word2048/internal/vocab"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testVocab() *vocab.Source {
	return vocab.NewSource(
		vocab.Wordbook{
			ID:    "oxford",
			Name:  "Oxford",
			Group: vocab.GroupGeneral,
			Levels: []vocab.Level{
				{ID: vocab.LevelA1, Words: []vocab.WordRecord{{Word: "apple"}, {Word: "book"}, {Word: "cat"}}},
				{ID: vocab.LevelA2, Words: []vocab.WordRecord{{Word: "castle"}, {Word: "forest"}}},
			},
		},
		vocab.Wordbook{
			ID:     "food",
			Name:   "Food",
			Group:  vocab.GroupScene,
			Levels: []vocab.Level{{ID: vocab.LevelAll, Words: []vocab.WordRecord{{Word: "bread"}}}},
		},
	)
}

func testDeps(t *testing.T, store *storage.Store) Deps {
	t.Helper()
	cfg := config.Default()
	cfg.UI.Splash = 0
	cfg.Game.SettleDelay = 0
	cfg.Vocab.Book = "oxford"
	return Deps{Config: cfg, Vocab: testVocab(), Store: store}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	return NewModel(testDeps(t, store), core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: 7})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

// playAllDirections presses every direction once, one per tick.
func playAllDirections(t *testing.T, m Model) Model {
	t.Helper()
	for _, k := range []tea.KeyType{tea.KeyLeft, tea.KeyUp, tea.KeyRight, tea.KeyDown} {
		m = update(t, m, tea.KeyMsg{Type: k})
		m = update(t, m, TickMsg{})
	}
	return m
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey('a'), core.ActionLeft, false},
		{runeKey('l'), core.ActionRight, false},
		{runeKey('s'), core.ActionDown, false},
		{runeKey('r'), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionWordbooks, false},
		{runeKey('t'), core.ActionStats, false},
		{runeKey('m'), core.ActionSound, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('z'), core.ActionNone, false},
	}
	for _, tc := range tests {
		action, quit := km.MapKey(tc.msg)
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
		}
	}
}

func TestDirection(t *testing.T) {
	if Direction(core.ActionLeft) != grid.DirLeft || Direction(core.ActionDown) != grid.DirDown {
		t.Error("directional actions should map to grid directions")
	}
	if Direction(core.ActionPause) != grid.DirNone {
		t.Error("non-directional action should map to DirNone")
	}
}

func TestRenderScreenSkipsContinuationCells(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "中x")
	out := RenderScreen(s)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "中x") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestBooksModelSelectsLevels(t *testing.T) {
	m := NewBooksModel(testVocab(), "oxford", []string{vocab.LevelA1}, 80, 24)

	steps := []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyDown},
		{Type: tea.KeySpace, Runes: []rune{' '}},
		{Type: tea.KeyEnter},
	}
	for _, k := range steps {
		next, _ := m.Update(k)
		m = next.(BooksModel)
	}

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Book != "oxford" || len(sel.Levels) != 2 || sel.Levels[0] != vocab.LevelA1 || sel.Levels[1] != vocab.LevelA2 {
		t.Errorf("selection = %+v", *sel)
	}
}

func TestBooksModelKeepsLastLevel(t *testing.T) {
	m := NewBooksModel(testVocab(), "oxford", []string{vocab.LevelA1}, 80, 24)
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeySpace, Runes: []rune{' '}}} {
		next, _ := m.Update(k)
		m = next.(BooksModel)
	}
	if len(m.levels) != 1 || m.levels[0] != vocab.LevelA1 {
		t.Errorf("levels = %v, want [A1]", m.levels)
	}
	if m.message == "" {
		t.Error("expected a refusal message")
	}
	if !strings.Contains(m.View(), "At least one level") {
		t.Error("view should show the refusal")
	}
}

func TestBooksModelSingleLevelBook(t *testing.T) {
	m := NewBooksModel(testVocab(), "oxford", nil, 80, 24)
	for _, k := range []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}} {
		next, _ := m.Update(k)
		m = next.(BooksModel)
	}
	sel := m.Selected()
	if sel == nil || sel.Book != "food" || len(sel.Levels) != 1 || sel.Levels[0] != vocab.LevelAll {
		t.Errorf("selection = %+v", sel)
	}
}

func TestModelSplashSkippedByKey(t *testing.T) {
	deps := testDeps(t, nil)
	deps.Config.UI.Splash = config.Default().UI.Splash
	m := NewModel(deps, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, Seed: 1})
	if m.view != viewSplash {
		t.Fatalf("view = %v, want splash", m.view)
	}
	if !strings.Contains(m.View(), "Press any key") {
		t.Error("splash should show the skip hint")
	}

	m = update(t, m, runeKey('x'))
	if m.view != viewGame {
		t.Errorf("view = %v, want game", m.view)
	}
}

func TestModelAppliesMovesOnTick(t *testing.T) {
	m := newTestModel(t, nil)
	m = playAllDirections(t, m)

	if m.Session().Snapshot().Moves == 0 {
		t.Error("expected at least one applied move")
	}
	if !strings.Contains(m.View(), "WORD 2048") {
		t.Error("game view should show the title")
	}
}

func TestModelPauseBlocksMoves(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, runeKey('p'))
	m = playAllDirections(t, m)

	if got := m.Session().Snapshot().Moves; got != 0 {
		t.Errorf("moves while paused = %d, want 0", got)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should show the overlay")
	}
}

func TestModelSoundToggle(t *testing.T) {
	var buf bytes.Buffer
	deps := testDeps(t, nil)
	deps.Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	m := NewModel(deps, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: 7})

	if !strings.Contains(buf.String(), "file="+audio.MusicFile) {
		t.Errorf("music should start with the game, log:\n%s", buf.String())
	}

	buf.Reset()
	m = update(t, m, runeKey('m'))
	if m.sink.Planner.Volumes().Effects {
		t.Error("effects should be off after toggling")
	}
	if m.status != "Sound off" {
		t.Errorf("status = %q", m.status)
	}
	if !strings.Contains(buf.String(), "music stopped") {
		t.Errorf("turning sound off should stop the music, log:\n%s", buf.String())
	}
}

func TestModelWordbookSelectionPersists(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewBooks {
		t.Fatalf("view = %v, want books", m.view)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.view != viewGame {
		t.Errorf("view = %v, want game", m.view)
	}
	if got := m.Session().ActiveCollection(); got != "food" {
		t.Errorf("active book = %q, want food", got)
	}
	prefs, err := store.Preferences()
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Book != "food" {
		t.Errorf("stored book = %q, want food", prefs.Book)
	}
}

func TestModelQuitRecordsGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = playAllDirections(t, m)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(Model).quitting {
		t.Error("model should be quitting")
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, want 1", stats.GamesPlayed)
	}
}

func TestModelStatsScreen(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, runeKey('t'))
	if m.view != viewStats {
		t.Fatalf("view = %v, want stats", m.view)
	}
	if !strings.Contains(m.View(), "STATISTICS") {
		t.Error("stats view should show its title")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.view != viewGame {
		t.Errorf("view = %v, want game", m.view)
	}
}

func TestConnBellDropsWritesAfterClose(t *testing.T) {
	var conn bytes.Buffer
	bell := &connBell{w: &conn}

	if _, err := bell.Write([]byte("\a")); err != nil {
		t.Fatalf("Write() before close failed: %v", err)
	}
	if err := bell.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := bell.Write([]byte("\a")); err == nil {
		t.Error("Write() after close should fail")
	}
	if conn.String() != "\a" {
		t.Errorf("connection received %q, want one bell", conn.String())
	}
}
