package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/word2048/internal/audio"
	"github.com/vovakirdan/word2048/internal/core"
	"github.com/vovakirdan/word2048/internal/game"
	"github.com/vovakirdan/word2048/internal/storage"
)

// view is the screen the model currently shows.
type view int

const (
	viewSplash view = iota
	viewGame
	viewBooks
	viewStats
)

const statusDuration = 2 * time.Second

// Model is the Bubble Tea model for one player: splash, then the game with
// the wordbook picker and statistics as sub-screens.
type Model struct {
	deps       Deps
	session    *game.Session
	sink       *audio.Sink
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	now        func() time.Time

	view        view
	splashUntil time.Time
	paused      bool
	status      string
	statusUntil time.Time

	books BooksModel
	stats StatsModel

	quitting bool
}

// NewModel creates the model and starts the first run.
func NewModel(deps Deps, cfg core.RuntimeConfig) Model {
	deps = deps.withDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = deps.Config.UI.TickRate
	}

	session, sink := newSession(deps, cfg.Seed)
	session.Start()
	sink.SyncMusic()

	m := Model{
		deps:       deps,
		session:    session,
		sink:       sink,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		now:        time.Now,
		view:       viewGame,
	}
	if d := deps.Config.UI.Splash; d > 0 {
		m.view = viewSplash
		m.splashUntil = m.now().Add(d)
	}
	return m
}

// Session returns the game session driven by the model.
func (m Model) Session() *game.Session {
	return m.session
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	case tea.KeyMsg:
		switch m.view {
		case viewSplash:
			return m.handleSplashKey(msg)
		case viewBooks:
			return m.updateBooks(msg)
		case viewStats:
			return m.updateStats(msg)
		default:
			return m.handleKey(msg)
		}
	}

	if m.view == viewStats {
		return m.updateStats(msg)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	var cmd tea.Cmd
	switch m.view {
	case viewBooks:
		m.books.width, m.books.height = msg.Width, msg.Height
	case viewStats:
		var next tea.Model
		next, cmd = m.stats.Update(msg)
		m.stats = next.(StatsModel)
	}
	return m, cmd
}

func (m Model) handleSplashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	m.view = viewGame
	return m, nil
}

// handleKey processes keyboard input on the game surface.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		return m.quit()
	}

	switch action {
	case core.ActionPause:
		if !m.session.Over() {
			m.paused = !m.paused
		}
	case core.ActionSound:
		m.toggleSound()
	case core.ActionWordbooks:
		m.paused = false
		m.books = NewBooksModel(m.session.Vocabulary(), m.session.ActiveCollection(),
			m.session.ActiveLevels(), m.config.ScreenW, m.config.ScreenH)
		m.view = viewBooks
	case core.ActionStats:
		m.stats = NewStatsModel(m.deps.Store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewStats
	case core.ActionNone:
	default:
		if !m.paused || action == core.ActionRestart {
			m.inputFrame.Set(action)
		}
	}
	return m, nil
}

// handleTick applies the input queued since the previous tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	now := m.now()
	if m.view == viewSplash && !now.Before(m.splashUntil) {
		m.view = viewGame
	}
	if m.status != "" && now.After(m.statusUntil) {
		m.status = ""
	}

	if m.view == viewGame {
		if m.inputFrame.Has(core.ActionRestart) {
			m.session.Restart()
			m.paused = false
			m.setStatus("New game")
		} else if a, ok := m.inputFrame.FirstDirection(); ok && !m.paused {
			report := m.session.ApplyMove(Direction(a))
			if report.Won {
				m.setStatus(fmt.Sprintf("%d reached! Keep going", m.session.Target()))
			}
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) updateBooks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.books.Update(msg)
	m.books = next.(BooksModel)

	switch {
	case m.books.IsQuitting():
		return m.quit()
	case m.books.WantsBack():
		m.view = viewGame
	case m.books.Selected() != nil:
		m.applySelection(*m.books.Selected())
		m.view = viewGame
	}
	return m, cmd
}

func (m Model) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.stats.Update(msg)
	m.stats = next.(StatsModel)

	switch {
	case m.stats.IsQuitting():
		return m.quit()
	case m.stats.IsGoingBack():
		m.view = viewGame
	}
	return m, cmd
}

// applySelection switches the session to a new wordbook and levels and
// remembers the choice.
func (m *Model) applySelection(sel Selection) {
	m.session.ConfigureCollection(sel.Book)
	levels := m.session.ConfigureLevels(sel.Levels)

	if m.deps.Store != nil {
		if err := m.deps.Store.SaveSelection(m.session.ActiveCollection(), levels); err != nil {
			m.deps.Logger.Warn("could not save wordbook selection", "error", err)
		}
	}
	m.setStatus(fmt.Sprintf("%d words in play", m.session.PoolSize()))
}

func (m *Model) toggleSound() {
	on := m.sink.Planner.ToggleEffects()
	m.sink.SyncMusic()
	if on {
		m.setStatus("Sound on")
	} else {
		m.setStatus("Sound off")
	}
	if m.deps.Store != nil {
		if err := m.deps.Store.SetSetting(storage.KeyEffects, strconv.FormatBool(on)); err != nil {
			m.deps.Logger.Warn("could not save sound setting", "error", err)
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = m.now().Add(statusDuration)
}

// quit ends the current run so it is recorded, then stops the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.session.End()
	m.sink.StopMusic()
	m.quitting = true
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".word2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.deps.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("word2048_%s.txt", m.now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.deps.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.setStatus("Screenshot saved")
}

func (m Model) render() {
	if m.view == viewSplash {
		renderSplash(m.screen, m.session)
		return
	}
	game.Render(m.screen, m.session, game.RenderOptions{
		Paused: m.paused,
		Muted:  !m.sink.Planner.Volumes().Effects,
		Status: m.status,
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewBooks:
		return m.books.View()
	case viewStats:
		return m.stats.View()
	}
	m.render()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program on the local terminal.
func Run(deps Deps, cfg core.RuntimeConfig) error {
	model := NewModel(deps, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok && !m.quitting {
		// Interrupted without a quit key; still record the run.
		m.session.End()
	}
	return err
}
