package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/vovakirdan/word2048/internal/storage"
)

// Stats layout constants
const (
	maxGames  = 100 // Max games to load
	statsTabs = 2
)

// statsTab selects the table shown on the stats screen.
type statsTab int

const (
	tabGames statsTab = iota
	tabWords
)

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "games/words"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "t"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel shows lifetime statistics, the best games and the learned
// words.
type StatsModel struct {
	store      *storage.Store
	stats      storage.LifetimeStats
	games      []storage.GameEntry
	words      []storage.LearnedWord
	loadErr    error
	tab        statsTab
	table      table.Model
	help       help.Model
	keys       StatsKeyMap
	width      int
	height     int
	standalone bool // quit the program on back
	quitting   bool
	goingBack  bool
}

// NewStatsModel creates a stats model and loads its data. A nil store
// shows empty statistics.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := StatsModel{
		store:  store,
		keys:   DefaultStatsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *StatsModel) load() {
	if m.store == nil {
		return
	}
	var err error
	if m.stats, err = m.store.Stats(); err != nil {
		m.loadErr = err
		return
	}
	if m.games, err = m.store.TopGames(maxGames); err != nil {
		m.loadErr = err
		return
	}
	if m.words, err = m.store.LearnedWords(); err != nil {
		m.loadErr = err
		return
	}
	storage.SortLearned(m.words, language.English)
}

// createTable creates a table with the columns of the current tab.
func (m *StatsModel) createTable() table.Model {
	var columns []table.Column
	if m.tab == tabGames {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Tile", Width: 6},
			{Title: "Words", Width: 6},
			{Title: "Book", Width: 14},
			{Title: "Date", Width: 14},
		}
	} else {
		meaning := max(m.width-38, 10) // word, level and seen columns plus borders
		columns = []table.Column{
			{Title: "Word", Width: 16},
			{Title: "Lvl", Width: 4},
			{Title: "Seen", Width: 6},
			{Title: "Meaning", Width: min(meaning, 30)},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, summary and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the loaded data.
func (m *StatsModel) updateTableRows() {
	var rows []table.Row
	if m.tab == tabGames {
		rows = make([]table.Row, len(m.games))
		for i, g := range m.games {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", g.Score),
				fmt.Sprintf("%d", g.MaxTile),
				fmt.Sprintf("%d", g.Words),
				g.Book,
				g.CreatedAt.Local().Format("Jan 02 15:04"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.words))
		for i, w := range m.words {
			rows[i] = table.Row{
				w.Word,
				w.Level,
				fmt.Sprintf("%d", w.TimesSeen),
				w.Meaning,
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.switchTab((m.tab + 1) % statsTabs)
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.switchTab((m.tab + statsTabs - 1) % statsTabs)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *StatsModel) switchTab(tab statsTab) {
	m.tab = tab
	m.table = m.createTable()
	m.updateTableRows()
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting || (m.goingBack && m.standalone) {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("STATISTICS"), m.width))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("Games: %d  ·  Words: %d  ·  Best: %d  ·  Time: %d min",
		m.stats.GamesPlayed, m.stats.DistinctWords, m.stats.AllTimeBest, m.stats.PlayMinutes)
	b.WriteString(centerText(summary, m.width))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	names := []string{"Top games", "Learned words"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if statsTab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m StatsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load statistics:\n" + m.loadErr.Error())
	case m.tab == tabGames && len(m.games) == 0:
		return emptyStyle.Render("No games recorded yet.\nFinish a game to see it here!")
	case m.tab == tabWords && len(m.words) == 0:
		return emptyStyle.Render("No words learned yet.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the game.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the stats screen as its own program.
func RunStats(store *storage.Store, width, height int) error {
	model := NewStatsModel(store, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
