package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/word2048/internal/vocab"
)

// Selection holds the user's choice from the wordbook picker.
type Selection struct {
	Book   string
	Levels []string
}

var (
	pickerTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	pickerGroupStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pickerCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	pickerHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pickerWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// BooksModel lets users choose a wordbook and then its active levels.
type BooksModel struct {
	books         []vocab.Wordbook
	cursor        int
	levelCursor   int
	inLevelSelect bool
	levels        []string // levels checked in the level step
	width         int
	height        int
	keyMapper     *KeyMapper
	message       string
	selection     Selection
	choosing      bool
	quitting      bool
	back          bool
}

// NewBooksModel creates a picker positioned on the active book. The
// current levels are preselected when the active book is chosen again.
func NewBooksModel(src *vocab.Source, active string, levels []string, width, height int) BooksModel {
	books := src.Books()
	m := BooksModel{
		books:     books,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		levels:    slices.Clone(levels),
		choosing:  true,
	}
	for i, b := range books {
		if b.ID == active {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m BooksModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BooksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleBookSelectKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m BooksModel) handleBookSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.books)-1 {
			m.cursor++
		}
	case MenuActionSelect, MenuActionToggle:
		if len(m.books) == 0 {
			return m, nil
		}
		book := m.books[m.cursor]
		if book.Single() || len(book.Levels) == 0 {
			m.finish(book.ID, book.LevelIDs())
			return m, nil
		}
		m.inLevelSelect = true
		m.levelCursor = 0
		m.levels = keepKnown(m.levels, book.LevelIDs())
		if len(m.levels) == 0 {
			m.levels = []string{book.LevelIDs()[0]}
		}
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

func (m BooksModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	book := m.books[m.cursor]
	ids := book.LevelIDs()

	switch action {
	case MenuActionQuit:
		m.quitting = true
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(ids)-1 {
			m.levelCursor++
		}
	case MenuActionToggle:
		m.toggle(ids[m.levelCursor])
	case MenuActionSelect:
		m.finish(book.ID, ordered(m.levels, ids))
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// toggle checks or unchecks a level; the last checked level stays.
func (m *BooksModel) toggle(id string) {
	i := slices.Index(m.levels, id)
	switch {
	case i < 0:
		m.levels = append(m.levels, id)
	case len(m.levels) == 1:
		m.message = "At least one level must stay selected"
	default:
		m.levels = slices.Delete(m.levels, i, i+1)
	}
}

func (m *BooksModel) finish(book string, levels []string) {
	m.choosing = false
	m.selection = Selection{Book: book, Levels: levels}
}

// keepKnown returns the entries of levels that are in known.
func keepKnown(levels, known []string) []string {
	var out []string
	for _, l := range levels {
		if slices.Contains(known, l) {
			out = append(out, l)
		}
	}
	return out
}

// ordered returns the checked levels in the book's declaration order.
func ordered(checked, ids []string) []string {
	var out []string
	for _, id := range ids {
		if slices.Contains(checked, id) {
			out = append(out, id)
		}
	}
	return out
}

// View renders the picker.
func (m BooksModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewBookSelect()
}

func (m BooksModel) viewBookSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(pickerTitleStyle.Render("WORDBOOKS"), m.width))
	b.WriteString("\n\n")

	var group vocab.Group = "-"
	for i, book := range m.books {
		if book.Group != group {
			group = book.Group
			b.WriteString(centerText(pickerGroupStyle.Render(group.Label()), m.width))
			b.WriteString("\n")
		}

		cursor := "  "
		line := fmt.Sprintf("%s %s (%d words)", book.Emoji, book.Name, book.TotalWords())
		if i == m.cursor {
			cursor = "> "
			line = pickerCursorStyle.Render(line)
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	if len(m.books) > 0 {
		if desc := m.books[m.cursor].Description; desc != "" {
			b.WriteString("\n")
			b.WriteString(centerText(pickerHintStyle.Render(desc), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText(pickerHintStyle.Render("No wordbooks loaded"), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(pickerHintStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m BooksModel) viewLevelSelect() string {
	var b strings.Builder
	book := m.books[m.cursor]

	b.WriteString("\n")
	b.WriteString(centerText(pickerTitleStyle.Render(fmt.Sprintf("%s %s", book.Emoji, book.Name)), m.width))
	b.WriteString("\n\n")

	pool := 0
	for i, level := range book.Levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		check := "[ ]"
		if slices.Contains(m.levels, level.ID) {
			check = "[x]"
			pool += len(level.Words)
		}

		name := level.Name
		if info, ok := vocab.CEFRInfo(level.ID); ok {
			name = fmt.Sprintf("%s %s", info.Emoji, info.Name)
		}
		line := fmt.Sprintf("%s%s %-3s %s (%d)", cursor, check, level.ID, name, len(level.Words))
		if i == m.levelCursor {
			line = pickerCursorStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("%d words selected", pool), m.width))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(centerText(pickerWarnStyle.Render(m.message), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(pickerHintStyle.Render("Space: Toggle  |  Enter: Apply  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m BooksModel) Selected() *Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m BooksModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m BooksModel) WantsBack() bool {
	return m.back
}
