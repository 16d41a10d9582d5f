package vocab

import "sort"

// WordRecord is one vocabulary entry. Level is the id of the level the
// record was drawn from (a CEFR tag for leveled books).
type WordRecord struct {
	Word    string `yaml:"word"`
	Meaning string `yaml:"meaning,omitempty"`
	Level   string `yaml:"-"`
	Audio   string `yaml:"audio,omitempty"`
}

// IsZero reports whether r is the empty record.
func (r WordRecord) IsZero() bool {
	return r.Word == ""
}

// Level is a named bucket of words inside a wordbook.
type Level struct {
	ID    string       `yaml:"id"`
	Name  string       `yaml:"name"`
	Words []WordRecord `yaml:"words"`
}

// Group classifies wordbooks for listing.
type Group string

const (
	GroupGeneral Group = "general"
	GroupScene   Group = "scene"
	GroupTopic   Group = "topic"
	GroupExam    Group = "exam"
)

var groupOrder = map[Group]int{
	GroupGeneral: 0,
	GroupScene:   1,
	GroupTopic:   2,
	GroupExam:    3,
}

// Label returns the display label of the group.
func (g Group) Label() string {
	switch g {
	case GroupGeneral:
		return "📖 综合词书"
	case GroupScene:
		return "🎯 场景词书"
	case GroupTopic:
		return "🧩 专题词书"
	case GroupExam:
		return "🎓 考试词书"
	default:
		return "其他"
	}
}

// Wordbook is a named collection of leveled word lists.
type Wordbook struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Emoji       string  `yaml:"emoji"`
	Group       Group   `yaml:"group"`
	Description string  `yaml:"description"`
	Levels      []Level `yaml:"levels"`
}

// LevelIDs returns the ids of the book's levels in declaration order.
func (b Wordbook) LevelIDs() []string {
	ids := make([]string, len(b.Levels))
	for i, l := range b.Levels {
		ids[i] = l.ID
	}
	return ids
}

// Level returns the level with the given id.
func (b Wordbook) Level(id string) (Level, bool) {
	for _, l := range b.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

// TotalWords counts the words across all levels.
func (b Wordbook) TotalWords() int {
	n := 0
	for _, l := range b.Levels {
		n += len(l.Words)
	}
	return n
}

// Single reports whether the book has only the synthetic "all" level.
func (b Wordbook) Single() bool {
	return len(b.Levels) == 1 && b.Levels[0].ID == LevelAll
}

// Source is an immutable set of wordbooks. It is built once and passed to
// whoever needs vocabulary; there is no package-level registry.
type Source struct {
	books map[string]Wordbook
	order []string
}

// NewSource builds a Source from books. A later book with the same id
// replaces an earlier one but keeps the earlier position.
func NewSource(books ...Wordbook) *Source {
	s := &Source{books: make(map[string]Wordbook, len(books))}
	for _, b := range books {
		if b.ID == "" {
			continue
		}
		if _, exists := s.books[b.ID]; !exists {
			s.order = append(s.order, b.ID)
		}
		s.books[b.ID] = tagLevels(b)
	}
	return s
}

// tagLevels copies the book so every record carries its level id and the
// caller's slices are not shared.
func tagLevels(b Wordbook) Wordbook {
	levels := make([]Level, len(b.Levels))
	for i, l := range b.Levels {
		words := make([]WordRecord, len(l.Words))
		for j, w := range l.Words {
			w.Level = l.ID
			words[j] = w
		}
		levels[i] = Level{ID: l.ID, Name: l.Name, Words: words}
	}
	b.Levels = levels
	return b
}

// Len returns the number of wordbooks.
func (s *Source) Len() int {
	return len(s.order)
}

// Book returns the wordbook with the given id.
func (s *Source) Book(id string) (Wordbook, bool) {
	b, ok := s.books[id]
	return b, ok
}

// First returns the id of the first registered book, or "".
func (s *Source) First() string {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[0]
}

// Books returns all wordbooks ordered by group, then registration order.
func (s *Source) Books() []Wordbook {
	out := make([]Wordbook, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.books[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rankGroup(out[i].Group) < rankGroup(out[j].Group)
	})
	return out
}

func rankGroup(g Group) int {
	if r, ok := groupOrder[g]; ok {
		return r
	}
	return 99
}

// Levels returns the level ids of a book; unknown books yield nil.
func (s *Source) Levels(bookID string) []string {
	b, ok := s.books[bookID]
	if !ok {
		return nil
	}
	return b.LevelIDs()
}

// Words returns the words of one level. Unknown book or level ids yield
// an empty result rather than an error.
func (s *Source) Words(bookID, levelID string) []WordRecord {
	b, ok := s.books[bookID]
	if !ok {
		return nil
	}
	l, ok := b.Level(levelID)
	if !ok {
		return nil
	}
	return l.Words
}

// WordCount returns the number of words in one level.
func (s *Source) WordCount(bookID, levelID string) int {
	return len(s.Words(bookID, levelID))
}

// TotalWords returns the number of words in a book.
func (s *Source) TotalWords(bookID string) int {
	b, ok := s.books[bookID]
	if !ok {
		return 0
	}
	return b.TotalWords()
}
