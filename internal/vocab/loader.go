package vocab

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultBooks embed.FS

// ErrInvalidWordbook is returned for wordbook files that parse but do not
// describe a usable book.
var ErrInvalidWordbook = errors.New("vocab: invalid wordbook")

// yamlWordbook is the on-disk shape of a wordbook file. A book without
// levels may list its words at the top level; they become the synthetic
// "all" level.
type yamlWordbook struct {
	Wordbook `yaml:",inline"`
	Words    []WordRecord `yaml:"words,omitempty"`
}

// ParseYAML decodes one wordbook.
func ParseYAML(data []byte) (Wordbook, error) {
	var raw yamlWordbook
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Wordbook{}, fmt.Errorf("vocab: parse yaml: %w", err)
	}

	book := raw.Wordbook
	if len(book.Levels) == 0 && len(raw.Words) > 0 {
		book.Levels = []Level{{ID: LevelAll, Name: "全部", Words: raw.Words}}
	}

	if err := validate(book); err != nil {
		return Wordbook{}, err
	}
	if book.Group == "" {
		book.Group = GroupGeneral
	}
	if book.Name == "" {
		book.Name = book.ID
	}
	return book, nil
}

func validate(b Wordbook) error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidWordbook)
	}
	if len(b.Levels) == 0 {
		return fmt.Errorf("%w: %s has no levels", ErrInvalidWordbook, b.ID)
	}
	seen := make(map[string]bool, len(b.Levels))
	for _, l := range b.Levels {
		if l.ID == "" {
			return fmt.Errorf("%w: %s has a level without id", ErrInvalidWordbook, b.ID)
		}
		if seen[l.ID] {
			return fmt.Errorf("%w: %s declares level %s twice", ErrInvalidWordbook, b.ID, l.ID)
		}
		seen[l.ID] = true
	}
	return nil
}

// LoadFile reads one wordbook file.
func LoadFile(path string) (Wordbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Wordbook{}, fmt.Errorf("vocab: reading %s: %w", path, err)
	}
	book, err := ParseYAML(data)
	if err != nil {
		return Wordbook{}, fmt.Errorf("%s: %w", path, err)
	}
	return book, nil
}

// LoadDir loads every *.yaml / *.yml file under dir, sorted by path.
// Files that fail to load are skipped; their errors are joined into the
// returned error so the caller can report them while still using the rest.
func LoadDir(dir string) ([]Wordbook, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vocab: walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	var books []Wordbook
	var errs []error
	for _, p := range paths {
		b, err := LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		books = append(books, b)
	}
	return books, errors.Join(errs...)
}

// DefaultBooks parses the wordbooks embedded in the binary.
func DefaultBooks() ([]Wordbook, error) {
	entries, err := defaultBooks.ReadDir("defaults")
	if err != nil {
		return nil, fmt.Errorf("vocab: reading embedded books: %w", err)
	}

	var books []Wordbook
	for _, e := range entries {
		data, err := defaultBooks.ReadFile("defaults/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("vocab: reading embedded %s: %w", e.Name(), err)
		}
		b, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("vocab: embedded %s: %w", e.Name(), err)
		}
		books = append(books, b)
	}
	return books, nil
}

// Default returns a Source over the embedded wordbooks.
func Default() *Source {
	books, err := DefaultBooks()
	if err != nil {
		// The embedded files are covered by tests; an error here means a
		// broken build, and an empty source still plays with placeholders.
		return NewSource()
	}
	return NewSource(books...)
}

// Load builds a Source from the embedded books followed by the books in dir.
// Books from dir replace embedded books with the same id. An empty dir
// loads only the embedded books. A non-nil error alongside a Source lists
// files that were skipped.
func Load(dir string) (*Source, error) {
	books, err := DefaultBooks()
	if err != nil {
		return NewSource(), err
	}
	if dir == "" {
		return NewSource(books...), nil
	}
	if _, statErr := os.Stat(dir); errors.Is(statErr, fs.ErrNotExist) {
		return NewSource(books...), nil
	}

	extra, loadErr := LoadDir(dir)
	books = append(books, extra...)
	return NewSource(books...), loadErr
}
