package storage

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortLearned orders words alphabetically for the given language,
// ignoring case and accents.
func SortLearned(words []LearnedWord, tag language.Tag) {
	c := collate.New(tag, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(words, func(i, j int) bool {
		return c.CompareString(words[i].Word, words[j].Word) < 0
	})
}
