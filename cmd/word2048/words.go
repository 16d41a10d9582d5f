package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/vovakirdan/word2048/internal/storage"
)

var (
	flagLang  string
	flagLevel string
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List learned words",
	Long: `List every word that has appeared on your board, sorted
alphabetically for the given language.

Examples:
  word2048 words
  word2048 words --level A2
  word2048 words --lang de`,
	Args: cobra.NoArgs,
	Run:  runWords,
}

func init() {
	wordsCmd.Flags().StringVar(&flagLang, "lang", "en", "Collation language (BCP 47 tag)")
	wordsCmd.Flags().StringVar(&flagLevel, "level", "", "Only show words of this level")
}

func runWords(_ *cobra.Command, _ []string) {
	tag, err := language.Parse(flagLang)
	if err != nil {
		fatalf("invalid language %q: %v", flagLang, err)
	}

	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	words, err := store.LearnedWords()
	if err != nil {
		fatalf("retrieving words: %v", err)
	}
	if flagLevel != "" {
		filtered := words[:0]
		for _, w := range words {
			if w.Level == flagLevel {
				filtered = append(filtered, w)
			}
		}
		words = filtered
	}
	if len(words) == 0 {
		fmt.Println("No words learned yet.")
		fmt.Println()
		fmt.Println("Run 'word2048 play' to meet some!")
		return
	}
	storage.SortLearned(words, tag)

	wordW := runewidth.StringWidth("Word")
	for _, w := range words {
		wordW = max(wordW, runewidth.StringWidth(w.Word))
	}

	fmt.Printf("  %s  %-5s  %-4s  %s\n", runewidth.FillRight("Word", wordW), "Level", "Seen", "Meaning")
	fmt.Printf("  %s  %-5s  %-4s  %s\n", runewidth.FillRight("----", wordW), "-----", "----", "-------")
	for _, w := range words {
		fmt.Printf("  %s  %-5s  %-4d  %s\n", runewidth.FillRight(w.Word, wordW), w.Level, w.TimesSeen, w.Meaning)
	}
	fmt.Println()
	fmt.Printf("%d words\n", len(words))
}
