package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/word2048/internal/vocab"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List wordbooks and their levels",
	Long: `Shows every wordbook: the built-in ones and those found in the
wordbook directory (vocab.dir in the config, default ~/.word2048/wordbooks).

Examples:
  word2048 books`,
	Args: cobra.NoArgs,
	Run:  runBooks,
}

func runBooks(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "word2048"})
	src := loadVocab(cfg, logger)

	books := src.Books()
	if len(books) == 0 {
		fmt.Println("No wordbooks available.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	var group vocab.Group = "-"
	for _, b := range books {
		if b.Group != group {
			if group != "-" {
				fmt.Fprintln(w)
			}
			group = b.Group
			fmt.Fprintln(w, group.Label())
		}
		fmt.Fprintf(w, "  %s\t%s %s\t%d words\n", b.ID, b.Emoji, b.Name, b.TotalWords())
		if !b.Single() {
			parts := make([]string, len(b.Levels))
			for i, l := range b.Levels {
				parts[i] = fmt.Sprintf("%s:%d", l.ID, len(l.Words))
			}
			fmt.Fprintf(w, "  \t%s\t\n", strings.Join(parts, "  "))
		}
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Run 'word2048 play --book <id> --levels A1,A2' to play with a wordbook.")
}
