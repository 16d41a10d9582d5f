package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/word2048/internal/platform/tui"
)

var flagPlain bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime statistics",
	Long: `Display games played, distinct words, best score and play time,
with the best games and learned words in an interactive table.

Output is plain text when stdout is not a terminal or --plain is set.

Examples:
  word2048 stats
  word2048 stats --plain`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive view")
}

func runStats(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunStats(store, width, height); err != nil {
			fatalf("%v", err)
		}
		return
	}

	stats, err := store.Stats()
	if err != nil {
		fatalf("retrieving statistics: %v", err)
	}
	fmt.Printf("Games played:   %d\n", stats.GamesPlayed)
	fmt.Printf("Words learned:  %d\n", stats.DistinctWords)
	fmt.Printf("Best score:     %d\n", stats.AllTimeBest)
	fmt.Printf("Time played:    %d min\n", stats.PlayMinutes)

	games, err := store.TopGames(10)
	if err != nil {
		fatalf("retrieving games: %v", err)
	}
	if len(games) == 0 {
		fmt.Println()
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Println()
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Tile", "Words", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----", "----")
	for i, g := range games {
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %s\n", i+1, g.Score, g.MaxTile, g.Words,
			g.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
