package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear statistics, learned words and the best score",
	Long: `Delete every recorded game, every learned word and the best score.
The chosen wordbook, levels and volumes are kept.

Examples:
  word2048 reset
  word2048 reset --yes`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	if !flagYes {
		fmt.Print("Clear all statistics? [y/N] ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	if err := store.ResetStats(); err != nil {
		fatalf("%v", err)
	}
	fmt.Println("Statistics cleared.")
}
