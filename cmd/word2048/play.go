package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/word2048/internal/core"
	"github.com/vovakirdan/word2048/internal/game"
	"github.com/vovakirdan/word2048/internal/platform/tui"
	"github.com/vovakirdan/word2048/internal/storage"
)

var (
	flagBook   string
	flagLevels []string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Word 2048",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD/HJKL - Move tiles
  Tab              - Choose wordbook and levels
  T                - Statistics
  M                - Sound effects on/off
  P                - Pause
  R                - Restart
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

The chosen wordbook and levels are remembered between games.

Examples:
  word2048 play
  word2048 play --book scene_food
  word2048 play --book oxford_5000 --levels A1,A2 --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBook, "book", "", "Wordbook id (see 'word2048 books')")
	playCmd.Flags().StringSliceVar(&flagLevels, "levels", nil, "Comma-separated level ids, e.g. A1,A2")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closer := newLogger(cfg, "word2048", true)
	defer closer.Close()

	src := loadVocab(cfg, logger)
	if flagBook != "" {
		if _, ok := src.Book(flagBook); !ok {
			fatalf("unknown wordbook %q\nRun 'word2048 books' to see available wordbooks.", flagBook)
		}
	}

	store, err := openStoreOrWarn(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
	}
	if store != nil {
		defer store.Close()
		if err := saveFlagSelection(store); err != nil {
			logger.Warn("could not save wordbook selection", "error", err)
		}
	} else if flagBook != "" || len(flagLevels) > 0 {
		if flagBook != "" {
			cfg.Vocab.Book = flagBook
		}
		if len(flagLevels) > 0 {
			cfg.Vocab.Levels = flagLevels
		}
	}

	rc := core.DefaultConfig()
	rc.TickRate = cfg.UI.TickRate
	rc.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	if minW, minH := game.MinScreenSize(cfg.Game.BoardSize); rc.ScreenW < minW || rc.ScreenH < minH {
		logger.Warn("terminal smaller than the board", "size", fmt.Sprintf("%dx%d", rc.ScreenW, rc.ScreenH),
			"need", fmt.Sprintf("%dx%d", minW, minH))
	}

	deps := tui.Deps{
		Config: cfg,
		Vocab:  src,
		Store:  store,
		Logger: logger,
		Bell:   os.Stdout,
	}

	if err := tui.Run(deps, rc); err != nil {
		fatalf("%v", err)
	}
}

// saveFlagSelection stores --book and --levels so the new game starts with
// them; the stored selection wins over the config file otherwise.
func saveFlagSelection(store *storage.Store) error {
	if flagBook == "" && len(flagLevels) == 0 {
		return nil
	}
	prefs, err := store.Preferences()
	if err != nil {
		return err
	}
	book, levels := prefs.Book, prefs.Levels
	if flagBook != "" {
		book = flagBook
		if len(flagLevels) == 0 {
			levels = nil
		}
	}
	if len(flagLevels) > 0 {
		levels = flagLevels
	}
	return store.SaveSelection(book, levels)
}
