// word2048 is a 2048 puzzle for the terminal whose tiles carry vocabulary
// words.
//
// Usage:
//
//	word2048 play      - Play in this terminal
//	word2048 serve     - Start SSH server for remote play
//	word2048 books     - List wordbooks and their levels
//	word2048 stats     - Show lifetime statistics
//	word2048 words     - List learned words
//	word2048 reset     - Clear statistics
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.word2048/config.yaml, ./configs/word2048.yaml)
//	--db <path>         - Database path (default: ~/.word2048/word2048.db)
//	--fps <rate>        - Redraw rate
//	--seed <value>      - RNG seed for reproducible boards
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/word2048/internal/config"
	"github.com/vovakirdan/word2048/internal/storage"
	"github.com/vovakirdan/word2048/internal/vocab"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "word2048",
	Short: "Word 2048 - merge tiles, learn words",
	Long: `Word 2048 is the 2048 sliding puzzle where every tile carries a
vocabulary word. Pick a wordbook and CEFR levels, merge tiles, and
build up a list of words you have met.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  books    - List wordbooks
  stats    - View lifetime statistics
  words    - List learned words
  reset    - Clear statistics

Examples:
  word2048 play
  word2048 play --book oxford_5000 --levels A1,A2
  word2048 serve --ssh :2222
  word2048 words --lang en`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Redraw rate (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(resetCmd)
}

// fatalf prints an error and exits with status 1.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig reads the configuration and applies the global flags.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.UI.TickRate = flagFPS
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg
}

// newLogger creates the logger. toFile keeps stderr free for the TUI.
func newLogger(cfg config.Config, prefix string, toFile bool) (*log.Logger, io.Closer) {
	lc := cfg.Log
	if !toFile {
		lc.File = ""
	}
	logger, closer, err := config.NewLogger(lc, prefix)
	if err != nil {
		fatalf("%v", err)
	}
	return logger, closer
}

// openStore opens the database, exiting on failure.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fatalf("opening database: %v", err)
	}
	return store
}

// openStoreOrWarn opens the database for commands that can run without it.
func openStoreOrWarn(cfg config.Config, logger *log.Logger) (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("database opened", "path", cfg.Storage.DBPath)
	return store, nil
}

// loadVocab loads the embedded wordbooks plus the configured directory.
// Broken wordbook files are reported and skipped.
func loadVocab(cfg config.Config, logger *log.Logger) *vocab.Source {
	src, err := vocab.Load(config.ExpandHome(cfg.Vocab.Dir))
	if err != nil {
		logger.Warn("some wordbooks were skipped", "error", err)
	}
	return src
}
