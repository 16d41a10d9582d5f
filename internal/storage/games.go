package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/word2048/internal/game"
	"github.com/vovakirdan/word2048/internal/vocab"
)

// GameRecord is one finished game to persist.
type GameRecord struct {
	RunID    string
	Book     string
	Score    int
	MaxTile  int
	Moves    int
	Won      bool
	Duration time.Duration
	Words    []vocab.WordRecord
	PlayedAt time.Time
}

// RecordFromSummary converts a session summary.
func RecordFromSummary(sum game.Summary) GameRecord {
	return GameRecord{
		RunID:    sum.RunID.String(),
		Book:     sum.Book,
		Score:    sum.Score,
		MaxTile:  sum.MaxTile,
		Moves:    sum.Moves,
		Won:      sum.Won,
		Duration: sum.Duration(),
		Words:    sum.Words,
		PlayedAt: sum.EndedAt,
	}
}

// GameEntry is a stored game.
type GameEntry struct {
	ID        int64
	RunID     string
	Book      string
	Score     int
	MaxTile   int
	Moves     int
	Words     int
	Won       bool
	Duration  time.Duration
	CreatedAt time.Time
}

// LearnedWord is a word the player has met in any game.
type LearnedWord struct {
	Word      string
	Meaning   string
	Level     string
	TimesSeen int
	FirstSeen time.Time
	LastSeen  time.Time
}

// LifetimeStats aggregates every recorded game.
type LifetimeStats struct {
	GamesPlayed   int
	DistinctWords int
	AllTimeBest   int
	PlayMinutes   int
}

// RecordGame stores a finished game and merges its words into the learned
// word list. Recording the same run twice is an error.
func (s *Store) RecordGame(rec GameRecord) error {
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now()
	}
	played := formatTime(rec.PlayedAt)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO games (run_id, book, score, max_tile, moves, words, won, duration_secs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Book, rec.Score, rec.MaxTile, rec.Moves, len(rec.Words),
		rec.Won, int64(rec.Duration.Seconds()), played,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}

	for _, w := range rec.Words {
		_, err := tx.Exec(
			`INSERT INTO learned_words (word, meaning, level, times_seen, first_seen, last_seen)
			 VALUES (?, ?, ?, 1, ?, ?)
			 ON CONFLICT(word) DO UPDATE SET
			   times_seen = times_seen + 1,
			   last_seen = excluded.last_seen,
			   meaning = CASE WHEN learned_words.meaning = '' THEN excluded.meaning ELSE learned_words.meaning END`,
			w.Word, w.Meaning, w.Level, played, played,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save word %q: %w", w.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit game: %w", err)
	}
	return nil
}

// TopGames retrieves the top N games by score.
func (s *Store) TopGames(limit int) ([]GameEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, book, score, max_tile, moves, words, won, duration_secs, created_at
		 FROM games
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var entries []GameEntry
	for rows.Next() {
		var e GameEntry
		var secs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Book, &e.Score, &e.MaxTile, &e.Moves, &e.Words, &e.Won, &secs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(secs) * time.Second
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LearnedWords returns every learned word ordered by word.
func (s *Store) LearnedWords() ([]LearnedWord, error) {
	rows, err := s.db.Query(
		`SELECT word, meaning, level, times_seen, first_seen, last_seen
		 FROM learned_words
		 ORDER BY word`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query words: %w", err)
	}
	defer rows.Close()

	var words []LearnedWord
	for rows.Next() {
		var w LearnedWord
		var first, last any
		if err := rows.Scan(&w.Word, &w.Meaning, &w.Level, &w.TimesSeen, &first, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan word: %w", err)
		}
		w.FirstSeen = parseTime(first)
		w.LastSeen = parseTime(last)
		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return words, nil
}

// Stats returns lifetime statistics. Play time is summed per game in whole
// minutes, rounding each game to the nearest minute.
func (s *Store) Stats() (LifetimeStats, error) {
	var st LifetimeStats
	var best sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), COALESCE(SUM((duration_secs + 30) / 60), 0)
		 FROM games`,
	).Scan(&st.GamesPlayed, &best, &st.PlayMinutes)
	if err != nil {
		return LifetimeStats{}, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if best.Valid {
		st.AllTimeBest = int(best.Int64)
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM learned_words`).Scan(&st.DistinctWords); err != nil {
		return LifetimeStats{}, fmt.Errorf("storage: cannot count words: %w", err)
	}

	return st, nil
}

// ResetStats deletes recorded games, learned words and the best score in
// one transaction. The wordbook selection and volumes are kept.
func (s *Store) ResetStats() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"games", "learned_words"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("storage: cannot reset %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(`DELETE FROM settings WHERE key = ?`, KeyBestScore); err != nil {
		return fmt.Errorf("storage: cannot reset best score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit reset: %w", err)
	}
	return nil
}
