package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/vovakirdan/word2048/internal/vocab"
)

// Setting keys.
const (
	KeyBestScore   = "best_score"
	KeyActiveBook  = "active_book"
	KeyLevels      = "active_levels"
	KeyMusicVolume = "music_volume"
	KeyWordVolume  = "word_volume"
	KeyEffects     = "effects"
)

// Preferences are the per-player settings restored at start.
type Preferences struct {
	BestScore   int
	Book        string
	Levels      []string
	MusicVolume float64
	WordVolume  float64
	Effects     bool
}

// DefaultPreferences returns the settings of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		Book:        "oxford_5000",
		Levels:      []string{vocab.LevelA1},
		MusicVolume: 0.2,
		WordVolume:  1.0,
		Effects:     true,
	}
}

// Setting returns the raw value of a key and whether it exists.
func (s *Store) Setting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores a raw value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s: %w", key, err)
	}
	return nil
}

// Preferences loads the stored settings. Each field is decoded on its own;
// a missing or malformed value falls back to its default without affecting
// the others. The error reports a failed read of the table itself.
func (s *Store) Preferences() (Preferences, error) {
	return s.PreferencesOr(DefaultPreferences())
}

// PreferencesOr is Preferences with caller-supplied fallbacks, such as the
// values from the configuration file.
func (s *Store) PreferencesOr(p Preferences) (Preferences, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return p, fmt.Errorf("storage: cannot read settings: %w", err)
	}
	defer rows.Close()

	raw := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return p, fmt.Errorf("storage: cannot scan setting: %w", err)
		}
		raw[k] = v
	}
	if err := rows.Err(); err != nil {
		return p, fmt.Errorf("storage: row iteration error: %w", err)
	}

	if v, ok := raw[KeyBestScore]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.BestScore = n
		}
	}
	if v, ok := raw[KeyActiveBook]; ok && v != "" {
		p.Book = v
	}
	if v, ok := raw[KeyLevels]; ok {
		var levels []string
		if err := json.Unmarshal([]byte(v), &levels); err == nil && len(levels) > 0 {
			p.Levels = levels
		}
	}
	if v, ok := raw[KeyMusicVolume]; ok {
		if f, ok := parseVolume(v); ok {
			p.MusicVolume = f
		}
	}
	if v, ok := raw[KeyWordVolume]; ok {
		if f, ok := parseVolume(v); ok {
			p.WordVolume = f
		}
	}
	if v, ok := raw[KeyEffects]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			p.Effects = b
		}
	}

	return p, nil
}

func parseVolume(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		return 0, false
	}
	return f, true
}

// SaveBestScore raises the stored best score; lower values are ignored.
func (s *Store) SaveBestScore(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE CAST(settings.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		KeyBestScore, strconv.Itoa(score),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// SaveSelection stores the active wordbook and levels.
func (s *Store) SaveSelection(book string, levels []string) error {
	encoded, err := json.Marshal(levels)
	if err != nil {
		return fmt.Errorf("storage: cannot encode levels: %w", err)
	}
	if err := s.SetSetting(KeyActiveBook, book); err != nil {
		return err
	}
	return s.SetSetting(KeyLevels, string(encoded))
}
