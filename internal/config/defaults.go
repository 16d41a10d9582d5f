package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/word2048/internal/core"
	"github.com/vovakirdan/word2048/internal/vocab"
)

//go:embed defaults/word2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			BoardSize:   4,
			Target:      2048,
			Spawn4Prob:  0.10,
			SettleDelay: 150 * time.Millisecond,
		},
		Vocab: VocabConfig{
			Book:   "oxford_5000",
			Levels: []string{vocab.LevelA1},
			Dir:    "~/.word2048/wordbooks",
		},
		UI: UIConfig{
			TickRate:     30,
			Splash:       2 * time.Second,
			Bell:         true,
			BellMinLevel: 7,
		},
		Audio: AudioConfig{
			Effects:     true,
			WordVolume:  1.0,
			MusicVolume: 0.2,
		},
		Storage: StorageConfig{
			DBPath: "~/.word2048/word2048.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.word2048/word2048.log",
		},
		Server: ServerConfig{
			Address:     ":23234",
			HostKeyPath: "~/.word2048/host_key",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := Default()

	if c.Game.BoardSize < 2 || c.Game.BoardSize > 8 {
		c.Game.BoardSize = def.Game.BoardSize
	}
	if c.Game.Target < 4 || c.Game.Target&(c.Game.Target-1) != 0 {
		c.Game.Target = def.Game.Target
	}
	if c.Game.Spawn4Prob < 0 || c.Game.Spawn4Prob > 1 {
		c.Game.Spawn4Prob = def.Game.Spawn4Prob
	}
	if c.Game.SettleDelay < 0 {
		c.Game.SettleDelay = def.Game.SettleDelay
	}
	if c.Vocab.Book == "" {
		c.Vocab.Book = def.Vocab.Book
	}
	if c.UI.TickRate <= 0 || c.UI.TickRate > 120 {
		c.UI.TickRate = def.UI.TickRate
	}
	if c.UI.Splash < 0 {
		c.UI.Splash = 0
	}
	c.Audio.WordVolume = core.ClampF(c.Audio.WordVolume, 0, 1)
	c.Audio.MusicVolume = core.ClampF(c.Audio.MusicVolume, 0, 1)
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = def.Storage.DBPath
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = def.Server.IdleTimeout
	}
}
