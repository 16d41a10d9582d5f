// Package config loads Word 2048 settings from YAML files, a .env file and
// WORD2048_* environment variables.
package config

import "time"

// Config is the complete runtime configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Vocab   VocabConfig   `yaml:"vocab"`
	UI      UIConfig      `yaml:"ui"`
	Audio   AudioConfig   `yaml:"audio"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// GameConfig defines board and rule parameters.
type GameConfig struct {
	BoardSize   int           `yaml:"board_size"   env:"BOARD_SIZE"`
	Target      int           `yaml:"target"       env:"TARGET"`
	Spawn4Prob  float64       `yaml:"spawn4_prob"  env:"SPAWN4_PROB"`
	SettleDelay time.Duration `yaml:"settle_delay" env:"SETTLE_DELAY"`
}

// VocabConfig selects the starting wordbook and where extra books live.
type VocabConfig struct {
	Book   string   `yaml:"book"   env:"BOOK"`
	Levels []string `yaml:"levels" env:"LEVELS" envSeparator:","`
	Dir    string   `yaml:"dir"    env:"WORDBOOK_DIR"`
}

// UIConfig defines terminal presentation parameters.
type UIConfig struct {
	TickRate     int           `yaml:"tick_rate"      env:"TICK_RATE"`
	Splash       time.Duration `yaml:"splash"         env:"SPLASH"`
	Bell         bool          `yaml:"bell"           env:"BELL"`
	BellMinLevel int           `yaml:"bell_min_level" env:"BELL_MIN_LEVEL"`
}

// AudioConfig holds the default volumes used before preferences are saved.
type AudioConfig struct {
	Effects     bool    `yaml:"effects"      env:"EFFECTS"`
	WordVolume  float64 `yaml:"word_volume"  env:"WORD_VOLUME"`
	MusicVolume float64 `yaml:"music_volume" env:"MUSIC_VOLUME"`
}

// StorageConfig locates the database.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"DB"`
}

// LogConfig controls logging. An empty File logs to stderr.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
	File  string `yaml:"file"  env:"LOG_FILE"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"       env:"SSH_ADDR"`
	HostKeyPath string        `yaml:"host_key_path" env:"SSH_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout"  env:"SSH_IDLE_TIMEOUT"`
}
