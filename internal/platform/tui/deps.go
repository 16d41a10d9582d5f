package tui

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/word2048/internal/audio"
	"github.com/vovakirdan/word2048/internal/config"
	"github.com/vovakirdan/word2048/internal/game"
	"github.com/vovakirdan/word2048/internal/grid"
	"github.com/vovakirdan/word2048/internal/storage"
	"github.com/vovakirdan/word2048/internal/vocab"
)

// Deps are the collaborators shared by every screen of one program.
type Deps struct {
	Config config.Config
	Vocab  *vocab.Source
	Store  *storage.Store // nil runs without persistence
	Logger *log.Logger
	Bell   io.Writer // terminal receiving bell cues; nil disables the bell
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Vocab == nil {
		d.Vocab = vocab.Default()
	}
	return d
}

// basePreferences returns the settings used when nothing is stored yet.
func (d Deps) basePreferences() storage.Preferences {
	cfg := d.Config
	return storage.Preferences{
		Book:        cfg.Vocab.Book,
		Levels:      cfg.Vocab.Levels,
		MusicVolume: cfg.Audio.MusicVolume,
		WordVolume:  cfg.Audio.WordVolume,
		Effects:     cfg.Audio.Effects,
	}
}

// preferences loads stored preferences over the configured defaults.
func (d Deps) preferences() storage.Preferences {
	prefs := d.basePreferences()
	if d.Store == nil {
		return prefs
	}
	p, err := d.Store.PreferencesOr(prefs)
	if err != nil {
		d.Logger.Warn("could not read preferences", "error", err)
	}
	return p
}

// newSession wires a session to the sampler, the audio sink and, when a
// store is present, the recorder.
func newSession(d Deps, seed int64) (*game.Session, *audio.Sink) {
	cfg := d.Config
	prefs := d.preferences()

	rng := rand.New(rand.NewSource(seed))
	sampler := vocab.NewSampler(d.Vocab, rng)

	planner := audio.NewPlanner(audio.Volumes{
		Effects: prefs.Effects,
		Word:    prefs.WordVolume,
		Music:   prefs.MusicVolume,
	})
	var player audio.Player = audio.LogPlayer{Logger: d.Logger}
	if d.Bell != nil && cfg.UI.Bell {
		player = audio.Multi{player, audio.NewBellPlayer(d.Bell, cfg.UI.BellMinLevel)}
	}

	sink := audio.NewSink(planner, player)

	opts := []game.Option{
		game.WithTarget(cfg.Game.Target),
		game.WithSettleDelay(cfg.Game.SettleDelay),
		game.WithSpawn4Prob(cfg.Game.Spawn4Prob),
		game.WithLogger(d.Logger),
		game.WithBestScore(prefs.BestScore),
		game.WithObserver(sink),
	}
	if d.Store != nil {
		opts = append(opts, game.WithObserver(storage.NewRecorder(d.Store, d.Logger)))
	}

	s := game.NewSession(grid.NewEngine(cfg.Game.BoardSize, rng), sampler, opts...)
	s.ConfigureCollection(prefs.Book)
	s.ConfigureLevels(prefs.Levels)
	return s, sink
}
