package audio

import (
	"bytes"
	"testing"
	"time"

	"github.com/vovakirdan/word2048/internal/game"
	"github.com/vovakirdan/word2048/internal/grid"
	"github.com/vovakirdan/word2048/internal/vocab"
)

type capture struct {
	cues []Cue
}

func (c *capture) Play(cue Cue) {
	c.cues = append(c.cues, cue)
}

func (c *capture) kinds() []Kind {
	out := make([]Kind, len(c.cues))
	for i, cue := range c.cues {
		out[i] = cue.Kind
	}
	return out
}

// square multiplies at run time, matching MusicGain's float64 rounding.
func square(v float64) float64 {
	return v * v
}

func mergeOf(level int) grid.Merge {
	return grid.Merge{Produced: grid.Tile{Level: level, Value: grid.ValueForLevel(level)}}
}

func TestMergeFrequency(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{1, 270},
		{2, 320},
		{11, 770},
	}
	for _, tt := range tests {
		if got := MergeFrequency(tt.level); got != tt.want {
			t.Errorf("MergeFrequency(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestMusicGain(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.1, square(0.1)},
		{0.5, 0.25},
		{1, 1},
		{2, 1},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := MusicGain(tt.in); got != tt.want {
			t.Errorf("MusicGain(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPlanMusicFollowsVolume(t *testing.T) {
	tests := []struct {
		name     string
		vol      Volumes
		wantKind Kind
		wantVol  float64
	}{
		{"default", DefaultVolumes(), KindMusic, square(0.2)},
		{"full", Volumes{Effects: true, Music: 1}, KindMusic, 1},
		{"half", Volumes{Effects: true, Music: 0.5}, KindMusic, 0.25},
		{"zero volume", Volumes{Effects: true, Music: 0}, KindMusicStop, 0},
		{"effects off", Volumes{Effects: false, Music: 1}, KindMusicStop, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPlanner(tt.vol).PlanMusic()
			if c.Kind != tt.wantKind || c.Volume != tt.wantVol {
				t.Errorf("PlanMusic() = %v at %v, want %v at %v", c.Kind, c.Volume, tt.wantKind, tt.wantVol)
			}
			if c.Kind == KindMusic && c.File != MusicFile {
				t.Errorf("File = %q, want %q", c.File, MusicFile)
			}
		})
	}
}

func TestSinkSyncMusic(t *testing.T) {
	planner := NewPlanner(Volumes{Effects: true, Music: 0.5})
	player := &capture{}
	sink := NewSink(planner, player)

	sink.SyncMusic()
	planner.ToggleEffects()
	sink.SyncMusic()
	planner.SetVolumes(Volumes{Effects: true, Music: 1})
	sink.SyncMusic()
	sink.StopMusic()

	want := []Kind{KindMusic, KindMusicStop, KindMusic, KindMusicStop}
	got := player.kinds()
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cue %d = %v, want %v", i, got[i], want[i])
		}
	}
	if player.cues[0].Volume == player.cues[2].Volume {
		t.Error("music volume change should change the cue volume")
	}
}

func TestPlanMove(t *testing.T) {
	p := NewPlanner(DefaultVolumes())

	report := game.MoveReport{
		Outcome: game.OutcomeMoved,
		Merges:  []grid.Merge{mergeOf(2), mergeOf(5)},
		Won:     true,
	}
	cues := p.PlanMove(report)

	want := []Kind{KindMove, KindMerge, KindMerge, KindWin}
	if len(cues) != len(want) {
		t.Fatalf("PlanMove() = %d cues, want %d", len(cues), len(want))
	}
	for i, k := range want {
		if cues[i].Kind != k {
			t.Errorf("cue %d = %s, want %s", i, cues[i].Kind, k)
		}
	}
	if cues[1].Tones[0].Freq != 320 || cues[2].Tones[0].Freq != 470 {
		t.Errorf("merge pitches = %v, %v", cues[1].Tones[0].Freq, cues[2].Tones[0].Freq)
	}
	if len(cues[3].Tones) != 4 || cues[3].End() != 750*time.Millisecond {
		t.Errorf("win arpeggio = %+v", cues[3].Tones)
	}
}

func TestPlanMoveSilentCases(t *testing.T) {
	p := NewPlanner(DefaultVolumes())
	if cues := p.PlanMove(game.MoveReport{Outcome: game.OutcomeNoChange}); len(cues) != 0 {
		t.Errorf("no-op move produced %d cues", len(cues))
	}

	p.ToggleEffects()
	if cues := p.PlanMove(game.MoveReport{Outcome: game.OutcomeMoved}); len(cues) != 0 {
		t.Errorf("muted planner produced %d cues", len(cues))
	}
}

func TestPlanSpawn(t *testing.T) {
	p := NewPlanner(Volumes{Effects: false, Word: 0.6})

	c, ok := p.PlanSpawn(grid.Tile{Word: vocab.WordRecord{Word: "apple", Audio: "apple.wav"}})
	if !ok || c.Word != "apple" || c.File != "apple.wav" || c.Volume != 0.6 {
		t.Errorf("PlanSpawn() = %+v, %v", c, ok)
	}

	if _, ok := p.PlanSpawn(grid.Tile{Word: game.Placeholder}); ok {
		t.Error("placeholder tiles should not be pronounced")
	}

	p.SetVolumes(Volumes{Word: 0})
	if _, ok := p.PlanSpawn(grid.Tile{Word: vocab.WordRecord{Word: "apple"}}); ok {
		t.Error("zero word volume should be silent")
	}
}

func TestSinkPronouncesSpawnsOnly(t *testing.T) {
	out := &capture{}
	sink := NewSink(NewPlanner(DefaultVolumes()), out)

	spawned := grid.Tile{Word: vocab.WordRecord{Word: "cat"}}
	sink.OnSpawn(spawned)
	sink.OnMove(game.MoveReport{
		Outcome: game.OutcomeMoved,
		Merges:  []grid.Merge{mergeOf(3)},
		Spawned: &spawned,
		Over:    true,
	})

	got := out.kinds()
	want := []Kind{KindWord, KindMove, KindMerge, KindGameOver}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds = %v, want %v", got, want)
			break
		}
	}
}

func TestBellPlayer(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	bell := NewBellPlayer(&buf, 7)
	bell.now = func() time.Time { return clock }

	bell.Play(moveCue())
	bell.Play(mergeCue(3))
	if buf.Len() != 0 {
		t.Fatalf("low cues rang the bell %d times", buf.Len())
	}

	bell.Play(mergeCue(7))
	bell.Play(winCue())
	if buf.String() != "\a" {
		t.Errorf("bell output = %q, want one bell inside the interval", buf.String())
	}

	clock = clock.Add(time.Second)
	bell.Play(gameOverCue())
	if buf.String() != "\a\a" {
		t.Errorf("bell output = %q, want a second bell", buf.String())
	}
}
