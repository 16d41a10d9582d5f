package game

import (
	"strings"
	"testing"

	"github.com/vovakirdan/word2048/internal/core"
	"github.com/vovakirdan/word2048/internal/grid"
)

func TestRenderBoard(t *testing.T) {
	s, e, _ := newTestSession(t, 1)
	setBoard(t, e, [4][4]int{{2, 0, 0, 0}, {0, 0, 0, 64}})

	dst := core.NewScreen(80, 24)
	Render(dst, s, RenderOptions{})
	out := dst.String()

	for _, want := range []string{"WORD 2048", "Score: 0", "Words: 2", "w00", "w31", "64 · B1", "Test"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("running game should not show the game over overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	s, _, _ := newTestSession(t, 1)
	dst := core.NewScreen(30, 10)
	Render(dst, s, RenderOptions{})

	if !strings.Contains(dst.String(), "Window too small") {
		t.Errorf("expected size warning, got:\n%s", dst.String())
	}
}

func TestRenderOverlays(t *testing.T) {
	s, e, _ := newTestSession(t, 1, WithSpawn4Prob(0))

	dst := core.NewScreen(80, 24)
	Render(dst, s, RenderOptions{Paused: true, Status: "levels: A1"})
	if out := dst.String(); !strings.Contains(out, "PAUSED") || !strings.Contains(out, "levels: A1") {
		t.Errorf("pause overlay or status missing:\n%s", out)
	}

	setBoard(t, e, [4][4]int{
		{2, 2, 8, 16},
		{8, 16, 32, 4},
		{16, 32, 64, 8},
		{32, 64, 128, 16},
	})
	s.ApplyMove(grid.DirLeft)
	Render(dst, s, RenderOptions{})
	if !strings.Contains(dst.String(), "GAME OVER") {
		t.Errorf("game over overlay missing:\n%s", dst.String())
	}
}

func TestMinScreenSizeFitsDefaultTerminal(t *testing.T) {
	w, h := MinScreenSize(grid.DefaultSize)
	if w > 80 || h > 24 {
		t.Errorf("MinScreenSize(4) = %dx%d, larger than 80x24", w, h)
	}
}
