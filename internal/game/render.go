package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/word2048/internal/core"
	"github.com/vovakirdan/word2048/internal/grid"
	"github.com/vovakirdan/word2048/internal/vocab"
)

const (
	cellWidth  = 14 // Width of each cell (including the left border)
	cellHeight = 4  // Height of each cell (including the top border)
	hudHeight  = 3
)

// RenderOptions carries host state the session does not own.
type RenderOptions struct {
	Paused bool
	Muted  bool
	Status string // transient one-line message under the board
}

// MinScreenSize returns the smallest screen that fits a board of the
// given size with its HUD and footer.
func MinScreenSize(size int) (w, h int) {
	return size*cellWidth + 1, hudHeight + size*cellHeight + 1 + 2
}

// Render draws the session to dst.
func Render(dst *core.Screen, s *Session, opts RenderOptions) {
	dst.Clear()

	size := s.Size()
	minW, minH := MinScreenSize(size)
	if dst.Width() < minW || dst.Height() < minH {
		renderTooSmall(dst, minW, minH)
		return
	}

	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1
	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight

	snap := s.Snapshot()
	renderHUD(dst, s, snap, boardX, boardW)
	renderGridLines(dst, size, boardX, boardY)

	hot := highlighted(s)
	for _, t := range s.Board() {
		r := core.NewRect(
			boardX+t.Pos.X*cellWidth+1,
			boardY+t.Pos.Y*cellHeight+1,
			cellWidth-1,
			cellHeight-1,
		)
		renderTile(dst, t, r, hot[t.ID])
	}

	footerY := boardY + boardH
	if opts.Status != "" {
		dst.DrawTextCentered(footerY, opts.Status, core.ColorYellow)
	}
	controls := "←↑↓→/WASD move · R restart · Tab books · T stats · M sound · Q quit"
	if opts.Muted {
		controls = strings.Replace(controls, "M sound", "M sound (off)", 1)
	}
	dst.DrawTextCentered(footerY+1, core.Truncate(controls, dst.Width()), core.ColorGray)

	centerX := boardX + boardW/2
	centerY := boardY + boardH/2
	switch {
	case opts.Paused:
		drawOverlay(dst, centerX, centerY, core.ColorCyan, "PAUSED", "Press P to resume")
	case snap.State == StateGameOver:
		drawOverlay(dst, centerX, centerY, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d  Words: %d", snap.Score, snap.Words),
			"Press R to restart")
	}
}

// highlighted returns the tiles produced or spawned by the last move while
// the board is still settling.
func highlighted(s *Session) map[grid.TileID]bool {
	hot := make(map[grid.TileID]bool)
	if !s.Settling() {
		return hot
	}
	last := s.LastMove()
	for _, m := range last.Merges {
		hot[m.Produced.ID] = true
	}
	if last.Spawned != nil {
		hot[last.Spawned.ID] = true
	}
	return hot
}

func renderTooSmall(dst *core.Screen, minW, minH int) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, please resize", minW, minH), core.ColorGray)
}

func renderHUD(dst *core.Screen, s *Session, snap Snapshot, boardX, boardW int) {
	title := "WORD 2048"
	if snap.Won {
		title = fmt.Sprintf("WORD 2048 · %d reached!", s.Target())
	}
	dst.DrawTextIn(core.NewRect(boardX, 0, boardW, 1), 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d  Best: %d", snap.Score, snap.BestScore))
	words := fmt.Sprintf("Words: %d", snap.Words)
	dst.DrawColoredText(boardX+boardW-core.TextWidth(words), 1, words, core.ColorCyan)

	book := s.ActiveCollection()
	if b, ok := s.Vocabulary().Book(book); ok {
		book = strings.TrimSpace(b.Emoji + " " + b.Name)
	}
	info := fmt.Sprintf("%s · %s · %d words", book, strings.Join(s.ActiveLevels(), ","), s.PoolSize())
	dst.DrawTextIn(core.NewRect(boardX, 2, boardW, 1), 2, info, core.ColorGray)
}

// renderGridLines draws the cell borders of the board.
func renderGridLines(dst *core.Screen, size, boardX, boardY int) {
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == size:
				corner = '┐'
			case y == size && x == 0:
				corner = '└'
			case y == size && x == size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTile draws the word, its meaning and the value line inside r.
func renderTile(dst *core.Screen, t grid.Tile, r core.Rect, hot bool) {
	wordColor := core.ColorBrightWhite
	if hot {
		wordColor = core.ColorBrightYellow
	}
	dst.DrawTextIn(r, r.Y, t.Word.Word, wordColor)

	if t.Word.Meaning != "" {
		dst.DrawTextIn(r, r.Y+1, t.Word.Meaning, core.ColorGray)
	}

	value := fmt.Sprintf("%d", t.Value)
	if t.Word.Level != "" {
		value += " · " + t.Word.Level
	}
	dst.DrawTextIn(r, r.Y+2, value, LevelColor(t.Word.Level))
}

// LevelColor returns the badge color of a level tag.
func LevelColor(level string) core.Color {
	switch level {
	case vocab.LevelA1:
		return core.ColorLeaf
	case vocab.LevelA2:
		return core.ColorGreen
	case vocab.LevelB1:
		return core.ColorAmber
	case vocab.LevelB2:
		return core.ColorOrange
	case vocab.LevelC1:
		return core.ColorRed
	default:
		return core.ColorCyan
	}
}

// drawOverlay draws a centered boxed message.
func drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, core.TextWidth(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(box, c)
	for i, line := range lines {
		dst.DrawTextIn(box.Inset(1), box.Y+1+i, line, c)
	}
}
