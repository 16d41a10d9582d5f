package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/word2048/internal/core"
	"github.com/vovakirdan/word2048/internal/game"
)

var splashLogo = []string{
	"█   █  ███  ████  ████    ████   ███  █  █  ███ ",
	"█   █ █   █ █   █ █   █      █  █  ██ █  █ █   █",
	"█ █ █ █   █ ████  █   █   ███   █ █ █ ████  ███ ",
	"██ ██ █   █ █  █  █   █  █      ██  █    █ █   █",
	"█   █  ███  █   █ ████   ████    ███     █  ███ ",
}

// renderSplash draws the start screen: logo, the active wordbook and a
// hint that any key skips ahead.
func renderSplash(dst *core.Screen, s *game.Session) {
	dst.Clear()

	lines := splashLogo
	if dst.Width() < core.TextWidth(splashLogo[0])+4 {
		lines = []string{"W O R D   2 0 4 8"}
	}

	book := s.ActiveCollection()
	if wb, ok := s.Vocabulary().Book(book); ok {
		book = strings.TrimSpace(wb.Emoji + " " + wb.Name)
	}
	info := fmt.Sprintf("%s · %s · %d words", book, strings.Join(s.ActiveLevels(), " "), s.PoolSize())

	total := len(lines) + 6
	y := core.Max((dst.Height()-total)/2, 0)

	colors := []core.Color{core.ColorLeaf, core.ColorGreen, core.ColorAmber, core.ColorOrange, core.ColorRed}
	for i, line := range lines {
		dst.DrawTextCentered(y+i, line, colors[i%len(colors)])
	}
	y += len(lines) + 1

	dst.DrawTextCentered(y, "Merge tiles, learn words", core.ColorBrightWhite)
	dst.DrawTextCentered(y+2, core.Truncate(info, dst.Width()), core.ColorCyan)
	if best := s.BestScore(); best > 0 {
		dst.DrawTextCentered(y+3, fmt.Sprintf("Best: %d", best), core.ColorYellow)
	}
	dst.DrawTextCentered(y+5, "Press any key to start", core.ColorGray)
}
