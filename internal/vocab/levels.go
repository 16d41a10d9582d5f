// Package vocab holds the word lists that feed tile content: wordbooks
// grouped into difficulty levels, and a sampler that draws from the active
// subset without repeating a word until the whole pool has been shown.
package vocab

// CEFR difficulty levels in ascending order.
const (
	LevelA1 = "A1"
	LevelA2 = "A2"
	LevelB1 = "B1"
	LevelB2 = "B2"
	LevelC1 = "C1"
)

// LevelAll is the synthetic single level of an unleveled wordbook.
const LevelAll = "all"

// CEFRLevels lists the CEFR tags in order of difficulty.
var CEFRLevels = []string{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1}

// LevelInfo is display metadata for a CEFR tag.
type LevelInfo struct {
	Name  string
	Emoji string
	Desc  string
}

var cefrInfo = map[string]LevelInfo{
	LevelA1: {Name: "入门", Emoji: "🌱", Desc: "基础词汇"},
	LevelA2: {Name: "初级", Emoji: "🌿", Desc: "初级词汇"},
	LevelB1: {Name: "中级", Emoji: "🌳", Desc: "中级词汇"},
	LevelB2: {Name: "中高级", Emoji: "🔥", Desc: "中高级词汇"},
	LevelC1: {Name: "高级", Emoji: "⚡", Desc: "高级词汇"},
}

// CEFRInfo returns display metadata for a CEFR tag.
func CEFRInfo(level string) (LevelInfo, bool) {
	info, ok := cefrInfo[level]
	return info, ok
}

// IsCEFR reports whether level is one of the five CEFR tags.
func IsCEFR(level string) bool {
	_, ok := cefrInfo[level]
	return ok
}

// CEFRRank returns the 0-based difficulty rank of a CEFR tag, or -1.
func CEFRRank(level string) int {
	for i, l := range CEFRLevels {
		if l == level {
			return i
		}
	}
	return -1
}
