// Package grid implements the sliding-tile board: movement, merging,
// spawning and terminal detection. Tile content is opaque to the engine and
// comes from an injected ContentFactory.
package grid

import (
	"fmt"

	"github.com/vovakirdan/word2048/internal/vocab"
)

// Direction represents a move direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) vector() Pos {
	switch d {
	case DirUp:
		return Pos{X: 0, Y: -1}
	case DirDown:
		return Pos{X: 0, Y: 1}
	case DirLeft:
		return Pos{X: -1, Y: 0}
	case DirRight:
		return Pos{X: 1, Y: 0}
	default:
		return Pos{}
	}
}

// Pos is a cell coordinate; X is the column and Y the row.
type Pos struct {
	X, Y int
}

func (p Pos) add(v Pos) Pos {
	return Pos{X: p.X + v.X, Y: p.Y + v.Y}
}

// String formats the position as (x,y).
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// TileID identifies a tile within one engine. Ids are never reused.
type TileID uint64

// Tile is one occupied cell. Value is always 2^Level.
type Tile struct {
	ID    TileID
	Word  vocab.WordRecord
	Level int
	Value int
	Pos   Pos
}

// ValueForLevel returns the numeric value of a tile of the given level.
func ValueForLevel(level int) int {
	if level < 1 {
		return 0
	}
	return 1 << level
}

// ContentFactory supplies the word for a newly spawned tile.
type ContentFactory interface {
	NewTileContent() vocab.WordRecord
}

// ContentFunc adapts a plain function to ContentFactory.
type ContentFunc func() vocab.WordRecord

// NewTileContent calls f.
func (f ContentFunc) NewTileContent() vocab.WordRecord {
	return f()
}

// Merge describes two tiles combined into one during a move. Into is the
// tile that was hit and From the moving tile at its starting position; the
// produced tile sits in Into's cell with From's word.
type Merge struct {
	Into     Tile
	From     Tile
	Produced Tile
}

// Relocation describes a tile that slid without merging.
type Relocation struct {
	TileID TileID
	From   Pos
	To     Pos
}

// MoveResult summarizes one call to Engine.Move.
type MoveResult struct {
	Moved       bool
	ScoreDelta  int
	Merges      []Merge
	Relocations []Relocation
}
