package grid

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/word2048/internal/vocab"
)

// DefaultSize is the board dimension used when none is configured.
const DefaultSize = 4

var (
	// ErrOutOfBounds is returned when a position lies outside the board.
	ErrOutOfBounds = errors.New("grid: position out of bounds")
	// ErrOccupied is returned when placing onto a non-empty cell.
	ErrOccupied = errors.New("grid: cell occupied")
	// ErrInvalidLevel is returned for tile levels below 1.
	ErrInvalidLevel = errors.New("grid: invalid tile level")
)

// Engine owns one square board. It is not safe for concurrent use; the
// game session serializes access.
type Engine struct {
	size   int
	cells  [][]*Tile
	rng    *rand.Rand
	nextID TileID
}

// NewEngine creates an empty size x size board. Sizes below 2 fall back to
// DefaultSize; a nil rng is replaced by a fixed-seed source.
func NewEngine(size int, rng *rand.Rand) *Engine {
	if size < 2 {
		size = DefaultSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	e := &Engine{size: size, rng: rng}
	e.Reset()
	return e
}

// Size returns the board dimension.
func (e *Engine) Size() int {
	return e.size
}

// Reset clears every cell. Tile ids keep increasing across resets.
func (e *Engine) Reset() {
	e.cells = make([][]*Tile, e.size)
	for y := range e.cells {
		e.cells[y] = make([]*Tile, e.size)
	}
}

func (e *Engine) inBounds(p Pos) bool {
	return p.X >= 0 && p.X < e.size && p.Y >= 0 && p.Y < e.size
}

func (e *Engine) cell(p Pos) *Tile {
	if !e.inBounds(p) {
		return nil
	}
	return e.cells[p.Y][p.X]
}

func (e *Engine) newTile(p Pos, word vocab.WordRecord, level int) *Tile {
	e.nextID++
	t := &Tile{
		ID:    e.nextID,
		Word:  word,
		Level: level,
		Value: ValueForLevel(level),
		Pos:   p,
	}
	e.cells[p.Y][p.X] = t
	return t
}

// At returns a copy of the tile at p.
func (e *Engine) At(p Pos) (Tile, bool) {
	t := e.cell(p)
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// Tiles returns copies of all tiles in row-major order.
func (e *Engine) Tiles() []Tile {
	var out []Tile
	for y := range e.size {
		for x := range e.size {
			if t := e.cells[y][x]; t != nil {
				out = append(out, *t)
			}
		}
	}
	return out
}

// EmptyCells returns the empty positions in row-major order.
func (e *Engine) EmptyCells() []Pos {
	var cells []Pos
	for y := range e.size {
		for x := range e.size {
			if e.cells[y][x] == nil {
				cells = append(cells, Pos{X: x, Y: y})
			}
		}
	}
	return cells
}

// MaxValue returns the highest tile value, or 0 on an empty board.
func (e *Engine) MaxValue() int {
	maxVal := 0
	for _, t := range e.Tiles() {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// Sum returns the total value of all tiles.
func (e *Engine) Sum() int {
	sum := 0
	for _, t := range e.Tiles() {
		sum += t.Value
	}
	return sum
}

// Snapshot returns the tile values as a matrix indexed [row][column], with
// 0 for empty cells.
func (e *Engine) Snapshot() [][]int {
	out := make([][]int, e.size)
	for y := range e.size {
		out[y] = make([]int, e.size)
		for x := range e.size {
			if t := e.cells[y][x]; t != nil {
				out[y][x] = t.Value
			}
		}
	}
	return out
}

// Place puts a tile of the given level at p.
func (e *Engine) Place(p Pos, word vocab.WordRecord, level int) (Tile, error) {
	if !e.inBounds(p) {
		return Tile{}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	if level < 1 {
		return Tile{}, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	if e.cells[p.Y][p.X] != nil {
		return Tile{}, fmt.Errorf("%w: %s", ErrOccupied, p)
	}
	return *e.newTile(p, word, level), nil
}

// Spawn places one new tile in a uniformly chosen empty cell. The tile is
// level 2 with probability spawn4Prob and level 1 otherwise. It returns
// false when the board is full.
func (e *Engine) Spawn(factory ContentFactory, spawn4Prob float64) (Tile, bool) {
	empty := e.EmptyCells()
	if len(empty) == 0 {
		return Tile{}, false
	}

	p := empty[e.rng.Intn(len(empty))]

	level := 1
	if e.rng.Float64() < spawn4Prob {
		level = 2
	}

	var word vocab.WordRecord
	if factory != nil {
		word = factory.NewTileContent()
	}
	return *e.newTile(p, word, level), true
}

// traversal returns the row and column visiting order for a move so that
// tiles nearest the destination edge are processed first.
func (e *Engine) traversal(v Pos) (xs, ys []int) {
	xs = make([]int, e.size)
	ys = make([]int, e.size)
	for i := range e.size {
		xs[i] = i
		ys[i] = i
	}
	if v.X == 1 {
		reverse(xs)
	}
	if v.Y == 1 {
		reverse(ys)
	}
	return xs, ys
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// farthest walks from p along v and returns the last empty cell reached and
// the first cell after it (blocked or off the board).
func (e *Engine) farthest(p Pos, v Pos) (last, next Pos) {
	last = p
	for {
		next = last.add(v)
		if !e.inBounds(next) || e.cells[next.Y][next.X] != nil {
			return last, next
		}
		last = next
	}
}

// Move slides every tile in dir. A tile merges with the blocking tile when
// both have the same value and the blocking tile was not itself produced by
// a merge during this move. The produced tile keeps the moving tile's word.
// An invalid direction leaves the board untouched.
func (e *Engine) Move(dir Direction) MoveResult {
	var res MoveResult
	if !dir.Valid() {
		return res
	}

	v := dir.vector()
	xs, ys := e.traversal(v)
	merged := make(map[TileID]struct{})

	for _, y := range ys {
		for _, x := range xs {
			from := Pos{X: x, Y: y}
			t := e.cells[y][x]
			if t == nil {
				continue
			}

			last, next := e.farthest(from, v)
			other := e.cell(next)

			if other != nil && other.Value == t.Value {
				if _, done := merged[other.ID]; !done {
					into := *other
					moving := *t
					e.cells[y][x] = nil
					produced := e.newTile(next, t.Word, t.Level+1)
					merged[produced.ID] = struct{}{}

					res.Merges = append(res.Merges, Merge{Into: into, From: moving, Produced: *produced})
					res.ScoreDelta += produced.Value
					res.Moved = true
					continue
				}
			}

			if last != from {
				e.cells[y][x] = nil
				e.cells[last.Y][last.X] = t
				t.Pos = last
				res.Relocations = append(res.Relocations, Relocation{TileID: t.ID, From: from, To: last})
				res.Moved = true
			}
		}
	}

	return res
}

// IsTerminal reports whether the board is full with no equal neighbours.
func (e *Engine) IsTerminal() bool {
	if len(e.EmptyCells()) > 0 {
		return false
	}
	for y := range e.size {
		for x := range e.size {
			val := e.cells[y][x].Value
			// Check right neighbor
			if x < e.size-1 && e.cells[y][x+1].Value == val {
				return false
			}
			// Check bottom neighbor
			if y < e.size-1 && e.cells[y+1][x].Value == val {
				return false
			}
		}
	}
	return true
}
