package vocab

import "math/rand"

// Sampler draws words from the active levels of one wordbook. Every word in
// the pool is drawn once before any word repeats; reconfiguring the sampler
// starts a fresh cycle.
type Sampler struct {
	src    *Source
	rng    *rand.Rand
	book   string
	levels []string
	pool   []WordRecord
	queue  []WordRecord
}

// NewSampler creates a sampler on the first wordbook of src and that
// book's first level.
func NewSampler(src *Source, rng *rand.Rand) *Sampler {
	if src == nil {
		src = NewSource()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := &Sampler{src: src, rng: rng, book: src.First()}
	s.levels = []string{s.defaultLevel()}
	s.rebuild()
	return s
}

// Source returns the vocabulary the sampler draws from.
func (s *Sampler) Source() *Source {
	return s.src
}

// ActiveCollection returns the active wordbook id.
func (s *Sampler) ActiveCollection() string {
	return s.book
}

// ActiveLevels returns a copy of the active level ids.
func (s *Sampler) ActiveLevels() []string {
	out := make([]string, len(s.levels))
	copy(out, s.levels)
	return out
}

// PoolSize returns the number of records in the active pool.
func (s *Sampler) PoolSize() int {
	return len(s.pool)
}

// Remaining returns how many draws are left in the current cycle.
func (s *Sampler) Remaining() int {
	return len(s.queue)
}

// SetActiveCollection switches to another wordbook and resets the active
// levels to its first level. Unknown ids leave the sampler unchanged and
// return false.
func (s *Sampler) SetActiveCollection(id string) bool {
	if _, ok := s.src.Book(id); !ok {
		return false
	}
	s.book = id
	s.levels = []string{s.defaultLevel()}
	s.rebuild()
	return true
}

// SetActiveLevels replaces the active level set. Ids unknown to the active
// book are dropped; if nothing valid remains the sampler falls back to a
// single default level. The pool is rebuilt and the cycle restarts.
func (s *Sampler) SetActiveLevels(levels []string) {
	valid := s.validLevels()
	allowed := make(map[string]bool, len(valid))
	for _, l := range valid {
		allowed[l] = true
	}

	next := make([]string, 0, len(levels))
	seen := make(map[string]bool, len(levels))
	for _, l := range levels {
		if allowed[l] && !seen[l] {
			next = append(next, l)
			seen[l] = true
		}
	}
	if len(next) == 0 {
		next = []string{s.defaultLevel()}
	}

	s.levels = next
	s.rebuild()
}

// ToggleLevel adds or removes one level. Removing the last active level or
// toggling an unknown level is refused and returns false.
func (s *Sampler) ToggleLevel(level string) bool {
	idx := -1
	for i, l := range s.levels {
		if l == level {
			idx = i
			break
		}
	}

	if idx >= 0 {
		if len(s.levels) <= 1 {
			return false
		}
		next := append(append([]string{}, s.levels[:idx]...), s.levels[idx+1:]...)
		s.SetActiveLevels(next)
		return true
	}

	for _, l := range s.validLevels() {
		if l == level {
			s.SetActiveLevels(append(s.ActiveLevels(), level))
			return true
		}
	}
	return false
}

// Draw returns the next word of the cycle. It returns false when the pool
// is empty; callers substitute placeholder content.
func (s *Sampler) Draw() (WordRecord, bool) {
	if len(s.pool) == 0 {
		return WordRecord{}, false
	}
	if len(s.queue) == 0 {
		s.refill()
	}
	last := len(s.queue) - 1
	w := s.queue[last]
	s.queue = s.queue[:last]
	return w, true
}

// validLevels lists the level ids the active book accepts. A book without
// levels (or no book at all) accepts the CEFR tags.
func (s *Sampler) validLevels() []string {
	if ids := s.src.Levels(s.book); len(ids) > 0 {
		return ids
	}
	return CEFRLevels
}

func (s *Sampler) defaultLevel() string {
	if ids := s.src.Levels(s.book); len(ids) > 0 {
		return ids[0]
	}
	return LevelA1
}

func (s *Sampler) rebuild() {
	s.pool = s.pool[:0]
	for _, l := range s.levels {
		s.pool = append(s.pool, s.src.Words(s.book, l)...)
	}
	s.refill()
}

// refill reseeds the queue with a Fisher-Yates shuffle of the whole pool.
func (s *Sampler) refill() {
	s.queue = append(s.queue[:0], s.pool...)
	for i := len(s.queue) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.queue[i], s.queue[j] = s.queue[j], s.queue[i]
	}
}
