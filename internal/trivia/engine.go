package trivia

import (
	"fmt"
	"math/rand/v2"
)

// Rand is the random source used for Random seeding.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source. The default is the math/rand/v2
// top-level generator.
func WithRand(r Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// Engine serves questions from a catalog. With repeats disabled it never
// serves a question twice and reports ErrPoolExhausted once a category has
// nothing left.
//
// An Engine is not safe for concurrent use. Use one per session, or guard it
// with a lock.
type Engine struct {
	catalog         *Catalog
	repeatQuestions bool
	rng             Rand

	spent     []Question
	spentKeys map[string]struct{}
}

// NewEngine creates an engine over catalog. repeatQuestions is fixed for the
// engine's lifetime.
func NewEngine(catalog *Catalog, repeatQuestions bool, opts ...Option) *Engine {
	e := &Engine{
		catalog:         catalog,
		repeatQuestions: repeatQuestions,
		rng:             globalRand{},
		spentKeys:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RepeatQuestions reports whether questions may be served more than once.
func (e *Engine) RepeatQuestions() bool {
	return e.repeatQuestions
}

// GetQuestion returns a question of category c chosen by s.
//
// Random draws uniformly; Specific(n) uses n modulo the pool size. With
// repeats disabled, a Specific index that was already served advances to the
// next unserved index, and Random draws only among unserved questions.
func (e *Engine) GetQuestion(c Category, s Seeding) (Question, error) {
	idx := c.mustIndex()
	size := len(e.catalog.pools[idx])
	if size == 0 {
		return Question{}, fmt.Errorf("%s: %w", c.Slug(), ErrEmptyPool)
	}

	if e.repeatQuestions {
		return e.catalog.question(c, e.index(s, size)), nil
	}

	i, ok := e.resolveUnspent(c, s, size)
	if !ok {
		return Question{}, fmt.Errorf("%s: %w", c.Slug(), ErrPoolExhausted)
	}

	q := e.catalog.question(c, i)
	e.spent = append(e.spent, q.Clone())
	e.spentKeys[e.catalog.keys[c][i]] = struct{}{}
	return q, nil
}

// Remaining returns how many questions of c can still be served.
func (e *Engine) Remaining(c Category) int {
	idx := c.mustIndex()
	if e.repeatQuestions {
		return len(e.catalog.pools[idx])
	}
	return len(e.unspent(c))
}

// Spent returns the served questions in serve order. It is always empty when
// repeats are allowed.
func (e *Engine) Spent() []Question {
	out := make([]Question, len(e.spent))
	for i, q := range e.spent {
		out[i] = q.Clone()
	}
	return out
}

func (e *Engine) index(s Seeding, size int) int {
	if s.random {
		return e.rng.IntN(size)
	}
	return wrap(s.index, size)
}

// resolveUnspent picks an unserved index of c. It probes at most size
// indices and reports false when the pool is exhausted.
func (e *Engine) resolveUnspent(c Category, s Seeding, size int) (int, bool) {
	if s.random {
		remaining := e.unspent(c)
		if len(remaining) == 0 {
			return 0, false
		}
		return remaining[e.rng.IntN(len(remaining))], true
	}

	keys := e.catalog.keys[c]
	start := wrap(s.index, size)
	for step := range size {
		i := (start + step) % size
		if !e.isSpent(keys[i]) {
			return i, true
		}
	}
	return 0, false
}

func (e *Engine) unspent(c Category) []int {
	keys := e.catalog.keys[c]
	out := make([]int, 0, len(keys))
	for i, k := range keys {
		if !e.isSpent(k) {
			out = append(out, i)
		}
	}
	return out
}

func (e *Engine) isSpent(key string) bool {
	_, ok := e.spentKeys[key]
	return ok
}

// wrap maps n into [0, size), wrapping negative values too.
func wrap(n, size int) int {
	return ((n % size) + size) % size
}
