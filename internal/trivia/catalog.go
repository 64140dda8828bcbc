package trivia

import (
	"fmt"
	"log/slog"
	"slices"
)

// Provider supplies the raw resource text of a category.
type Provider interface {
	Text(c Category) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(c Category) (string, error)

// Text calls f(c).
func (f ProviderFunc) Text(c Category) (string, error) {
	return f(c)
}

// Catalog maps every category to its ordered question pool.
// It is read-only once built.
type Catalog struct {
	pools [categoryCount][]Question
	keys  [categoryCount][]string
}

// BuildCatalog parses the resource of every category. Any provider or
// parse error, or a category without questions, fails the whole build.
func BuildCatalog(p Provider) (*Catalog, error) {
	cat := &Catalog{}
	total := 0

	for _, c := range Categories() {
		text, err := p.Text(c)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", c.Slug(), err)
		}

		questions, err := Parse(text, c)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", c.Slug(), err)
		}
		if len(questions) == 0 {
			return nil, fmt.Errorf("parsing %s: %w", c.Slug(), ErrEmptyPool)
		}

		keys := make([]string, len(questions))
		for i, q := range questions {
			keys[i] = q.key()
		}
		cat.pools[c] = questions
		cat.keys[c] = keys
		total += len(questions)

		slog.Debug("category parsed", "category", c.Slug(), "questions", len(questions))
	}

	slog.Info("catalog built", "categories", categoryCount, "questions", total)
	return cat, nil
}

// Pool returns a copy of the ordered questions of c.
func (cat *Catalog) Pool(c Category) []Question {
	pool := cat.pools[c.mustIndex()]
	out := make([]Question, len(pool))
	for i, q := range pool {
		out[i] = q.Clone()
	}
	return out
}

// Size returns the number of questions of c.
func (cat *Catalog) Size(c Category) int {
	return len(cat.pools[c.mustIndex()])
}

// Len returns the number of questions across all categories.
func (cat *Catalog) Len() int {
	n := 0
	for _, pool := range cat.pools {
		n += len(pool)
	}
	return n
}

// question returns a copy of the question at index i of c.
func (cat *Catalog) question(c Category, i int) Question {
	return cat.pools[c][i].Clone()
}

// Contains reports whether q is part of the pool of its category.
func (cat *Catalog) Contains(q Question) bool {
	if !q.Category.Valid() {
		return false
	}
	return slices.Contains(cat.keys[q.Category], q.key())
}
