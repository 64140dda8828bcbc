// Package trivia holds the question bank: the category set, the resource
// parser, the per-category catalog and the selection engine.
package trivia

import (
	"fmt"
	"strings"
)

// Category is one of the fixed trivia topics.
type Category int

const (
	Animals Category = iota
	BrainTeasers
	Celebrities
	Entertainment
	ForKids
	General
	Geography
	History
	Hobbies
	Humanities
	Literature
	Movies
	Music
	People
	ReligionFaith
	ScienceTechnology
	Sports
	Television
	VideoGames
	World

	categoryCount = int(World) + 1
)

var categoryNames = [categoryCount]string{
	"Animals",
	"Brain Teasers",
	"Celebrities",
	"Entertainment",
	"For Kids",
	"General",
	"Geography",
	"History",
	"Hobbies",
	"Humanities",
	"Literature",
	"Movies",
	"Music",
	"People",
	"Religion & Faith",
	"Science & Technology",
	"Sports",
	"Television",
	"Video Games",
	"World",
}

var categorySlugs = [categoryCount]string{
	"animals",
	"brain-teasers",
	"celebrities",
	"entertainment",
	"for-kids",
	"general",
	"geography",
	"history",
	"hobbies",
	"humanities",
	"literature",
	"movies",
	"music",
	"people",
	"religion-faith",
	"science-technology",
	"sports",
	"television",
	"video-games",
	"world",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	all := make([]Category, categoryCount)
	for i := range all {
		all[i] = Category(i)
	}
	return all
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < categoryCount
}

// String returns the display name, e.g. "Brain Teasers".
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Slug returns the resource slug, e.g. "brain-teasers".
func (c Category) Slug() string {
	if !c.Valid() {
		return fmt.Sprintf("category-%d", int(c))
	}
	return categorySlugs[c]
}

// ParseCategory resolves a slug or display name, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for i := range categoryCount {
		if strings.EqualFold(s, categorySlugs[i]) || strings.EqualFold(s, categoryNames[i]) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// mustIndex returns the table index for c. An out-of-range category can only
// come from converting an arbitrary int, so it is treated as a programming
// error.
func (c Category) mustIndex() int {
	if !c.Valid() {
		panic(fmt.Sprintf("trivia: unknown category %d", int(c)))
	}
	return int(c)
}

// MarshalText encodes c as its slug.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(c.Slug()), nil
}

// UnmarshalText accepts a slug or display name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
