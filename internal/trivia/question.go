package trivia

import (
	"slices"
	"strconv"
	"strings"
)

// Question is a prompt with its ordered answer options and the correct option text.
type Question struct {
	Category      Category `json:"category"`
	Question      string   `json:"question"`
	Answers       []string `json:"answers"`
	CorrectAnswer string   `json:"correct_answer"`
}

// Equal reports whether q and other match on all four fields.
func (q Question) Equal(other Question) bool {
	return q.Category == other.Category &&
		q.Question == other.Question &&
		q.CorrectAnswer == other.CorrectAnswer &&
		slices.Equal(q.Answers, other.Answers)
}

// Clone returns a copy that shares no memory with q.
func (q Question) Clone() Question {
	q.Answers = slices.Clone(q.Answers)
	return q
}

// key is the structural identity of q, usable as a map key. Each field is
// written as "<len>:<bytes>", so no field content can shift a boundary.
func (q Question) key() string {
	var b strings.Builder
	field := func(s string) {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}

	field(q.Category.Slug())
	field(q.Question)
	field(q.CorrectAnswer)
	for _, a := range q.Answers {
		field(a)
	}
	return b.String()
}

// Seeding chooses which pool index a draw resolves to.
type Seeding struct {
	random bool
	index  int
}

// Random draws a uniformly random index.
func Random() Seeding {
	return Seeding{random: true}
}

// Specific uses n modulo the pool size as the index.
func Specific(n int) Seeding {
	return Seeding{index: n}
}

// IsRandom reports whether s is the Random seeding.
func (s Seeding) IsRandom() bool {
	return s.random
}

// Index returns the explicit index of a Specific seeding.
func (s Seeding) Index() int {
	return s.index
}
