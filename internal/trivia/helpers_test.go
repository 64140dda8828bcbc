package trivia_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/p-n-ai/trivia-bank/internal/trivia"
)

// fixtureText renders n well-formed questions for c.
func fixtureText(c trivia.Category, n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "# %d. %s question %d?\n", i, c, i)
		fmt.Fprintf(&b, "A right %d\nB wrong %d\n^ right %d\n\n", i, i, i)
	}
	return b.String()
}

// newCatalog builds a catalog with n questions in every category.
func newCatalog(t *testing.T, n int) *trivia.Catalog {
	t.Helper()
	cat, err := trivia.BuildCatalog(trivia.ProviderFunc(func(c trivia.Category) (string, error) {
		return fixtureText(c, n), nil
	}))
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
	return cat
}

// scriptedRand returns its values in order and records each bound it was
// asked for.
type scriptedRand struct {
	values []int
	bounds []int
}

func (r *scriptedRand) IntN(n int) int {
	r.bounds = append(r.bounds, n)
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

// fixtureQuestion is question i (1-based) of fixtureText(c, n) for any n >= i.
func fixtureQuestion(c trivia.Category, i int) trivia.Question {
	return trivia.Question{
		Category:      c,
		Question:      fmt.Sprintf("%s question %d?", c, i),
		Answers:       []string{fmt.Sprintf("right %d", i), fmt.Sprintf("wrong %d", i)},
		CorrectAnswer: fmt.Sprintf("right %d", i),
	}
}
