package corpus

import (
	"fmt"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/p-n-ai/trivia-bank/internal/trivia"
)

// maxOptions is the number of option letters, A through F.
const maxOptions = 6

// Issue is a content problem found by Lint.
type Issue struct {
	Category trivia.Category
	Index    int // position in the pool, 0-based
	Question string
	Problem  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s #%d %q: %s", i.Category.Slug(), i.Index+1, i.Question, i.Problem)
}

// Lint reports questions that parse but would not play well: a missing
// prompt, fewer than two or more than six options, a correct answer that is
// not an option, repeated options, or text that is not NFC-normalized.
func Lint(cat *trivia.Catalog) []Issue {
	var issues []Issue
	for _, c := range trivia.Categories() {
		for i, q := range cat.Pool(c) {
			report := func(problem string) {
				issues = append(issues, Issue{Category: c, Index: i, Question: q.Question, Problem: problem})
			}

			if q.Question == "" {
				report("empty question text")
			}
			switch n := len(q.Answers); {
			case n < 2:
				report(fmt.Sprintf("%d answer option(s), want at least 2", n))
			case n > maxOptions:
				report(fmt.Sprintf("%d answer options, want at most %d", n, maxOptions))
			}
			if q.CorrectAnswer == "" {
				report("no correct answer")
			} else if !slices.Contains(q.Answers, q.CorrectAnswer) {
				report(fmt.Sprintf("correct answer %q is not an option", q.CorrectAnswer))
			}
			if dup, ok := firstDuplicate(q.Answers); ok {
				report(fmt.Sprintf("option %q listed twice", dup))
			}
			if !normalized(q) {
				report("text is not NFC-normalized")
			}
		}
	}
	return issues
}

func firstDuplicate(answers []string) (string, bool) {
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		if seen[a] {
			return a, true
		}
		seen[a] = true
	}
	return "", false
}

func normalized(q trivia.Question) bool {
	if !norm.NFC.IsNormalString(q.Question) || !norm.NFC.IsNormalString(q.CorrectAnswer) {
		return false
	}
	for _, a := range q.Answers {
		if !norm.NFC.IsNormalString(a) {
			return false
		}
	}
	return true
}
