package trivia

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Fixed prefix widths of the resource format, in bytes.
const (
	markerPrefix = 3 // "# 1"
	answerPrefix = 2 // "A " / "^ "
)

// Parse converts one category's resource text into its questions.
//
// Resource lines:
//
//	# 1. <question text>
//	A <option>        (A through F, order preserved)
//	^ <correct answer>
//
// Any other line is ignored. Every question started by a "#" line is
// returned, including the last one in the text.
func Parse(text string, category Category) ([]Question, error) {
	var (
		questions []Question
		cur       Question
		started   bool
	)

	for n, line := range lines(text) {
		if line == "" {
			continue
		}
		switch c := line[0]; {
		case c == '#':
			if len(line) < markerPrefix {
				return nil, &ParseError{Category: category, Line: n, Text: line}
			}
			if started {
				questions = append(questions, cur)
			}
			cur = newQuestion(category)
			cur.Question = promptText(line)
			started = true
		case c == '^':
			rest, ok := cutPrefix(line, answerPrefix)
			if !ok {
				return nil, &ParseError{Category: category, Line: n, Text: line}
			}
			cur.CorrectAnswer = rest
		case c >= 'A' && c <= 'F':
			rest, ok := cutPrefix(line, answerPrefix)
			if !ok {
				return nil, &ParseError{Category: category, Line: n, Text: line}
			}
			cur.Answers = append(cur.Answers, rest)
		}
	}

	if started {
		questions = append(questions, cur)
	}
	return questions, nil
}

// ParseCompat parses text the way the first generation of the bank did:
// every "#" line flushes the accumulator, so a default-valued question
// precedes the first real one, the question still open at end of input is
// dropped, and question text is the raw remainder after three bytes.
// Kept so corpora authored against that behavior can be compared.
func ParseCompat(text string, category Category) ([]Question, error) {
	var questions []Question
	cur := newQuestion(category)

	for n, line := range lines(text) {
		if line == "" {
			continue
		}
		switch c := line[0]; {
		case c == '#':
			rest, ok := cutPrefix(line, markerPrefix)
			if !ok {
				return nil, &ParseError{Category: category, Line: n, Text: line}
			}
			questions = append(questions, cur)
			cur = newQuestion(category)
			cur.Question = rest
		case c == '^':
			rest, ok := cutPrefix(line, answerPrefix)
			if !ok {
				return nil, &ParseError{Category: category, Line: n, Text: line}
			}
			cur.CorrectAnswer = rest
		case c >= 'A' && c <= 'F':
			rest, ok := cutPrefix(line, answerPrefix)
			if !ok {
				return nil, &ParseError{Category: category, Line: n, Text: line}
			}
			cur.Answers = append(cur.Answers, rest)
		}
	}

	return questions, nil
}

func newQuestion(category Category) Question {
	return Question{Category: category, Answers: []string{}}
}

// lines yields each line with its 1-based number, without the trailing
// "\n" or "\r\n".
func lines(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		n := 0
		for line := range strings.Lines(text) {
			n++
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if !yield(n, line) {
				return
			}
		}
	}
}

// cutPrefix drops the first width bytes of line. It fails when the line is
// shorter than width or the cut would split a multi-byte character.
func cutPrefix(line string, width int) (string, bool) {
	if len(line) < width {
		return "", false
	}
	if len(line) > width && !utf8.RuneStart(line[width]) {
		return "", false
	}
	return line[width:], true
}

// promptText strips the "#" marker and its "<digits>." enumeration.
func promptText(line string) string {
	rest := strings.TrimLeft(line[1:], " \t")
	digits := len(rest) - len(strings.TrimLeft(rest, "0123456789"))
	if digits > 0 && len(rest) > digits && rest[digits] == '.' {
		rest = rest[digits+1:]
	}
	return strings.TrimSpace(rest)
}
