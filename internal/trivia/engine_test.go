package trivia_test

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/p-n-ai/trivia-bank/internal/trivia"
)

func TestEngine_RepeatQuestions(t *testing.T) {
	cat := newCatalog(t, 1)

	if trivia.NewEngine(cat, true).RepeatQuestions() != true {
		t.Error("RepeatQuestions() = false, want true")
	}
	if trivia.NewEngine(cat, false).RepeatQuestions() != false {
		t.Error("RepeatQuestions() = true, want false")
	}
}

func TestEngine_SpecificIsDeterministic(t *testing.T) {
	e := trivia.NewEngine(newCatalog(t, 5), true)

	first, err := e.GetQuestion(trivia.Hobbies, trivia.Specific(3))
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}
	second, err := e.GetQuestion(trivia.Hobbies, trivia.Specific(3))
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("Specific(3) returned %+v then %+v", first, second)
	}
	if want := fixtureQuestion(trivia.Hobbies, 4); !first.Equal(want) {
		t.Errorf("Specific(3) = %+v, want %+v", first, want)
	}
}

func TestEngine_SpecificWrapsModuloPoolSize(t *testing.T) {
	const size = 4
	e := trivia.NewEngine(newCatalog(t, size), true)

	tests := []struct {
		name  string
		index int
		want  int // 0-based pool index
	}{
		{"in range", 2, 2},
		{"one lap", 2 + size, 2},
		{"three laps", 2 + 3*size, 2},
		{"exact size", size, 0},
		{"negative", -1, size - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.GetQuestion(trivia.Literature, trivia.Specific(tt.index))
			if err != nil {
				t.Fatalf("GetQuestion() error = %v", err)
			}
			if want := fixtureQuestion(trivia.Literature, tt.want+1); !got.Equal(want) {
				t.Errorf("Specific(%d) = %q, want %q", tt.index, got.Question, want.Question)
			}
		})
	}
}

func TestEngine_RepeatModeKeepsNoState(t *testing.T) {
	e := trivia.NewEngine(newCatalog(t, 2), true)

	for range 10 {
		if _, err := e.GetQuestion(trivia.People, trivia.Random()); err != nil {
			t.Fatalf("GetQuestion() error = %v", err)
		}
	}

	if got := len(e.Spent()); got != 0 {
		t.Errorf("len(Spent()) = %d, want 0 with repeats allowed", got)
	}
	if got := e.Remaining(trivia.People); got != 2 {
		t.Errorf("Remaining() = %d, want 2", got)
	}
}

func TestEngine_RandomUsesInjectedSource(t *testing.T) {
	rng := &scriptedRand{values: []int{2}}
	e := trivia.NewEngine(newCatalog(t, 3), true, trivia.WithRand(rng))

	got, err := e.GetQuestion(trivia.Sports, trivia.Random())
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}
	if want := fixtureQuestion(trivia.Sports, 3); !got.Equal(want) {
		t.Errorf("GetQuestion() = %q, want %q", got.Question, want.Question)
	}
	if !slices.Equal(rng.bounds, []int{3}) {
		t.Errorf("IntN bounds = %v, want [3]", rng.bounds)
	}
}

func TestEngine_NoRepeatSpecificAdvancesPastSpent(t *testing.T) {
	e := trivia.NewEngine(newCatalog(t, 3), false)

	var got []string
	for _, n := range []int{1, 1, 4} {
		q, err := e.GetQuestion(trivia.Television, trivia.Specific(n))
		if err != nil {
			t.Fatalf("GetQuestion(Specific(%d)) error = %v", n, err)
		}
		got = append(got, q.Question)
	}

	want := []string{
		fixtureQuestion(trivia.Television, 2).Question,
		fixtureQuestion(trivia.Television, 3).Question,
		fixtureQuestion(trivia.Television, 1).Question,
	}
	if !slices.Equal(got, want) {
		t.Errorf("served %q, want %q", got, want)
	}
}

func TestEngine_NoRepeatRandomDrawsAmongRemaining(t *testing.T) {
	rng := &scriptedRand{values: []int{0, 0, 0}}
	e := trivia.NewEngine(newCatalog(t, 3), false, trivia.WithRand(rng))

	for i := 1; i <= 3; i++ {
		q, err := e.GetQuestion(trivia.Music, trivia.Random())
		if err != nil {
			t.Fatalf("draw %d: GetQuestion() error = %v", i, err)
		}
		if want := fixtureQuestion(trivia.Music, i); !q.Equal(want) {
			t.Errorf("draw %d = %q, want %q", i, q.Question, want.Question)
		}
	}

	if !slices.Equal(rng.bounds, []int{3, 2, 1}) {
		t.Errorf("IntN bounds = %v, want [3 2 1]", rng.bounds)
	}
}

func TestEngine_NoRepeatNeverDuplicates(t *testing.T) {
	const size = 25
	e := trivia.NewEngine(newCatalog(t, size), false, trivia.WithRand(rand.New(rand.NewPCG(1, 2))))

	var served []trivia.Question
	for i := range size {
		seeding := trivia.Random()
		if i%2 == 1 {
			seeding = trivia.Specific(i * 7)
		}
		q, err := e.GetQuestion(trivia.ScienceTechnology, seeding)
		if err != nil {
			t.Fatalf("draw %d: GetQuestion() error = %v", i, err)
		}
		for _, prev := range served {
			if prev.Equal(q) {
				t.Fatalf("draw %d repeated %q", i, q.Question)
			}
		}
		served = append(served, q)
	}

	if got := e.Remaining(trivia.ScienceTechnology); got != 0 {
		t.Errorf("Remaining() = %d, want 0", got)
	}
	if got := e.Spent(); len(got) != size || !got[0].Equal(served[0]) {
		t.Errorf("Spent() = %d questions, want %d in serve order", len(got), size)
	}
}

func TestEngine_ExhaustionIsReported(t *testing.T) {
	tests := []struct {
		name    string
		seeding trivia.Seeding
	}{
		{"random", trivia.Random()},
		{"specific", trivia.Specific(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const size = 3
			e := trivia.NewEngine(newCatalog(t, size), false)

			for i := range size {
				if _, err := e.GetQuestion(trivia.Animals, tt.seeding); err != nil {
					t.Fatalf("draw %d: GetQuestion() error = %v", i, err)
				}
			}

			_, err := e.GetQuestion(trivia.Animals, tt.seeding)
			if !errors.Is(err, trivia.ErrPoolExhausted) {
				t.Fatalf("draw %d: GetQuestion() error = %v, want ErrPoolExhausted", size+1, err)
			}

			// Exhaustion is per category.
			if _, err := e.GetQuestion(trivia.History, tt.seeding); err != nil {
				t.Errorf("GetQuestion(History) error = %v, want nil", err)
			}
			if got := e.Remaining(trivia.History); got != size-1 {
				t.Errorf("Remaining(History) = %d, want %d", got, size-1)
			}
		})
	}
}

func TestEngine_DuplicateQuestionsShareIdentity(t *testing.T) {
	dup := "# 1. Same?\nA yes\n^ yes\n"
	cat, err := trivia.BuildCatalog(trivia.ProviderFunc(func(c trivia.Category) (string, error) {
		if c == trivia.BrainTeasers {
			return dup + dup + "# 3. Other?\nA no\n^ no\n", nil
		}
		return fixtureText(c, 1), nil
	}))
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}

	e := trivia.NewEngine(cat, false)
	if got := e.Remaining(trivia.BrainTeasers); got != 3 {
		t.Fatalf("Remaining() = %d, want 3", got)
	}

	if _, err := e.GetQuestion(trivia.BrainTeasers, trivia.Specific(0)); err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}
	if got := e.Remaining(trivia.BrainTeasers); got != 1 {
		t.Errorf("Remaining() = %d, want 1 after serving a duplicated question", got)
	}

	q, err := e.GetQuestion(trivia.BrainTeasers, trivia.Specific(1))
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}
	if q.Question != "Other?" {
		t.Errorf("GetQuestion(Specific(1)) = %q, want %q", q.Question, "Other?")
	}
}

func TestEngine_SeparatorBytesDoNotMergeQuestions(t *testing.T) {
	// Distinct questions whose fields only differ in where a control byte sits.
	text := "# 1. a\x1fb\n^ c\n# 2. a\n^ b\x1fc\n# 3. x\nA p\x1eq\n^ r\n# 4. x\nA p\nA q\n^ r\n"
	cat, err := trivia.BuildCatalog(trivia.ProviderFunc(func(c trivia.Category) (string, error) {
		if c == trivia.Humanities {
			return text, nil
		}
		return fixtureText(c, 1), nil
	}))
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}

	e := trivia.NewEngine(cat, false)
	for i := range 4 {
		if _, err := e.GetQuestion(trivia.Humanities, trivia.Specific(i)); err != nil {
			t.Fatalf("draw %d: GetQuestion() error = %v", i, err)
		}
		if got, want := e.Remaining(trivia.Humanities), 3-i; got != want {
			t.Errorf("after draw %d: Remaining() = %d, want %d", i, got, want)
		}
	}
}

func TestEngine_ReturnsCopies(t *testing.T) {
	e := trivia.NewEngine(newCatalog(t, 2), true)

	q, err := e.GetQuestion(trivia.Celebrities, trivia.Specific(0))
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}
	q.Answers[0] = "tampered"

	again, err := e.GetQuestion(trivia.Celebrities, trivia.Specific(0))
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}
	if again.Answers[0] == "tampered" {
		t.Error("mutating a served question changed the catalog")
	}
}

func TestEngine_EmptyCatalog(t *testing.T) {
	e := trivia.NewEngine(&trivia.Catalog{}, false)

	_, err := e.GetQuestion(trivia.General, trivia.Random())
	if !errors.Is(err, trivia.ErrEmptyPool) {
		t.Errorf("GetQuestion() error = %v, want ErrEmptyPool", err)
	}
}

func TestEngine_UnknownCategoryPanics(t *testing.T) {
	e := trivia.NewEngine(newCatalog(t, 1), false)

	defer func() {
		if recover() == nil {
			t.Error("GetQuestion() with an unknown category did not panic")
		}
	}()
	e.GetQuestion(trivia.Category(-1), trivia.Random())
}
