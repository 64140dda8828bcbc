// Command triviabank inspects the trivia corpus: it checks that every
// category parses cleanly, exports the catalog, and draws questions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"text/tabwriter"

	"github.com/p-n-ai/trivia-bank/internal/corpus"
	"github.com/p-n-ai/trivia-bank/internal/export"
	"github.com/p-n-ai/trivia-bank/internal/platform/config"
	"github.com/p-n-ai/trivia-bank/internal/trivia"
)

const usage = `usage: triviabank <command> [flags]

commands:
  check                          parse every category and lint the corpus
  export [-format json|xlsx] [-o path]
  draw -category <slug> [-index n] [-count k] [-repeat]
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 1
	}

	logger := newLogger(cfg.Log, stderr)
	slog.SetDefault(logger)

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cat, provider, err := corpus.Load(cfg.Corpus.Dir)
	if err != nil {
		slog.Error("failed to load catalog", "dir", cfg.Corpus.Dir, "error", err)
		return 1
	}

	switch args[0] {
	case "check":
		return runCheck(cat, provider, stdout)
	case "export":
		return runExport(args[1:], cfg.Export, cat, provider, stdout, stderr)
	case "draw":
		return runDraw(args[1:], cfg.Engine, cat, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func runCheck(cat *trivia.Catalog, provider *corpus.Provider, stdout io.Writer) int {
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTITLE\tQUESTIONS")
	for _, c := range trivia.Categories() {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Slug(), provider.Title(c), cat.Size(c))
	}
	fmt.Fprintf(tw, "total\t\t%d\n", cat.Len())
	tw.Flush()

	issues := corpus.Lint(cat)
	for _, issue := range issues {
		fmt.Fprintf(stdout, "lint: %s\n", issue)
	}
	if len(issues) > 0 {
		slog.Warn("corpus has lint issues", "issues", len(issues))
		return 1
	}
	return 0
}

func runExport(args []string, cfg config.ExportConfig, cat *trivia.Catalog, provider *corpus.Provider, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", cfg.Format, "export format: json or xlsx")
	path := fs.String("o", cfg.Path, "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var write func(io.Writer, *trivia.Catalog, export.Titler) error
	switch *format {
	case "json":
		write = export.JSON
	case "xlsx":
		write = export.XLSX
	default:
		fmt.Fprintf(stderr, "unknown export format %q\n", *format)
		return 2
	}

	if *path == "" {
		if err := write(stdout, cat, provider); err != nil {
			slog.Error("export failed", "format", *format, "error", err)
			return 1
		}
		return 0
	}

	f, err := os.Create(*path)
	if err != nil {
		slog.Error("failed to create export file", "path", *path, "error", err)
		return 1
	}
	err = write(f, cat, provider)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		slog.Error("export failed", "format", *format, "path", *path, "error", err)
		return 1
	}

	slog.Info("catalog exported", "format", *format, "path", *path, "questions", cat.Len())
	return 0
}

func runDraw(args []string, cfg config.EngineConfig, cat *trivia.Catalog, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	slug := fs.String("category", "", "category slug or name")
	index := fs.Int("index", 0, "pool index (random when unset)")
	count := fs.Int("count", 1, "number of questions to draw")
	repeat := fs.Bool("repeat", cfg.RepeatQuestions, "allow the same question more than once")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	category, err := trivia.ParseCategory(*slug)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	seeding := trivia.Random()
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "index" {
			seeding = trivia.Specific(*index)
		}
	})

	var opts []trivia.Option
	if cfg.Seed != 0 {
		opts = append(opts, trivia.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))))
	}
	engine := trivia.NewEngine(cat, *repeat, opts...)

	for i := range *count {
		q, err := engine.GetQuestion(category, seeding)
		if errors.Is(err, trivia.ErrPoolExhausted) {
			fmt.Fprintf(stderr, "%s: pool exhausted after %d question(s)\n", category.Slug(), i)
			return 1
		}
		if err != nil {
			slog.Error("draw failed", "category", category.Slug(), "error", err)
			return 1
		}
		printQuestion(stdout, q)
	}
	return 0
}

func printQuestion(w io.Writer, q trivia.Question) {
	fmt.Fprintf(w, "[%s] %s\n", q.Category.Slug(), q.Question)
	for i, a := range q.Answers {
		fmt.Fprintf(w, "  %c) %s\n", 'A'+i, a)
	}
	fmt.Fprintf(w, "  answer: %s\n", q.CorrectAnswer)
}
