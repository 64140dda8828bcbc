package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/trivia-bank/internal/trivia"
)

// Sheet names are capped at 31 characters and may not contain []:*?/\.
const maxSheetName = 31

var optionColumns = []string{"A", "B", "C", "D", "E", "F"}

// XLSX writes cat as a workbook with one sheet per category, in category
// order. Each sheet has a header row followed by one row per question.
// Titles that collapse to the same sheet name get a " (2)", " (3)", ...
// suffix so no category overwrites another.
func XLSX(w io.Writer, cat *trivia.Catalog, titles Titler) error {
	if titles == nil {
		titles = defaultTitles{}
	}

	f := excelize.NewFile()
	defer f.Close()

	used := make(map[string]bool)
	for i, c := range trivia.Categories() {
		name := uniqueSheetName(SheetName(titles.Title(c)), used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("naming sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}

		if err := writeSheet(f, name, cat.Pool(c)); err != nil {
			return fmt.Errorf("writing sheet %s: %w", name, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, questions []trivia.Question) error {
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return err
	}

	header := []any{"#", "Question"}
	for _, col := range optionColumns {
		header = append(header, col)
	}
	header = append(header, "Correct")
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, q := range questions {
		row := make([]any, 0, len(header))
		row = append(row, i+1, q.Question)
		for j := range optionColumns {
			if j < len(q.Answers) {
				row = append(row, q.Answers[j])
			} else {
				row = append(row, nil)
			}
		}
		row = append(row, q.CorrectAnswer)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	return sw.Flush()
}

// uniqueSheetName returns name, or name with a numeric suffix, such that it
// is not in used. Sheet names compare case-insensitively.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if limit := maxSheetName - len(suffix); len(base) > limit {
			base = base[:limit]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// SheetName makes title usable as a worksheet name.
func SheetName(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			r = '-'
		}
		out = append(out, r)
	}
	if len(out) > maxSheetName {
		out = out[:maxSheetName]
	}
	return string(out)
}
