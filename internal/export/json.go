// Package export writes a catalog out for review: JSON documents checked
// against a published schema, and XLSX workbooks for editors.
package export

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/p-n-ai/trivia-bank/internal/trivia"
)

//go:embed catalog.schema.json
var catalogSchema string

// ErrInvalidDocument is returned when an export does not satisfy the schema.
var ErrInvalidDocument = errors.New("export does not match schema")

// Titler names categories in exports. *corpus.Provider implements it.
type Titler interface {
	Title(c trivia.Category) string
}

type defaultTitles struct{}

func (defaultTitles) Title(c trivia.Category) string { return c.String() }

// Document is the JSON export layout.
type Document struct {
	Categories []CategoryDocument `json:"categories"`
}

// CategoryDocument is one category with its ordered questions.
type CategoryDocument struct {
	Slug      string            `json:"slug"`
	Title     string            `json:"title"`
	Questions []trivia.Question `json:"questions"`
}

// NewDocument lays out cat in category order. titles may be nil.
func NewDocument(cat *trivia.Catalog, titles Titler) Document {
	if titles == nil {
		titles = defaultTitles{}
	}
	doc := Document{}
	for _, c := range trivia.Categories() {
		doc.Categories = append(doc.Categories, CategoryDocument{
			Slug:      c.Slug(),
			Title:     titles.Title(c),
			Questions: cat.Pool(c),
		})
	}
	return doc
}

// JSON writes cat as an indented JSON document. The document is validated
// before anything is written to w.
func JSON(w io.Writer, cat *trivia.Catalog, titles Titler) error {
	data, err := json.MarshalIndent(NewDocument(cat, titles), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := Validate(data); err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// Validate checks a JSON export against the catalog schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validating catalog: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
}
