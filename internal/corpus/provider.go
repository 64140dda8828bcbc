// Package corpus provides the trivia resource texts: an embedded default
// corpus, or any directory laid out the same way, described by a
// categories.yaml manifest.
package corpus

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/p-n-ai/trivia-bank/internal/trivia"
)

//go:embed resources
var embedded embed.FS

// ManifestFile is the manifest name at the root of a corpus.
const ManifestFile = "categories.yaml"

const manifestVersion = 1

var (
	// ErrUnknownCategory is returned for a manifest entry whose slug names no category.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrMissingCategory is returned when a category has no manifest entry.
	ErrMissingCategory = errors.New("category missing from manifest")
	// ErrDuplicateCategory is returned when a category appears twice.
	ErrDuplicateCategory = errors.New("category listed twice")
	// ErrDuplicateTitle is returned when two categories share a title.
	ErrDuplicateTitle = errors.New("title used by two categories")
)

// Manifest is the decoded categories.yaml.
type Manifest struct {
	Version    int     `yaml:"version"`
	Categories []Entry `yaml:"categories"`
}

// Entry binds a category slug to its resource file.
type Entry struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	File  string `yaml:"file"`
}

// Provider serves resource text for every category of a validated manifest.
// It implements trivia.Provider.
type Provider struct {
	fsys    fs.FS
	entries map[trivia.Category]Entry
}

// Open reads and validates the manifest of the corpus rooted at fsys.
func Open(fsys fs.FS) (*Provider, error) {
	f, err := fsys.Open(ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	var m Manifest
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	entries, err := m.resolve(fsys)
	if err != nil {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}

	return &Provider{fsys: fsys, entries: entries}, nil
}

// Embedded returns the provider of the corpus compiled into the binary.
func Embedded() (*Provider, error) {
	sub, err := fs.Sub(embedded, "resources")
	if err != nil {
		return nil, err
	}
	return Open(sub)
}

// Dir returns the provider of the corpus stored under path.
func Dir(path string) (*Provider, error) {
	return Open(os.DirFS(path))
}

// Load opens the corpus at dir, or the embedded one when dir is empty, and
// builds its catalog.
func Load(dir string) (*trivia.Catalog, *Provider, error) {
	var (
		p   *Provider
		err error
	)
	if dir == "" {
		p, err = Embedded()
	} else {
		p, err = Dir(dir)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading corpus: %w", err)
	}

	cat, err := trivia.BuildCatalog(p)
	if err != nil {
		return nil, nil, fmt.Errorf("building catalog: %w", err)
	}
	return cat, p, nil
}

// Text returns the resource text of c with any UTF-8 byte order mark removed.
func (p *Provider) Text(c trivia.Category) (string, error) {
	e, ok := p.entries[c]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingCategory, c.Slug())
	}

	f, err := p.fsys.Open(e.File)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", e.File, err)
	}
	defer f.Close()

	data, err := io.ReadAll(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", e.File, err)
	}

	slog.Debug("resource loaded", "category", c.Slug(), "file", e.File, "bytes", len(data))
	return string(data), nil
}

// Title returns the manifest title of c.
func (p *Provider) Title(c trivia.Category) string {
	if e, ok := p.entries[c]; ok && e.Title != "" {
		return e.Title
	}
	return c.String()
}

// resolve checks that m lists every category exactly once by slug, that
// titles are distinct ignoring case, and that each listed file exists.
func (m Manifest) resolve(fsys fs.FS) (map[trivia.Category]Entry, error) {
	if m.Version != manifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}

	entries := make(map[trivia.Category]Entry, len(m.Categories))
	titles := make(map[string]trivia.Category, len(m.Categories))
	for _, e := range m.Categories {
		c, ok := categoryBySlug(e.Slug)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, e.Slug)
		}
		if _, dup := entries[c]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, c.Slug())
		}
		title := e.Title
		if title == "" {
			title = c.String()
		}
		if other, dup := titles[strings.ToLower(title)]; dup {
			return nil, fmt.Errorf("%w: %q (%s, %s)", ErrDuplicateTitle, title, other.Slug(), c.Slug())
		}
		titles[strings.ToLower(title)] = c
		if e.File == "" {
			return nil, fmt.Errorf("%s: no file", c.Slug())
		}
		if _, err := fs.Stat(fsys, e.File); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Slug(), err)
		}
		entries[c] = e
	}

	for _, c := range trivia.Categories() {
		if _, ok := entries[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingCategory, c.Slug())
		}
	}
	return entries, nil
}

func categoryBySlug(slug string) (trivia.Category, bool) {
	for _, c := range trivia.Categories() {
		if c.Slug() == slug {
			return c, true
		}
	}
	return 0, false
}
