package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLang is the language used when nothing better matches.
const DefaultLang = "en"

var (
	// ErrMissingLang is returned when a table has no language tag.
	ErrMissingLang = errors.New("missing lang")
	// ErrMissingKeys is returned when a table lacks required messages.
	ErrMissingKeys = errors.New("missing keys")
	// ErrInvalidTag is returned when a table's language tag cannot be parsed.
	ErrInvalidTag = errors.New("invalid language tag")
)

//go:embed locales/*.yaml
var builtin embed.FS

// Catalog holds the registered tables and resolves language requests to them.
// It is safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	tables   map[string]*Table
	tags     []language.Tag
	owners   []string // owners[i] is the table lang for tags[i]
	fallback string
	matcher  language.Matcher
}

// NewCatalog creates an empty catalog that falls back to DefaultLang.
func NewCatalog() *Catalog {
	return &Catalog{
		tables:   make(map[string]*Table),
		fallback: DefaultLang,
	}
}

// Default returns a catalog holding the built-in English and Norwegian tables.
func Default() *Catalog {
	c := NewCatalog()
	if err := c.loadFS(builtin, "locales"); err != nil {
		// Built-in tables are embedded at compile time.
		panic(fmt.Sprintf("locale: built-in tables: %v", err))
	}
	return c
}

func (c *Catalog) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		data, err := fs.ReadFile(fsys, dir+"/"+e.Name())
		if err != nil {
			return err
		}
		var t Table
		if err := yaml.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to parse %s: %w", e.Name(), err)
		}
		if err := c.Register(&t); err != nil {
			return err
		}
	}
	return nil
}

// Register validates t and adds it, replacing any table with the same lang.
func (c *Catalog) Register(t *Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	names := append([]string{t.Lang}, t.Aliases...)
	tags := make([]language.Tag, 0, len(names))
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return fmt.Errorf("locale table %q: %w: %q", t.Lang, ErrInvalidTag, name)
		}
		tags = append(tags, tag)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tables[t.Lang]; exists {
		c.dropTags(t.Lang)
	}
	c.tables[t.Lang] = t
	for _, tag := range tags {
		c.tags = append(c.tags, tag)
		c.owners = append(c.owners, t.Lang)
	}
	c.rebuild()
	return nil
}

func (c *Catalog) dropTags(lang string) {
	tags, owners := c.tags[:0], c.owners[:0]
	for i, owner := range c.owners {
		if owner != lang {
			tags = append(tags, c.tags[i])
			owners = append(owners, owner)
		}
	}
	c.tags, c.owners = tags, owners
}

// rebuild puts the fallback table first so the matcher defaults to it.
func (c *Catalog) rebuild() {
	tags := make([]language.Tag, 0, len(c.tags))
	owners := make([]string, 0, len(c.owners))
	for i, owner := range c.owners {
		if owner == c.fallback {
			tags = append(tags, c.tags[i])
			owners = append(owners, owner)
		}
	}
	for i, owner := range c.owners {
		if owner != c.fallback {
			tags = append(tags, c.tags[i])
			owners = append(owners, owner)
		}
	}
	c.tags, c.owners = tags, owners
	c.matcher = language.NewMatcher(c.tags)
}

// Lookup resolves a language tag such as "nb-NO" to the closest table.
// Unknown or unparsable tags resolve to the fallback table.
func (c *Catalog) Lookup(lang string) *Table {
	tag, err := language.Parse(lang)
	if err != nil {
		return c.Fallback()
	}
	return c.match(tag)
}

// LookupAcceptLanguage resolves an HTTP Accept-Language header.
func (c *Catalog) LookupAcceptLanguage(header string) *Table {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return c.Fallback()
	}
	return c.match(tags...)
}

func (c *Catalog) match(want ...language.Tag) *Table {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.matcher == nil {
		return nil
	}
	_, idx, conf := c.matcher.Match(want...)
	if idx < 0 || idx >= len(c.owners) {
		return c.tables[c.fallback]
	}
	if conf == language.No {
		if t, ok := c.tables[c.fallback]; ok {
			return t
		}
	}
	return c.tables[c.owners[idx]]
}

// Get returns the table registered under exactly lang.
func (c *Catalog) Get(lang string) (*Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[lang]
	return t, ok
}

// Fallback returns the default table, or nil for an empty catalog.
func (c *Catalog) Fallback() *Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tables[c.fallback]
}

// Tables lists the registered tables sorted by lang.
func (c *Catalog) Tables() []*Table {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Table, 0, len(c.tables))
	for _, t := range c.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lang < out[j].Lang })
	return out
}

// Langs lists the registered language tags sorted.
func (c *Catalog) Langs() []string {
	tables := c.Tables()
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = t.Lang
	}
	return out
}
