// internal/catalog/catalog.go
//
// Static catalog of quiz items.
//
// Responsibilities:
//   - Load the item table from a TSV file (CATALOG_FILE) or fall back to the
//     embedded default in assets/catalog.tsv.
//   - Validate the table once at load time (unique ids, known groups, enough
//     distinct materials to build a full option set).
//   - Expose read-only accessors; callers only ever receive copies.
//
// Row format:
//   id<TAB>name<TAB>material<TAB>group
//
// Constraints:
//   • ids are positive and unique.
//   • name and material are non-empty.
//   • group is one of Polymer, Ceramic, Metal (case-insensitive on input).
//   • at least MinMaterials distinct materials across the table.

package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kannnkannn-debug/material-hero/assets"
)

// MinMaterials is the number of distinct materials required so every round
// can offer the correct material plus two distractors.
const MinMaterials = 3

var (
	ErrEmpty        = errors.New("catalog: no items")
	ErrDuplicateID  = errors.New("catalog: duplicate item id")
	ErrInvalidRow   = errors.New("catalog: invalid row")
	ErrUnknownGroup = errors.New("catalog: unknown material group")
	ErrNotDiverse   = errors.New("catalog: fewer than 3 distinct materials")
)

// Item is a single quiz object.
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Material string `json:"material"`
	Group    Group  `json:"group"`
}

// Catalog is an immutable, ordered set of items.
type Catalog struct {
	items     []Item
	byID      map[int]Item
	materials []string // distinct, in first-appearance order
}

// New validates items and builds a Catalog. The slice is copied.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		byID:  make(map[int]Item, len(items)),
	}
	seenMat := make(map[string]struct{})
	for _, it := range items {
		if it.ID <= 0 || strings.TrimSpace(it.Name) == "" || strings.TrimSpace(it.Material) == "" {
			return nil, fmt.Errorf("%w: id=%d", ErrInvalidRow, it.ID)
		}
		if !it.Group.Valid() {
			return nil, fmt.Errorf("%w: %q (id=%d)", ErrUnknownGroup, it.Group, it.ID)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, it.ID)
		}
		c.items = append(c.items, it)
		c.byID[it.ID] = it
		if _, ok := seenMat[it.Material]; !ok {
			seenMat[it.Material] = struct{}{}
			c.materials = append(c.materials, it.Material)
		}
	}
	if len(c.materials) < MinMaterials {
		return nil, ErrNotDiverse
	}
	return c, nil
}

// Load reads the catalog from path, or from the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	var (
		lines []string
		err   error
	)
	if path == "" {
		lines, err = assets.CatalogLines()
	} else {
		lines, err = readCatalogFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	return Parse(lines)
}

// Parse builds a Catalog from the lines of a TSV file. Blank lines and '#'
// comments are skipped; errors name the 1-based file line.
func Parse(lines []string) (*Catalog, error) {
	items := make([]Item, 0, len(lines))
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		it, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		items = append(items, it)
	}
	return New(items)
}

func parseRow(line string) (Item, error) {
	f := strings.Split(line, "\t")
	if len(f) != 4 {
		return Item{}, fmt.Errorf("%w: want 4 fields, got %d", ErrInvalidRow, len(f))
	}
	id, err := strconv.Atoi(strings.TrimSpace(f[0]))
	if err != nil {
		return Item{}, fmt.Errorf("%w: id %q", ErrInvalidRow, f[0])
	}
	g, err := ParseGroup(f[3])
	if err != nil {
		return Item{}, err
	}
	return Item{
		ID:       id,
		Name:     strings.TrimSpace(f[1]),
		Material: strings.TrimSpace(f[2]),
		Group:    g,
	}, nil
}

// readCatalogFile loads raw rows from a file on disk.
func readCatalogFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Materials returns the distinct materials in first-appearance order.
func (c *Catalog) Materials() []string {
	return append([]string(nil), c.materials...)
}

// Item looks up an item by id.
func (c *Catalog) Item(id int) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Len reports the number of items.
func (c *Catalog) Len() int { return len(c.items) }
