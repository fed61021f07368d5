// assets/embed.go
//
// Embedded quiz data shipped with the binary.
// The catalog is tab-separated: id, name, material, group. Blank lines and
// lines starting with '#' are ignored.

package assets

import (
	"bufio"
	"embed"
)

//go:embed catalog.tsv
var FS embed.FS

// readLines returns every line of an embedded file, comments and blanks
// included, so callers can report file line numbers.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
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

// CatalogLines returns the raw lines of the built-in catalog.
func CatalogLines() ([]string, error) {
	return readLines("catalog.tsv")
}
