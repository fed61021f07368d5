// internal/catalog/group.go
//
// Material groups: the closed set Polymer, Ceramic, Metal.

package catalog

import (
	"fmt"
	"strings"
)

// Group is the material family an item belongs to.
type Group string

const (
	GroupPolymer Group = "Polymer"
	GroupCeramic Group = "Ceramic"
	GroupMetal   Group = "Metal"
)

// Groups lists every group in display order.
func Groups() []Group {
	return []Group{GroupPolymer, GroupCeramic, GroupMetal}
}

// Valid reports whether g is one of the three known groups.
func (g Group) Valid() bool {
	switch g {
	case GroupPolymer, GroupCeramic, GroupMetal:
		return true
	}
	return false
}

// ParseGroup accepts any casing of a group name.
func ParseGroup(s string) (Group, error) {
	s = strings.TrimSpace(s)
	for _, g := range Groups() {
		if strings.EqualFold(s, string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGroup, s)
}
