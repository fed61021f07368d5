package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kannnkannn-debug/material-hero/assets"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Greater(t, c.Len(), 0)
	require.GreaterOrEqual(t, len(c.Materials()), MinMaterials)

	it, ok := c.Item(1)
	require.True(t, ok)
	require.Equal(t, "ถ้วยแก้ว", it.Name)
	require.Equal(t, "แก้ว", it.Material)
	require.Equal(t, GroupCeramic, it.Group)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.tsv")
	data := "# comment\n" +
		"1\tcup\tglass\tceramic\n" +
		"\n" +
		"2\tbottle\tplastic\tPOLYMER\n" +
		"3\tspoon\tsteel\tMetal\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	require.Equal(t, []string{"glass", "plastic", "steel"}, c.Materials())
	it, _ := c.Item(2)
	require.Equal(t, GroupPolymer, it.Group)
}

func TestNewValidation(t *testing.T) {
	ok := []Item{
		{ID: 1, Name: "a", Material: "x", Group: GroupMetal},
		{ID: 2, Name: "b", Material: "y", Group: GroupPolymer},
		{ID: 3, Name: "c", Material: "z", Group: GroupCeramic},
	}

	cases := []struct {
		name  string
		items []Item
		want  error
	}{
		{"empty", nil, ErrEmpty},
		{"duplicate id", append(ok[:3:3], Item{ID: 1, Name: "d", Material: "w", Group: GroupMetal}), ErrDuplicateID},
		{"bad group", []Item{{ID: 1, Name: "a", Material: "x", Group: "Wood"}}, ErrUnknownGroup},
		{"blank name", []Item{{ID: 1, Name: " ", Material: "x", Group: GroupMetal}}, ErrInvalidRow},
		{"not diverse", []Item{
			{ID: 1, Name: "a", Material: "x", Group: GroupMetal},
			{ID: 2, Name: "b", Material: "x", Group: GroupMetal},
			{ID: 3, Name: "c", Material: "y", Group: GroupPolymer},
		}, ErrNotDiverse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.items)
			require.ErrorIs(t, err, tc.want)
		})
	}

	c, err := New(ok)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
}

func TestParseRowErrors(t *testing.T) {
	_, err := Parse([]string{"1\tonly\tthree"})
	require.ErrorIs(t, err, ErrInvalidRow)

	_, err = Parse([]string{"x\tcup\tglass\tCeramic"})
	require.ErrorIs(t, err, ErrInvalidRow)
}

func TestParseErrorNamesFileLine(t *testing.T) {
	_, err := Parse([]string{
		"# id\tname\tmaterial\tgroup",
		"",
		"1\tcup\tglass\tCeramic",
		"# metals",
		"2\tspoon\tsteel\tWood",
	})
	require.ErrorIs(t, err, ErrUnknownGroup)
	require.Contains(t, err.Error(), "line 5:")
}

func TestEmbeddedLinesKeepComments(t *testing.T) {
	lines, err := assets.CatalogLines()
	require.NoError(t, err)
	c, err := Parse(lines)
	require.NoError(t, err)
	require.Greater(t, len(lines), c.Len(), "comment lines are kept for numbering")
}

func TestItemsReturnsCopy(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	items := c.Items()
	items[0].Name = "changed"
	it, _ := c.Item(items[0].ID)
	require.NotEqual(t, "changed", it.Name)
}

func TestParseGroup(t *testing.T) {
	g, err := ParseGroup(" metal ")
	require.NoError(t, err)
	require.Equal(t, GroupMetal, g)

	_, err = ParseGroup("glass")
	require.ErrorIs(t, err, ErrUnknownGroup)
}
