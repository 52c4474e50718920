package soil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableInvariants(t *testing.T) {
	tbl := DefaultTable()
	require.Equal(t, len(DefaultEntries), tbl.Len())

	for _, e := range tbl.Entries() {
		assert.GreaterOrEqual(t, e.D50, 0.0, e.Name)
		assert.GreaterOrEqual(t, e.Fc, 0.0, e.Name)
		assert.LessOrEqual(t, e.Fc, 100.0, e.Name)
		assert.Greater(t, e.GammaSat, 0.0, e.Name)
	}
}

func TestLookupExactMatch(t *testing.T) {
	tbl := DefaultTable()

	p, ok := tbl.Lookup("シルト")
	require.True(t, ok)
	assert.Equal(t, Properties{GammaSat: 17.5, GammaWet: 15.5, D50: 0.025, Fc: 75}, p)

	_, ok = tbl.Lookup("シルト ")
	assert.False(t, ok, "lookup must not trim or fuzzy-match")
}

func TestNewTableRejectsInvalid(t *testing.T) {
	_, err := NewTable([]Entry{{Name: "bad", Properties: Properties{GammaSat: 18, GammaWet: 16, Fc: 120}}})
	assert.Error(t, err)

	_, err = NewTable([]Entry{{Name: "bad", Properties: Properties{GammaSat: 18, GammaWet: 16, D50: -1}}})
	assert.Error(t, err)

	_, err = NewTable([]Entry{{Properties: Default}})
	assert.Error(t, err)
}

func TestNewTableDuplicateOverrides(t *testing.T) {
	tbl, err := NewTable([]Entry{
		{Name: "砂", Properties: Properties{GammaSat: 19, GammaWet: 17, D50: 0.3, Fc: 15}},
		{Name: "砂", Properties: Properties{GammaSat: 20, GammaWet: 18, D50: 0.4, Fc: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
	p, _ := tbl.Lookup("砂")
	assert.Equal(t, 20.0, p.GammaSat)
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soil.yaml")
	content := `- name: 砂
  gamma_sat: 19
  gamma_wet: 17
  d50: 0.3
  fc: 15
- name: シルト
  gamma_sat: 17.5
  gamma_wet: 15.5
  d50: 0.025
  fc: 75
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	p, ok := tbl.Lookup("シルト")
	require.True(t, ok)
	assert.Equal(t, 0.025, p.D50)
	assert.Equal(t, "砂", tbl.Entries()[0].Name)
}

func TestLoadTableErrors(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("[]\n"), 0o644))
	_, err = LoadTable(empty)
	assert.Error(t, err)
}
