package liquefaction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/soil"
)

func ptr[T any](v T) *T { return &v }

// sandSiltTable matches the two-layer reference scenario
func sandSiltTable(t *testing.T) *soil.Table {
	t.Helper()
	tbl, err := soil.NewTable([]soil.Entry{
		{Name: "砂", Properties: soil.Properties{GammaSat: 19, GammaWet: 17, D50: 0.3, Fc: 15}},
		{Name: "シルト", Properties: soil.Properties{GammaSat: 17.5, GammaWet: 15.5, D50: 0.025, Fc: 75}},
	})
	require.NoError(t, err)
	return tbl
}

func sandSiltLayers() []borehole.SoilLayer {
	return []borehole.SoilLayer{
		{LowerDepth: 5, ClassName: "砂", ClassCode: "S"},
		{LowerDepth: 10, ClassName: "シルト", ClassCode: "M"},
	}
}

func jra2017Level1C2() RawParams {
	return RawParams{
		Year:          ptr(2017),
		EQLevel:       ptr(1),
		IsGivenKhgl:   ptr(false),
		RegionalClass: ptr("C"),
		GroundType:    ptr(2),
	}
}
