package borehole

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

func TestParseSample(t *testing.T) {
	rec, err := LoadFile("testdata/sample.xml", nil)
	require.NoError(t, err)

	assert.InDelta(t, 35.51, rec.Lat, 1e-9)
	assert.InDelta(t, 139.75, rec.Lon, 1e-9)
	assert.Equal(t, "2019-05-10", rec.StartDate)
	assert.Equal(t, 3.25, rec.TipElevation)

	require.Len(t, rec.SoilLayers, 2)
	assert.Equal(t, SoilLayer{LowerDepth: 5, ClassName: "砂", ClassCode: "S"}, rec.SoilLayers[0])
	assert.Equal(t, 10.0, rec.MaxDepth())

	require.Len(t, rec.ObservationNotes, 1)
	assert.Equal(t, "細粒分少ない", rec.ObservationNotes[0].Note)

	// the reading without a blow count is dropped
	require.Len(t, rec.SPT, 2)
	assert.Equal(t, SPTReading{Depth: 1.15, NValue: 4, PenetrationLength: 300}, rec.SPT[0])
	assert.Equal(t, 7.15, rec.SPT[1].Depth)

	require.NotNil(t, rec.GroundWaterLevel)
	assert.Equal(t, 2.0, *rec.GroundWaterLevel)
}

func TestParseShiftJIS(t *testing.T) {
	utf8Doc, err := os.ReadFile("testdata/sample.xml")
	require.NoError(t, err)

	for _, label := range []string{"Shift_JIS", "cp932"} {
		t.Run(label, func(t *testing.T) {
			doc := strings.Replace(string(utf8Doc), `encoding="UTF-8"`, `encoding="`+label+`"`, 1)
			encoded, err := japanese.ShiftJIS.NewEncoder().String(doc)
			require.NoError(t, err)

			rec, err := Parse(bytes.NewReader([]byte(encoded)), nil)
			require.NoError(t, err)
			assert.Equal(t, "シルト", rec.SoilLayers[1].ClassName)
			assert.Len(t, rec.SPT, 2)
		})
	}
}

func TestParseMissingSections(t *testing.T) {
	noLayers := `<?xml version="1.0" encoding="UTF-8"?>
<ボーリング情報>
  <標準貫入試験><標準貫入試験_開始深度>1</標準貫入試験_開始深度><標準貫入試験_合計打撃回数>3</標準貫入試験_合計打撃回数></標準貫入試験>
</ボーリング情報>`
	_, err := Parse(strings.NewReader(noLayers), nil)
	assert.ErrorIs(t, err, ErrNoSoilLayers)

	noSPT := `<?xml version="1.0" encoding="UTF-8"?>
<ボーリング情報>
  <岩石土区分><岩石土区分_下端深度>3</岩石土区分_下端深度><岩石土区分_岩石土名>砂</岩石土区分_岩石土名></岩石土区分>
</ボーリング情報>`
	_, err = Parse(strings.NewReader(noSPT), nil)
	assert.ErrorIs(t, err, ErrNoSPT)
}

func TestParseMissingMetadataIsNotFatal(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<ボーリング情報>
  <岩石土区分><岩石土区分_下端深度>3</岩石土区分_下端深度><岩石土区分_岩石土名>砂</岩石土区分_岩石土名></岩石土区分>
  <標準貫入試験><標準貫入試験_開始深度>1</標準貫入試験_開始深度><標準貫入試験_合計打撃回数>3</標準貫入試験_合計打撃回数></標準貫入試験>
</ボーリング情報>`
	rec, err := Parse(strings.NewReader(doc), nil)
	require.NoError(t, err)
	assert.Zero(t, rec.Lat)
	assert.Empty(t, rec.StartDate)
	assert.Nil(t, rec.GroundWaterLevel)
	assert.Equal(t, 0.0, rec.SPT[0].PenetrationLength)
}

func TestParseBadLayerDepth(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<ボーリング情報>
  <岩石土区分><岩石土区分_下端深度>abc</岩石土区分_下端深度></岩石土区分>
</ボーリング情報>`
	_, err := Parse(strings.NewReader(doc), nil)
	assert.Error(t, err)
}

func TestRecordClone(t *testing.T) {
	gwl := 1.5
	rec := &Record{GroundWaterLevel: &gwl, SPT: []SPTReading{{Depth: 1, NValue: 2}}}
	c := rec.Clone()
	c.SPT[0].NValue = 99
	*c.GroundWaterLevel = 3
	assert.Equal(t, 2.0, rec.SPT[0].NValue)
	assert.Equal(t, 1.5, *rec.GroundWaterLevel)
}
