package liquefaction

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/soil"
)

func TestSigmaVIntegratesOverLayers(t *testing.T) {
	ivs, err := BuildIntervals(sandSiltLayers(), sandSiltTable(t), nil)
	require.NoError(t, err)

	tests := []struct {
		depth, gwl, want float64
	}{
		{1, 2, 17},                     // above water table
		{5, 2, 17*2 + 19*3},            // exactly on a boundary
		{7, 2, 17*2 + 19*3 + 17.5*2},   // straddles into the second layer
		{7, 6, 17*5 + 15.5*1 + 17.5*1}, // water table inside the second layer
		{12, 2, 17*2 + 19*3 + 17.5*7},  // below the deepest layer
		{3, 0, 19 * 3},                 // fully submerged
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, SigmaV(ivs, tt.depth, tt.gwl), 1e-9, "depth %.1f gwl %.1f", tt.depth, tt.gwl)
	}
	assert.Equal(t, 0.0, SigmaV(nil, 3, 0))
}

func TestCalculateFLReferenceScenario(t *testing.T) {
	tbl := sandSiltTable(t)
	ivs, err := BuildIntervals(sandSiltLayers(), tbl, nil)
	require.NoError(t, err)

	params, err := ResolveJRA(jra2017Level1C2(), nil)
	require.NoError(t, err)
	require.InDelta(t, 0.105, params.Khgl, 1e-12)

	rows := Merge([]borehole.SPTReading{{Depth: 7, NValue: 10, PenetrationLength: 300}}, ivs, nil)
	out, err := CalculateFL(rows, ivs, params, ptr(2.0), nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	r := out[0]

	sigmaV := 17.0*2 + 19.0*3 + 17.5*2
	sigmaPV := sigmaV - 9.80665*5
	rd := 1 - 0.015*7
	l := rd * 0.105 * sigmaV / sigmaPV
	n1 := 170 * 10 / (sigmaPV + 70)
	x := 75.0 - 40
	cfc := 1 + 0.004*x + 0.005*x*x/math.Pow(1+0.004*x, 2)
	na := cfc*(n1+2.47) - 2.47
	rl := 0.0882 * math.Sqrt((0.85*na+2.1)/1.7) // N1 < 14
	fl := rl / l

	assert.InDelta(t, 126.0, r.SigmaV, 1e-9)
	assert.InDelta(t, sigmaPV, r.SigmaPV, 1e-9)
	assert.InDelta(t, rd, r.Rd, 1e-12)
	assert.InDelta(t, l, r.L, 1e-12)
	assert.InDelta(t, n1, r.N1, 1e-9)
	assert.Less(t, r.N1, 14.0)
	assert.InDelta(t, cfc, r.CFc, 1e-12)
	assert.InDelta(t, na, r.Na, 1e-9)
	assert.InDelta(t, rl, r.RL, 1e-9)
	assert.Equal(t, 1.0, r.Cw)
	assert.InDelta(t, rl, r.R, 1e-12)
	assert.InDelta(t, fl, r.FL, 1e-9)

	for _, v := range []float64{r.SigmaV, r.SigmaPV, r.L, r.N1, r.Na, r.RL, r.FL} {
		assert.False(t, math.IsNaN(v))
		assert.Greater(t, v, 0.0)
	}
}

func TestCalculateFLKhglScaling(t *testing.T) {
	ivs, err := BuildIntervals(sandSiltLayers(), sandSiltTable(t), nil)
	require.NoError(t, err)
	rows := Merge([]borehole.SPTReading{
		{Depth: 1.5, NValue: 3},
		{Depth: 4.2, NValue: 12},
		{Depth: 8.8, NValue: 25},
	}, ivs, nil)

	base := JRAParams{Year: 2017, EQLevel: 1, GivenKhgl: true, Khgl: 0.15}
	doubled := base
	doubled.Khgl = 0.30

	a, err := CalculateFL(rows, ivs, base, ptr(1.0), nil)
	require.NoError(t, err)
	b, err := CalculateFL(rows, ivs, doubled, ptr(1.0), nil)
	require.NoError(t, err)

	for i := range a {
		assert.InDelta(t, 2*a[i].L, b[i].L, 1e-12)
		assert.InDelta(t, a[i].FL/2, b[i].FL, 1e-12)
	}
}

func TestCalculateFLHighN1Branch(t *testing.T) {
	ivs, err := BuildIntervals(sandSiltLayers(), sandSiltTable(t), nil)
	require.NoError(t, err)
	rows := Merge([]borehole.SPTReading{{Depth: 3, NValue: 30}}, ivs, nil)

	out, err := CalculateFL(rows, ivs, JRAParams{Year: 2012, EQLevel: 1, GivenKhgl: true, Khgl: 0.2}, ptr(1.0), nil)
	require.NoError(t, err)
	r := out[0]
	require.GreaterOrEqual(t, r.N1, 14.0)
	// Fc = 15 needs no correction
	assert.Equal(t, 1.0, r.CFc)
	assert.InDelta(t, r.N1, r.Na, 1e-12)
	want := 0.0882*math.Sqrt(r.Na/1.7) + 1.6e-6*math.Pow(r.N1-14, 4.5)
	assert.InDelta(t, want, r.RL, 1e-12)
}

func TestCalculateFLNilGroundWaterMeansSubmerged(t *testing.T) {
	ivs, err := BuildIntervals(sandSiltLayers(), sandSiltTable(t), nil)
	require.NoError(t, err)
	rows := Merge([]borehole.SPTReading{{Depth: 2, NValue: 5}}, ivs, nil)
	p := JRAParams{Year: 2017, EQLevel: 1, GivenKhgl: true, Khgl: 0.1}

	a, err := CalculateFL(rows, ivs, p, nil, nil)
	require.NoError(t, err)
	b, err := CalculateFL(rows, ivs, p, ptr(0.0), nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.InDelta(t, 38.0, a[0].SigmaV, 1e-9)
}

func TestCalculateFLKeepsInputOrderAndInput(t *testing.T) {
	ivs, err := BuildIntervals(sandSiltLayers(), sandSiltTable(t), nil)
	require.NoError(t, err)
	rows := Merge([]borehole.SPTReading{{Depth: 8, NValue: 9}, {Depth: 2, NValue: 5}}, ivs, nil)

	out, err := CalculateFL(rows, ivs, JRAParams{Year: 2017, EQLevel: 1, GivenKhgl: true, Khgl: 0.1}, ptr(1.0), nil)
	require.NoError(t, err)
	assert.Equal(t, 8.0, out[0].Depth)
	assert.Equal(t, 2.0, out[1].Depth)
	assert.Zero(t, rows[0].FL, "input rows must not be modified")
}

func TestCalculateFLUnimplementedMethods(t *testing.T) {
	ivs, err := BuildIntervals(sandSiltLayers(), sandSiltTable(t), nil)
	require.NoError(t, err)
	rows := Merge([]borehole.SPTReading{{Depth: 2, NValue: 5}}, ivs, nil)

	_, err = CalculateFL(rows, ivs, AIJParams{}, nil, nil)
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = CalculateFL(rows, ivs, IdrissBoulangerParams{}, nil, nil)
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = CalculateFL(rows, ivs, JRAParams{Year: 2002, Khgl: 0.2}, nil, nil)
	assert.ErrorIs(t, err, ErrNotImplemented)

	_, err = CalculateFL(rows, ivs, nil, nil, nil)
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestCalculateFLRejectsBadInput(t *testing.T) {
	p := JRAParams{Year: 2017, EQLevel: 1, GivenKhgl: true, Khgl: 0.1}

	var cfgErr *ConfigurationError
	_, err := CalculateFL([]Row{{Depth: 2, N: 5}}, nil, p, nil, nil)
	assert.True(t, errors.As(err, &cfgErr))
}

func TestCalculateFLSkipsInvalidRows(t *testing.T) {
	ivs, err := BuildIntervals(sandSiltLayers(), sandSiltTable(t), nil)
	require.NoError(t, err)
	p := JRAParams{Year: 2017, EQLevel: 1, GivenKhgl: true, Khgl: 0.1}

	rows := Merge([]borehole.SPTReading{
		{Depth: 0, NValue: 3},
		{Depth: 3, NValue: 6},
		{Depth: 7, NValue: 10},
	}, ivs, nil)
	events := NewRecorder(nil)

	out, err := CalculateFL(rows, ivs, p, ptr(2.0), events)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 3.0, out[0].Depth)
	assert.Equal(t, 7.0, out[1].Depth)
	assert.Equal(t, 1, events.Count(InvalidReading))
	assert.Equal(t, 0.0, events.Events()[0].Depth)
}

func TestCalculateFLSkipsNonPositiveEffectiveStress(t *testing.T) {
	// saturated unit weight below that of water
	ivs := []Interval{{UpperDepth: 0, LowerDepth: 10, ClassName: "軽石",
		Properties: soil.Properties{GammaSat: 5, GammaWet: 4, Fc: 10}}}
	p := JRAParams{Year: 2017, EQLevel: 1, GivenKhgl: true, Khgl: 0.1}
	rows := Merge([]borehole.SPTReading{{Depth: 2, NValue: 5}}, ivs, nil)
	events := NewRecorder(nil)

	_, err := CalculateFL(rows, ivs, p, ptr(0.0), events)
	assert.ErrorIs(t, err, ErrNoValidRows)
	require.Len(t, events.Events(), 1)
	assert.Equal(t, InvalidReading, events.Events()[0].Kind)
	assert.Equal(t, "軽石", events.Events()[0].ClassName)
}
