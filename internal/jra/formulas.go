package jra

import "math"

// JRA Specifications for Highway Bridges, Part V (2012/2017)
// Liquefaction assessment constants

const (
	// GammaW is the unit weight of pore water (kN/m³)
	GammaW = 9.80665

	// Depth reduction factor rd = 1 - RdSlope·x
	RdSlope = 0.015

	// N1 normalization: N1 = 170N / (σ'v + 70)
	N1Numerator = 170.0
	N1Offset    = 70.0

	// Fines content correction
	FcThreshold    = 40.0 // % - no correction at or below
	NaOffset       = 2.47
	GravelD50      = 2.0 // mm - D50 at or above uses the gravel correction
	GravelD50Slope = 0.36

	// Cyclic triaxial strength ratio RL
	RLCoeff      = 0.0882
	RLN1Boundary = 14.0
	RLHighCoeff  = 1.6e-6
	RLHighExp    = 4.5
)

// Rd calculates the depth reduction factor for the seismic shear stress ratio.
// Not clamped: the value turns negative below about 66.7 m.
func Rd(depth float64) float64 {
	return 1 - RdSlope*depth
}

// PorePressure returns the hydrostatic pore pressure (kN/m²) at depth for a
// given ground water level (m below surface).
func PorePressure(depth, gwl float64) float64 {
	return GammaW * math.Max(0, depth-gwl)
}

// SeismicLoad calculates the seismic shear stress ratio L
// L = rd · Khgl · σv / σ'v
func SeismicLoad(rd, khgl, sigmaV, sigmaPV float64) float64 {
	return rd * khgl * sigmaV / sigmaPV
}

// N1 normalizes an SPT blow count to an effective overburden of 100 kN/m²
func N1(n, sigmaPV float64) float64 {
	return N1Numerator * n / (sigmaPV + N1Offset)
}

// CFc calculates the fines content correction factor.
// Continuous at Fc = 40 where it equals exactly 1.
func CFc(fc float64) float64 {
	if fc <= FcThreshold {
		return 1.0
	}
	x := fc - FcThreshold
	d := 1 + 0.004*x
	return 1 + 0.004*x + 0.005*x*x/(d*d)
}

// Na returns the grain-size corrected N value and the CFc that was applied.
// Gravelly soils (D50 >= 2 mm) use the D50 correction with CFc = 1.
func Na(n1, d50, fc float64) (na, cfc float64) {
	if d50 >= GravelD50 {
		return (1 - GravelD50Slope*math.Log10(d50/GravelD50)) * n1, 1.0
	}
	cfc = CFc(fc)
	return cfc*(n1+NaOffset) - NaOffset, cfc
}

// RL calculates the cyclic triaxial strength ratio
func RL(n1, na float64) float64 {
	if n1 < RLN1Boundary {
		return RLCoeff * math.Sqrt((0.85*na+2.1)/1.7)
	}
	return RLCoeff*math.Sqrt(na/1.7) + RLHighCoeff*math.Pow(n1-RLN1Boundary, RLHighExp)
}

// Cw is the correction factor for seismic motion characteristics.
// TODO: type-2 (inland) motions use an RL-dependent Cw; confirm against the 2017 text before enabling it.
func Cw() float64 {
	return 1.0
}
