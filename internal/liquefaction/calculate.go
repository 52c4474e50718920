package liquefaction

import (
	"fmt"
	"math"
	"slices"

	"github.com/alexiusacademia/goliq/internal/jra"
)

// SigmaV integrates total overburden stress (kN/m²) from the surface to depth
// over the soil intervals. Wet unit weight applies above the water table and
// saturated unit weight at and below it; an interval crossing the water table
// is split there. Below the deepest interval its unit weights continue.
func SigmaV(intervals []Interval, depth, gwl float64) float64 {
	if len(intervals) == 0 || depth <= 0 {
		return 0
	}

	sigma := 0.0
	for i, iv := range intervals {
		top := iv.UpperDepth
		if top >= depth {
			break
		}
		bottom := math.Min(iv.LowerDepth, depth)
		if i == len(intervals)-1 {
			bottom = depth
		}
		sigma += segmentStress(iv, top, bottom, gwl)
	}
	return sigma
}

func segmentStress(iv Interval, top, bottom, gwl float64) float64 {
	dry := math.Max(0, math.Min(bottom, gwl)-top)
	wet := (bottom - top) - dry
	return iv.GammaWet*dry + iv.GammaSat*wet
}

// SigmaPV returns effective overburden stress σ'v = σv - u
func SigmaPV(sigmaV, depth, gwl float64) float64 {
	return sigmaV - jra.PorePressure(depth, gwl)
}

// CalculateFL computes the seismic load, resistance and FL for every row.
// rows must already carry soil properties (see Merge). The returned slice is
// new and keeps the input order. A nil gwl is taken as 0 (fully submerged).
// Rows at a non-positive depth or with non-positive effective stress are
// dropped and recorded as InvalidReading events; if every row is dropped the
// call fails.
func CalculateFL(rows []Row, intervals []Interval, m Method, gwl *float64, events *Recorder) ([]Row, error) {
	switch p := m.(type) {
	case JRAParams:
		return calculateJRA(rows, intervals, p, gwl, events)
	case AIJParams, IdrissBoulangerParams:
		return nil, fmt.Errorf("%s FL calculation: %w", m.Name(), ErrNotImplemented)
	case nil:
		return nil, configErr("method", "<nil>", "method is not set")
	default:
		return nil, configErr("method", m.Name(), "unsupported method")
	}
}

func calculateJRA(rows []Row, intervals []Interval, p JRAParams, gwl *float64, events *Recorder) ([]Row, error) {
	if !slices.Contains(JRAYears, p.Year) {
		return nil, fmt.Errorf("JRA %d FL calculation: %w", p.Year, ErrNotImplemented)
	}
	if !validKhgl(p.Khgl) {
		return nil, configErr("khgl", p.Khgl, "must be a positive finite number")
	}
	if len(intervals) == 0 {
		return nil, configErr("intervals", "[]", "at least one soil interval is required")
	}
	w := 0.0
	if gwl != nil {
		w = *gwl
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Depth <= 0 {
			events.Record(Event{
				Kind:      InvalidReading,
				Depth:     r.Depth,
				ClassName: r.SoilType,
				Detail:    fmt.Sprintf("SPT depth %.2f m is not below the surface, row skipped", r.Depth),
			})
			continue
		}

		// overburden stress
		r.SigmaV = SigmaV(intervals, r.Depth, w)
		r.SigmaPV = SigmaPV(r.SigmaV, r.Depth, w)
		if r.SigmaPV <= 0 {
			events.Record(Event{
				Kind:      InvalidReading,
				Depth:     r.Depth,
				ClassName: r.SoilType,
				Detail: fmt.Sprintf("non-positive effective stress %.3f kN/m² (check unit weights), row skipped",
					r.SigmaPV),
			})
			continue
		}

		// seismic load
		r.Rd = jra.Rd(r.Depth)
		r.L = jra.SeismicLoad(r.Rd, p.Khgl, r.SigmaV, r.SigmaPV)

		// liquefaction resistance
		r.N1 = jra.N1(r.N, r.SigmaPV)
		r.Na, r.CFc = jra.Na(r.N1, r.D50, r.Fc)
		r.RL = jra.RL(r.N1, r.Na)
		r.Cw = jra.Cw()
		r.R = r.RL * r.Cw

		r.FL = r.R / r.L
		out = append(out, r)
	}
	if len(out) == 0 && len(rows) > 0 {
		return nil, fmt.Errorf("all %d SPT rows skipped: %w", len(rows), ErrNoValidRows)
	}
	return out, nil
}
