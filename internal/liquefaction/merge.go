package liquefaction

import (
	"fmt"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/soil"
)

// Row is one SPT depth carried through the assessment.
// Merge fills the soil fields; CalculateFL fills the rest.
type Row struct {
	Depth             float64 `json:"depth"`
	N                 float64 `json:"n"`
	PenetrationLength float64 `json:"penetration_length"`

	SoilType string `json:"soil_type"`
	soil.Properties

	SigmaV  float64 `json:"sigma_v"`   // total overburden stress (kN/m²)
	SigmaPV float64 `json:"sigma_p_v"` // effective overburden stress (kN/m²)
	Rd      float64 `json:"rd"`
	L       float64 `json:"l"`
	N1      float64 `json:"n1"`
	CFc     float64 `json:"cfc"`
	Na      float64 `json:"na"`
	RL      float64 `json:"rl"`
	Cw      float64 `json:"cw"`
	R       float64 `json:"r"`
	FL      float64 `json:"fl"`
}

// Liquefiable reports whether FL < 1
func (r Row) Liquefiable() bool {
	return r.FL < 1.0
}

// Merge attaches soil properties to each reading. A reading lying in no
// interval takes the nearest one and a DataGap event is recorded.
// Neither input is modified.
func Merge(readings []borehole.SPTReading, intervals []Interval, rec *Recorder) []Row {
	rows := make([]Row, len(readings))
	for i, r := range readings {
		rows[i] = Row{Depth: r.Depth, N: r.NValue, PenetrationLength: r.PenetrationLength}
		if len(intervals) == 0 {
			continue
		}

		iv, ok := findInterval(intervals, r.Depth)
		if !ok {
			iv = nearestInterval(intervals, r.Depth)
			rec.Record(Event{
				Kind:      DataGap,
				Depth:     r.Depth,
				ClassName: iv.ClassName,
				Detail: fmt.Sprintf("SPT depth outside soil intervals, using nearest %.2f-%.2f m",
					iv.UpperDepth, iv.LowerDepth),
			})
		}

		rows[i].SoilType = iv.ClassName
		rows[i].Properties = iv.Properties
	}
	return rows
}

// findInterval returns the first interval containing depth. On a shared
// boundary the shallower interval wins.
func findInterval(intervals []Interval, depth float64) (Interval, bool) {
	for _, iv := range intervals {
		if iv.Contains(depth) {
			return iv, true
		}
	}
	return Interval{}, false
}

// nearestInterval breaks ties in favour of the first interval
func nearestInterval(intervals []Interval, depth float64) Interval {
	best := intervals[0]
	bestDist := best.distance(depth)
	for _, iv := range intervals[1:] {
		if d := iv.distance(depth); d < bestDist {
			best, bestDist = iv, d
		}
	}
	return best
}
