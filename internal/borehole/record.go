// Package borehole reads boring-log XML documents into a Record.
package borehole

// SoilLayer is one rock/soil classification interval. Its upper depth is the
// previous layer's lower depth (0 for the first layer).
type SoilLayer struct {
	LowerDepth float64 `json:"lower_depth"` // m below ground surface
	ClassName  string  `json:"class_name"`
	ClassCode  string  `json:"class_code"`
}

// SPTReading is a single standard penetration test
type SPTReading struct {
	Depth             float64 `json:"depth"`              // test start depth (m)
	NValue            float64 `json:"n_value"`            // total blow count
	PenetrationLength float64 `json:"penetration_length"` // total penetration (mm)
}

// ObservationNote is a free-text log description over a depth range
type ObservationNote struct {
	UpperDepth float64 `json:"upper_depth"`
	LowerDepth float64 `json:"lower_depth"`
	Note       string  `json:"note"`
}

// Record is everything the assessment needs from one borehole.
// It is read-only after loading.
type Record struct {
	Lat              float64           `json:"lat"`
	Lon              float64           `json:"lon"`
	StartDate        string            `json:"start_date"`
	TipElevation     float64           `json:"tip_elevation"`      // m
	GroundWaterLevel *float64          `json:"ground_water_level"` // m below surface, nil if not logged
	SoilLayers       []SoilLayer       `json:"soil_layers"`
	SPT              []SPTReading      `json:"spt"`
	ObservationNotes []ObservationNote `json:"observation_notes,omitempty"`
}

// MaxDepth returns the deepest soil layer boundary
func (r *Record) MaxDepth() float64 {
	if len(r.SoilLayers) == 0 {
		return 0
	}
	return r.SoilLayers[len(r.SoilLayers)-1].LowerDepth
}

// Clone returns a deep copy of the record. Changes to the copy's slices and
// water level do not reach r.
func (r *Record) Clone() *Record {
	c := *r
	if r.GroundWaterLevel != nil {
		gwl := *r.GroundWaterLevel
		c.GroundWaterLevel = &gwl
	}
	c.SoilLayers = append([]SoilLayer(nil), r.SoilLayers...)
	c.SPT = append([]SPTReading(nil), r.SPT...)
	c.ObservationNotes = append([]ObservationNote(nil), r.ObservationNotes...)
	return &c
}
