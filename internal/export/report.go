// Package export writes assessment results as CSV, JSON, XLSX or PDF.
package export

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/liquefaction"
)

// Site is the borehole metadata shown in reports
type Site struct {
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	StartDate        string  `json:"start_date"`
	TipElevation     float64 `json:"tip_elevation"`
	GroundWaterLevel float64 `json:"ground_water_level"` // level used in the calculation
}

// Report is one exported assessment
type Report struct {
	ID          string               `json:"id"`
	Source      string               `json:"source"`
	Site        Site                 `json:"site"`
	Method      string               `json:"method"`
	Params      liquefaction.Method  `json:"params"`
	Rows        []liquefaction.Row   `json:"rows"`
	Summary     liquefaction.Summary `json:"summary"`
	Events      []liquefaction.Event `json:"events"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// NewReport wraps an assessment of rec read from source
func NewReport(source string, rec *borehole.Record, a *liquefaction.Assessment) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		Source:      source,
		Rows:        a.Rows,
		Summary:     a.Summary,
		Events:      a.Events,
		GeneratedAt: time.Now().UTC(),
	}
	if a.Method != nil {
		r.Method = a.Method.Name()
		r.Params = a.Method
	}
	if rec != nil {
		r.Site = Site{
			Lat:          rec.Lat,
			Lon:          rec.Lon,
			StartDate:    rec.StartDate,
			TipElevation: rec.TipElevation,
		}
	}
	r.Site.GroundWaterLevel = a.GroundWaterLevel
	return r
}
