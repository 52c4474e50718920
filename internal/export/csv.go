package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/alexiusacademia/goliq/internal/liquefaction"
)

// RowHeader is the column order of the FL table
var RowHeader = []string{
	"depth", "n", "soil_type", "gamma_sat", "gamma_wet", "d50", "fc",
	"sigma_v", "sigma_p_v", "rd", "l", "n1", "cfc", "na", "rl", "cw", "r", "fl",
}

func rowValues(r liquefaction.Row) []any {
	return []any{
		r.Depth, r.N, r.SoilType, r.GammaSat, r.GammaWet, r.D50, r.Fc,
		r.SigmaV, r.SigmaPV, r.Rd, r.L, r.N1, r.CFc, r.Na, r.RL, r.Cw, r.R, r.FL,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toStrings(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case float64:
			out[i] = formatFloat(x)
		case int:
			out[i] = strconv.Itoa(x)
		case string:
			out[i] = x
		}
	}
	return out
}

// WriteCSV writes the FL table with a header line
func WriteCSV(w io.Writer, rows []liquefaction.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RowHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(toStrings(rowValues(r))); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SummaryHeader is the column order of the batch summary table
var SummaryHeader = []string{
	"id", "source", "method", "ground_water_level", "rows", "min_fl", "max_fl",
	"critical_depth", "liquefiable_rows", "liquefaction_risk", "events",
}

// WriteSummaryCSV writes one line per report
func WriteSummaryCSV(w io.Writer, reports []*Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	for _, r := range reports {
		s := r.Summary
		line := toStrings([]any{
			r.ID, r.Source, r.Method, r.Site.GroundWaterLevel, s.Rows, s.MinFL, s.MaxFL,
			s.CriticalDepth, s.Liquefiable, string(s.Risk), len(r.Events),
		})
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
