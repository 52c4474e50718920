package liquefaction

// Risk is the overall liquefaction risk class of a borehole
type Risk string

const (
	RiskHigh   Risk = "high"   // min FL < 1.0
	RiskMedium Risk = "medium" // min FL < 1.2
	RiskLow    Risk = "low"
)

// RiskFor classifies a minimum FL
func RiskFor(minFL float64) Risk {
	switch {
	case minFL < 1.0:
		return RiskHigh
	case minFL < 1.2:
		return RiskMedium
	}
	return RiskLow
}

// SoilStats are per-soil-type averages
type SoilStats struct {
	SoilType string  `json:"soil_type"`
	Count    int     `json:"count"`
	MeanN    float64 `json:"mean_n"`
	MeanFL   float64 `json:"mean_fl"`
}

// Summary condenses a calculated row set
type Summary struct {
	Rows          int         `json:"rows"`
	MinFL         float64     `json:"min_fl"`
	MaxFL         float64     `json:"max_fl"`
	CriticalDepth float64     `json:"critical_depth"` // depth of min FL
	Risk          Risk        `json:"liquefaction_risk"`
	MinDepth      float64     `json:"min_depth"`
	MaxDepth      float64     `json:"max_depth"`
	Liquefiable   int         `json:"liquefiable_rows"` // rows with FL < 1
	BySoil        []SoilStats `json:"by_soil"`          // in order of first appearance
}

// Summarize computes the summary of calculated rows. Ties for the minimum FL
// keep the shallowest-listed row. An empty input gives a zero Summary.
func Summarize(rows []Row) Summary {
	if len(rows) == 0 {
		return Summary{}
	}

	first := rows[0]
	s := Summary{
		Rows:          len(rows),
		MinFL:         first.FL,
		MaxFL:         first.FL,
		CriticalDepth: first.Depth,
		MinDepth:      first.Depth,
		MaxDepth:      first.Depth,
	}

	type acc struct {
		n, sumN, sumFL float64
	}
	order := []string{}
	sums := map[string]*acc{}

	for _, r := range rows {
		if r.FL < s.MinFL {
			s.MinFL = r.FL
			s.CriticalDepth = r.Depth
		}
		if r.FL > s.MaxFL {
			s.MaxFL = r.FL
		}
		if r.Depth < s.MinDepth {
			s.MinDepth = r.Depth
		}
		if r.Depth > s.MaxDepth {
			s.MaxDepth = r.Depth
		}
		if r.Liquefiable() {
			s.Liquefiable++
		}

		a, ok := sums[r.SoilType]
		if !ok {
			a = &acc{}
			sums[r.SoilType] = a
			order = append(order, r.SoilType)
		}
		a.n++
		a.sumN += r.N
		a.sumFL += r.FL
	}

	s.Risk = RiskFor(s.MinFL)
	for _, name := range order {
		a := sums[name]
		s.BySoil = append(s.BySoil, SoilStats{
			SoilType: name,
			Count:    int(a.n),
			MeanN:    a.sumN / a.n,
			MeanFL:   a.sumFL / a.n,
		})
	}
	return s
}
