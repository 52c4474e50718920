package liquefaction

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/alexiusacademia/goliq/internal/jra"
)

// Method names accepted by Resolve
const (
	MethodJRA             = "JRA"
	MethodAIJ             = "AIJ"
	MethodIdrissBoulanger = "Idriss and Boulanger"
)

// Supported JRA code years
var JRAYears = []int{2012, 2017}

// RawParams is the unvalidated method configuration as read from flags or a
// config file. Pointer fields distinguish "missing" from zero.
type RawParams struct {
	Year          *int     `yaml:"year,omitempty" json:"year,omitempty"`
	EQLevel       *int     `yaml:"eq_level,omitempty" json:"eq_level,omitempty"`
	EQType        *int     `yaml:"eq_type,omitempty" json:"eq_type,omitempty"`
	IsGivenKhgl   *bool    `yaml:"is_given_khgl,omitempty" json:"is_given_khgl,omitempty"`
	Khgl          *float64 `yaml:"khgl,omitempty" json:"khgl,omitempty"`
	RegionalClass *string  `yaml:"regional_class,omitempty" json:"regional_class,omitempty"`
	GroundType    *int     `yaml:"ground_type,omitempty" json:"ground_type,omitempty"`
}

// Method is a resolved, strongly typed method configuration
type Method interface {
	Name() string
}

// JRAParams is a resolved JRA 2012/2017 configuration. Khgl is always set.
type JRAParams struct {
	Year          int          `json:"year"`
	EQLevel       int          `json:"eq_level"`
	EQType        int          `json:"eq_type,omitempty"`
	GivenKhgl     bool         `json:"is_given_khgl"`
	Khgl          float64      `json:"khgl"`
	RegionalClass string       `json:"regional_class,omitempty"`
	GroundType    int          `json:"ground_type,omitempty"`
	LoadType      jra.LoadType `json:"load_type"`
}

func (JRAParams) Name() string { return MethodJRA }

// AIJParams selects the AIJ method, which has no implementation
type AIJParams struct{}

func (AIJParams) Name() string { return MethodAIJ }

// IdrissBoulangerParams selects the Idriss-Boulanger method, which has no implementation
type IdrissBoulangerParams struct{}

func (IdrissBoulangerParams) Name() string { return MethodIdrissBoulanger }

// Resolve validates raw parameters for the named method
func Resolve(method string, raw RawParams, log *zap.Logger) (Method, error) {
	switch normalizeMethod(method) {
	case MethodJRA:
		return ResolveJRA(raw, log)
	case MethodAIJ:
		return nil, fmt.Errorf("%s parameters: %w", MethodAIJ, ErrNotImplemented)
	case MethodIdrissBoulanger:
		return nil, fmt.Errorf("%s parameters: %w", MethodIdrissBoulanger, ErrNotImplemented)
	}
	return nil, configErr("method", fmt.Sprintf("%q", method), "expected JRA, AIJ or Idriss and Boulanger")
}

func normalizeMethod(m string) string {
	switch strings.ToLower(strings.TrimSpace(m)) {
	case "jra":
		return MethodJRA
	case "aij":
		return MethodAIJ
	case "idriss and boulanger", "idriss-boulanger", "idrissboulanger", "ib":
		return MethodIdrissBoulanger
	}
	return m
}

// ResolveJRA validates raw parameters and derives Khgl from the code tables
// unless it is given. JRA 2002 is rejected with ErrNotImplemented.
func ResolveJRA(raw RawParams, log *zap.Logger) (JRAParams, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if raw.Year == nil {
		return JRAParams{}, configErr("year", "<missing>", "")
	}
	year := *raw.Year
	switch year {
	case 2012, 2017:
	case 2002:
		log.Warn("unimplemented configuration: JRA 2002 parameter checks and Khgl derivation are not available",
			zap.Int("year", year))
		return JRAParams{}, fmt.Errorf("JRA %d: %w", year, ErrNotImplemented)
	default:
		return JRAParams{}, configErr("year", year, "expected 2012 or 2017")
	}

	p := JRAParams{Year: year}

	if raw.EQLevel == nil {
		return JRAParams{}, configErr("eq_level", "<missing>", "")
	}
	p.EQLevel = *raw.EQLevel
	if p.EQLevel != 1 && p.EQLevel != 2 {
		return JRAParams{}, configErr("eq_level", p.EQLevel, "expected 1 or 2")
	}
	if p.EQLevel == 2 {
		if raw.EQType == nil {
			return JRAParams{}, configErr("eq_type", "<missing>", "required for eq_level 2")
		}
		p.EQType = *raw.EQType
		if p.EQType != 1 && p.EQType != 2 {
			return JRAParams{}, configErr("eq_type", p.EQType, "expected 1 or 2")
		}
	}
	p.LoadType, _ = jra.LoadTypeFor(p.EQLevel, p.EQType)

	if raw.IsGivenKhgl == nil {
		return JRAParams{}, configErr("is_given_khgl", "<missing>", "must be true or false")
	}
	p.GivenKhgl = *raw.IsGivenKhgl

	if p.GivenKhgl {
		if raw.Khgl == nil {
			return JRAParams{}, configErr("khgl", "<missing>", "required when is_given_khgl is true")
		}
		if !validKhgl(*raw.Khgl) {
			return JRAParams{}, configErr("khgl", *raw.Khgl, "must be a positive finite number")
		}
		p.Khgl = *raw.Khgl
		log.Debug("using given Khgl", zap.Float64("khgl", p.Khgl))
		return p, nil
	}

	if raw.RegionalClass == nil {
		return JRAParams{}, configErr("regional_class", "<missing>", "")
	}
	p.RegionalClass = *raw.RegionalClass
	if _, ok := jra.RegionalClassIndex(p.RegionalClass); !ok {
		return JRAParams{}, configErr("regional_class", fmt.Sprintf("%q", p.RegionalClass), "expected one of A1, A2, B1, B2, C")
	}

	if raw.GroundType == nil {
		return JRAParams{}, configErr("ground_type", "<missing>", "")
	}
	p.GroundType = *raw.GroundType
	if p.GroundType < 1 || p.GroundType > 3 {
		return JRAParams{}, configErr("ground_type", p.GroundType, "expected 1, 2 or 3")
	}

	khgl, err := jra.Khgl(p.LoadType, p.RegionalClass, p.GroundType)
	if err != nil {
		return JRAParams{}, configErr("khgl", "<derived>", err.Error())
	}
	p.Khgl = khgl
	log.Debug("derived Khgl",
		zap.String("load_type", p.LoadType.String()),
		zap.String("regional_class", p.RegionalClass),
		zap.Int("ground_type", p.GroundType),
		zap.Float64("khgl", p.Khgl))

	return p, nil
}

func validKhgl(k float64) bool {
	return !math.IsNaN(k) && !math.IsInf(k, 0) && k > 0
}
