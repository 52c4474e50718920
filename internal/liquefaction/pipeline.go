package liquefaction

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/soil"
)

// Pipeline holds a resolved method and property table. It is immutable and
// may be shared by goroutines assessing different boreholes.
type Pipeline struct {
	method Method
	table  *soil.Table
	log    *zap.Logger
}

// NewPipeline resolves the method configuration once. Invalid configuration
// fails here, before any borehole is touched.
func NewPipeline(method string, raw RawParams, table *soil.Table, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m, err := Resolve(method, raw, log)
	if err != nil {
		return nil, err
	}
	return NewPipelineFor(m, table, log), nil
}

// NewPipelineFor builds a pipeline from an already resolved method
func NewPipelineFor(m Method, table *soil.Table, log *zap.Logger) *Pipeline {
	if table == nil {
		table = soil.DefaultTable()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{method: m, table: table, log: log}
}

// Method returns the resolved method
func (p *Pipeline) Method() Method {
	return p.method
}

// Table returns the soil property table
func (p *Pipeline) Table() *soil.Table {
	return p.table
}

// Assessment is the complete result for one borehole
type Assessment struct {
	Method           Method     `json:"method"`
	GroundWaterLevel float64    `json:"ground_water_level"`
	Intervals        []Interval `json:"intervals"`
	Rows             []Row      `json:"rows"`
	Summary          Summary    `json:"summary"`
	Events           []Event    `json:"events"`
}

// Assess runs the interval build, merge and FL calculation for one record.
// gwlOverride, when set, replaces the logged ground water level.
// rec is not modified.
func (p *Pipeline) Assess(rec *borehole.Record, gwlOverride *float64) (*Assessment, error) {
	if rec == nil {
		return nil, configErr("record", "<nil>", "")
	}
	events := NewRecorder(p.log)

	intervals, err := BuildIntervals(rec.SoilLayers, p.table, events)
	if err != nil {
		return nil, err
	}

	gwl := rec.GroundWaterLevel
	if gwlOverride != nil {
		gwl = gwlOverride
	}
	if gwl == nil {
		p.log.Info("ground water level not given, assuming 0.0 m")
	}

	rows := Merge(rec.SPT, intervals, events)

	rows, err = CalculateFL(rows, intervals, p.method, gwl, events)
	if err != nil {
		return nil, fmt.Errorf("calculate FL: %w", err)
	}

	a := &Assessment{
		Method:    p.method,
		Intervals: intervals,
		Rows:      rows,
		Summary:   Summarize(rows),
		Events:    events.Events(),
	}
	if gwl != nil {
		a.GroundWaterLevel = *gwl
	}

	p.log.Debug("assessment complete",
		zap.Int("rows", len(rows)),
		zap.Float64("min_fl", a.Summary.MinFL),
		zap.String("risk", string(a.Summary.Risk)),
		zap.Int("events", len(a.Events)))
	return a, nil
}
