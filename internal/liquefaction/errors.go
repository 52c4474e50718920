// Package liquefaction computes the factor of safety against liquefaction (FL)
// for each SPT depth of a borehole.
package liquefaction

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNotImplemented is returned for methods and code years that have no
// implementation. It is never silently replaced by a partial result.
var ErrNotImplemented = errors.New("not implemented")

// ErrNoValidRows is returned when every SPT row of a borehole was skipped
var ErrNoValidRows = errors.New("no valid SPT rows")

// ConfigurationError reports an invalid or missing method parameter or a
// structurally invalid input. It always aborts the assessment.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

func configErr(field string, value any, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}

// EventKind classifies a recovered data-quality problem
type EventKind string

const (
	// DataGap: an SPT depth outside every soil interval, resolved to the nearest one
	DataGap EventKind = "data_gap"
	// UnresolvedSoilClass: a class name missing from the property table, resolved to defaults
	UnresolvedSoilClass EventKind = "unresolved_soil_class"
	// InvalidReading: an SPT row that cannot be evaluated, skipped
	InvalidReading EventKind = "invalid_reading"
)

// Event is a non-fatal problem kept for audit
type Event struct {
	Kind      EventKind `json:"kind"`
	Depth     float64   `json:"depth"`
	ClassName string    `json:"class_name"`
	Detail    string    `json:"detail"`
}

// Recorder collects events and logs them as warnings.
// A nil *Recorder discards events.
type Recorder struct {
	Log    *zap.Logger
	events []Event
}

// NewRecorder returns a recorder that logs to log (nil for no logging)
func NewRecorder(log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{Log: log}
}

// Record stores an event
func (r *Recorder) Record(e Event) {
	if r == nil {
		return
	}
	r.events = append(r.events, e)
	if r.Log != nil {
		r.Log.Warn(e.Detail,
			zap.String("kind", string(e.Kind)),
			zap.Float64("depth", e.Depth),
			zap.String("class", e.ClassName))
	}
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	if r == nil {
		return nil
	}
	return append([]Event(nil), r.events...)
}

// Count returns how many events of kind were recorded
func (r *Recorder) Count(kind EventKind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
