package jra

import "fmt"

// LoadType identifies the design ground motion used for Khgl
type LoadType int

const (
	Level1      LoadType = iota // Level 1 earthquake
	Level2Type1                 // Level 2, type I (plate boundary)
	Level2Type2                 // Level 2, type II (inland)
)

// String returns a short description of the load type
func (lt LoadType) String() string {
	switch lt {
	case Level1:
		return "Level 1"
	case Level2Type1:
		return "Level 2 Type I"
	case Level2Type2:
		return "Level 2 Type II"
	}
	return fmt.Sprintf("LoadType(%d)", int(lt))
}

// RegionalClasses lists the regional classes in table order
var RegionalClasses = []string{"A1", "A2", "B1", "B2", "C"}

// GroundTypes lists the ground types in table order
var GroundTypes = []int{1, 2, 3}

// Khgl0 is the standard design horizontal seismic coefficient at ground level.
// Rows: load type, columns: ground type I..III.
var Khgl0 = [3][3]float64{
	{0.12, 0.15, 0.18},
	{0.50, 0.45, 0.40},
	{0.80, 0.70, 0.60},
}

// RegionalCoeffs holds the regional modification factor cz.
// Rows: regional class A1, A2, B1, B2, C; columns: load type.
var RegionalCoeffs = [5][3]float64{
	{1.0, 1.2, 1.0},
	{1.0, 1.0, 1.0},
	{0.85, 1.2, 0.85},
	{0.85, 1.0, 0.85},
	{0.7, 0.8, 0.7},
}

// LoadTypeFor maps an earthquake level and type to a load type.
// eqType is ignored for level 1.
func LoadTypeFor(eqLevel, eqType int) (LoadType, bool) {
	switch {
	case eqLevel == 1:
		return Level1, true
	case eqLevel == 2 && eqType == 1:
		return Level2Type1, true
	case eqLevel == 2 && eqType == 2:
		return Level2Type2, true
	}
	return 0, false
}

// RegionalClassIndex returns the table row of a regional class
func RegionalClassIndex(class string) (int, bool) {
	for i, c := range RegionalClasses {
		if c == class {
			return i, true
		}
	}
	return 0, false
}

// Khgl calculates the design horizontal seismic coefficient
// Khgl = cz · Khgl0
func Khgl(lt LoadType, regionalClass string, groundType int) (float64, error) {
	if lt < Level1 || lt > Level2Type2 {
		return 0, fmt.Errorf("invalid load type: %d", int(lt))
	}
	rc, ok := RegionalClassIndex(regionalClass)
	if !ok {
		return 0, fmt.Errorf("invalid regional class: %q", regionalClass)
	}
	if groundType < 1 || groundType > 3 {
		return 0, fmt.Errorf("invalid ground type: %d", groundType)
	}
	return Khgl0[lt][groundType-1] * RegionalCoeffs[rc][lt], nil
}
