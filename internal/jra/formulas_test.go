package jra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCFcContinuousAtThreshold(t *testing.T) {
	assert.Equal(t, 1.0, CFc(40))
	assert.Equal(t, 1.0, CFc(0))
	assert.InDelta(t, 1.0, CFc(40+1e-9), 1e-9)
	assert.Greater(t, CFc(41), 1.0)
}

func TestCFcAboveThreshold(t *testing.T) {
	// Fc = 75: x = 35
	want := 1 + 0.004*35 + 0.005*35*35/math.Pow(1+0.004*35, 2)
	assert.InDelta(t, want, CFc(75), 1e-12)
}

func TestNaBranches(t *testing.T) {
	t.Run("gravel", func(t *testing.T) {
		na, cfc := Na(10, 4, 80)
		assert.Equal(t, 1.0, cfc)
		assert.InDelta(t, (1-0.36*math.Log10(2))*10, na, 1e-12)
	})
	t.Run("gravel at threshold", func(t *testing.T) {
		na, cfc := Na(10, 2, 80)
		assert.Equal(t, 1.0, cfc)
		assert.InDelta(t, 10.0, na, 1e-12)
	})
	t.Run("clean sand", func(t *testing.T) {
		na, cfc := Na(10, 0.3, 15)
		assert.Equal(t, 1.0, cfc)
		assert.InDelta(t, 10.0, na, 1e-12)
	})
	t.Run("fines", func(t *testing.T) {
		na, cfc := Na(10, 0.025, 75)
		assert.InDelta(t, CFc(75), cfc, 1e-12)
		assert.InDelta(t, cfc*(10+2.47)-2.47, na, 1e-12)
	})
}

func TestRLBranches(t *testing.T) {
	low := RL(10, 12)
	assert.InDelta(t, 0.0882*math.Sqrt((0.85*12+2.1)/1.7), low, 1e-12)

	high := RL(20, 25)
	assert.InDelta(t, 0.0882*math.Sqrt(25/1.7)+1.6e-6*math.Pow(6, 4.5), high, 1e-12)
}

func TestRdAndPorePressure(t *testing.T) {
	assert.InDelta(t, 0.895, Rd(7), 1e-12)
	assert.Less(t, Rd(70), 0.0)

	assert.Equal(t, 0.0, PorePressure(1.5, 2.0))
	assert.InDelta(t, 5*GammaW, PorePressure(7, 2), 1e-12)
}

func TestSeismicLoadScalesWithKhgl(t *testing.T) {
	l1 := SeismicLoad(0.9, 0.1, 120, 80)
	l2 := SeismicLoad(0.9, 0.2, 120, 80)
	assert.InDelta(t, 2*l1, l2, 1e-12)
}

func TestN1(t *testing.T) {
	assert.InDelta(t, 10.0, N1(10, 100), 1e-12)
}

func TestCw(t *testing.T) {
	assert.Equal(t, 1.0, Cw())
}
