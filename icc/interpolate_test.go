package icc

import (
	"testing"

	"github.com/blueshiftd/blueshift/curve"
)

func identityTable(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

func flatTable(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestInterpolateZeroAlphaIsNoOp(t *testing.T) {
	e := curve.NewEngine(8, curve.DefaultOutputSize)
	before := e.Working.Clone()
	p := &Profile{Tables: [3][]float64{flatTable(8, 0), flatTable(8, 0), flatTable(8, 0)}}
	Interpolate([]*Profile{p}, e, 0, 0)
	for i := range before.Red {
		if e.Working.Red[i] != before.Red[i] {
			t.Errorf("alpha 0 should leave the working curve unchanged, got %v want %v", e.Working.Red[i], before.Red[i])
		}
	}
}

func TestInterpolateSingleProfileFullAlphaAppliesDirectly(t *testing.T) {
	e := curve.NewEngine(8, curve.DefaultOutputSize)
	p := &Profile{Tables: [3][]float64{flatTable(8, 0.5), flatTable(8, 0.5), flatTable(8, 0.5)}}
	Interpolate([]*Profile{p}, e, 0, 1)
	for _, v := range e.Working.Red {
		if v != 0.5 {
			t.Errorf("got %v, want 0.5 after a fully-applied flat profile", v)
		}
	}
}

func TestInterpolateBlendsBetweenTwoProfiles(t *testing.T) {
	e := curve.NewEngine(8, curve.DefaultOutputSize)
	low := &Profile{Tables: [3][]float64{flatTable(8, 0.2), flatTable(8, 0.2), flatTable(8, 0.2)}}
	high := &Profile{Tables: [3][]float64{flatTable(8, 0.8), flatTable(8, 0.8), flatTable(8, 0.8)}}
	Interpolate([]*Profile{low, high}, e, 0.5, 1)
	for _, v := range e.Working.Red {
		if diff := v - 0.5; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("got %v, want 0.5 halfway between a 0.2 and 0.8 flat profile", v)
		}
	}
}

func TestInterpolateWrapsIndexModulo(t *testing.T) {
	e := curve.NewEngine(8, curve.DefaultOutputSize)
	a := &Profile{Tables: [3][]float64{flatTable(8, 0.1), flatTable(8, 0.1), flatTable(8, 0.1)}}
	b := &Profile{Tables: [3][]float64{flatTable(8, 0.9), flatTable(8, 0.9), flatTable(8, 0.9)}}
	// t=1 selects profiles[1 % 2]=b and profiles[2 % 2]=a, wrapping around.
	Interpolate([]*Profile{a, b}, e, 1, 1)
	for _, v := range e.Working.Red {
		if v != 0.9 {
			t.Errorf("got %v, want 0.9 at an exact integer timepoint", v)
		}
	}
}
