/*
NAME
  interpolate.go

DESCRIPTION
  interpolate.go implements cross-fading between multiple ICC profiles
  over a timepoint axis plus a filter strength, the counterpart of
  original_source/src/icc.py's make_icc_interpolation: scheduler.apply's
  dayness and pureness weights can drive a sequence of profiles (dawn,
  day, dusk, night, ...) the same way they drive gamma and temperature.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

package icc

import (
	"math"

	"github.com/blueshiftd/blueshift/curve"
)

// Interpolate applies profiles[⌊t⌋] and profiles[⌊t⌋+1] (indices taken
// modulo len(profiles)) blended by t's fractional part, then blends
// that result against a no-op by alpha: alpha 1 is the profile(s)
// fully applied, alpha 0 leaves e's working curves untouched. t is
// normally the [0, len(profiles)) position along a day/night sequence
// of profiles; alpha is normally the same pureness/fade weight
// scheduler.Scheduler threads through every other adjustment.
//
// It samples each profile against e's current working curves as the
// lookup index (matching Profile.Apply's table-lookup convention)
// without disturbing those curves for any caller who hasn't already
// applied other adjustments this tick.
func Interpolate(profiles []*Profile, e *curve.Engine, t, alpha float64) {
	if len(profiles) == 0 {
		return
	}
	idx0 := int(math.Floor(t))
	pro0 := profiles[mod(idx0, len(profiles))]
	pro1 := profiles[mod(idx0+1, len(profiles))]
	frac := t - math.Floor(t)

	if pro0 == pro1 && alpha == 1 {
		pro0.Apply(e)
		return
	}

	saved := e.Working.Clone()

	e.StartOver()
	pro0.Apply(e)
	r0, g0, b0 := cloneFloats(e.Working.Red), cloneFloats(e.Working.Green), cloneFloats(e.Working.Blue)

	var r, g, b []float64
	n := float64(len(r0) - 1)
	if pro0 == pro1 {
		r, g, b = blendIdentity(r0, alpha, n), blendIdentity(g0, alpha, n), blendIdentity(b0, alpha, n)
	} else {
		e.StartOver()
		pro1.Apply(e)
		r1, g1, b1 := e.Working.Red, e.Working.Green, e.Working.Blue
		r = blendPair(r0, r1, frac, alpha, n)
		g = blendPair(g0, g1, frac, alpha, n)
		b = blendPair(b0, b1, frac, alpha, n)
	}

	e.Working = saved
	tmp := &Profile{Tables: [3][]float64{r, g, b}}
	tmp.Apply(e)
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func cloneFloats(v []float64) []float64 {
	return append([]float64(nil), v...)
}

// blendIdentity blends a single sampled profile's table against the
// identity ramp i/n by alpha: original_source/src/icc.py's
// "r = [v*a + i*(1-a)/n for i, v in enumerate(r0)]" branch, taken when
// the timepoint falls on a single profile rather than between two.
func blendIdentity(v0 []float64, alpha, n float64) []float64 {
	out := make([]float64, len(v0))
	for i, v := range v0 {
		out[i] = v*alpha + float64(i)*(1-alpha)/n
	}
	return out
}

// blendPair blends two sampled profiles' tables by frac (the timepoint's
// fractional part), then that result against the identity ramp by
// alpha, matching original_source/src/icc.py's
// "interpol = lambda i, v0, v1: (v0*(1-t) + v1*t)*a + i*(1-a)/n".
func blendPair(v0, v1 []float64, frac, alpha, n float64) []float64 {
	out := make([]float64, len(v0))
	for i := range v0 {
		out[i] = (v0[i]*(1-frac)+v1[i]*frac)*alpha + float64(i)*(1-alpha)/n
	}
	return out
}
