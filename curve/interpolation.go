/*
NAME
  interpolation.go

DESCRIPTION
  interpolation.go implements the ramp resize strategies needed for
  coercing a ramp of size S onto a CRTC's native size T>S:
  linear, cubic Hermite (adjustable tension), monotone cubic
  (Fritsch-Carlson) and a Vandermonde polynomial fallback for small S, plus
  a halo-elimination post-process that can follow any of the non-linear
  strategies.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

package curve

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Strategy selects a ramp resize algorithm.
type Strategy int

const (
	// Linear resizes by straight-line interpolation between adjacent
	// source stops.
	Linear Strategy = iota
	// CubicHermite resizes with a cardinal cubic Hermite spline whose
	// tangent magnitude is controlled by a tension parameter.
	CubicHermite
	// MonotoneCubic resizes with a Fritsch-Carlson monotone cubic
	// Hermite spline, which never overshoots or introduces false local
	// extrema between source stops.
	MonotoneCubic
	// Polynomial resizes by fitting a single polynomial of degree S-1
	// through every source stop via a Vandermonde solve. Intended only
	// for small S; ErrPolynomialTooLarge guards against runaway fits.
	Polynomial
)

// ErrPolynomialTooLarge is returned by Resize when asked to fit a
// Polynomial strategy to more source stops than maxPolynomialDegree
// supports, since a high-degree Vandermonde fit is both numerically
// unstable and useless as a CRTC coercion strategy (CRTC sizes coerce
// small ramps up, not the reverse).
var ErrPolynomialTooLarge = errors.New("curve: polynomial strategy requires a small source ramp")

const maxPolynomialDegree = 32

// Resize maps the S stops of src onto a new ramp of length target,
// according to strategy. When target <= len(src), src is returned
// unchanged (resize strategies in this package only ever upsample a
// ramp of size S to a CRTC's native size T > S).
func Resize(src []float64, target int, strategy Strategy, tension float64) ([]float64, error) {
	s := len(src)
	if target <= s || s == 0 {
		return append([]float64(nil), src...), nil
	}
	if s == 1 {
		out := make([]float64, target)
		for i := range out {
			out[i] = src[0]
		}
		return out, nil
	}

	var out []float64
	var err error
	switch strategy {
	case Linear:
		out = resizeLinear(src, target)
	case CubicHermite:
		out = resizeCubicHermite(src, target, tension)
	case MonotoneCubic:
		out = resizeMonotoneCubic(src, target, tension)
	case Polynomial:
		out, err = resizePolynomial(src, target)
	default:
		out = resizeLinear(src, target)
	}
	if err != nil {
		return nil, err
	}
	if strategy != Linear {
		haloEliminate(src, out)
	}
	return out, nil
}

// sourcePosition maps output index i in [0, target-1] to a continuous
// source-domain position in [0, s-1].
func sourcePosition(i, target, s int) float64 {
	return float64(i) * float64(s-1) / float64(target-1)
}

func resizeLinear(src []float64, target int) []float64 {
	s := len(src)
	out := make([]float64, target)
	for i := range out {
		t := sourcePosition(i, target, s)
		k := int(t)
		if k >= s-1 {
			out[i] = src[s-1]
			continue
		}
		w := t - float64(k)
		out[i] = src[k]*(1-w) + src[k+1]*w
	}
	return out
}

// hermiteTangents computes the cubic Hermite tangent at every source
// stop using centred differences, with one-sided differences at the two
// endpoints.
func hermiteTangents(src []float64) []float64 {
	s := len(src)
	m := make([]float64, s)
	m[0] = src[1] - src[0]
	m[s-1] = src[s-1] - src[s-2]
	for k := 1; k < s-1; k++ {
		m[k] = (src[k+1] - src[k-1]) / 2
	}
	return m
}

func resizeCubicHermite(src []float64, target int, tension float64) []float64 {
	s := len(src)
	m := hermiteTangents(src)
	scale := 1 - tension
	out := make([]float64, target)
	for i := range out {
		t := sourcePosition(i, target, s)
		k := int(t)
		if k >= s-1 {
			out[i] = src[s-1]
			continue
		}
		w := t - float64(k)
		out[i] = hermiteEval(src[k], src[k+1], m[k]*scale, m[k+1]*scale, w)
	}
	return out
}

// hermiteEval evaluates the cubic Hermite spline over [p0, p1] with
// tangents m0, m1 at parameter w in [0, 1], using the standard basis
// functions h00=1-h01, h10, h01, h11.
func hermiteEval(p0, p1, m0, m1, w float64) float64 {
	h10 := w * (1 - w) * (1 - w)
	h01 := w * w * (3 - 2*w)
	h11 := w * w * (w - 1)
	h00 := 1 - h01
	return p0*h00 + m0*h10 + p1*h01 + m1*h11
}

// monotoneTangents computes Fritsch-Carlson tangents that guarantee the
// resulting spline is monotone on every interval where the source data is
// monotone: initial tangents are averaged secants, then each interval's
// (alpha, beta) pair is tested for a local extremum (current alpha, or
// the PREVIOUS interval's beta, negative -> zero this tangent) and for
// overshoot (alpha^2+beta^2 > 9 -> rescale both tangents toward the circle
// of radius 3). The asymmetric alpha/previous-beta check (rather than
// alpha/beta of the same interval) matches interpolation.py exactly.
func monotoneTangents(src []float64) []float64 {
	s := len(src)
	d := make([]float64, s-1)
	for k := 0; k < s-1; k++ {
		d[k] = src[k+1] - src[k]
	}
	m := make([]float64, s)
	m[0] = d[0]
	m[s-1] = d[s-2]
	for k := 1; k < s-1; k++ {
		m[k] = (d[k-1] + d[k]) / 2
	}
	betaLast := 0.0
	for k := 0; k < s-1; k++ {
		if d[k] == 0 {
			m[k] = 0
			betaLast = -1
			continue
		}
		alpha := m[k] / d[k]
		beta := m[k+1] / d[k]
		if alpha < 0 || betaLast < 0 {
			m[k] = 0
			beta = -1
		} else if h := alpha*alpha + beta*beta; h > 9 {
			tau := 3 / math.Sqrt(h)
			m[k] = tau * alpha * d[k]
			m[k+1] = tau * beta * d[k]
		}
		betaLast = beta
	}
	return m
}

func resizeMonotoneCubic(src []float64, target int, tension float64) []float64 {
	s := len(src)
	m := monotoneTangents(src)
	scale := 1 - tension
	out := make([]float64, target)
	for i := range out {
		t := sourcePosition(i, target, s)
		k := int(t)
		if k >= s-1 {
			out[i] = src[s-1]
			continue
		}
		w := t - float64(k)
		out[i] = hermiteEval(src[k], src[k+1], m[k]*scale, m[k+1]*scale, w)
	}
	return out
}

// resizePolynomial fits the unique degree-(s-1) polynomial through every
// source stop (treated as evenly spaced control points) via a Vandermonde
// solve, then evaluates it at every output position.
func resizePolynomial(src []float64, target int) ([]float64, error) {
	s := len(src)
	if s > maxPolynomialDegree {
		return nil, errors.Wrapf(ErrPolynomialTooLarge, "source length %d exceeds %d", s, maxPolynomialDegree)
	}
	v := mat.NewDense(s, s, nil)
	for row := 0; row < s; row++ {
		x := float64(row)
		p := 1.0
		for col := 0; col < s; col++ {
			v.Set(row, col, p)
			p *= x
		}
	}
	y := mat.NewVecDense(s, src)
	coeffs := mat.NewVecDense(s, nil)
	if err := coeffs.SolveVec(v, y); err != nil {
		return nil, errors.Wrap(err, "curve: polynomial resize")
	}
	out := make([]float64, target)
	for i := range out {
		x := sourcePosition(i, target, s)
		acc, p := 0.0, 1.0
		for col := 0; col < s; col++ {
			acc += coeffs.AtVec(col) * p
			p *= x
		}
		out[i] = acc
	}
	return out, nil
}

// haloEliminate re-examines each source interval's corresponding
// sub-range of a non-linear resize and replaces it with a linear
// interpolant wherever the interpolated values are not monotone in the
// direction the source interval implies (or are not constant, when the
// source interval itself is flat). This prevents the overshoot "halos"
// non-linear resize strategies can otherwise introduce near a sharp
// change in the source ramp.
func haloEliminate(src []float64, out []float64) {
	s, target := len(src), len(out)
	for k := 0; k < s-1; k++ {
		lo := int(math.Round(float64(k) * float64(target-1) / float64(s-1)))
		hi := int(math.Round(float64(k+1) * float64(target-1) / float64(s-1)))
		if hi <= lo {
			continue
		}
		y0, y1 := src[k], src[k+1]
		violated := false
		switch {
		case y0 == y1:
			for j := lo; j <= hi; j++ {
				if out[j] != y0 {
					violated = true
					break
				}
			}
		case y1 > y0:
			for j := lo + 1; j <= hi; j++ {
				if out[j] < out[j-1] {
					violated = true
					break
				}
			}
		default:
			for j := lo + 1; j <= hi; j++ {
				if out[j] > out[j-1] {
					violated = true
					break
				}
			}
		}
		if !violated {
			continue
		}
		if y0 == y1 {
			for j := lo; j <= hi; j++ {
				out[j] = y0
			}
			continue
		}
		span := float64(hi - lo)
		for j := lo; j <= hi; j++ {
			w := float64(j-lo) / span
			out[j] = y0*(1-w) + y1*w
		}
	}
}
