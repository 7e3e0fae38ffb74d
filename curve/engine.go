/*
NAME
  engine.go

DESCRIPTION
  engine.go implements the process-wide ramp engine: a mutable working
  Ramps triple plus every colour operator (brightness,
  contrast, gamma, sigmoid, inversion, limits, manipulate, temperature,
  decimation and reset). Operators mutate Engine.Working in place, mirroring
  the original configuration-script interpreter's global-curve-state model.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

package curve

import (
	"math"

	"github.com/blueshiftd/blueshift/blackbody"
	"github.com/blueshiftd/blueshift/colour"
)

// DefaultSize is the number of stops the working ramp triple carries by
// default (matches the original configuration-script interpreter's
// i_size).
const DefaultSize = 256

// DefaultOutputSize is the default depth the working triple is eventually
// rescaled to before being written to a CRTC (matches the original
// configuration-script interpreter's o_size, a 16-bit ramp).
const DefaultOutputSize = 65536

// Channel is an optional per-channel parameter: nil means "default from
// the preceding channel" (green defaults to red, blue defaults to
// green overload rule).
type Channel = *float64

// F returns a Channel pointing at v, for call sites that want to set a
// channel explicitly: curve.RGBBrightness(1, curve.F(0.5), nil).
func F(v float64) Channel { return &v }

// BoolChannel is the boolean analogue of Channel, used by operators with a
// per-channel on/off flag (negative, invert, linearise, clip, ...).
type BoolChannel = *bool

// B returns a BoolChannel pointing at v.
func B(v bool) BoolChannel { return &v }

func resolveRGB(r float64, g, b Channel) (rv, gv, bv float64) {
	rv = r
	gv = rv
	if g != nil {
		gv = *g
	}
	bv = gv
	if b != nil {
		bv = *b
	}
	return
}

func resolveBoolRGB(r bool, g, b BoolChannel) (rv, gv, bv bool) {
	rv = r
	gv = rv
	if g != nil {
		gv = *g
	}
	bv = gv
	if b != nil {
		bv = *b
	}
	return
}

// ChannelMapper transforms a single stop value; used by Manipulate and
// CIEManipulate to apply an arbitrary per-channel function (an ICC VCGT
// table lookup, for instance).
type ChannelMapper func(v float64) float64

// Engine is the process-wide ramp engine state: a working Ramps triple
// that every operator mutates in place, plus the output size it will
// eventually be rescaled to.
type Engine struct {
	Working    Ramps
	OutputSize int
	Clipping   bool
}

// NewEngine returns an Engine with an identity working triple of the given
// size at float64 depth, matching the original interpreter's startup
// state.
func NewEngine(size, outputSize int) *Engine {
	return &Engine{
		Working:    IdentityRamps(size, DepthFloat64),
		OutputSize: outputSize,
		Clipping:   true,
	}
}

// StartOver resets the working triple to its identity, discarding every
// operator applied so far.
func (e *Engine) StartOver() {
	e.Working = IdentityRamps(len(e.Working.Red), e.Working.Depth)
}

// forEachLevel applies fn to each of the three working channels paired with
// its resolved level, skipping channels whose level equals identity.
func (e *Engine) forEachLevel(rv, gv, bv, identity float64, fn func(curve []float64, level float64)) {
	pairs := [3]struct {
		curve []float64
		level float64
	}{
		{e.Working.Red, rv},
		{e.Working.Green, gv},
		{e.Working.Blue, bv},
	}
	for _, p := range pairs {
		if p.level == identity {
			continue
		}
		fn(p.curve, p.level)
	}
}

// RGBBrightness scales each channel's stops by a level directly in sRGB
// space: curve[i] *= level. A level of 1 leaves a channel unchanged.
func (e *Engine) RGBBrightness(r float64, g, b Channel) {
	rv, gv, bv := resolveRGB(r, g, b)
	e.forEachLevel(rv, gv, bv, 1, func(curve []float64, level float64) {
		for i := range curve {
			curve[i] *= level
		}
	})
}

// RGBContrast scales each channel's stops about the midpoint 0.5:
// curve[i] = (curve[i]-0.5)*level + 0.5.
func (e *Engine) RGBContrast(r float64, g, b Channel) {
	rv, gv, bv := resolveRGB(r, g, b)
	e.forEachLevel(rv, gv, bv, 1, func(curve []float64, level float64) {
		for i := range curve {
			curve[i] = (curve[i]-0.5)*level + 0.5
		}
	})
}

// cieEachStop converts the (R,G,B) stop at index i to xyY, lets newY
// compute the transformed luminance for each of red/green/blue
// independently from that shared (x, y), converts each back to sRGB, and
// writes the matching output component to each channel. This always
// performs the "independent per channel" computation; when rv==gv==bv the
// three conversions necessarily agree.
func cieEachStop(R, G, B []float64, newY func(y, level float64) float64, rv, gv, bv float64) {
	for i := range R {
		xyy := colour.SRGBToXYY(colour.RGB{R: R[i], G: G[i], B: B[i]})
		rOut := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: newY(xyy.YY, rv)})
		gOut := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: newY(xyy.YY, gv)})
		bOut := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: newY(xyy.YY, bv)})
		R[i], G[i], B[i] = rOut.R, gOut.G, bOut.B
	}
}

// CIEBrightness is RGBBrightness applied in CIE xyY space: each channel's
// luminance Y is scaled by its level, holding chromaticity fixed.
func (e *Engine) CIEBrightness(r float64, g, b Channel) {
	rv, gv, bv := resolveRGB(r, g, b)
	if rv == 1 && gv == 1 && bv == 1 {
		return
	}
	cieEachStop(e.Working.Red, e.Working.Green, e.Working.Blue,
		func(y, level float64) float64 { return y * level }, rv, gv, bv)
}

// CIEContrast is RGBContrast applied in CIE xyY space about Y=0.5.
func (e *Engine) CIEContrast(r float64, g, b Channel) {
	rv, gv, bv := resolveRGB(r, g, b)
	if rv == 1 && gv == 1 && bv == 1 {
		return
	}
	cieEachStop(e.Working.Red, e.Working.Green, e.Working.Blue,
		func(y, level float64) float64 { return (y-0.5)*level + 0.5 }, rv, gv, bv)
}

// Gamma raises each channel's stops to the power 1/level:
// curve[i] = curve[i]^(1/level). Non-positive stops are left unchanged,
// since a negative base raised to a fractional power is undefined.
func (e *Engine) Gamma(r float64, g, b Channel) {
	rv, gv, bv := resolveRGB(r, g, b)
	e.forEachLevel(rv, gv, bv, 1, func(curve []float64, level float64) {
		inv := 1 / level
		for i, v := range curve {
			if v <= 0 {
				continue
			}
			curve[i] = math.Pow(v, inv)
		}
	})
}

// Sigmoid applies a logistic contrast curve of the given strength to each
// channel: curve[i] = 0.5 - ln(1/curve[i] - 1)/level. Stops at or outside
// (0, 1) are left unchanged since the logit is undefined there.
func (e *Engine) Sigmoid(r float64, g, b Channel) {
	rv, gv, bv := resolveRGB(r, g, b)
	e.forEachLevel(rv, gv, bv, 0, func(curve []float64, level float64) {
		for i, v := range curve {
			if v <= 0 || v >= 1 {
				continue
			}
			nv := 0.5 - math.Log(1/v-1)/level
			if math.IsNaN(nv) || math.IsInf(nv, 0) {
				continue
			}
			curve[i] = nv
		}
	})
}

// Negative reverses the order of each enabled channel's stops in place,
// without changing any stop's value.
func (e *Engine) Negative(r bool, g, b BoolChannel) {
	rv, gv, bv := resolveBoolRGB(r, g, b)
	reverse := func(enabled bool, curve []float64) {
		if !enabled {
			return
		}
		for i, j := 0, len(curve)-1; i < j; i, j = i+1, j-1 {
			curve[i], curve[j] = curve[j], curve[i]
		}
	}
	reverse(rv, e.Working.Red)
	reverse(gv, e.Working.Green)
	reverse(bv, e.Working.Blue)
}

// RGBInvert replaces each enabled channel's stops with their complement
// about the channel's own maximum: curve[i] = max - curve[i].
func (e *Engine) RGBInvert(r bool, g, b BoolChannel) {
	rv, gv, bv := resolveBoolRGB(r, g, b)
	max := Maximum(e.Working.Depth)
	apply := func(enabled bool, curve []float64) {
		if !enabled {
			return
		}
		for i, v := range curve {
			curve[i] = max - v
		}
	}
	apply(rv, e.Working.Red)
	apply(gv, e.Working.Green)
	apply(bv, e.Working.Blue)
}

// CIEInvert replaces each enabled channel's luminance Y with 1-Y, holding
// chromaticity fixed, at every stop.
func (e *Engine) CIEInvert(r bool, g, b BoolChannel) {
	rv, gv, bv := resolveBoolRGB(r, g, b)
	if !rv && !gv && !bv {
		return
	}
	R, G, B := e.Working.Red, e.Working.Green, e.Working.Blue
	for i := range R {
		xyy := colour.SRGBToXYY(colour.RGB{R: R[i], G: G[i], B: B[i]})
		rOut := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: 1 - xyy.YY})
		gOut := rOut
		bOut := rOut
		out := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: xyy.YY})
		if !rv {
			rOut = out
		}
		if !gv {
			gOut = out
		}
		if !bv {
			bOut = out
		}
		R[i], G[i], B[i] = rOut.R, gOut.G, bOut.B
	}
}

// RGBLimits rescales each channel's stops from [0, max] into [min, max]:
// curve[i] = curve[i]*(max-min) + min, where min and max are fractions of
// the channel's own maximum.
func (e *Engine) RGBLimits(min, max float64, opts *LimitOptions) {
	minR, minG, minB := min, min, min
	maxR, maxG, maxB := max, max, max
	if opts != nil {
		minR, minG, minB = resolveRGB(min, opts.MinG, opts.MinB)
		maxR, maxG, maxB = resolveRGB(max, opts.MaxG, opts.MaxB)
	}
	apply := func(curve []float64, lo, hi float64) {
		if lo == 0 && hi == 1 {
			return
		}
		for i, v := range curve {
			curve[i] = v*(hi-lo) + lo
		}
	}
	apply(e.Working.Red, minR, maxR)
	apply(e.Working.Green, minG, maxG)
	apply(e.Working.Blue, minB, maxB)
}

// LimitOptions carries the optional green/blue overrides for RGBLimits and
// CIELimits, since each call takes two base parameters (min, max) rather
// than one.
type LimitOptions struct {
	MinG, MinB Channel
	MaxG, MaxB Channel
}

// CIELimits is RGBLimits applied to luminance Y in CIE xyY space rather
// than directly to the sRGB stop.
func (e *Engine) CIELimits(min, max float64, opts *LimitOptions) {
	minR, minG, minB := min, min, min
	maxR, maxG, maxB := max, max, max
	if opts != nil {
		minR, minG, minB = resolveRGB(min, opts.MinG, opts.MinB)
		maxR, maxG, maxB = resolveRGB(max, opts.MaxG, opts.MaxB)
	}
	if minR == 0 && maxR == 1 && minG == 0 && maxG == 1 && minB == 0 && maxB == 1 {
		return
	}
	R, G, B := e.Working.Red, e.Working.Green, e.Working.Blue
	for i := range R {
		xyy := colour.SRGBToXYY(colour.RGB{R: R[i], G: G[i], B: B[i]})
		rOut := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: xyy.YY*(maxR-minR) + minR})
		gOut := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: xyy.YY*(maxG-minG) + minG})
		bOut := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: xyy.YY*(maxB-minB) + minB})
		R[i], G[i], B[i] = rOut.R, gOut.G, bOut.B
	}
}

// Linearise converts each enabled channel's stops from sRGB-encoded to
// linear light.
func (e *Engine) Linearise(r bool, g, b BoolChannel) {
	rv, gv, bv := resolveBoolRGB(r, g, b)
	apply := func(enabled bool, curve []float64) {
		if !enabled {
			return
		}
		for i, v := range curve {
			curve[i] = colour.StandardToLinear(v)
		}
	}
	apply(rv, e.Working.Red)
	apply(gv, e.Working.Green)
	apply(bv, e.Working.Blue)
}

// Standardise is the inverse of Linearise: it converts each enabled
// channel's stops from linear light back to sRGB encoding.
func (e *Engine) Standardise(r bool, g, b BoolChannel) {
	rv, gv, bv := resolveBoolRGB(r, g, b)
	apply := func(enabled bool, curve []float64) {
		if !enabled {
			return
		}
		for i, v := range curve {
			curve[i] = colour.LinearToStandard(v)
		}
	}
	apply(rv, e.Working.Red)
	apply(gv, e.Working.Green)
	apply(bv, e.Working.Blue)
}

// Manipulate applies an arbitrary per-stop mapping function to each
// enabled channel directly in sRGB space. A nil mapper leaves that
// channel unchanged.
func (e *Engine) Manipulate(r, g, b ChannelMapper) {
	apply := func(fn ChannelMapper, curve []float64) {
		if fn == nil {
			return
		}
		for i, v := range curve {
			curve[i] = fn(v)
		}
	}
	apply(r, e.Working.Red)
	apply(g, e.Working.Green)
	apply(b, e.Working.Blue)
}

// CIEManipulate is Manipulate applied to each stop's luminance Y in CIE
// xyY space, holding chromaticity fixed.
func (e *Engine) CIEManipulate(r, g, b ChannelMapper) {
	if r == nil && g == nil && b == nil {
		return
	}
	ident := func(v float64) float64 { return v }
	if r == nil {
		r = ident
	}
	if g == nil {
		g = ident
	}
	if b == nil {
		b = ident
	}
	R, G, B := e.Working.Red, e.Working.Green, e.Working.Blue
	for i := range R {
		xyy := colour.SRGBToXYY(colour.RGB{R: R[i], G: G[i], B: B[i]})
		rOut := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: r(xyy.YY)})
		gOut := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: g(xyy.YY)})
		bOut := colour.XYYToSRGB(colour.XYY{X: xyy.X, Y: xyy.Y, YY: b(xyy.YY)})
		R[i], G[i], B[i] = rOut.R, gOut.G, bOut.B
	}
}

// ClipBelow clamps every stop of every channel to a minimum of 0.
func (e *Engine) ClipBelow() {
	clip := func(curve []float64) {
		for i, v := range curve {
			if v < 0 {
				curve[i] = 0
			}
		}
	}
	clip(e.Working.Red)
	clip(e.Working.Green)
	clip(e.Working.Blue)
}

// ClipAbove clamps every stop of every channel to the channel's maximum.
func (e *Engine) ClipAbove() {
	max := Maximum(e.Working.Depth)
	clip := func(curve []float64) {
		for i, v := range curve {
			if v > max {
				curve[i] = max
			}
		}
	}
	clip(e.Working.Red)
	clip(e.Working.Green)
	clip(e.Working.Blue)
}

// Clip is ClipBelow followed by ClipAbove.
func (e *Engine) Clip() {
	e.ClipBelow()
	e.ClipAbove()
}

// LowerResolution emulates the banding of a lower colour resolution by
// nearest-neighbour-quantising both the stop index axis (to xColours
// effective resolution points) and the stop value axis (to yColours
// effective levels), then re-expanding back to the working triple's
// original length. A zero argument defaults to the working triple's
// length (xColours) or to e.OutputSize's maximum (yColours), matching the
// original interpreter's rx=i_size, ry=o_size defaults.
func (e *Engine) LowerResolution(xColours, yColours int) {
	if xColours <= 0 {
		xColours = len(e.Working.Red)
	}
	if yColours <= 0 {
		yColours = int(Maximum(e.Working.Depth)) + 1
		if e.Working.Depth < 0 {
			yColours = e.OutputSize
		}
	}
	apply := func(curve []float64) {
		n := len(curve)
		out := make([]float64, n)
		xSteps, ySteps := xColours-1, yColours-1
		if xSteps <= 0 || ySteps <= 0 {
			copy(out, curve)
		} else {
			for i := 0; i < n; i++ {
				x := i * xColours / n
				x = int(math.Round(float64(x*(n-1)) / float64(xSteps)))
				if x >= n {
					x = n - 1
				}
				y := int(curve[x]*float64(ySteps) + 0.5)
				out[i] = float64(y) / float64(ySteps)
			}
		}
		copy(curve, out)
	}
	apply(e.Working.Red)
	apply(e.Working.Green)
	apply(e.Working.Blue)
}

// RGBTemperature applies a blackbody whitepoint to the working triple in
// sRGB space: each stop is multiplied component-wise by the whitepoint.
// A temperature of 6500 K is a short-circuit no-op, matching the
// algorithms' shared D65-normalised convention.
func (e *Engine) RGBTemperature(temperature float64, alg blackbody.Algorithm) error {
	if temperature == 6500 {
		return nil
	}
	wp, err := alg(temperature)
	if err != nil {
		return err
	}
	R, G, B := e.Working.Red, e.Working.Green, e.Working.Blue
	for i := range R {
		R[i] *= wp.R
		G[i] *= wp.G
		B[i] *= wp.B
	}
	return nil
}

// CIETemperature applies a blackbody whitepoint in CIE xyY space: it is
// CIEBrightness with the whitepoint's red, green and blue components as
// the three channel levels. A temperature of 6500 K is a no-op.
func (e *Engine) CIETemperature(temperature float64, alg blackbody.Algorithm) error {
	if temperature == 6500 {
		return nil
	}
	wp, err := alg(temperature)
	if err != nil {
		return err
	}
	e.CIEBrightness(wp.R, F(wp.G), F(wp.B))
	return nil
}
