/*
NAME
  colour.go

DESCRIPTION
  colour.go implements the pure colour-space conversions used by the ramp
  engine: sRGB <-> linear RGB, CIE xyY <-> CIE XYZ, linear RGB <-> CIE XYZ
  and CIE XYZ <-> CIE L*a*b*, plus the delta-E distance used to compare two
  sRGB colours.

  All functions here are pure: none mutate package state and none read
  configuration. Ramp-mutating callers live in package curve.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package colour implements device-independent colour space conversions:
// sRGB, linear RGB, CIE XYZ, CIE xyY and CIE L*a*b*.
package colour

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// RGB is a triple of channel values. Depending on context it may hold sRGB,
// linear RGB or normalised [0,1] samples.
type RGB struct {
	R, G, B float64
}

// XYY is a CIE xyY triple: chromaticity (x, y) and luminance Y.
type XYY struct {
	X, Y, YY float64
}

// XYZ is a CIE XYZ tristimulus triple.
type XYZ struct {
	X, Y, Z float64
}

// Lab is a CIE L*a*b* triple.
type Lab struct {
	L, A, B float64
}

// sRGB companding constants, per the IEC 61966-2-1 piecewise transfer
// function.
const (
	srgbLinearThreshold   = 0.0031308
	srgbStandardThreshold = 0.04045
	srgbGamma             = 2.4
	srgbOffset            = 0.055
	srgbScale             = 12.92
)

// StandardToLinear converts one gamma-encoded sRGB channel value in [0,1] to
// its linear-light equivalent.
func StandardToLinear(c float64) float64 {
	if c <= srgbStandardThreshold {
		return c / srgbScale
	}
	return math.Pow((c+srgbOffset)/(1+srgbOffset), srgbGamma)
}

// LinearToStandard converts one linear-light channel value in [0,1] to its
// gamma-encoded sRGB equivalent.
func LinearToStandard(c float64) float64 {
	if c <= srgbLinearThreshold {
		return c * srgbScale
	}
	return (1+srgbOffset)*math.Pow(c, 1/srgbGamma) - srgbOffset
}

// SRGBToLinear applies StandardToLinear to each channel.
func SRGBToLinear(c RGB) RGB {
	return RGB{StandardToLinear(c.R), StandardToLinear(c.G), StandardToLinear(c.B)}
}

// LinearToSRGB applies LinearToStandard to each channel.
func LinearToSRGB(c RGB) RGB {
	return RGB{LinearToStandard(c.R), LinearToStandard(c.G), LinearToStandard(c.B)}
}

// blackPointXYY is the chromaticity convention used whenever a colour's XYZ
// sum is zero and x, y are therefore undefined ("sRGB -> CIE xyY:
// black point maps to (0.312857, 0.328993, 0)").
var blackPointXYY = XYY{X: 0.312857, Y: 0.328993, YY: 0}

// XYZToXYY converts a CIE XYZ triple to CIE xyY. When X+Y+Z is zero the
// result is the black-point convention rather than a division by zero.
func XYZToXYY(c XYZ) XYY {
	sum := c.X + c.Y + c.Z
	if sum == 0 {
		return XYY{X: blackPointXYY.X, Y: blackPointXYY.Y, YY: 0}
	}
	return XYY{X: c.X / sum, Y: c.Y / sum, YY: c.Y}
}

// XYYToXYZ converts a CIE xyY triple to CIE XYZ. When y is zero the result
// is the zero vector.
func XYYToXYZ(c XYY) XYZ {
	if c.Y == 0 {
		return XYZ{}
	}
	return XYZ{
		X: c.YY * c.X / c.Y,
		Y: c.YY,
		Z: c.YY * (1 - c.X - c.Y) / c.Y,
	}
}

// linearToXYZMatrix and xyzToLinearMatrix are the sRGB <-> CIE XYZ (D65)
// transform matrices, expressed as gonum dense matrices so the 3x3
// multiplications below go through the same linear-algebra path the rest
// of the module pack uses for numeric kernels.
var (
	linearToXYZMatrix = mat.NewDense(3, 3, []float64{
		0.4124564, 0.3575761, 0.1804375,
		0.2126729, 0.7151522, 0.0721750,
		0.0193339, 0.1191920, 0.9503041,
	})
	xyzToLinearMatrix = mat.NewDense(3, 3, []float64{
		3.240450, -1.537140, -0.4985320,
		-0.969266, 1.876010, 0.0415561,
		0.0556434, -0.204026, 1.0572300,
	})
)

func applyMatrix(m *mat.Dense, c RGB) RGB {
	in := mat.NewVecDense(3, []float64{c.R, c.G, c.B})
	var out mat.VecDense
	out.MulVec(m, in)
	return RGB{out.AtVec(0), out.AtVec(1), out.AtVec(2)}
}

// LinearToXYZ converts a linear RGB triple to CIE XYZ.
func LinearToXYZ(c RGB) XYZ {
	o := applyMatrix(linearToXYZMatrix, c)
	return XYZ{o.R, o.G, o.B}
}

// XYZToLinear converts a CIE XYZ triple to linear RGB.
func XYZToLinear(c XYZ) RGB {
	return applyMatrix(xyzToLinearMatrix, RGB{c.X, c.Y, c.Z})
}

// SRGBToXYY converts a gamma-encoded sRGB triple to CIE xyY, by way of
// linear RGB and CIE XYZ.
func SRGBToXYY(c RGB) XYY {
	return XYZToXYY(LinearToXYZ(SRGBToLinear(c)))
}

// XYYToSRGB is the inverse of SRGBToXYY.
func XYYToSRGB(c XYY) RGB {
	return LinearToSRGB(XYZToLinear(XYYToXYZ(c)))
}

// labWhitePoint is the reference white used for CIE L*a*b* conversions.
// Blueshift's historical implementation used a D50-ish white point; this
// package pins it to the commonly tabulated D50 tristimulus values so
// round trips are reproducible.
var labWhitePoint = XYZ{X: 0.9642, Y: 1.0, Z: 0.8249}

const labDelta = 6.0 / 29.0

func labF(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

func labFInverse(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return 3 * labDelta * labDelta * (t - 4.0/29.0)
}

// XYZToLab converts a CIE XYZ triple to CIE L*a*b*, relative to
// labWhitePoint.
func XYZToLab(c XYZ) Lab {
	fx := labF(c.X / labWhitePoint.X)
	fy := labF(c.Y / labWhitePoint.Y)
	fz := labF(c.Z / labWhitePoint.Z)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToXYZ is the inverse of XYZToLab.
func LabToXYZ(c Lab) XYZ {
	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200
	return XYZ{
		X: labWhitePoint.X * labFInverse(fx),
		Y: labWhitePoint.Y * labFInverse(fy),
		Z: labWhitePoint.Z * labFInverse(fz),
	}
}

// SRGBToLab converts a gamma-encoded sRGB triple straight to CIE L*a*b*.
func SRGBToLab(c RGB) Lab {
	return XYZToLab(LinearToXYZ(SRGBToLinear(c)))
}

// DeltaE returns the Euclidean distance in CIE L*a*b* between two
// gamma-encoded sRGB colours.
func DeltaE(a, b RGB) float64 {
	la, lb := SRGBToLab(a), SRGBToLab(b)
	dl, da, db := la.L-lb.L, la.A-lb.A, la.B-lb.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// ErrDegenerateChromaticity is returned by helpers that refuse to divide by
// a zero chromaticity denominator outside of the documented XYYToXYZ/
// XYZToXYY fallbacks, e.g. when validating externally supplied EDID
// chromaticity pairs.
var ErrDegenerateChromaticity = errors.New("colour: degenerate chromaticity (y == 0)")

// ValidateChromaticity returns ErrDegenerateChromaticity if y is zero,
// otherwise nil, for callers that must reject rather than silently
// substitute a fallback value. edid.Parse does not call it.
func ValidateChromaticity(x, y float64) error {
	if y == 0 {
		return errors.Wrapf(ErrDegenerateChromaticity, "x=%v y=%v", x, y)
	}
	return nil
}
