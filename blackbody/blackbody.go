/*
NAME
  blackbody.go

DESCRIPTION
  blackbody.go implements the whitepoint algorithms used by the ramp engine's
  temperature operators: the CIE series-D daylight locus, a fast closed-form
  approximation, and two raw-LUT based algorithms (CIE colour matching
  functions and the table used by the Redshift project). It also implements
  the named-temperature lookup table (K_D65, K_CANDLE_FLAME, ...).

  Lookup tables are loaded lazily from text files and cached for the
  lifetime of the process, the way codec packages in the wider module pack
  cache parsed tables behind sync.Once.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package blackbody computes sRGB whitepoints for a blackbody colour
// temperature using several algorithms of differing cost and accuracy.
package blackbody

import (
	"bufio"
	"embed"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/blueshiftd/blueshift/colour"
)

//go:embed data/2deg data/10deg data/redshift data/redshift_old
var dataFS embed.FS

// lutCache is a lazily populated, process-lifetime cache of parsed LUT
// files, guarded by a mutex rather than sync.Once per entry since there
// are four independent keys.
type lutCache struct {
	mu     sync.Mutex
	tables map[string][][]float64
}

var caches = lutCache{tables: make(map[string][][]float64)}

// loadLUT loads and parses "data/<name>" the first time it is requested,
// and returns the cached table on every subsequent call.
func loadLUT(name string) ([][]float64, error) {
	caches.mu.Lock()
	defer caches.mu.Unlock()
	if t, ok := caches.tables[name]; ok {
		return t, nil
	}
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return nil, errors.Wrapf(err, "blackbody: loading LUT %q", name)
	}
	var rows [][]float64
	scanner := bufio.NewScanner(strings.NewReader(string(raw)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "blackbody: parsing LUT %q", name)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "blackbody: scanning LUT %q", name)
	}
	caches.tables[name] = rows
	return rows, nil
}

// SeriesD computes the CIE series-D daylight locus whitepoint for the given
// colour temperature in kelvins, following the two-branch rational
// approximation (branch boundary at 7000 K).
func SeriesD(temperature float64) colour.RGB {
	var ks [4]float64
	if temperature > 7000 {
		ks = [4]float64{0.237040, 0.24748, 1.9018, -2.0064}
	} else {
		ks = [4]float64{0.244063, 0.09911, 2.9678, -4.6070}
	}
	x := 0.0
	for d, k := range ks {
		x += k * math.Pow(10, float64(d*3)) / math.Pow(temperature, float64(d))
	}
	y := 2.870*x - 3.000*x*x - 0.275
	return colour.XYYToSRGB(colour.XYY{X: x, Y: y, YY: 1.0})
}

// SimpleWhitepoint computes a fast closed-form approximation of the
// blackbody whitepoint, branching on temperature/100 at 66 and 19.
func SimpleWhitepoint(temperature float64) colour.RGB {
	temp := temperature / 100
	r, g, b := 1.0, 1.0, 1.0
	if temp > 66 {
		r = 1.292936186 * math.Pow(temp-60, -0.1332047592)
		g = 1.129890861 * math.Pow(temp-60, -0.0755148492)
	} else {
		g = 0.390081579*math.Log(temp) - 0.631841444
		if temp < 66 {
			if temp <= 19 {
				b = 0
			} else {
				b = 0.543206789*math.Log(temp-10) - 1.196254089
			}
		}
	}
	clip01 := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return colour.RGB{R: clip01(r), G: clip01(g), B: clip01(b)}
}

// cmfXDeg interpolates a (x, y) lookup table keyed to 100 K steps over
// [1000, 40000] and converts the result to sRGB with full illumination.
func cmfXDeg(temperature float64, lut [][]float64) colour.RGB {
	const tempMin, tempMax, tempStep = 1000.0, 40000.0, 100.0
	t := temperature
	if t < tempMin {
		t = tempMin
	}
	if t > tempMax {
		t = tempMax
	}
	t -= tempMin
	idx := int(t / tempStep)
	rem := math.Mod(t, tempStep)
	var x, y float64
	if rem == 0 {
		row := lut[idx]
		x, y = row[0], row[1]
	} else {
		floor, ceiling := lut[idx], lut[idx+1]
		w := rem / tempStep
		x = floor[0]*(1-w) + ceiling[0]*w
		y = floor[1]*(1-w) + ceiling[1]*w
	}
	return colour.XYYToSRGB(colour.XYY{X: x, Y: y, YY: 1.0})
}

// CMF2Deg computes the blackbody whitepoint from the CIE 1931 2-degree
// colour matching function lookup table, interpolating between its 100 K
// rows.
func CMF2Deg(temperature float64) (colour.RGB, error) {
	lut, err := loadLUT("2deg")
	if err != nil {
		return colour.RGB{}, err
	}
	return cmfXDeg(temperature, lut), nil
}

// CMF10Deg is CMF2Deg using the CIE 1964 10-degree colour matching
// function table instead.
func CMF10Deg(temperature float64) (colour.RGB, error) {
	lut, err := loadLUT("10deg")
	if err != nil {
		return colour.RGB{}, err
	}
	return cmfXDeg(temperature, lut), nil
}

// Redshift computes the blackbody whitepoint using the lookup table
// shipped by the Redshift project. old selects the redshift<=1.8 table,
// clipped to [1000, 10000] K instead of [1000, 25100] K. linearInterp
// selects interpolation in linear RGB rather than sRGB.
func Redshift(temperature float64, old, linearInterp bool) (colour.RGB, error) {
	name, tempMax := "redshift", 25100.0
	if old {
		name, tempMax = "redshift_old", 10000.0
	}
	lut, err := loadLUT(name)
	if err != nil {
		return colour.RGB{}, err
	}
	const tempMin, tempStep = 1000.0, 100.0
	t := temperature
	if t < tempMin {
		t = tempMin
	}
	if t > tempMax {
		t = tempMax
	}
	t -= tempMin
	idx := int(t / tempStep)
	rem := math.Mod(t, tempStep)
	if rem == 0 {
		row := lut[idx]
		return colour.RGB{R: row[0], G: row[1], B: row[2]}, nil
	}
	floor, ceiling := lut[idx], lut[idx+1]
	w := rem / tempStep
	c1 := colour.RGB{R: floor[0], G: floor[1], B: floor[2]}
	c2 := colour.RGB{R: ceiling[0], G: ceiling[1], B: ceiling[2]}
	if linearInterp {
		c1, c2 = colour.SRGBToLinear(c1), colour.SRGBToLinear(c2)
	}
	out := colour.RGB{
		R: c1.R*(1-w) + c2.R*w,
		G: c1.G*(1-w) + c2.G*w,
		B: c1.B*(1-w) + c2.B*w,
	}
	if linearInterp {
		out = colour.LinearToSRGB(out)
	}
	return out, nil
}

// DivideByMaximum scales rgb so that its largest-magnitude component is 1.
// It is a no-op when all components are zero.
func DivideByMaximum(rgb colour.RGB) colour.RGB {
	abs := func(v float64) float64 {
		if v < 0 {
			return -v
		}
		return v
	}
	m := math.Max(abs(rgb.R), math.Max(abs(rgb.G), abs(rgb.B)))
	if m == 0 {
		return rgb
	}
	return colour.RGB{R: rgb.R / m, G: rgb.G / m, B: rgb.B / m}
}

// ClipWhitepoint clips each component of rgb to [0, 1].
func ClipWhitepoint(rgb colour.RGB) colour.RGB {
	clip := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return colour.RGB{R: clip(rgb.R), G: clip(rgb.G), B: clip(rgb.B)}
}

// Algorithm computes an sRGB whitepoint for a colour temperature. The
// algorithms exposed by this package and by ICC/manipulate callers share
// this shape so rgb_temperature/cie_temperature (package curve) can accept
// any of them interchangeably.
type Algorithm func(temperature float64) (colour.RGB, error)

// Pure adapts a whitepoint function with no error return (SeriesD,
// SimpleWhitepoint) to the Algorithm shape.
func Pure(f func(float64) colour.RGB) Algorithm {
	return func(t float64) (colour.RGB, error) { return f(t), nil }
}
