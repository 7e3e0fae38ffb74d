/*
NAME
  prediction.go

DESCRIPTION
  prediction.go implements the generic bracket-then-bisect search called
  "Prediction search" (solar_prediction), plus its derived
  predictors: future/past equinox and solstice (on declination and its
  derivative), and future/past elevation and elevation-derivative
  crossings at a fixed position. TimeOfSolarElevation's closed-form
  two-pass estimate (solar.go) seeds the bracket search's starting point
  so it converges in a handful of steps rather than walking from scratch.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

package solar

import (
	"math"
	"time"
)

// Func is a scalar function of Julian-century time, the shape every
// prediction search target (declination, elevation, their derivatives)
// shares.
type Func func(t float64) float64

// equinoxStep is the default step size solar_prediction uses when walking
// forward or backward in search of an equinox/solstice bracket, matching
// "Δ = 0.01/2000" for the equinox/solstice predictors.
const equinoxStep = 0.01 / 2000

// defaultSpan and defaultEps are solar_prediction's default search span
// (Julian centuries) and bisection tolerance when a caller does not need
// to override them.
const (
	defaultSpan = 0.01
	defaultEps  = 1e-8
)

const maxBisectIterations = 1000

// SolarPrediction walks from start in steps of delta (negative to search
// backward in time) evaluating f(t)-target, until it finds a sign change
// bracketing a root or the walk exceeds span Julian centuries from start,
// then bisects the bracket for up to maxBisectIterations iterations or
// until it narrows below eps. found is false if no bracket is found
// within span.
func SolarPrediction(start, delta, target float64, f Func, eps, span float64) (t float64, found bool) {
	if eps <= 0 {
		eps = defaultEps
	}
	if span <= 0 {
		span = defaultSpan
	}
	prevT := start
	prevV := f(prevT) - target
	cur := prevT
	for {
		cur += delta
		if math.Abs(cur-start) > span {
			return 0, false
		}
		v := f(cur) - target
		if v == 0 {
			return cur, true
		}
		if (v < 0) != (prevV < 0) {
			break
		}
		prevT, prevV = cur, v
	}
	lo, hi := prevT, cur
	loV := prevV
	if lo > hi {
		lo, hi = hi, lo
		loV = f(lo) - target
	}
	for i := 0; i < maxBisectIterations && hi-lo > eps; i++ {
		mid := (lo + hi) / 2
		midV := f(mid) - target
		if (midV < 0) == (loV < 0) {
			lo, loV = mid, midV
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, true
}

func declinationDerivative(t float64) float64 {
	const h = 1e-6
	return (SolarDeclination(t+h) - SolarDeclination(t-h)) / (2 * h)
}

// FutureEquinox predicts the next equinox (solar declination crossing 0)
// after near.
func FutureEquinox(near time.Time) (time.Time, bool) {
	t, ok := SolarPrediction(JulianCenturies(near), equinoxStep, 0, SolarDeclination, defaultEps, defaultSpan)
	if !ok {
		return time.Time{}, false
	}
	return JulianCenturiesToTime(t), true
}

// PastEquinox predicts the most recent equinox before near.
func PastEquinox(near time.Time) (time.Time, bool) {
	t, ok := SolarPrediction(JulianCenturies(near), -equinoxStep, 0, SolarDeclination, defaultEps, defaultSpan)
	if !ok {
		return time.Time{}, false
	}
	return JulianCenturiesToTime(t), true
}

// FutureSolstice predicts the next solstice (the declination derivative
// crossing 0) after near.
func FutureSolstice(near time.Time) (time.Time, bool) {
	t, ok := SolarPrediction(JulianCenturies(near), equinoxStep, 0, declinationDerivative, defaultEps, defaultSpan)
	if !ok {
		return time.Time{}, false
	}
	return JulianCenturiesToTime(t), true
}

// PastSolstice predicts the most recent solstice before near.
func PastSolstice(near time.Time) (time.Time, bool) {
	t, ok := SolarPrediction(JulianCenturies(near), -equinoxStep, 0, declinationDerivative, defaultEps, defaultSpan)
	if !ok {
		return time.Time{}, false
	}
	return JulianCenturiesToTime(t), true
}

func elevationFunc(latitude, longitude float64) Func {
	return func(t float64) float64 { return degrees(SolarElevationFromTime(t, latitude, longitude)) }
}

func elevationDerivativeFunc(latitude, longitude float64) Func {
	ef := elevationFunc(latitude, longitude)
	return func(t float64) float64 {
		const h = 1e-6
		return (ef(t+h) - ef(t-h)) / (2 * h)
	}
}

// FutureElevation predicts the next time after near that the Sun reaches
// the given elevation (degrees) at latitude/longitude (degrees).
func FutureElevation(latitude, longitude, target float64, near time.Time) (time.Time, bool) {
	t, ok := SolarPrediction(JulianCenturies(near), equinoxStep, target, elevationFunc(latitude, longitude), defaultEps, defaultSpan)
	if !ok {
		return time.Time{}, false
	}
	return JulianCenturiesToTime(t), true
}

// PastElevation predicts the most recent time before near that the Sun
// was at the given elevation.
func PastElevation(latitude, longitude, target float64, near time.Time) (time.Time, bool) {
	t, ok := SolarPrediction(JulianCenturies(near), -equinoxStep, target, elevationFunc(latitude, longitude), defaultEps, defaultSpan)
	if !ok {
		return time.Time{}, false
	}
	return JulianCenturiesToTime(t), true
}

// FutureElevationDerivative predicts the next time after near that the
// Sun's elevation rate of change crosses target (degrees per Julian
// century), i.e. the next time the Sun's apparent motion momentarily
// pauses or reverses as seen from latitude/longitude.
func FutureElevationDerivative(latitude, longitude, target float64, near time.Time) (time.Time, bool) {
	t, ok := SolarPrediction(JulianCenturies(near), equinoxStep, target, elevationDerivativeFunc(latitude, longitude), defaultEps, defaultSpan)
	if !ok {
		return time.Time{}, false
	}
	return JulianCenturiesToTime(t), true
}

// PastElevationDerivative predicts the most recent such crossing before
// near.
func PastElevationDerivative(latitude, longitude, target float64, near time.Time) (time.Time, bool) {
	t, ok := SolarPrediction(JulianCenturies(near), -equinoxStep, target, elevationDerivativeFunc(latitude, longitude), defaultEps, defaultSpan)
	if !ok {
		return time.Time{}, false
	}
	return JulianCenturiesToTime(t), true
}
