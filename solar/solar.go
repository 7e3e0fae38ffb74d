/*
NAME
  solar.go

DESCRIPTION
  solar.go implements the solar position algorithms the scheduler uses to
  drive the automatic day/night transition: the Julian time base, the
  ten-step geometric pipeline from time to apparent solar elevation, the
  inverse (elevation to time of day) used to predict sunrise/sunset-like
  events, and the Sun visibility fraction the transition state machine
  interpolates against.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package solar computes the Sun's apparent elevation at a geographic
// position and time, and predicts the times at which it crosses a given
// elevation (sunrise, sunset, civil/nautical/astronomical twilight).
package solar

import (
	"math"
	"time"
)

// Named elevation thresholds, in degrees, matching the conventional
// twilight definitions.
const (
	ElevationSunriseSunset           = 0.0
	ElevationCivilDuskDawn           = -6.0
	ElevationNauticalDuskDawn        = -12.0
	ElevationAstronomicalDuskDawn    = -18.0
)

// JulianCenturies returns t expressed in Julian centuries since J2000.0
// (2000-01-01 12:00 TT), the time base every function below operates in.
func JulianCenturies(t time.Time) float64 {
	epoch := float64(t.UnixNano()) / 1e9
	julianDay := epoch/86400.0 + 2440587.5
	return (julianDay - 2451545.0) / 36525.0
}

// JulianCenturiesToTime is the inverse of JulianCenturies.
func JulianCenturiesToTime(t float64) time.Time {
	julianDay := t*36525.0 + 2451545.0
	epoch := (julianDay - 2440587.5) * 86400.0
	sec := math.Floor(epoch)
	nsec := (epoch - sec) * 1e9
	return time.Unix(int64(sec), int64(nsec)).UTC()
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// mod360 reduces deg into [0, 360), matching Python's always-nonnegative
// modulo for non-negative divisors.
func mod360(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

func sunGeometricMeanLongitude(t float64) float64 {
	return radians(mod360(0.0003032*t*t + 36000.76983*t + 280.46646))
}

func sunGeometricMeanAnomaly(t float64) float64 {
	return radians(-0.0001537*t*t + 35999.05029*t + 357.52911)
}

func earthOrbitEccentricity(t float64) float64 {
	return -0.0000001267*t*t - 0.000042037*t + 0.016708634
}

func sunEquationOfCentre(t float64) float64 {
	a := sunGeometricMeanAnomaly(t)
	rc := math.Sin(a) * (-0.000014*t*t - 0.004817*t + 1.914602)
	rc += math.Sin(2*a) * (-0.000101*t + 0.019993)
	rc += math.Sin(3*a) * 0.000289
	return radians(rc)
}

func sunRealLongitude(t float64) float64 {
	return sunGeometricMeanLongitude(t) + sunEquationOfCentre(t)
}

func sunApparentLongitude(t float64) float64 {
	rc := degrees(sunRealLongitude(t)) - 0.00569
	rc -= 0.00478 * math.Sin(radians(-1934.136*t+125.04))
	return radians(rc)
}

func meanEclipticObliquity(t float64) float64 {
	rc := 0.001813*t*t*t - 0.00059*t*t - 46.815*t + 21.448
	rc = 26 + rc/60
	rc = 23 + rc/60
	return radians(rc)
}

func correctedMeanEclipticObliquity(t float64) float64 {
	rc := -1934.136*t + 125.04
	rc = 0.00256 * math.Cos(radians(rc))
	rc += degrees(meanEclipticObliquity(t))
	return radians(rc)
}

// SolarDeclination returns the Sun's declination, in radians, at Julian
// century t.
func SolarDeclination(t float64) float64 {
	rc := math.Sin(correctedMeanEclipticObliquity(t))
	rc *= math.Sin(sunApparentLongitude(t))
	return math.Asin(rc)
}

// EquationOfTime returns the discrepancy between apparent and mean solar
// time, in minutes of time, at Julian century t.
func EquationOfTime(t float64) float64 {
	l := sunGeometricMeanLongitude(t)
	e := earthOrbitEccentricity(t)
	m := sunGeometricMeanAnomaly(t)
	y := correctedMeanEclipticObliquity(t)
	y = math.Tan(y/2) * math.Tan(y/2)
	rc := y * math.Sin(2*l)
	rc += (4*y*math.Cos(2*l) - 2) * e * math.Sin(m)
	rc -= 0.5 * y * y * math.Sin(4*l)
	rc -= 1.25 * e * e * math.Sin(2*m)
	return 4 * degrees(rc)
}

// hourAngleFromElevation returns the solar hour angle, in radians, that
// produces the given elevation (in radians) at latitude (degrees) and
// declination (radians).
func hourAngleFromElevation(latitude, declination, elevation float64) float64 {
	if elevation == 0 {
		return 0
	}
	rc := math.Cos(math.Abs(elevation))
	rc -= math.Sin(radians(latitude)) * math.Sin(declination)
	rc /= math.Cos(radians(latitude)) * math.Cos(declination)
	rc = math.Acos(rc)
	if (rc < 0) == (elevation < 0) {
		return -rc
	}
	return rc
}

// elevationFromHourAngle returns the Sun's elevation, in radians, at
// latitude (degrees), declination (radians) and hour angle (radians).
func elevationFromHourAngle(latitude, declination, hourAngle float64) float64 {
	rc := math.Cos(radians(latitude))
	rc *= math.Cos(hourAngle) * math.Cos(declination)
	rc += math.Sin(radians(latitude)) * math.Sin(declination)
	return math.Asin(rc)
}

// TimeOfSolarNoon returns the Julian century time of the solar noon on
// t's UTC day, at the given longitude (degrees eastward from Greenwich).
func TimeOfSolarNoon(t, longitude float64) float64 {
	jd := t*36525.0 + 2451545.0
	rc := longitude
	steps := []struct {
		k, m float64
	}{{-360, 0}, {1440, -0.5}}
	for _, step := range steps {
		rc = ((jd + step.m + rc/step.k) - 2451545.0) / 36525.0
		rc = 720 - 4*longitude - EquationOfTime(rc)
	}
	midnight := math.Floor(jd-0.5) + 0.5
	return ((midnight + rc/1440) - 2451545.0) / 36525.0
}

// TimeOfSolarElevation returns the Julian century time, on t's UTC day,
// at which the Sun reaches the given elevation (degrees) at the given
// latitude/longitude (degrees), using noon (the solar noon of that day,
// from TimeOfSolarNoon) as the search anchor. It performs the same
// two-pass refinement as the original reference implementation rather
// than a general root finder, since the equation of time varies slowly
// enough for two passes to converge to sub-minute accuracy. The result is
// NaN when hourAngleFromElevation has no solution (its arccos argument
// lies outside [-1, 1]).
func TimeOfSolarElevation(t, noon, latitude, longitude, elevation float64) float64 {
	rc := noon
	decl, et := SolarDeclination(rc), EquationOfTime(rc)
	rc = hourAngleFromElevation(latitude, decl, radians(elevation))
	rc = 720 - 4*(longitude+degrees(rc)) - et

	jd := t*36525.0 + 2451545.0
	midnight := math.Floor(jd-0.5) + 0.5
	rc = ((midnight + rc/1440) - 2451545.0) / 36525.0
	decl, et = SolarDeclination(rc), EquationOfTime(rc)
	rc = hourAngleFromElevation(latitude, decl, radians(elevation))
	rc = 720 - 4*(longitude+degrees(rc)) - et
	return ((midnight + rc/1440) - 2451545.0) / 36525.0
}

// SolarElevationFromTime returns the Sun's apparent elevation, in
// radians, at Julian century t and the given latitude/longitude (degrees).
func SolarElevationFromTime(t, latitude, longitude float64) float64 {
	jd := t*36525.0 + 2451545.0
	rc := (jd - math.Floor(jd+0.5) - 0.5) * 1440
	rc = 720 - rc - EquationOfTime(t)
	rc = radians(rc/4 - longitude)
	return elevationFromHourAngle(latitude, SolarDeclination(t), rc)
}

// Elevation returns the Sun's apparent elevation, in degrees, at the
// given latitude/longitude (degrees) and time.
func Elevation(latitude, longitude float64, at time.Time) float64 {
	return degrees(SolarElevationFromTime(JulianCenturies(at), latitude, longitude))
}

// Visibility returns the fraction of the Sun's disc visible at the given
// position and time: 0 through the night, 1 through the day, and a
// linear ramp between low and high (degrees of elevation) through
// twilight. The defaults (-6, 3) match civil dusk/dawn to a few degrees
// of margin above the horizon.
func Visibility(latitude, longitude float64, at time.Time, low, high float64) float64 {
	e := Elevation(latitude, longitude, at)
	e = (e - low) / (high - low)
	if e < 0 {
		return 0
	}
	if e > 1 {
		return 1
	}
	return e
}

// quickElevationEstimate anchors a prediction search with
// TimeOfSolarElevation's closed-form two-pass estimate, or with the solar
// noon itself when that estimate is NaN, so the general
// bracket-then-bisect search in SolarPrediction converges in a handful of
// steps instead of walking from the search origin itself.
func quickElevationEstimate(latitude, longitude, elevation float64, near time.Time) time.Time {
	t := JulianCenturies(near)
	noon := TimeOfSolarNoon(t, longitude)
	est := TimeOfSolarElevation(t, noon, latitude, longitude, elevation)
	if math.IsNaN(est) {
		est = noon
	}
	return JulianCenturiesToTime(est)
}

// PredictElevation predicts the time nearest near (searching forward if
// forward is true, backward otherwise) at which the Sun reaches the
// given elevation (degrees) at latitude/longitude (degrees). It seeds
// SolarPrediction's bracket search with the closed-form estimate from
// TimeOfSolarElevation, or with solar noon when that estimate is NaN.
func PredictElevation(latitude, longitude, elevation float64, near time.Time, forward bool) (time.Time, bool) {
	anchor := quickElevationEstimate(latitude, longitude, elevation, near)
	if forward {
		return FutureElevation(latitude, longitude, elevation, anchor)
	}
	return PastElevation(latitude, longitude, elevation, anchor)
}

// Sunrise predicts the sunrise (elevation crossing 0, ascending) nearest
// the given time. quickElevationEstimate anchors the search at solar
// noon, and the ascending crossing falls before noon, so this searches
// backward from that anchor.
func Sunrise(latitude, longitude float64, near time.Time) (time.Time, bool) {
	return PredictElevation(latitude, longitude, ElevationSunriseSunset, near, false)
}

// Sunset predicts the sunset (elevation crossing 0, descending) nearest
// the given time; the descending crossing falls after the noon-anchored
// estimate, so this searches forward.
func Sunset(latitude, longitude float64, near time.Time) (time.Time, bool) {
	return PredictElevation(latitude, longitude, ElevationSunriseSunset, near, true)
}

// CivilDawn predicts civil dawn (elevation -6 degrees, ascending) near
// the given time, searching backward from the noon-anchored estimate
// for the same reason Sunrise does.
func CivilDawn(latitude, longitude float64, near time.Time) (time.Time, bool) {
	return PredictElevation(latitude, longitude, ElevationCivilDuskDawn, near, false)
}

// CivilDusk predicts civil dusk (descending) near the given time.
func CivilDusk(latitude, longitude float64, near time.Time) (time.Time, bool) {
	return PredictElevation(latitude, longitude, ElevationCivilDuskDawn, near, true)
}
