package solar

import (
	"math"
	"testing"
	"time"
)

func TestJulianCenturiesRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	jc := JulianCenturies(now)
	back := JulianCenturiesToTime(jc)
	if diff := back.Sub(now); diff > time.Second || diff < -time.Second {
		t.Errorf("round trip drifted by %v", diff)
	}
}

func TestJ2000EpochIsZero(t *testing.T) {
	j2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if jc := JulianCenturies(j2000); math.Abs(jc) > 1e-6 {
		t.Errorf("J2000.0 should be Julian century 0, got %v", jc)
	}
}

func TestElevationAtNoonExceedsMidnight(t *testing.T) {
	lat, lon := 51.5, -0.1 // London
	day := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)
	noon := day.Add(12 * time.Hour)
	midnight := day
	if Elevation(lat, lon, noon) <= Elevation(lat, lon, midnight) {
		t.Error("expected higher solar elevation at local noon than at midnight in midsummer")
	}
}

func TestVisibilityClampedToUnitRange(t *testing.T) {
	lat, lon := 51.5, -0.1
	day := time.Date(2026, 6, 21, 12, 0, 0, 0, time.UTC)
	night := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)
	if v := Visibility(lat, lon, day, -6, 3); v != 1 {
		t.Errorf("expected full daylight visibility 1, got %v", v)
	}
	if v := Visibility(lat, lon, night, -6, 3); v != 0 {
		t.Errorf("expected full night visibility 0, got %v", v)
	}
}

func TestPredictElevationNearSunriseIsPlausible(t *testing.T) {
	lat, lon := 51.5, -0.1
	near := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)
	sunrise, ok := Sunrise(lat, lon, near)
	if !ok {
		t.Fatal("expected a sunrise prediction near midsummer at a temperate latitude")
	}
	if sunrise.Year() != 2026 || sunrise.Month() != time.June {
		t.Errorf("predicted sunrise %v is not plausible for the search anchor", sunrise)
	}
	if sunrise.Hour() >= 12 {
		t.Errorf("predicted sunrise %v should fall before local solar noon", sunrise)
	}
	e := Elevation(lat, lon, sunrise)
	if math.Abs(e) > 5 {
		t.Errorf("predicted sunrise elevation should be near 0 degrees, got %v", e)
	}
}

func TestSunsetFollowsSunriseOnTheSameDay(t *testing.T) {
	lat, lon := 51.5, -0.1
	near := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)
	sunrise, ok := Sunrise(lat, lon, near)
	if !ok {
		t.Fatal("expected a sunrise prediction near midsummer at a temperate latitude")
	}
	sunset, ok := Sunset(lat, lon, near)
	if !ok {
		t.Fatal("expected a sunset prediction near midsummer at a temperate latitude")
	}
	if !sunset.After(sunrise) {
		t.Errorf("sunset %v should fall after sunrise %v on the same day", sunset, sunrise)
	}
	if sunset.Hour() < 12 {
		t.Errorf("predicted sunset %v should fall after local solar noon", sunset)
	}
	e := Elevation(lat, lon, sunset)
	if math.Abs(e) > 5 {
		t.Errorf("predicted sunset elevation should be near 0 degrees, got %v", e)
	}
}

func TestCivilDawnPrecedesSunriseAndCivilDuskFollowsSunset(t *testing.T) {
	lat, lon := 51.5, -0.1
	near := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)
	dawn, ok := CivilDawn(lat, lon, near)
	if !ok {
		t.Fatal("expected a civil dawn prediction near midsummer at a temperate latitude")
	}
	sunrise, ok := Sunrise(lat, lon, near)
	if !ok {
		t.Fatal("expected a sunrise prediction near midsummer at a temperate latitude")
	}
	dusk, ok := CivilDusk(lat, lon, near)
	if !ok {
		t.Fatal("expected a civil dusk prediction near midsummer at a temperate latitude")
	}
	sunset, ok := Sunset(lat, lon, near)
	if !ok {
		t.Fatal("expected a sunset prediction near midsummer at a temperate latitude")
	}
	if !dawn.Before(sunrise) {
		t.Errorf("civil dawn %v should precede sunrise %v", dawn, sunrise)
	}
	if !dusk.After(sunset) {
		t.Errorf("civil dusk %v should follow sunset %v", dusk, sunset)
	}
	if dawn.Equal(dusk) {
		t.Error("civil dawn and civil dusk should not coincide")
	}
}

func TestFutureEquinoxIsPlausible(t *testing.T) {
	near := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	eq, ok := FutureEquinox(near)
	if !ok {
		t.Fatal("expected an equinox prediction within the default search span")
	}
	if eq.Before(near) || eq.Month() != time.March {
		t.Errorf("expected the March 2026 equinox, got %v", eq)
	}
}
