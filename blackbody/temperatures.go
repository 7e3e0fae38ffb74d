package blackbody

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NamedTemperatures resolves a handful of commonly referenced colour
// temperature names to their kelvin values, mirroring the K_* constants of
// the original configuration-script environment (K_CANDLE_FLAME,
// K_D65, ...). Names are case-sensitive and match the historical
// upper-snake-case convention so existing configuration scripts keep
// working unmodified.
var NamedTemperatures = map[string]float64{
	"K_MATCH_FLAME":           1700,
	"K_CANDLE_FLAME":          1850,
	"K_CANDLELIGHT":           1850,
	"K_SUNSET":                1850,
	"K_SUNRISE":               1850,
	"K_HIGH_PRESSURE_SODIUM":  2100,
	"K_STANDARD_INCANDESCENT": 2500,
	"K_INCANDESCENT":          2500,
	"K_TUNGSTEN_LIGHT":        3200,
	"K_HOUSEHOLD_LIGHT_BULB":  3200,
	"K_SOFT":                  3700,
	"K_MOONLIGHT":             4125,
	"K_COOL_WHITE":            4200,
	"K_D50":                   5000,
	"K_NOON_DAYLIGHT":         5000,
	"K_DIRECT_SUN":            5000,
	"K_D55":                   5500,
	"K_MODERATELY_SOFT":       5500,
	"K_XENON_SHORT_ARC_LAMP":  6200,
	"K_DAYLIGHT":              6500,
	"K_OVERCAST_DAY":          6500,
	"K_D65":                   6500,
	"K_NEUTRAL":               6500,
	"K_WHITE":                 6500,
	"K_SHARP":                 7000,
	"K_D75":                   7500,
	"K_BLUE_FILTER":           8000,
	"K_NORTH_LIGHT":           10000,
	"K_BLUE_SKY":              10000,
	"K_EXTRA_SHARP":           10000,
}

// ErrUnknownTemperatureName is returned by ResolveTemperature when passed a
// name not present in NamedTemperatures.
var ErrUnknownTemperatureName = errors.New("blackbody: unknown named temperature")

// ResolveTemperature resolves a user-supplied temperature, which may be a
// name from NamedTemperatures (punctuation normalised to underscores, as
// the original configuration-script environment did) or a literal kelvin
// value. It mirrors kelvins() in the original configuration interpreter.
func ResolveTemperature(name string) (float64, error) {
	if v, err := strconv.ParseFloat(name, 64); err == nil {
		return v, nil
	}
	key := strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name)
	if v, ok := NamedTemperatures[key]; ok {
		return v, nil
	}
	return 0, errors.Wrapf(ErrUnknownTemperatureName, "%q", name)
}
