/*
NAME
  config.go

DESCRIPTION
  config.go defines Config, the single struct holding every
  user-tunable knob names as a CLI flag or a configuration
  script global: day/night gamma, RGB/CIE brightness, RGB/CIE
  temperature, location, panicgate, output selection, fade timing,
  wait period and the reset flag. It mirrors revid/config.Config in
  the reference avdevice implementation: a flat struct the out-of-scope script collaborator
  mutates directly, validated and updated through the Variables table
  in variables.go.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package config holds blueshiftd's runtime configuration: the fields
// a script collaborator or the daemon's own flag parser set by name,
// through the Variables table, before the scheduler starts.
package config

import (
	"time"

	"github.com/ausocean/utils/logging"
)

// RGB is a per-channel triple used for gamma, sRGB brightness and
// sRGB temperature settings that may be given as one value for all
// three channels or as three independent values.
type RGB struct {
	R, G, B float64
}

// Period selects which half of the day/night pair a setting applies
// to, for flags given "up to twice; day, night".
type Period int

const (
	Day Period = iota
	Night
)

// Config holds every field the scheduler, ad-hoc client and their
// shared ramp engine consult on each periodic tick.
type Config struct {
	// Gamma is the day/night gamma pair (--gamma RGB|R:G:B).
	Gamma [2]RGB

	// Brightness is the day/night sRGB brightness pair (--brightness).
	Brightness [2]RGB

	// CIEBrightness is the day/night CIE xyY brightness pair
	// (++brightness), applied to Y alone.
	CIEBrightness [2]float64

	// Temperature is the day/night sRGB temperature pair in Kelvin
	// (--temperature). Update parses it as a number; named temperatures
	// (blackbody.NamedTemperatures) are not resolved here.
	Temperature [2]float64

	// CIETemperature is the day/night CIE xyY temperature pair
	// (++temperature).
	CIETemperature [2]float64

	// Latitude/Longitude are the observer's position in degrees
	// (--location LAT:LON). HasLocation is false until set, since 0,0
	// is a valid position (equator/prime meridian).
	Latitude, Longitude float64
	HasLocation         bool

	// Reset requests the identity ramp be applied and pushed
	// immediately (--reset).
	Reset bool

	// Panicgate skips the initial fade-in (--panicgate).
	Panicgate bool

	// Output lists the CRTC selectors to adjust (--output), comma
	// separated or repeated; empty means every CRTC on the site.
	Output []string

	// ConfigurationsFile is the user script path (--configurations),
	// consumed by the out-of-scope script collaborator.
	ConfigurationsFile string

	// FadeInTime/FadeOutTime are the total duration of the fade-in and
	// fade-out transitions; FadeInSteps/FadeOutSteps subdivide them.
	// FadeInSteps <= 0 or FadeInTime <= 0 disables fade-in.
	FadeInTime   time.Duration
	FadeInSteps  int
	FadeOutTime  time.Duration
	FadeOutSteps int

	// WaitPeriod is how long the scheduler sleeps between
	// periodically calls in steady state.
	WaitPeriod time.Duration

	// ResetOnError controls whether the scheduler restores identity
	// curves on abnormal termination; default true.
	ResetOnError bool

	// InterpolationStrategy and Tension select the ramp resize
	// algorithm the monitor coercion pipeline uses.
	InterpolationStrategy int
	Tension               float64

	// Logger holds the ambient logging.Logger implementation; must be
	// set before the scheduler starts.
	Logger logging.Logger

	// LogLevel is the logging verbosity, mirroring revid/config's
	// LogLevel field.
	LogLevel int8

	// Suppress holds logger suppression state.
	Suppress bool

	// Backlight is the optional sysfs backlight controller path
	// (empty disables backlight control).
	Backlight string
}

// Default returns a Config with documented defaults: gamma
// 1,1,1 both periods, temperature 6500 (no-op) both periods,
// 4-step/0.5s transitions, a 60-second wait period, ResetOnError true.
func Default() Config {
	return Config{
		Gamma:          [2]RGB{{1, 1, 1}, {1, 1, 1}},
		Brightness:     [2]RGB{{1, 1, 1}, {1, 1, 1}},
		CIEBrightness:  [2]float64{1, 1},
		Temperature:    [2]float64{6500, 6500},
		CIETemperature: [2]float64{6500, 6500},
		FadeInTime:     500 * time.Millisecond,
		FadeInSteps:    4,
		FadeOutTime:    500 * time.Millisecond,
		FadeOutSteps:   4,
		WaitPeriod:     60 * time.Second,
		ResetOnError:   true,
	}
}

// Validate runs every Variables entry's Validate hook, letting each
// field default or repair itself independently, as
// revid/config.Config.Validate does.
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update sets named fields from string values, for the out-of-scope
// script collaborator and for --key=value style CLI overrides,
// exactly as revid/config.Config.Update does.
func (c *Config) Update(vars map[string]string) {
	for _, v := range Variables {
		if raw, ok := vars[v.Name]; ok && v.Update != nil {
			v.Update(c, raw)
		}
	}
}

// LogInvalidField logs that a field was bad or unset and a default
// was substituted, matching revid/config.Config.LogInvalidField.
func (c *Config) LogInvalidField(name string, def interface{}) {
	if c.Logger == nil {
		return
	}
	c.Logger.Warning(name+" bad or unset, defaulting", name, def)
}
