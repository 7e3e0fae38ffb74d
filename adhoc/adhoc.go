/*
NAME
  adhoc.go

DESCRIPTION
  adhoc.go implements the one-shot client: a single apply(dayness,
  pureness) call (or, without --panicgate, a short fade-in of repeated
  calls) against the ramp engine and a monitor.Site, then exit. It
  mirrors original_source/src/adhoc.py's module-level script body:
  default gamma/brightness/temperature selection, sun()-based dayness,
  and the continuous-vs-one-shot mode decision. Without a configured
  location, dayness is a constant 1; there is no clock-based fallback
  in this package.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package adhoc runs blueshiftd's ramp adjustment once (optionally
// fading in first) instead of the scheduler package's continuous
// day/night loop, for scripts and one-off corrections.
package adhoc

import (
	"time"

	"github.com/blueshiftd/blueshift/blackbody"
	"github.com/blueshiftd/blueshift/colour"
	"github.com/blueshiftd/blueshift/config"
	"github.com/blueshiftd/blueshift/curve"
	"github.com/blueshiftd/blueshift/monitor"
	"github.com/blueshiftd/blueshift/solar"
)

// fadeStep and fadeSleep match original_source/src/adhoc.py's one-shot
// fade-in loop: twenty 0.1 second steps of 0.05 each.
const (
	fadeStep  = 0.05
	fadeSleep = 100 * time.Millisecond
)

// Client applies a single adjustment (or reverts to identity) to every
// configured CRTC, the one-shot counterpart to scheduler.Scheduler.
type Client struct {
	engine *curve.Engine
	multi  *monitor.MultiCRTC
	cfg    config.Config
}

// New builds a Client over an already-open site, selecting the CRTCs
// named by cfg.Output (every CRTC on the site when empty), and fills
// in original_source/src/adhoc.py's default gamma/brightness/
// temperature pairs for any field left at config.Default's zero
// values by the caller.
func New(cfg config.Config, site *monitor.Site) *Client {
	cfg = withDefaults(cfg)
	crtcs := site.AllCRTCs()
	var selected []*monitor.CRTC
	if len(cfg.Output) == 0 {
		selected = crtcs
	} else {
		selected = selectByIndex(crtcs, cfg.Output)
	}
	return &Client{
		engine: curve.NewEngine(curve.DefaultSize, curve.DefaultOutputSize),
		multi:  monitor.NewMultiCRTC(selected),
		cfg:    cfg,
	}
}

func selectByIndex(all []*monitor.CRTC, output []string) []*monitor.CRTC {
	var out []*monitor.CRTC
	for _, sel := range output {
		n := 0
		ok := sel != ""
		for _, r := range sel {
			if r < '0' || r > '9' {
				ok = false
				break
			}
			n = n*10 + int(r-'0')
		}
		if ok && n >= 0 && n < len(all) {
			out = append(out, all[n])
		}
	}
	return out
}

// withDefaults fills unset day/night pairs with
// original_source/src/adhoc.py's defaults: gamma 1:1:1 both periods,
// brightness 1 both periods, and, when neither temperature pair was
// given, 3500 K day / 5500 K night sRGB temperature with a neutral CIE
// temperature (zero values in config.Config are indistinguishable from
// "unset" here, matching the Python script's reliance on its own
// argument parser leaving settings as None).
func withDefaults(cfg config.Config) config.Config {
	zero := config.RGB{}
	if cfg.Gamma == [2]config.RGB{zero, zero} {
		cfg.Gamma = [2]config.RGB{{1, 1, 1}, {1, 1, 1}}
	}
	if cfg.Brightness == [2]config.RGB{zero, zero} {
		cfg.Brightness = [2]config.RGB{{1, 1, 1}, {1, 1, 1}}
	}
	if cfg.CIEBrightness == [2]float64{0, 0} {
		cfg.CIEBrightness = [2]float64{1, 1}
	}
	if cfg.Temperature == [2]float64{0, 0} && cfg.CIETemperature == [2]float64{0, 0} {
		cfg.Temperature = [2]float64{3500, 5500}
		cfg.CIETemperature = [2]float64{6500, 6500}
	} else {
		if cfg.Temperature == [2]float64{0, 0} {
			cfg.Temperature = [2]float64{6500, 6500}
		}
		if cfg.CIETemperature == [2]float64{0, 0} {
			cfg.CIETemperature = [2]float64{6500, 6500}
		}
	}
	return cfg
}

// Continuous reports whether this configuration should run under
// scheduler.Scheduler instead of a one-shot Client, matching
// original_source/src/adhoc.py's "continuous = any day != night pair,
// or a location is set" rule.
func Continuous(cfg config.Config) bool {
	if cfg.HasLocation {
		return true
	}
	return cfg.Gamma[config.Day] != cfg.Gamma[config.Night] ||
		cfg.Brightness[config.Day] != cfg.Brightness[config.Night] ||
		cfg.CIEBrightness[config.Day] != cfg.CIEBrightness[config.Night] ||
		cfg.Temperature[config.Day] != cfg.Temperature[config.Night] ||
		cfg.CIETemperature[config.Day] != cfg.CIETemperature[config.Night]
}

func (c *Client) dayness() float64 {
	if c.cfg.HasLocation {
		return solar.Visibility(c.cfg.Latitude, c.cfg.Longitude, time.Now(), -6, 3)
	}
	return 1
}

func temperatureAlgorithm(t float64) (colour.RGB, error) {
	rgb, err := blackbody.CMF10Deg(t)
	if err != nil {
		return colour.RGB{}, err
	}
	return blackbody.ClipWhitepoint(blackbody.DivideByMaximum(rgb)), nil
}

func interpolScalar(identity, day, night, dayness, pureness float64) float64 {
	return identity*pureness + (day*dayness+night*(1-dayness))*(1-pureness)
}

func interpolRGB(identity float64, day, night config.RGB, dayness, pureness float64) config.RGB {
	return config.RGB{
		R: interpolScalar(identity, day.R, night.R, dayness, pureness),
		G: interpolScalar(identity, day.G, night.G, dayness, pureness),
		B: interpolScalar(identity, day.B, night.B, dayness, pureness),
	}
}

// Apply drives the ramp engine once at the given dayness/pureness
// weights and pushes the result through, the Go equivalent of
// original_source/src/adhoc.py's apply(dayness, pureness).
func (c *Client) Apply(dayness, pureness float64) error {
	c.engine.StartOver()

	rgbTemp := interpolScalar(6500, c.cfg.Temperature[config.Day], c.cfg.Temperature[config.Night], dayness, pureness)
	if err := c.engine.RGBTemperature(rgbTemp, temperatureAlgorithm); err != nil {
		return err
	}
	cieTemp := interpolScalar(6500, c.cfg.CIETemperature[config.Day], c.cfg.CIETemperature[config.Night], dayness, pureness)
	if err := c.engine.CIETemperature(cieTemp, temperatureAlgorithm); err != nil {
		return err
	}

	rgbBright := interpolRGB(1, c.cfg.Brightness[config.Day], c.cfg.Brightness[config.Night], dayness, pureness)
	c.engine.RGBBrightness(rgbBright.R, curve.F(rgbBright.G), curve.F(rgbBright.B))
	cieBright := interpolScalar(1, c.cfg.CIEBrightness[config.Day], c.cfg.CIEBrightness[config.Night], dayness, pureness)
	c.engine.CIEBrightness(cieBright, nil, nil)

	c.engine.Clip()

	gammaRGB := interpolRGB(1, c.cfg.Gamma[config.Day], c.cfg.Gamma[config.Night], dayness, pureness)
	c.engine.Gamma(gammaRGB.R, curve.F(gammaRGB.G), curve.F(gammaRGB.B))

	c.engine.Clip()

	if c.multi == nil {
		return nil
	}
	return c.multi.SetGamma(c.engine.Working, 0, "", monitor.UntilRemoval)
}

// Run performs the full one-shot sequence: a fade-in of repeated Apply
// calls unless cfg.Panicgate or cfg.Reset is set, then a final Apply
// settling at pureness 1 for --reset or 0 otherwise, matching
// original_source/src/adhoc.py's one-shot branch.
func (c *Client) Run() error {
	if !c.cfg.Panicgate && !c.cfg.Reset {
		for trans := 0.0; trans < 1; trans += fadeStep {
			pureness := 1 - trans
			if c.cfg.Reset {
				pureness = trans
			}
			if err := c.Apply(c.dayness(), pureness); err != nil {
				return err
			}
			time.Sleep(fadeSleep)
		}
	}
	final := 0.0
	if c.cfg.Reset {
		final = 1
	}
	return c.Apply(c.dayness(), final)
}
