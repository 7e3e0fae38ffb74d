/*
NAME
  variables.go

DESCRIPTION
  variables.go provides Variables, a table of {Name, Type, Update,
  Validate} entries, one per Config field a script collaborator or
  CLI flag parser may set by name, exactly as revid/config/variables.go
  does for revid.Config. cmd/blueshiftd fills these names from its
  flags (one repeatable flag per day/night pair; ResetOnError has no
  flag) and calls Update; the out-of-scope configuration-script
  collaborator calls Update with the same names.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config map keys, the names Update and the Variables table use.
const (
	KeyGammaDay          = "GammaDay"
	KeyGammaNight        = "GammaNight"
	KeyBrightnessDay     = "BrightnessDay"
	KeyBrightnessNight   = "BrightnessNight"
	KeyCIEBrightnessDay   = "CIEBrightnessDay"
	KeyCIEBrightnessNight = "CIEBrightnessNight"
	KeyTemperatureDay     = "TemperatureDay"
	KeyTemperatureNight   = "TemperatureNight"
	KeyCIETemperatureDay   = "CIETemperatureDay"
	KeyCIETemperatureNight = "CIETemperatureNight"
	KeyLocation          = "Location"
	KeyReset             = "Reset"
	KeyPanicgate         = "Panicgate"
	KeyOutput            = "Output"
	KeyConfigurations    = "Configurations"
	KeyFadeInTime        = "FadeInTime"
	KeyFadeInSteps       = "FadeInSteps"
	KeyFadeOutTime       = "FadeOutTime"
	KeyFadeOutSteps      = "FadeOutSteps"
	KeyWaitPeriod        = "WaitPeriod"
	KeyResetOnError      = "ResetOnError"
	KeyBacklight         = "Backlight"
)

const (
	typeString = "string"
	typeFloat  = "float"
	typeBool   = "bool"
	typeInt    = "int"
	typeRGB    = "rgb"
)

// Variables lists every script/CLI-settable Config field.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name:   KeyGammaDay,
		Type:   typeRGB,
		Update: func(c *Config, v string) { c.Gamma[Day] = parseRGB(KeyGammaDay, v, c) },
	},
	{
		Name:   KeyGammaNight,
		Type:   typeRGB,
		Update: func(c *Config, v string) { c.Gamma[Night] = parseRGB(KeyGammaNight, v, c) },
	},
	{
		Name:   KeyBrightnessDay,
		Type:   typeRGB,
		Update: func(c *Config, v string) { c.Brightness[Day] = parseRGB(KeyBrightnessDay, v, c) },
	},
	{
		Name:   KeyBrightnessNight,
		Type:   typeRGB,
		Update: func(c *Config, v string) { c.Brightness[Night] = parseRGB(KeyBrightnessNight, v, c) },
	},
	{
		Name:   KeyCIEBrightnessDay,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.CIEBrightness[Day] = parseFloat(KeyCIEBrightnessDay, v, c) },
	},
	{
		Name:   KeyCIEBrightnessNight,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.CIEBrightness[Night] = parseFloat(KeyCIEBrightnessNight, v, c) },
	},
	{
		Name:   KeyTemperatureDay,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.Temperature[Day] = parseFloat(KeyTemperatureDay, v, c) },
	},
	{
		Name:   KeyTemperatureNight,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.Temperature[Night] = parseFloat(KeyTemperatureNight, v, c) },
	},
	{
		Name:   KeyCIETemperatureDay,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.CIETemperature[Day] = parseFloat(KeyCIETemperatureDay, v, c) },
	},
	{
		Name:   KeyCIETemperatureNight,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.CIETemperature[Night] = parseFloat(KeyCIETemperatureNight, v, c) },
	},
	{
		Name: KeyLocation,
		Type: typeString,
		Update: func(c *Config, v string) {
			parts := strings.SplitN(v, ":", 2)
			if len(parts) != 2 {
				c.Logger.Warning("expected LAT:LON for Location", "value", v)
				return
			}
			lat, err1 := strconv.ParseFloat(parts[0], 64)
			lon, err2 := strconv.ParseFloat(parts[1], 64)
			if err1 != nil || err2 != nil {
				c.Logger.Warning("invalid Location coordinates", "value", v)
				return
			}
			c.Latitude, c.Longitude, c.HasLocation = lat, lon, true
		},
	},
	{
		Name:   KeyReset,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.Reset = parseBool(KeyReset, v, c) },
	},
	{
		Name:   KeyPanicgate,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.Panicgate = parseBool(KeyPanicgate, v, c) },
	},
	{
		Name: KeyOutput,
		Type: typeString,
		Update: func(c *Config, v string) {
			v = strings.TrimSpace(v)
			if v == "" {
				c.Output = nil
				return
			}
			for _, s := range strings.Split(v, ",") {
				c.Output = append(c.Output, strings.TrimSpace(s))
			}
		},
	},
	{
		Name:   KeyConfigurations,
		Type:   typeString,
		Update: func(c *Config, v string) { c.ConfigurationsFile = v },
	},
	{
		Name: KeyFadeInTime,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.FadeInTime = time.Duration(parseFloat(KeyFadeInTime, v, c) * float64(time.Second))
		},
	},
	{
		Name:   KeyFadeInSteps,
		Type:   typeInt,
		Update: func(c *Config, v string) { c.FadeInSteps = parseInt(KeyFadeInSteps, v, c) },
	},
	{
		Name: KeyFadeOutTime,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.FadeOutTime = time.Duration(parseFloat(KeyFadeOutTime, v, c) * float64(time.Second))
		},
	},
	{
		Name:   KeyFadeOutSteps,
		Type:   typeInt,
		Update: func(c *Config, v string) { c.FadeOutSteps = parseInt(KeyFadeOutSteps, v, c) },
	},
	{
		Name: KeyWaitPeriod,
		Type: typeFloat,
		Update: func(c *Config, v string) {
			c.WaitPeriod = time.Duration(parseFloat(KeyWaitPeriod, v, c) * float64(time.Second))
		},
		Validate: func(c *Config) {
			if c.WaitPeriod <= 0 {
				c.LogInvalidField(KeyWaitPeriod, 60*time.Second)
				c.WaitPeriod = 60 * time.Second
			}
		},
	},
	{
		Name:   KeyResetOnError,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.ResetOnError = parseBool(KeyResetOnError, v, c) },
	},
	{
		Name:   KeyBacklight,
		Type:   typeString,
		Update: func(c *Config, v string) { c.Backlight = v },
	},
}

// parseRGB parses "Y" (applied to all three channels) or "R:G:B".
func parseRGB(n, v string, c *Config) RGB {
	parts := strings.Split(v, ":")
	switch len(parts) {
	case 1:
		f := parseFloat(n, v, c)
		return RGB{f, f, f}
	case 3:
		r := parseFloat(n, parts[0], c)
		g := parseFloat(n, parts[1], c)
		b := parseFloat(n, parts[2], c)
		return RGB{r, g, b}
	default:
		c.Logger.Warning(fmt.Sprintf("expected Y or R:G:B for param %s", n), "value", v)
		return RGB{1, 1, 1}
	}
}

func parseFloat(n, v string, c *Config) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected float for param %s", n), "value", v)
	}
	return f
}

func parseInt(n, v string, c *Config) int {
	i, err := strconv.Atoi(v)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected integer for param %s", n), "value", v)
	}
	return i
}

func parseBool(n, v string, c *Config) (b bool) {
	switch strings.ToLower(v) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		c.Logger.Warning(fmt.Sprintf("expected bool for param %s", n), "value", v)
	}
	return
}
