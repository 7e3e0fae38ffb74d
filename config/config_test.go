/*
NAME
  config_test.go

DESCRIPTION
  config_test.go tests Config's Validate and Update methods against
  the Variables table.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

package config

import (
	"testing"
	"time"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestUpdateSetsNamedFields(t *testing.T) {
	c := Default()
	c.Logger = &dumbLogger{}
	c.Update(map[string]string{
		KeyGammaDay:     "0.8",
		KeyGammaNight:   "1:0.9:0.7",
		KeyTemperatureDay: "5500",
		KeyLocation:     "51.5:-0.1",
		KeyPanicgate:    "true",
		KeyOutput:       "0,1",
	})
	if c.Gamma[Day] != (RGB{0.8, 0.8, 0.8}) {
		t.Errorf("GammaDay = %+v, want uniform 0.8", c.Gamma[Day])
	}
	if c.Gamma[Night] != (RGB{1, 0.9, 0.7}) {
		t.Errorf("GammaNight = %+v, want {1, 0.9, 0.7}", c.Gamma[Night])
	}
	if c.Temperature[Day] != 5500 {
		t.Errorf("TemperatureDay = %v, want 5500", c.Temperature[Day])
	}
	if !c.HasLocation || c.Latitude != 51.5 || c.Longitude != -0.1 {
		t.Errorf("Location = (%v, %v, has=%v), want (51.5, -0.1, true)", c.Latitude, c.Longitude, c.HasLocation)
	}
	if !c.Panicgate {
		t.Error("expected Panicgate true")
	}
	if want := []string{"0", "1"}; len(c.Output) != 2 || c.Output[0] != want[0] || c.Output[1] != want[1] {
		t.Errorf("Output = %v, want %v", c.Output, want)
	}
}

func TestValidateDefaultsBadWaitPeriod(t *testing.T) {
	c := Default()
	c.Logger = &dumbLogger{}
	c.WaitPeriod = 0
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.WaitPeriod != 60*time.Second {
		t.Errorf("WaitPeriod = %v, want 60s after validation", c.WaitPeriod)
	}
}

func TestDefaultTemperatureIsNoOp(t *testing.T) {
	c := Default()
	if c.Temperature[Day] != 6500 || c.Temperature[Night] != 6500 {
		t.Errorf("default Temperature = %v, want {6500, 6500}", c.Temperature)
	}
}
