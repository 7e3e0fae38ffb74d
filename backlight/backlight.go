/*
NAME
  backlight.go

DESCRIPTION
  backlight.go controls a /sys/class/backlight panel, supplementing the
  ramp engine on displays with no gamma LUT. It mirrors
  original_source/src/backlight.py's List/Backlight shape, optionally
  shelling out to an external adjbacklight helper instead of writing
  the sysfs brightness file directly.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package backlight enumerates and drives /sys/class/backlight panel
// controllers, as an optional sink alongside the monitor package's
// gamma ramp output.
package backlight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const sysfsRoot = "/sys/class/backlight"

// List enumerates every backlight controller on the system, by name,
// matching original_source/src/backlight.py's list_backlights.
func List() ([]string, error) {
	entries, err := os.ReadDir(sysfsRoot)
	if err != nil {
		return nil, errors.Wrap(err, "backlight: list controllers")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Controller drives one backlight panel, exposing brightness in
// [0, Maximum] after the constructor's Minimum adjustment, matching
// original_source/src/backlight.py's Backlight class.
type Controller struct {
	path    string
	Minimum int
	Maximum int

	// UseHelper, when true, sets brightness via the external
	// adjbacklight command instead of writing the sysfs file
	// directly, matching the Python class's adjbacklight flag.
	UseHelper bool
}

// Open constructs a Controller for the named or full-path backlight
// controller, reading its max_brightness file once at construction,
// exactly as the Python constructor does.
func Open(controller string, minimum int, useHelper bool) (*Controller, error) {
	path := controller
	if !strings.Contains(controller, "/") {
		path = filepath.Join(sysfsRoot, controller)
	}
	raw, err := os.ReadFile(filepath.Join(path, "max_brightness"))
	if err != nil {
		return nil, errors.Wrap(err, "backlight: read max_brightness")
	}
	max, err := parseSysfsInt(raw)
	if err != nil {
		return nil, errors.Wrap(err, "backlight: parse max_brightness")
	}
	return &Controller{path: path, Minimum: minimum, Maximum: max - minimum, UseHelper: useHelper}, nil
}

func parseSysfsInt(raw []byte) (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(raw)))
}

// Actual reads the panel's actual (hardware-reported) brightness,
// which may lag a recent SetBrightness call.
func (c *Controller) Actual() (int, error) {
	raw, err := os.ReadFile(filepath.Join(c.path, "actual_brightness"))
	if err != nil {
		return 0, errors.Wrap(err, "backlight: read actual_brightness")
	}
	v, err := parseSysfsInt(raw)
	if err != nil {
		return 0, errors.Wrap(err, "backlight: parse actual_brightness")
	}
	return v - c.Minimum, nil
}

// Brightness reads the panel's requested brightness.
func (c *Controller) Brightness() (int, error) {
	raw, err := os.ReadFile(filepath.Join(c.path, "brightness"))
	if err != nil {
		return 0, errors.Wrap(err, "backlight: read brightness")
	}
	v, err := parseSysfsInt(raw)
	if err != nil {
		return 0, errors.Wrap(err, "backlight: parse brightness")
	}
	return v - c.Minimum, nil
}

// SetBrightness writes value (before the Minimum adjustment is added
// back) to the panel, via the adjbacklight helper when UseHelper is
// set, or directly to the sysfs brightness file otherwise.
func (c *Controller) SetBrightness(value int) error {
	actual := value + c.Minimum
	if !c.UseHelper {
		f, err := os.OpenFile(filepath.Join(c.path, "brightness"), os.O_WRONLY|os.O_TRUNC, 0)
		if err != nil {
			return errors.Wrap(err, "backlight: open brightness for write")
		}
		defer f.Close()
		if _, err := fmt.Fprintf(f, "%d\n", actual); err != nil {
			return errors.Wrap(err, "backlight: write brightness")
		}
		return nil
	}
	cmd := exec.Command("adjbacklight", c.path, "--set", strconv.Itoa(actual))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "backlight: adjbacklight helper")
	}
	return nil
}

// SetLevel sets the panel to a fraction in [0, 1] of its Maximum, the
// convenience entry point scheduler.Scheduler calls with the same
// day/night weight that feeds curve.Engine.
func (c *Controller) SetLevel(fraction float64) error {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return c.SetBrightness(int(fraction*float64(c.Maximum) + 0.5))
}
