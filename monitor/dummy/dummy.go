/*
NAME
  dummy.go

DESCRIPTION
  dummy.go implements monitor.Backend entirely in memory: the
  always-available fallback backend used when no real display server
  or kernel interface is reachable, and the backend the test suite
  exercises's "Backend coercion" round-trip property
  against.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package dummy is the always-compiled in-memory monitor.Backend,
// grounded on device/file's in-memory AVDevice in the reference avdevice
// implementation:
// no external resource, just enough state to exercise the interface.
package dummy

import (
	"fmt"

	"github.com/blueshiftd/blueshift/curve"
	"github.com/blueshiftd/blueshift/monitor"
)

// Config describes the fake site a dummy Backend presents: how many
// screens, how many CRTCs per screen, and the ramp size/depth each
// CRTC reports.
type Config struct {
	Screens      int
	CRTCsPerScreen int
	RedSize, GreenSize, BlueSize int
	Depth        int
	Cooperative  bool
}

// DefaultConfig matches curve's identity-ramp default size
// (curve.DefaultSize) at float64 depth, one screen of one CRTC.
func DefaultConfig() Config {
	return Config{
		Screens:        1,
		CRTCsPerScreen: 1,
		RedSize:        curve.DefaultSize,
		GreenSize:      curve.DefaultSize,
		BlueSize:       curve.DefaultSize,
		Depth:          curve.DepthFloat64,
		Cooperative:    false,
	}
}

// Backend is the in-memory monitor.Backend implementation.
type Backend struct {
	cfg     Config
	running bool
	state   map[*monitor.CRTC]*crtcState
}

type crtcState struct {
	ramps    curve.Ramps
	layers   map[string]layer // keyed by rule, when cooperative
	restored bool
}

type layer struct {
	ramps    curve.Ramps
	priority int64
}

// New constructs a dummy Backend presenting the given fake site shape.
func New(cfg Config) *Backend {
	return &Backend{cfg: cfg, state: make(map[*monitor.CRTC]*crtcState)}
}

func (b *Backend) Name() string { return "dummy" }

func (b *Backend) Start() error {
	b.running = true
	return nil
}

func (b *Backend) Stop() error {
	b.running = false
	return nil
}

// OpenSite builds the fake screens/CRTCs described by b.cfg. display
// is accepted but ignored, since the dummy backend has no real site
// to select among.
func (b *Backend) OpenSite(display string) ([]*monitor.Screen, error) {
	screens := make([]*monitor.Screen, b.cfg.Screens)
	for si := range screens {
		screen, err := b.OpenPartition(si)
		if err != nil {
			return nil, err
		}
		screens[si] = screen
	}
	return screens, nil
}

func (b *Backend) OpenPartition(index int) (*monitor.Screen, error) {
	screen := &monitor.Screen{}
	for ci := 0; ci < b.cfg.CRTCsPerScreen; ci++ {
		c, err := b.OpenCRTC(screen, ci)
		if err != nil {
			return nil, err
		}
		screen.CRTCs = append(screen.CRTCs, c)
	}
	return screen, nil
}

func (b *Backend) OpenCRTC(screen *monitor.Screen, index int) (*monitor.CRTC, error) {
	c := &monitor.CRTC{
		Backend:       b.Name(),
		RedSize:       b.cfg.RedSize,
		GreenSize:     b.cfg.GreenSize,
		BlueSize:      b.cfg.BlueSize,
		Depth:         b.cfg.Depth,
		GammaSupport:  monitor.Yes,
		Subpixel:      monitor.SubpixelUnknown,
		Active:        true,
		ConnectorName: fmt.Sprintf("DUMMY-%d", index),
		ConnectorType: "None",
		Cooperative:   b.cfg.Cooperative,
	}
	monitor.Bind(c, b)
	b.state[c] = &crtcState{
		ramps:  c.NativeRamps(),
		layers: make(map[string]layer),
	}
	return c, nil
}

// GetGamma returns the coalesced ramp currently programmed for c: the
// highest-priority cooperative layer if any are registered, else the
// last ramp written directly.
func (b *Backend) GetGamma(c *monitor.CRTC) (curve.Ramps, error) {
	st, ok := b.state[c]
	if !ok {
		return curve.Ramps{}, fmt.Errorf("dummy: unknown CRTC")
	}
	if len(st.layers) == 0 {
		return st.ramps.Clone(), nil
	}
	var best layer
	found := false
	for _, l := range st.layers {
		if !found || l.priority > best.priority {
			best, found = l, true
		}
	}
	return best.ramps.Clone(), nil
}

// SetGamma writes r as the ramp for c, honoring cooperative-gamma
// layering when c.Cooperative is set.
func (b *Backend) SetGamma(c *monitor.CRTC, r curve.Ramps, priority int64, rule string, lifespan monitor.Lifespan) error {
	st, ok := b.state[c]
	if !ok {
		return fmt.Errorf("dummy: unknown CRTC")
	}
	if !c.Cooperative {
		st.ramps = r.Clone()
		return nil
	}
	if rule == "" {
		rule = c.DefaultRule
	}
	if priority == 0 {
		priority = c.DefaultPriority
	}
	if lifespan == monitor.Remove {
		delete(st.layers, rule)
		return nil
	}
	st.layers[rule] = layer{ramps: r.Clone(), priority: priority}
	return nil
}

// Restore resets c to its native identity ramp and clears any
// cooperative layers, matching the behavior a real backend's
// crtc.restore() provides.
func (b *Backend) Restore(c *monitor.CRTC) error {
	st, ok := b.state[c]
	if !ok {
		return fmt.Errorf("dummy: unknown CRTC")
	}
	st.ramps = c.NativeRamps()
	st.layers = make(map[string]layer)
	st.restored = true
	return nil
}
