//go:build linux

/*
NAME
  vidmode.go

DESCRIPTION
  vidmode.go provides a monitor.Backend stub for X11's XF86VidMode
  extension, an older gamma-ramp interface RandR has largely
  superseded. Like package randr, the real wire protocol requires an
  X11 client library this module does not vendor, so this backend
  reports itself unavailable rather than fabricating CRTC data.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package vidmode is the Linux/X11 XF86VidMode monitor.Backend.
package vidmode

import (
	"github.com/blueshiftd/blueshift/curve"
	"github.com/blueshiftd/blueshift/monitor"
)

// Backend is the VidMode adjustment method.
type Backend struct{}

// New constructs an unconnected VidMode Backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "vidmode" }

func (b *Backend) Start() error {
	return monitor.ErrBackendUnavailable("vidmode", "requires libXxf86vm bindings not vendored in this build")
}

func (b *Backend) Stop() error { return nil }

func (b *Backend) OpenSite(display string) ([]*monitor.Screen, error) {
	return nil, monitor.ErrBackendUnavailable("vidmode", "not started")
}

func (b *Backend) OpenPartition(index int) (*monitor.Screen, error) {
	return nil, monitor.ErrBackendUnavailable("vidmode", "not started")
}

func (b *Backend) OpenCRTC(screen *monitor.Screen, index int) (*monitor.CRTC, error) {
	return nil, monitor.ErrBackendUnavailable("vidmode", "not started")
}

func (b *Backend) GetGamma(c *monitor.CRTC) (curve.Ramps, error) {
	return curve.Ramps{}, monitor.ErrBackendUnavailable("vidmode", "not started")
}

func (b *Backend) SetGamma(c *monitor.CRTC, r curve.Ramps, priority int64, rule string, lifespan monitor.Lifespan) error {
	return monitor.ErrBackendUnavailable("vidmode", "not started")
}

func (b *Backend) Restore(c *monitor.CRTC) error {
	return monitor.ErrBackendUnavailable("vidmode", "not started")
}
