//go:build linux

/*
NAME
  randr.go

DESCRIPTION
  randr.go provides a monitor.Backend stub for X11's RandR extension.
  Driving RandR's real wire protocol requires either cgo bindings to
  libXrandr or a full X11 client implementation, neither of which is
  available in this module's dependency set; this backend reports
  itself unavailable rather than silently returning fabricated CRTC
  data, the same degrade-on-unsupported-hardware behavior
  device/raspivid shows on a non-Raspberry-Pi host.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package randr is the Linux/X11 RandR monitor.Backend.
package randr

import (
	"github.com/blueshiftd/blueshift/curve"
	"github.com/blueshiftd/blueshift/monitor"
)

// Backend is the RandR adjustment method. Its Start always fails with
// a backend-unavailable error in this build, since the real backend
// requires an X11 client library this module does not vendor.
type Backend struct{}

// New constructs an unconnected RandR Backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "randr" }

func (b *Backend) Start() error {
	return monitor.ErrBackendUnavailable("randr", "requires libXrandr bindings not vendored in this build")
}

func (b *Backend) Stop() error { return nil }

func (b *Backend) OpenSite(display string) ([]*monitor.Screen, error) {
	return nil, monitor.ErrBackendUnavailable("randr", "not started")
}

func (b *Backend) OpenPartition(index int) (*monitor.Screen, error) {
	return nil, monitor.ErrBackendUnavailable("randr", "not started")
}

func (b *Backend) OpenCRTC(screen *monitor.Screen, index int) (*monitor.CRTC, error) {
	return nil, monitor.ErrBackendUnavailable("randr", "not started")
}

func (b *Backend) GetGamma(c *monitor.CRTC) (curve.Ramps, error) {
	return curve.Ramps{}, monitor.ErrBackendUnavailable("randr", "not started")
}

func (b *Backend) SetGamma(c *monitor.CRTC, r curve.Ramps, priority int64, rule string, lifespan monitor.Lifespan) error {
	return monitor.ErrBackendUnavailable("randr", "not started")
}

func (b *Backend) Restore(c *monitor.CRTC) error {
	return monitor.ErrBackendUnavailable("randr", "not started")
}
