//go:build windows

/*
NAME
  w32gdi.go

DESCRIPTION
  w32gdi.go provides a monitor.Backend stub for Windows GDI's
  SetDeviceGammaRamp/GetDeviceGammaRamp. A real implementation calls
  these via golang.org/x/sys/windows and a device context handle per
  monitor; this module ships the Go-side Backend shape and degrades to
  backend-unavailable, the same posture package drm and package randr
  take for protocols this build does not wire up.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package w32gdi is the Windows GDI monitor.Backend.
package w32gdi

import (
	"github.com/blueshiftd/blueshift/curve"
	"github.com/blueshiftd/blueshift/monitor"
)

// Backend is the GDI adjustment method.
type Backend struct{}

// New constructs an unconnected GDI Backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "w32gdi" }

func (b *Backend) Start() error {
	return monitor.ErrBackendUnavailable("w32gdi", "requires GDI device-context gamma calls not implemented in this build")
}

func (b *Backend) Stop() error { return nil }

func (b *Backend) OpenSite(display string) ([]*monitor.Screen, error) {
	return nil, monitor.ErrBackendUnavailable("w32gdi", "not started")
}

func (b *Backend) OpenPartition(index int) (*monitor.Screen, error) {
	return nil, monitor.ErrBackendUnavailable("w32gdi", "not started")
}

func (b *Backend) OpenCRTC(screen *monitor.Screen, index int) (*monitor.CRTC, error) {
	return nil, monitor.ErrBackendUnavailable("w32gdi", "not started")
}

func (b *Backend) GetGamma(c *monitor.CRTC) (curve.Ramps, error) {
	return curve.Ramps{}, monitor.ErrBackendUnavailable("w32gdi", "not started")
}

func (b *Backend) SetGamma(c *monitor.CRTC, r curve.Ramps, priority int64, rule string, lifespan monitor.Lifespan) error {
	return monitor.ErrBackendUnavailable("w32gdi", "not started")
}

func (b *Backend) Restore(c *monitor.CRTC) error {
	return monitor.ErrBackendUnavailable("w32gdi", "not started")
}
