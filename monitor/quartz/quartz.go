//go:build darwin

/*
NAME
  quartz.go

DESCRIPTION
  quartz.go provides a monitor.Backend stub for macOS Quartz Core
  Graphics gamma tables (CGSetDisplayTransferByTable /
  CGGetDisplayTransferByTable). A real implementation needs cgo
  bindings to CoreGraphics, which this module does not carry; this
  backend degrades to backend-unavailable, the same posture the other
  platform-stub backends take.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package quartz is the macOS Core Graphics monitor.Backend.
package quartz

import (
	"github.com/blueshiftd/blueshift/curve"
	"github.com/blueshiftd/blueshift/monitor"
)

// Backend is the Quartz/CoreGraphics adjustment method.
type Backend struct{}

// New constructs an unconnected Quartz Backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "quartz" }

func (b *Backend) Start() error {
	return monitor.ErrBackendUnavailable("quartz", "requires CoreGraphics cgo bindings not vendored in this build")
}

func (b *Backend) Stop() error { return nil }

func (b *Backend) OpenSite(display string) ([]*monitor.Screen, error) {
	return nil, monitor.ErrBackendUnavailable("quartz", "not started")
}

func (b *Backend) OpenPartition(index int) (*monitor.Screen, error) {
	return nil, monitor.ErrBackendUnavailable("quartz", "not started")
}

func (b *Backend) OpenCRTC(screen *monitor.Screen, index int) (*monitor.CRTC, error) {
	return nil, monitor.ErrBackendUnavailable("quartz", "not started")
}

func (b *Backend) GetGamma(c *monitor.CRTC) (curve.Ramps, error) {
	return curve.Ramps{}, monitor.ErrBackendUnavailable("quartz", "not started")
}

func (b *Backend) SetGamma(c *monitor.CRTC, r curve.Ramps, priority int64, rule string, lifespan monitor.Lifespan) error {
	return monitor.ErrBackendUnavailable("quartz", "not started")
}

func (b *Backend) Restore(c *monitor.CRTC) error {
	return monitor.ErrBackendUnavailable("quartz", "not started")
}
