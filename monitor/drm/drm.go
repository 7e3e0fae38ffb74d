//go:build linux

/*
NAME
  drm.go

DESCRIPTION
  drm.go provides a monitor.Backend stub for Linux DRM/KMS gamma LUTs
  (DRM_IOCTL_MODE_GETGAMMA / DRM_IOCTL_MODE_SETGAMMA). A real
  implementation needs to enumerate /dev/dri/cardN, open it, and issue
  these ioctls per CRTC; this module ships the Go-side Backend shape
  and degrades to backend-unavailable rather than guessing at ioctl
  numbers without a way to exercise them.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package drm is the Linux DRM/KMS monitor.Backend.
package drm

import (
	"github.com/blueshiftd/blueshift/curve"
	"github.com/blueshiftd/blueshift/monitor"
)

// Backend is the DRM/KMS adjustment method. Device is the DRM node to
// open (e.g. "/dev/dri/card0"); New does not touch it until Start.
type Backend struct {
	Device string
}

// New constructs an unconnected DRM Backend targeting device.
func New(device string) *Backend { return &Backend{Device: device} }

func (b *Backend) Name() string { return "drm" }

func (b *Backend) Start() error {
	return monitor.ErrBackendUnavailable("drm", "requires DRM_IOCTL_MODE_*GAMMA support not implemented in this build")
}

func (b *Backend) Stop() error { return nil }

func (b *Backend) OpenSite(display string) ([]*monitor.Screen, error) {
	return nil, monitor.ErrBackendUnavailable("drm", "not started")
}

func (b *Backend) OpenPartition(index int) (*monitor.Screen, error) {
	return nil, monitor.ErrBackendUnavailable("drm", "not started")
}

func (b *Backend) OpenCRTC(screen *monitor.Screen, index int) (*monitor.CRTC, error) {
	return nil, monitor.ErrBackendUnavailable("drm", "not started")
}

func (b *Backend) GetGamma(c *monitor.CRTC) (curve.Ramps, error) {
	return curve.Ramps{}, monitor.ErrBackendUnavailable("drm", "not started")
}

func (b *Backend) SetGamma(c *monitor.CRTC, r curve.Ramps, priority int64, rule string, lifespan monitor.Lifespan) error {
	return monitor.ErrBackendUnavailable("drm", "not started")
}

func (b *Backend) Restore(c *monitor.CRTC) error {
	return monitor.ErrBackendUnavailable("drm", "not started")
}
