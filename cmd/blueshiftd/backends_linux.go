//go:build linux

package main

import (
	"github.com/blueshiftd/blueshift/monitor"
	"github.com/blueshiftd/blueshift/monitor/drm"
	"github.com/blueshiftd/blueshift/monitor/randr"
	"github.com/blueshiftd/blueshift/monitor/vidmode"
)

// candidateBackends lists Linux's monitor.Backend implementations in
// priority order: RandR first, then the older
// VidMode extension, then a direct DRM KMS device.
func candidateBackends() []monitor.Backend {
	return []monitor.Backend{randr.New(), vidmode.New(), drm.New("/dev/dri/card0")}
}
