//go:build windows

package main

import (
	"github.com/blueshiftd/blueshift/monitor"
	"github.com/blueshiftd/blueshift/monitor/w32gdi"
)

func candidateBackends() []monitor.Backend {
	return []monitor.Backend{w32gdi.New()}
}
