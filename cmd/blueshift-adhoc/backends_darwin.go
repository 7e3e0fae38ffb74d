//go:build darwin

package main

import (
	"github.com/blueshiftd/blueshift/monitor"
	"github.com/blueshiftd/blueshift/monitor/quartz"
)

func candidateBackends() []monitor.Backend {
	return []monitor.Backend{quartz.New()}
}
