/*
NAME
  scheduler_test.go

DESCRIPTION
  scheduler_test.go exercises the transition state machine against the
  dummy monitor backend: fade-in followed by steady state, and a clean
  Stop that resets to identity curves.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/blueshiftd/blueshift/config"
	"github.com/blueshiftd/blueshift/curve"
	"github.com/blueshiftd/blueshift/monitor"
	"github.com/blueshiftd/blueshift/monitor/dummy"
)

type testLogger struct{}

func (testLogger) Log(int8, string, ...interface{})  {}
func (testLogger) SetLevel(int8)                      {}
func (testLogger) Debug(string, ...interface{})       {}
func (testLogger) Info(string, ...interface{})        {}
func (testLogger) Warning(string, ...interface{})     {}
func (testLogger) Error(string, ...interface{})       {}
func (testLogger) Fatal(string, ...interface{})       {}

func openTestSite(t *testing.T) *monitor.Site {
	t.Helper()
	be := dummy.New(dummy.DefaultConfig())
	site := &monitor.Site{Backend: be}
	if err := site.Open(""); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { site.Close() })
	return site
}

func fastConfig() config.Config {
	c := config.Default()
	c.Logger = testLogger{}
	c.FadeInTime = 20 * time.Millisecond
	c.FadeInSteps = 2
	c.FadeOutTime = 20 * time.Millisecond
	c.FadeOutSteps = 2
	c.WaitPeriod = 10 * time.Millisecond
	c.Temperature = [2]float64{3500, 3500}
	return c
}

func TestSchedulerFadesInThenReachesSteadyState(t *testing.T) {
	site := openTestSite(t)
	s, err := New(fastConfig(), site, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(2 * time.Second)
	for {
		if alpha, delta := s.transState(); delta == 0 && alpha == 0 {
			break
		}
		select {
		case <-deadline:
			s.Stop()
			t.Fatal("scheduler never reached steady state")
		case <-time.After(5 * time.Millisecond):
		}
	}
	s.Stop()

	crtc := site.AllCRTCs()[0]
	got, err := crtc.GetGamma()
	if err != nil {
		t.Fatal(err)
	}
	max := got.Red[len(got.Red)-1]
	if max == 0 {
		t.Fatal("expected a non-degenerate ramp after reset")
	}
}

func TestSchedulerStopResetsToIdentity(t *testing.T) {
	site := openTestSite(t)
	cfg := fastConfig()
	cfg.FadeOutSteps = 0 // skip fade-out so Stop settles quickly
	s, err := New(cfg, site, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if s.Running() {
		t.Fatal("expected scheduler to report not running after Stop")
	}

	got, err := site.AllCRTCs()[0].GetGamma()
	if err != nil {
		t.Fatal(err)
	}
	want := curve.IdentityRamps(len(got.Red), got.Depth)
	for i := range want.Red {
		if math.Abs(got.Red[i]-want.Red[i]) > 1e-9 {
			t.Fatalf("Red[%d] = %v after Stop, want identity %v", i, got.Red[i], want.Red[i])
		}
	}
}

func TestSelectCRTCsFiltersByIndex(t *testing.T) {
	be := dummy.New(dummy.Config{Screens: 1, CRTCsPerScreen: 3, RedSize: 4, GreenSize: 4, BlueSize: 4, Depth: -2})
	site := &monitor.Site{Backend: be}
	if err := site.Open(""); err != nil {
		t.Fatal(err)
	}
	all := site.AllCRTCs()
	if len(all) != 3 {
		t.Fatalf("got %d CRTCs, want 3", len(all))
	}
	got := selectCRTCs(site, []string{"1"})
	if len(got) != 1 || got[0] != all[1] {
		t.Fatalf("selectCRTCs(%v) did not select CRTC 1", []string{"1"})
	}
	gotAll := selectCRTCs(site, nil)
	if len(gotAll) != 3 {
		t.Fatalf("selectCRTCs(nil) = %d CRTCs, want 3", len(gotAll))
	}
}
