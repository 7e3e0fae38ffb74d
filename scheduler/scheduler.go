/*
NAME
  scheduler.go

DESCRIPTION
  scheduler.go drives curve.Engine and monitor.Site through the
  transition state machine describes: fade in on start,
  steady periodic application, fade out and re-fade-in around SIGUSR2,
  and a final fade out before exit. Structurally it mirrors
  revid.Revid: a cfg, a running flag, a sync.WaitGroup, an error
  channel drained by a handleErrors goroutine, and a notify channel
  standing in for the original's condition-variable-plus-SIGALRM
  interruptable sleep.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package scheduler runs blueshiftd's continuous adjustment loop: the
// fade state machine, signal handling and periodic re-application of
// the ramp engine to every configured CRTC.
package scheduler

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/blueshiftd/blueshift/backlight"
	"github.com/blueshiftd/blueshift/blackbody"
	"github.com/blueshiftd/blueshift/colour"
	"github.com/blueshiftd/blueshift/config"
	"github.com/blueshiftd/blueshift/curve"
	"github.com/blueshiftd/blueshift/monitor"
	"github.com/blueshiftd/blueshift/solar"
)

// backlightNightFloor is the fraction of backlight.Controller.Maximum
// the panel is dimmed to at full night, when a Controller is
// configured; full day leaves the panel at its native brightness.
const backlightNightFloor = 0.3

// Scheduler owns the process-wide ramp engine and the site it writes
// to, and runs the transition state machine against them until Stop
// is called or a TERM signal arrives.
type Scheduler struct {
	engine  *curve.Engine
	site    *monitor.Site
	multi   *monitor.MultiCRTC
	backlightCtl *backlight.Controller

	cfgMu sync.RWMutex
	cfg   config.Config

	running   bool
	panicgate bool
	panicking bool

	transAlpha float64
	transDelta float64

	wg      sync.WaitGroup
	err     chan error
	notify  chan struct{}
	stopCh  chan struct{}
	sigCh   chan os.Signal
}

// New builds a Scheduler over an already-open site, selecting the
// CRTCs named by cfg.Output (every CRTC on the site when empty) and
// bucketing them with monitor.NewMultiCRTC. bl may be nil to disable
// backlight control even when cfg.Backlight names a controller (the
// caller is expected to have already called backlight.Open).
func New(cfg config.Config, site *monitor.Site, bl *backlight.Controller) (*Scheduler, error) {
	crtcs := selectCRTCs(site, cfg.Output)
	s := &Scheduler{
		engine:       curve.NewEngine(curve.DefaultSize, curve.DefaultOutputSize),
		site:         site,
		multi:        monitor.NewMultiCRTC(crtcs),
		backlightCtl: bl,
		cfg:          cfg,
		panicgate:    cfg.Panicgate,
		err:          make(chan error, 8),
	}
	return s, nil
}

// selectCRTCs resolves cfg.Output (a list of decimal CRTC indices into
// site.AllCRTCs, or empty for every CRTC) to a concrete slice.
func selectCRTCs(site *monitor.Site, output []string) []*monitor.CRTC {
	all := site.AllCRTCs()
	if len(output) == 0 {
		return all
	}
	var out []*monitor.CRTC
	for _, sel := range output {
		idx := atoiOrNegative(sel)
		if idx >= 0 && idx < len(all) {
			out = append(out, all[idx])
		}
	}
	return out
}

func atoiOrNegative(s string) int {
	n := 0
	if s == "" {
		return -1
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func (s *Scheduler) config() config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// Reconfigure replaces the scheduler's configuration, the programmatic
// equivalent of SIGUSR1's script reload (the script interpreter itself
// is an out-of-scope collaborator; callers drive Reconfigure from
// whatever decodes their own configuration source).
func (s *Scheduler) Reconfigure(cfg config.Config) {
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

// Running reports whether the scheduler's loop is active.
func (s *Scheduler) Running() bool {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.running
}

// Start launches the transition loop and installs TERM/USR1/USR2
// signal handlers. Calling Start while the loop is already running logs
// a warning and returns nil.
func (s *Scheduler) Start() error {
	cfg := s.config()
	if s.Running() {
		cfg.Logger.Warning("scheduler already running")
		return nil
	}

	s.stopCh = make(chan struct{})
	s.notify = make(chan struct{}, 1)
	s.sigCh = make(chan os.Signal, 8)
	signal.Notify(s.sigCh, syscall.SIGTERM, syscall.SIGUSR1, syscall.SIGUSR2)

	s.cfgMu.Lock()
	s.running = true
	s.cfgMu.Unlock()

	s.wg.Add(2)
	go s.handleErrors()
	go func() {
		defer s.wg.Done()
		s.handleSignals()
	}()

	s.wg.Add(1)
	go s.run()

	return nil
}

// Stop requests the loop exit (the programmatic equivalent of
// SIGTERM) and waits for it, and the signal/error goroutines, to
// finish.
func (s *Scheduler) Stop() {
	if !s.Running() {
		return
	}
	s.handleTerm()
	signal.Stop(s.sigCh)
	close(s.stopCh)
	s.wg.Wait()
}

// Toggle is the programmatic equivalent of SIGUSR2: it stops skipping
// fade-in (clears panicgate) and reverses the current transition
// direction, fading out if steady or toward the opposite state if
// already transitioning.
func (s *Scheduler) Toggle() {
	s.cfgMu.Lock()
	s.panicgate = false
	if s.transDelta == 0 {
		s.transDelta = 1
	} else {
		s.transDelta = -s.transDelta
	}
	s.cfgMu.Unlock()
	s.wake()
}

func (s *Scheduler) wake() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Scheduler) handleSignals() {
	for {
		select {
		case <-s.stopCh:
			return
		case sig := <-s.sigCh:
			switch sig {
			case syscall.SIGTERM:
				s.handleTerm()
			case syscall.SIGUSR2:
				s.Toggle()
			case syscall.SIGUSR1:
				s.config().Logger.Info("SIGUSR1 received; reconfiguration is driven by Reconfigure, not the signal itself")
			}
		}
	}
}

func (s *Scheduler) handleTerm() {
	s.cfgMu.Lock()
	if s.transDelta > 0 {
		s.panicking = true
	}
	s.transDelta = 1
	s.running = false
	s.cfgMu.Unlock()
	s.wake()
}

func (s *Scheduler) handleErrors() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stopCh:
			return
		case err := <-s.err:
			if err != nil {
				s.config().Logger.Error("scheduler: async error", "error", err.Error())
			}
		}
	}
}

func (s *Scheduler) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-s.notify:
	case <-s.stopCh:
	}
}

func (s *Scheduler) waitForWake() {
	select {
	case <-s.notify:
	case <-s.stopCh:
	}
}

func (s *Scheduler) withFadeIn() bool {
	cfg := s.config()
	s.cfgMu.RLock()
	gate := s.panicgate
	s.cfgMu.RUnlock()
	return cfg.FadeInSteps > 0 && cfg.FadeInTime > 0 && !gate
}

func (s *Scheduler) withFadeOut() bool {
	cfg := s.config()
	return cfg.FadeOutSteps > 0 && cfg.FadeOutTime > 0
}

func (s *Scheduler) isRunning() bool {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.running
}

// transState returns the current transition alpha/delta under lock;
// setTransState writes them back the same way. Both transDelta and
// transAlpha are read and written from run() as well as from Toggle
// and handleTerm, which execute on the signal-handling goroutine.
func (s *Scheduler) transState() (alpha, delta float64) {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.transAlpha, s.transDelta
}

func (s *Scheduler) setTransState(alpha, delta float64) {
	s.cfgMu.Lock()
	s.transAlpha, s.transDelta = alpha, delta
	s.cfgMu.Unlock()
}

func (s *Scheduler) isPanicking() bool {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.panicking
}

func (s *Scheduler) setPanicking(v bool) {
	s.cfgMu.Lock()
	s.panicking = v
	s.cfgMu.Unlock()
}

// run is the transition state machine: steady while transDelta == 0,
// fading in while negative, fading out while positive, finishing with
// one last fade out before resetting and returning.
func (s *Scheduler) run() {
	defer s.wg.Done()

	s.setTransState(1, -1)

	tick := func(pureness float64) {
		if err := s.apply(s.dayness(), pureness); err != nil {
			s.err <- err
		}
	}

	for s.isRunning() {
		alpha, delta := s.transState()
		switch {
		case delta == 0:
			tick(0)
			if s.isRunning() {
				s.sleep(s.config().WaitPeriod)
			}

		case delta < 0:
			if !s.withFadeIn() {
				s.setTransState(0, 0)
				tick(0)
				continue
			}
			tick(alpha)
			s.sleep(s.config().FadeInTime / time.Duration(s.config().FadeInSteps))
			alpha -= 1 / float64(s.config().FadeInSteps)
			if alpha <= 0 {
				s.setTransState(0, 0)
			} else {
				s.setTransState(alpha, delta)
			}

		default:
			if !s.withFadeOut() {
				s.setTransState(1, delta)
				tick(1)
				s.waitForWake()
				continue
			}
			alpha += 1 / float64(s.config().FadeOutSteps)
			if alpha >= 1 {
				alpha = 1
			}
			s.setTransState(alpha, delta)
			tick(alpha)
			if alpha >= 1 {
				s.waitForWake()
			} else {
				s.sleep(s.config().FadeOutTime / time.Duration(s.config().FadeOutSteps))
			}
		}
	}

	if s.withFadeOut() {
		for !s.isPanicking() {
			alpha, delta := s.transState()
			alpha += 1 / float64(s.config().FadeOutSteps)
			if alpha >= 1 {
				alpha = 1
				s.setPanicking(true)
			}
			s.setTransState(alpha, delta)
			tick(alpha)
			if !s.withFadeOut() {
				break
			}
			if !s.isPanicking() {
				s.sleep(s.config().FadeOutTime / time.Duration(s.config().FadeOutSteps))
			}
		}
	}

	s.reset()
}

// dayness reports the [0, 1] degree to which it is currently day, from
// the configured location's solar elevation when known, or a crude
// clock-based estimate otherwise.
func (s *Scheduler) dayness() float64 {
	cfg := s.config()
	if cfg.HasLocation {
		return solar.Visibility(cfg.Latitude, cfg.Longitude, time.Now(), -6, 3)
	}
	return clockDayness(time.Now())
}

// clockDayness places 100% day at 12:00 and 100% night at 22:00,
// linearly in between, and rises linearly again over the 14 hours from
// 22:00 to the next 12:00, matching the crude clock-only fallback
// original_source/src/adhoc.py uses when no location is configured.
func clockDayness(t time.Time) float64 {
	h := float64(t.Hour()) + (float64(t.Minute())+float64(t.Second())/60)/60
	if h >= 12 && h <= 22 {
		return 1 - (h-12)/10
	}
	if h < 12 {
		h += 24
	}
	return (h - 22) / 14
}

func temperatureAlgorithm(t float64) (colour.RGB, error) {
	rgb, err := blackbody.CMF10Deg(t)
	if err != nil {
		return colour.RGB{}, err
	}
	return blackbody.ClipWhitepoint(blackbody.DivideByMaximum(rgb)), nil
}

// interpolScalar blends a default value, a day/night pair and a
// pureness weight exactly as original_source/src/adhoc.py's
// interpol_ does: pureness 1 is the untouched default; pureness 0 is
// the day/night pair blended by dayness.
func interpolScalar(identity, day, night, dayness, pureness float64) float64 {
	return identity*pureness + (day*dayness+night*(1-dayness))*(1-pureness)
}

func interpolRGB(identity float64, day, night config.RGB, dayness, pureness float64) config.RGB {
	return config.RGB{
		R: interpolScalar(identity, day.R, night.R, dayness, pureness),
		G: interpolScalar(identity, day.G, night.G, dayness, pureness),
		B: interpolScalar(identity, day.B, night.B, dayness, pureness),
	}
}

// apply resets the working ramp triple and re-derives it from the
// current configuration at the given dayness/pureness weights, then
// pushes the result to every configured CRTC and, if configured, the
// backlight panel. pureness 1 means fully clean (identity) curves;
// pureness 0 means fully adjusted, exactly as
// original_source/src/adhoc.py's apply(dayness, pureness) defines it.
func (s *Scheduler) apply(dayness, pureness float64) error {
	cfg := s.config()

	s.engine.StartOver()

	rgbTemp := interpolScalar(6500, cfg.Temperature[config.Day], cfg.Temperature[config.Night], dayness, pureness)
	if err := s.engine.RGBTemperature(rgbTemp, temperatureAlgorithm); err != nil {
		return err
	}
	cieTemp := interpolScalar(6500, cfg.CIETemperature[config.Day], cfg.CIETemperature[config.Night], dayness, pureness)
	if err := s.engine.CIETemperature(cieTemp, temperatureAlgorithm); err != nil {
		return err
	}

	rgbBright := interpolRGB(1, cfg.Brightness[config.Day], cfg.Brightness[config.Night], dayness, pureness)
	s.engine.RGBBrightness(rgbBright.R, curve.F(rgbBright.G), curve.F(rgbBright.B))
	cieBright := interpolScalar(1, cfg.CIEBrightness[config.Day], cfg.CIEBrightness[config.Night], dayness, pureness)
	s.engine.CIEBrightness(cieBright, nil, nil)

	s.engine.Clip()

	gammaRGB := interpolRGB(1, cfg.Gamma[config.Day], cfg.Gamma[config.Night], dayness, pureness)
	s.engine.Gamma(gammaRGB.R, curve.F(gammaRGB.G), curve.F(gammaRGB.B))

	s.engine.Clip()

	if err := s.push(); err != nil {
		return err
	}

	if s.backlightCtl != nil {
		level := interpolScalar(1, 1, backlightNightFloor, dayness, pureness)
		if err := s.backlightCtl.SetLevel(level); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) push() error {
	if s.multi == nil {
		return nil
	}
	return s.multi.SetGamma(s.engine.Working, 0, "", monitor.UntilRemoval)
}

// reset discards every adjustment and pushes the identity ramp,
// matching original_source/src/__main__.py's reset().
func (s *Scheduler) reset() {
	s.engine.StartOver()
	if err := s.push(); err != nil {
		s.config().Logger.Error("scheduler: reset push failed", "error", err.Error())
	}
}
