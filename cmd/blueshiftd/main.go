/*
NAME
  main.go

DESCRIPTION
  main.go is the blueshiftd daemon entry point: it parses stdlib flags
  into config.Variables names (one repeatable flag per day/night pair),
  opens the best available monitor
  backend, starts scheduler.Scheduler, notifies systemd as soon as Start
  returns (before the first adjustment is necessarily pushed), and
  watches --configurations for changes
  with fsnotify, logging each change; it does not call
  scheduler.Reconfigure.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package main is blueshiftd, the continuous day/night color
// correction daemon.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/blueshiftd/blueshift/backlight"
	"github.com/blueshiftd/blueshift/config"
	"github.com/blueshiftd/blueshift/monitor"
	"github.com/blueshiftd/blueshift/monitor/dummy"
	"github.com/blueshiftd/blueshift/scheduler"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration: lumberjack rotation plus logging.New.
const (
	logPath      = "/var/log/blueshiftd/blueshiftd.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logSuppress  = false
)

// repeatedFlag collects up to two values (day then night) for a flag
// given twice on the command line, for --gamma and friends.
type repeatedFlag struct {
	values []string
}

func (r *repeatedFlag) String() string { return strings.Join(r.values, ",") }

func (r *repeatedFlag) Set(v string) error {
	if len(r.values) >= 2 {
		return fmt.Errorf("flag given more than twice")
	}
	r.values = append(r.values, v)
	return nil
}

func main() {
	showVersion := flag.Bool("version", false, "show version")

	flags := map[string]*repeatedFlag{
		config.KeyGammaDay:          {},
		config.KeyBrightnessDay:     {},
		config.KeyCIEBrightnessDay:  {},
		config.KeyTemperatureDay:    {},
		config.KeyCIETemperatureDay: {},
	}
	flag.Var(flags[config.KeyGammaDay], "gamma", "gamma as Y or R:G:B, given once for both periods or twice for day then night")
	flag.Var(flags[config.KeyBrightnessDay], "brightness", "sRGB brightness as Y or R:G:B, given once or twice")
	flag.Var(flags[config.KeyCIEBrightnessDay], "cie-brightness", "CIE Y brightness, given once or twice")
	flag.Var(flags[config.KeyTemperatureDay], "temperature", "sRGB temperature in Kelvin, given once or twice")
	flag.Var(flags[config.KeyCIETemperatureDay], "cie-temperature", "CIE temperature in Kelvin, given once or twice")

	location := flag.String("location", "", "observer position as LAT:LON")
	panicgate := flag.Bool("panicgate", false, "skip the initial fade-in")
	reset := flag.Bool("reset", false, "apply identity curves once and exit")
	output := flag.String("output", "", "comma-separated CRTC indices to adjust; empty means every CRTC")
	configurations := flag.String("configurations", "", "path to a configuration script, watched for changes")
	waitPeriod := flag.Float64("wait-period", 60, "seconds between periodic re-applications in steady state")
	fadeInTime := flag.Float64("fade-in-time", 0.5, "seconds the fade-in transition lasts")
	fadeInSteps := flag.Int("fade-in-steps", 4, "steps the fade-in transition is divided into")
	fadeOutTime := flag.Float64("fade-out-time", 0.5, "seconds the fade-out transition lasts")
	fadeOutSteps := flag.Int("fade-out-steps", 4, "steps the fade-out transition is divided into")
	backlightName := flag.String("backlight", "", "sysfs backlight controller name; empty disables backlight control")
	verbosity := flag.Int("verbosity", int(logging.Info), "log verbosity (0=Debug .. 4=Fatal)")

	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(int8(*verbosity), io.MultiWriter(fileLog, os.Stderr), logSuppress)

	cfg := config.Default()
	cfg.Logger = log

	vars := map[string]string{}
	for i, v := range flags[config.KeyGammaDay].values {
		vars[dayNightKey(config.KeyGammaDay, config.KeyGammaNight, i)] = v
	}
	for i, v := range flags[config.KeyBrightnessDay].values {
		vars[dayNightKey(config.KeyBrightnessDay, config.KeyBrightnessNight, i)] = v
	}
	for i, v := range flags[config.KeyCIEBrightnessDay].values {
		vars[dayNightKey(config.KeyCIEBrightnessDay, config.KeyCIEBrightnessNight, i)] = v
	}
	for i, v := range flags[config.KeyTemperatureDay].values {
		vars[dayNightKey(config.KeyTemperatureDay, config.KeyTemperatureNight, i)] = v
	}
	for i, v := range flags[config.KeyCIETemperatureDay].values {
		vars[dayNightKey(config.KeyCIETemperatureDay, config.KeyCIETemperatureNight, i)] = v
	}
	if *location != "" {
		vars[config.KeyLocation] = *location
	}
	if *output != "" {
		vars[config.KeyOutput] = *output
	}
	vars[config.KeyConfigurations] = *configurations
	vars[config.KeyFadeInTime] = fmt.Sprintf("%v", *fadeInTime)
	vars[config.KeyFadeInSteps] = fmt.Sprintf("%d", *fadeInSteps)
	vars[config.KeyFadeOutTime] = fmt.Sprintf("%v", *fadeOutTime)
	vars[config.KeyFadeOutSteps] = fmt.Sprintf("%d", *fadeOutSteps)
	vars[config.KeyWaitPeriod] = fmt.Sprintf("%v", *waitPeriod)
	vars[config.KeyBacklight] = *backlightName
	cfg.Update(vars)
	cfg.Panicgate = *panicgate
	cfg.Reset = *reset
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	site, err := openSite(log)
	if err != nil {
		log.Fatal("could not open a monitor backend", "error", err)
	}
	defer site.Close()

	var bl *backlight.Controller
	if cfg.Backlight != "" {
		bl, err = backlight.Open(cfg.Backlight, 0, false)
		if err != nil {
			log.Warning("could not open backlight controller; continuing without it", "error", err, "name", cfg.Backlight)
			bl = nil
		}
	}

	s, err := scheduler.New(cfg, site, bl)
	if err != nil {
		log.Fatal("could not build scheduler", "error", err)
	}
	if err := s.Start(); err != nil {
		log.Fatal("could not start scheduler", "error", err)
	}

	if ok, _ := daemon.SdNotify(false, daemon.SdNotifyReady); ok {
		log.Debug("notified systemd of readiness")
	}

	if cfg.ConfigurationsFile != "" {
		go watchConfigurations(cfg.ConfigurationsFile, s, log)
	}

	waitForTerm(log)
	s.Stop()
}

func dayNightKey(dayKey, nightKey string, index int) string {
	if index == 0 {
		return dayKey
	}
	return nightKey
}

// openSite tries every compiled-in backend in priority order, falling
// back to the always-available dummy backend.
func openSite(log logging.Logger) (*monitor.Site, error) {
	for _, be := range candidateBackends() {
		site := &monitor.Site{Backend: be}
		if err := site.Open(""); err == nil {
			log.Info("opened monitor backend", "backend", be.Name())
			return site, nil
		}
		log.Debug("backend unavailable", "backend", be.Name())
	}
	site := &monitor.Site{Backend: dummy.New(dummy.DefaultConfig())}
	if err := site.Open(""); err != nil {
		return nil, err
	}
	log.Warning("no real monitor backend available; using the dummy backend")
	return site, nil
}

// watchConfigurations logs every write to or creation of the
// configurations file. It does not reload the scheduler's
// configuration; s is not used.
func watchConfigurations(path string, s *scheduler.Scheduler, log logging.Logger) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("could not start configuration watcher", "error", err)
		return
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		log.Error("could not watch configurations file", "error", err, "path", path)
		return
	}
	for event := range watcher.Events {
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			continue
		}
		log.Info("configurations file changed; reload is driven by the out-of-scope script collaborator", "path", path)
	}
}

func waitForTerm(log logging.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT)
	<-c
	log.Info("received interrupt, shutting down")
}
