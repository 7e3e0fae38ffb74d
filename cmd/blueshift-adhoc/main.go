/*
NAME
  main.go

DESCRIPTION
  main.go is the blueshift-adhoc entry point: parse flags, decide
  continuous vs one-shot mode per adhoc.Continuous, and either hand off
  to scheduler.Scheduler or run adhoc.Client once, matching
  original_source/src/adhoc.py's mode-selection script body.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package main is blueshift-adhoc, the one-shot (or simple continuous)
// color correction client.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/blueshiftd/blueshift/adhoc"
	"github.com/blueshiftd/blueshift/config"
	"github.com/blueshiftd/blueshift/monitor"
	"github.com/blueshiftd/blueshift/monitor/dummy"
	"github.com/blueshiftd/blueshift/scheduler"
)

const version = "v0.1.0"

const (
	logPath      = "/var/log/blueshiftd/blueshift-adhoc.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 2
	logMaxAge    = 28 // days
	logSuppress  = false
)

func main() {
	showVersion := flag.Bool("version", false, "show version")
	gamma := flag.String("gamma", "", "gamma as Y or R:G:B, applied to both day and night")
	brightness := flag.String("brightness", "", "sRGB brightness as Y or R:G:B, applied to both day and night")
	cieBrightness := flag.String("cie-brightness", "", "CIE Y brightness, applied to both day and night")
	temperature := flag.String("temperature", "", "sRGB temperature in Kelvin, DAY:NIGHT or a single value")
	cieTemperature := flag.String("cie-temperature", "", "CIE temperature in Kelvin, DAY:NIGHT or a single value")
	location := flag.String("location", "", "observer position as LAT:LON; enables continuous mode")
	panicgate := flag.Bool("panicgate", false, "skip the fade-in and apply immediately")
	reset := flag.Bool("reset", false, "revert to identity curves and exit")
	output := flag.String("output", "", "comma-separated CRTC indices to adjust; empty means every CRTC")
	verbosity := flag.Int("verbosity", int(logging.Info), "log verbosity (0=Debug .. 4=Fatal)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	fileLog := &lumberjack.Logger{Filename: logPath, MaxSize: logMaxSize, MaxBackups: logMaxBackup, MaxAge: logMaxAge}
	log := logging.New(int8(*verbosity), io.MultiWriter(fileLog, os.Stderr), logSuppress)

	cfg := config.Default()
	cfg.Logger = log
	cfg.Panicgate = *panicgate
	cfg.Reset = *reset

	vars := map[string]string{}
	if *gamma != "" {
		vars[config.KeyGammaDay], vars[config.KeyGammaNight] = *gamma, *gamma
	}
	if *brightness != "" {
		vars[config.KeyBrightnessDay], vars[config.KeyBrightnessNight] = *brightness, *brightness
	}
	if *cieBrightness != "" {
		vars[config.KeyCIEBrightnessDay], vars[config.KeyCIEBrightnessNight] = *cieBrightness, *cieBrightness
	}
	splitPair(*temperature, &vars, config.KeyTemperatureDay, config.KeyTemperatureNight)
	splitPair(*cieTemperature, &vars, config.KeyCIETemperatureDay, config.KeyCIETemperatureNight)
	if *location != "" {
		vars[config.KeyLocation] = *location
	}
	if *output != "" {
		vars[config.KeyOutput] = *output
	}
	cfg.Update(vars)
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	site, err := openSite(log)
	if err != nil {
		log.Fatal("could not open a monitor backend", "error", err)
	}
	defer site.Close()

	if adhoc.Continuous(cfg) {
		s, err := scheduler.New(cfg, site, nil)
		if err != nil {
			log.Fatal("could not build scheduler", "error", err)
		}
		if err := s.Start(); err != nil {
			log.Fatal("could not start scheduler", "error", err)
		}
		waitForTerm(log)
		s.Stop()
		return
	}

	client := adhoc.New(cfg, site)
	if err := client.Run(); err != nil {
		log.Fatal("adjustment failed", "error", err)
	}
}

// splitPair fills dayKey/nightKey in vars from a "DAY:NIGHT" or single
// value string, leaving vars untouched when raw is empty.
func splitPair(raw string, vars *map[string]string, dayKey, nightKey string) {
	if raw == "" {
		return
	}
	day, night := raw, raw
	for i, r := range raw {
		if r == ':' {
			day, night = raw[:i], raw[i+1:]
			break
		}
	}
	(*vars)[dayKey] = day
	(*vars)[nightKey] = night
}

func openSite(log logging.Logger) (*monitor.Site, error) {
	for _, be := range candidateBackends() {
		site := &monitor.Site{Backend: be}
		if err := site.Open(""); err == nil {
			log.Info("opened monitor backend", "backend", be.Name())
			return site, nil
		}
	}
	site := &monitor.Site{Backend: dummy.New(dummy.DefaultConfig())}
	if err := site.Open(""); err != nil {
		return nil, err
	}
	log.Warning("no real monitor backend available; using the dummy backend")
	return site, nil
}

func waitForTerm(log logging.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c
	log.Info("received interrupt, shutting down")
}
