/*
NAME
  monitor.go

DESCRIPTION
  monitor.go defines the CRTC/Screen/Site graph, the Backend dispatch
  interface every adjustment method
  (dummy/randr/vidmode/drm/w32gdi/quartz) implements, the three-step
  ramp coercion pipeline (resize, depth rescale, backend write), and
  MultiCRTC bucketing for writing one working ramp to many heterogeneous
  CRTCs efficiently.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package monitor models the output side of blueshiftd: the CRTCs a
// backend exposes, grouped into screens and a site, and the coercion
// pipeline that adapts the ramp engine's working curves to whatever
// size and depth each CRTC natively expects.
package monitor

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/blueshiftd/blueshift/curve"
)

// Tristate is a three-valued support flag: a backend may not know
// whether a capability (e.g. gamma adjustment) is available until it
// tries.
type Tristate int

const (
	No Tristate = iota
	Maybe
	Yes
)

func (t Tristate) String() string {
	switch t {
	case No:
		return "no"
	case Maybe:
		return "maybe"
	case Yes:
		return "yes"
	default:
		return "unknown"
	}
}

// SubpixelOrder names the physical arrangement of a CRTC's subpixels.
type SubpixelOrder int

const (
	SubpixelUnknown SubpixelOrder = iota
	SubpixelRGB
	SubpixelBGR
	SubpixelVRGB
	SubpixelVBGR
	SubpixelNone
)

func (s SubpixelOrder) String() string {
	switch s {
	case SubpixelRGB:
		return "RGB"
	case SubpixelBGR:
		return "BGR"
	case SubpixelVRGB:
		return "vRGB"
	case SubpixelVBGR:
		return "vBGR"
	case SubpixelNone:
		return "None"
	default:
		return "unknown"
	}
}

// Lifespan is the duration of a cooperative-gamma adjustment.
type Lifespan int

const (
	UntilDeath Lifespan = iota
	UntilRemoval
	Remove
)

// Kind enumerates the monitor package's error kinds.
type Kind int

const (
	KindBackendUnavailable Kind = iota
	KindBackendIO
	KindBadArgument
)

func (k Kind) String() string {
	switch k {
	case KindBackendUnavailable:
		return "backend-unavailable"
	case KindBackendIO:
		return "backend-io"
	case KindBadArgument:
		return "bad-argument"
	default:
		return "unknown"
	}
}

// Error wraps a Kind with a message, so callers can branch on the kind
// of failure without string matching.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("monitor: %s: %s", e.Kind, e.Msg) }

func errUnavailable(msg string) error { return &Error{Kind: KindBackendUnavailable, Msg: msg} }

// ErrBackendUnavailable builds the backend-unavailable error a
// platform-stub backend returns when its real wire protocol isn't
// compiled in.
func ErrBackendUnavailable(backend, reason string) error {
	return &Error{Kind: KindBackendUnavailable, Msg: fmt.Sprintf("%s: %s", backend, reason)}
}

// MultiError aggregates independent per-CRTC failures encountered
// while bucketing or pushing a ramp to many CRTCs, mirroring
// device.MultiError in the reference avdevice implementation.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("monitor: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}

// CRTC is a logical controller of one monitor.
type CRTC struct {
	Backend string

	RedSize, GreenSize, BlueSize int
	Depth                        int

	GammaSupport Tristate
	Subpixel     SubpixelOrder
	Active       bool

	ConnectorName string
	ConnectorType string

	// EDID is the upper-case hex string the backend returned, exactly
	// decode it with edid.Parse on demand.
	EDID string

	Cooperative     bool
	DefaultPriority int64
	DefaultRule     string

	// scratch is a per-CRTC ramp buffer at this CRTC's native size and
	// depth, reused across coercion calls to avoid reallocating on
	// every periodic tick.
	scratch curve.Ramps

	backend Backend
}

// Bind attaches the Backend that owns c, so c.GetGamma/SetGamma/
// Restore can dispatch back to it. Backend implementations call this
// from OpenCRTC; it is otherwise unused by callers of this package.
func Bind(c *CRTC, b Backend) { c.backend = b }

// Sizes returns the CRTC's native ramp size triple.
func (c *CRTC) Sizes() (int, int, int) { return c.RedSize, c.GreenSize, c.BlueSize }

// NativeRamps returns an identity ramp at this CRTC's native size and
// depth, matching output.py's Ramps(crtc) constructor.
func (c *CRTC) NativeRamps() curve.Ramps {
	r := curve.IdentityRamps(max3(c.RedSize, c.GreenSize, c.BlueSize), c.Depth)
	if c.RedSize != len(r.Red) {
		r.Red = mustResize(r.Red, c.RedSize)
	}
	if c.GreenSize != len(r.Green) {
		r.Green = mustResize(r.Green, c.GreenSize)
	}
	if c.BlueSize != len(r.Blue) {
		r.Blue = mustResize(r.Blue, c.BlueSize)
	}
	return r
}

func mustResize(src []float64, n int) []float64 {
	out, err := curve.Resize(src, n, curve.Linear, 0)
	if err != nil {
		// Linear resize never returns an error; a non-nil err here
		// would be a programming mistake in curve.Resize itself.
		panic(err)
	}
	return out
}

func max3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// Coerce adapts ramps (the process-wide working curves, or any ramp
// triple) to this CRTC's native size and depth: the three-step
// coercion pipeline of resize, then depth rescale. It does
// not write through the backend; call SetGamma for that.
func Coerce(ramps curve.Ramps, target *CRTC, strategy curve.Strategy, tension float64) (curve.Ramps, error) {
	resized := ramps
	if ramps.Len() != target.RedSize || len(ramps.Green) != target.GreenSize || len(ramps.Blue) != target.BlueSize {
		var err error
		resized.Red, err = curve.Resize(ramps.Red, target.RedSize, strategy, tension)
		if err != nil {
			return curve.Ramps{}, errors.Wrap(err, "monitor: coerce red channel")
		}
		resized.Green, err = curve.Resize(ramps.Green, target.GreenSize, strategy, tension)
		if err != nil {
			return curve.Ramps{}, errors.Wrap(err, "monitor: coerce green channel")
		}
		resized.Blue, err = curve.Resize(ramps.Blue, target.BlueSize, strategy, tension)
		if err != nil {
			return curve.Ramps{}, errors.Wrap(err, "monitor: coerce blue channel")
		}
	}
	if resized.Depth != target.Depth {
		resized = curve.RescaleDepth(resized, target.Depth)
	}
	return resized, nil
}

// GetGamma reads back the CRTC's current gamma ramp through its
// backend.
func (c *CRTC) GetGamma() (curve.Ramps, error) {
	if c.backend == nil {
		return curve.Ramps{}, errUnavailable("CRTC has no backend handle")
	}
	return c.backend.GetGamma(c)
}

// SetGamma writes ramps through to the CRTC's backend, performing the
// coercion pipeline first. Unless c.Cooperative is true or lifespan is
// Remove, priority and rule must be their zero values; otherwise
// SetGamma returns a bad-argument Error.
func (c *CRTC) SetGamma(ramps curve.Ramps, priority int64, rule string, lifespan Lifespan) error {
	if c.backend == nil {
		return errUnavailable("CRTC has no backend handle")
	}
	if !c.Cooperative && (priority != 0 || rule != "") && lifespan != Remove {
		return &Error{Kind: KindBadArgument, Msg: "priority/rule require cooperative gamma support"}
	}
	if lifespan == Remove {
		return c.backend.SetGamma(c, curve.Ramps{}, priority, rule, lifespan)
	}
	coerced, err := Coerce(ramps, c, curve.Linear, 0)
	if err != nil {
		return err
	}
	c.scratch = coerced
	return c.backend.SetGamma(c, coerced, priority, rule, lifespan)
}

// Restore resets the CRTC's CLUT to the system/backend default, if
// supported.
func (c *CRTC) Restore() error {
	if c.backend == nil {
		return errUnavailable("CRTC has no backend handle")
	}
	return c.backend.Restore(c)
}

// Screen is an ordered sequence of CRTCs belonging to one output
// partition (an X screen or a DRM card).
type Screen struct {
	CRTCs []*CRTC
}

// Restore resets every CRTC on the screen to its backend default,
// collecting per-CRTC failures rather than aborting on the first one.
// Restoring site/partition/CRTC defaults where supported is satisfied
// at the CRTC granularity, since none of the backends
// this module ships expose a distinct partition-wide restore call.
func (s *Screen) Restore() error {
	var errs MultiError
	for _, c := range s.CRTCs {
		if err := c.Restore(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Site is an ordered sequence of screens, plus the backend that
// produced them. It is the top-level resource the process acquires
// and releases.
type Site struct {
	Backend Backend
	Screens []*Screen

	open bool
}

// IsOpen reports whether the site's backend connection is live.
func (s *Site) IsOpen() bool { return s.open }

// Open acquires the site's backend connection and populates Screens.
func (s *Site) Open(display string) error {
	if s.open {
		return nil
	}
	if err := s.Backend.Start(); err != nil {
		return err
	}
	screens, err := s.Backend.OpenSite(display)
	if err != nil {
		s.Backend.Stop()
		return err
	}
	s.Screens = screens
	s.open = true
	return nil
}

// Close releases the site's backend connection. It is safe to call
// more than once.
func (s *Site) Close() error {
	if !s.open {
		return nil
	}
	s.open = false
	return s.Backend.Stop()
}

// Restore resets every screen (and, failing that, every CRTC) to
// system defaults.
func (s *Site) Restore() error {
	var errs MultiError
	for _, scr := range s.Screens {
		if err := scr.Restore(); err == nil {
			continue
		}
		for _, c := range scr.CRTCs {
			if err := c.Restore(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AllCRTCs flattens every CRTC across every screen of the site.
func (s *Site) AllCRTCs() []*CRTC {
	var out []*CRTC
	for _, scr := range s.Screens {
		out = append(out, scr.CRTCs...)
	}
	return out
}

// Backend is a runtime-selected adjustment method, modeled on
// device.AVDevice in the reference avdevice implementation: a named,
// start/stop-able
// resource that additionally knows how to enumerate and drive CRTCs.
type Backend interface {
	// Name returns the backend's dispatch name: "randr", "vidmode",
	// "drm", "w32gdi", "quartz" or "dummy".
	Name() string

	// Start acquires whatever process-wide resource the backend needs
	// before OpenSite can be called (e.g. connecting to a display
	// server). Backends with no such resource may no-op.
	Start() error

	// Stop releases resources acquired by Start.
	Stop() error

	// OpenSite opens a site (display string, or "" for the current
	// display) and returns its screens, each already populated with
	// CRTCs.
	OpenSite(display string) ([]*Screen, error)

	// OpenPartition opens a single screen (partition) by index.
	OpenPartition(index int) (*Screen, error)

	// OpenCRTC opens a single CRTC by index within a screen.
	OpenCRTC(screen *Screen, index int) (*CRTC, error)

	// GetGamma returns c's current gamma ramp, coalesced across any
	// cooperative-gamma layers if the backend supports them.
	GetGamma(c *CRTC) (curve.Ramps, error)

	// SetGamma writes an already-coerced ramp to c. priority and rule
	// matter only when c.Cooperative is true; lifespan == Remove
	// deregisters rather than writing r.
	SetGamma(c *CRTC, r curve.Ramps, priority int64, rule string, lifespan Lifespan) error

	// Restore resets c to its backend/system default, if supported.
	Restore(c *CRTC) error
}
