/*
NAME
  multicrtc.go

DESCRIPTION
  multicrtc.go buckets CRTCs by (ramp size triple, depth, backend) so
  the same working ramp can be coerced once per bucket instead of once
  per CRTC.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

package monitor

import "github.com/blueshiftd/blueshift/curve"

type sizeKey struct {
	r, g, b int
}

type depthKey struct {
	size  sizeKey
	depth int
}

type backendKey struct {
	depth   depthKey
	backend string
}

// MultiCRTC groups a set of CRTCs by (size triple, depth, backend), so
// SetGamma can coerce a working ramp once per distinct combination
// rather than once per CRTC, mirroring output.py's MultiCRTC.
type MultiCRTC struct {
	buckets map[backendKey][]*CRTC
	order   []backendKey
}

// NewMultiCRTC groups crtcs by their native size/depth/backend.
func NewMultiCRTC(crtcs []*CRTC) *MultiCRTC {
	m := &MultiCRTC{buckets: make(map[backendKey][]*CRTC)}
	for _, c := range crtcs {
		m.Add(c)
	}
	return m
}

// Add places a CRTC into its bucket, creating the bucket if this is
// its first member.
func (m *MultiCRTC) Add(c *CRTC) {
	k := backendKey{
		depth: depthKey{
			size:  sizeKey{c.RedSize, c.GreenSize, c.BlueSize},
			depth: c.Depth,
		},
		backend: c.Backend,
	}
	if _, ok := m.buckets[k]; !ok {
		m.order = append(m.order, k)
	}
	m.buckets[k] = append(m.buckets[k], c)
}

// MakeRamps returns an identity ramp at the given depth, sized to the
// largest ramp of each colour across every bucketed CRTC, matching
// output.py's MultiCRTC.make_ramps.
func (m *MultiCRTC) MakeRamps(depth int) curve.Ramps {
	r, g, b := 1, 1, 1
	for _, k := range m.order {
		if k.depth.size.r > r {
			r = k.depth.size.r
		}
		if k.depth.size.g > g {
			g = k.depth.size.g
		}
		if k.depth.size.b > b {
			b = k.depth.size.b
		}
	}
	ramps := curve.IdentityRamps(max3(r, g, b), depth)
	ramps.Red = mustResize(ramps.Red, r)
	ramps.Green = mustResize(ramps.Green, g)
	ramps.Blue = mustResize(ramps.Blue, b)
	return ramps
}

// SetGamma coerces ramps once per bucket (resize then depth rescale)
// and writes the coerced result through to every CRTC in the bucket,
// collecting per-CRTC failures into a MultiError rather than aborting
// on the first one.
func (m *MultiCRTC) SetGamma(ramps curve.Ramps, priority int64, rule string, lifespan Lifespan) error {
	var errs MultiError
	for _, k := range m.order {
		bucket := m.buckets[k]
		if lifespan == Remove {
			for _, c := range bucket {
				if err := c.SetGamma(curve.Ramps{}, priority, rule, lifespan); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}
		ref := bucket[0]
		coerced, err := Coerce(ramps, ref, curve.Linear, 0)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, c := range bucket {
			if c.backend == nil {
				errs = append(errs, errUnavailable("CRTC has no backend handle"))
				continue
			}
			if err := c.backend.SetGamma(c, coerced, priority, rule, lifespan); err != nil {
				errs = append(errs, err)
				continue
			}
			c.scratch = coerced
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
