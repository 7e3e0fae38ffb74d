/*
NAME
  icc.go

DESCRIPTION
  icc.go parses the two monitor-calibration ICC tag types blueshiftd
  understands — 'mLUT' (a fixed 256-entry-per-channel lookup table) and
  'vcgt' (either a variable-precision lookup table or a gamma/min/max
  triple) — and applies the parsed profile to a ramp engine's working
  curves.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package icc parses ICC monitor profiles (the mLUT and vcgt tag types)
// and applies them to a ramp engine's working curves.
package icc

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/blueshiftd/blueshift/curve"
)

// Error kinds surfaced by Parse: icc-unsupported and icc-truncated.
var (
	ErrUnsupported = errors.New("icc: unsupported or unrecognised profile")
	ErrTruncated   = errors.New("icc: profile truncated")
)

const (
	tagMLUT = 0x6d4c5554
	tagVCGT = 0x76636774
)

// Profile is a parsed ICC monitor-calibration profile. Exactly one of
// Tables or Gamma is populated, depending on the tag type found.
type Profile struct {
	// Tables holds one 256+ entry lookup table per channel, for the
	// mLUT tag and the variable-precision (gamma_type 0) vcgt tag.
	Tables [3][]float64
	// Gamma holds a gamma exponent and output min/max per channel, for
	// the fixed-format (gamma_type 1) vcgt tag.
	Gamma [3]GammaCurve
}

// GammaCurve is one channel's gamma/min/max triple from a type-1 vcgt tag.
type GammaCurve struct {
	Gamma, Min, Max float64
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) read(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, errors.Wrapf(ErrTruncated, "need %d bytes at offset %d, have %d", n, r.pos, len(r.data))
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) uint16() (uint16, error) {
	b, err := r.read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) uintN(n int) (uint64, error) {
	b, err := r.read(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, byt := range b {
		v = v<<8 | uint64(byt)
	}
	return v, nil
}

// Parse parses an ICC profile's raw bytes, returning the first mLUT or
// vcgt tag it recognises. It returns ErrUnsupported if the profile
// contains neither, and ErrTruncated if a tag's declared offset or size
// runs past the end of the data.
func Parse(data []byte) (*Profile, error) {
	r := &reader{data: data}
	if _, err := r.read(128); err != nil {
		return nil, err
	}
	nTags, err := r.uint32()
	if err != nil {
		return nil, err
	}
	ptr := 128 + 4
	for i := uint32(0); i < nTags; i++ {
		tagName, err := r.uint32()
		if err != nil {
			return nil, err
		}
		tagOffset, err := r.uint32()
		if err != nil {
			return nil, err
		}
		tagSize, err := r.uint32()
		if err != nil {
			return nil, err
		}
		ptr += 12

		switch tagName {
		case tagMLUT:
			if _, err := r.read(int(tagOffset) - ptr); err != nil {
				return nil, err
			}
			return readMLUT(r)
		case tagVCGT:
			if _, err := r.read(int(tagOffset) - ptr); err != nil {
				return nil, err
			}
			return readVCGT(r, tagSize)
		}
	}
	return nil, errors.Wrap(ErrUnsupported, "no mLUT or vcgt tag present")
}

func readMLUT(r *reader) (*Profile, error) {
	p := &Profile{}
	for ch := 0; ch < 3; ch++ {
		table := make([]float64, 256)
		for i := range table {
			v, err := r.uint16()
			if err != nil {
				return nil, err
			}
			table[i] = float64(v) / 65535
		}
		p.Tables[ch] = table
	}
	return p, nil
}

func readVCGT(r *reader, tagSize uint32) (*Profile, error) {
	sig, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if sig != tagVCGT {
		return nil, errors.Wrapf(ErrUnsupported, "vcgt tag signature mismatch: %#x", sig)
	}
	if _, err := r.read(4); err != nil { // reserved
		return nil, err
	}
	gammaType, err := r.uint32()
	if err != nil {
		return nil, err
	}
	switch gammaType {
	case 0:
		nChannels, err := r.uint16()
		if err != nil {
			return nil, err
		}
		nEntries, err := r.uint16()
		if err != nil {
			return nil, err
		}
		entrySize, err := r.uint16()
		if err != nil {
			return nil, err
		}
		if tagSize == 1584 {
			nChannels, nEntries, entrySize = 3, 256, 2
		}
		if nChannels != 3 {
			return nil, errors.Wrapf(ErrUnsupported, "vcgt channel count %d, only sRGB (3) is supported", nChannels)
		}
		p := &Profile{}
		scale := float64(uint64(1)<<(8*uint(entrySize))) - 1
		for ch := 0; ch < 3; ch++ {
			table := make([]float64, nEntries)
			for i := range table {
				v, err := r.uintN(int(entrySize))
				if err != nil {
					return nil, err
				}
				table[i] = float64(v) / scale
			}
			p.Tables[ch] = table
		}
		return p, nil
	case 1:
		p := &Profile{}
		for ch := 0; ch < 3; ch++ {
			gamma, err := r.uint32()
			if err != nil {
				return nil, err
			}
			min, err := r.uint32()
			if err != nil {
				return nil, err
			}
			max, err := r.uint32()
			if err != nil {
				return nil, err
			}
			p.Gamma[ch] = GammaCurve{
				Gamma: float64(gamma) / 65535,
				Min:   float64(min) / 65535,
				Max:   float64(max) / 65535,
			}
		}
		return p, nil
	default:
		return nil, errors.Wrapf(ErrUnsupported, "vcgt gamma type %d", gammaType)
	}
}

// IsTable reports whether p carries a lookup table rather than a
// gamma/min/max triple.
func (p *Profile) IsTable() bool {
	return p.Tables[0] != nil
}

// Apply applies the profile to e's working curves: a lookup-table profile
// remaps each stop through its channel's table (nearest-neighbour lookup
// on the stop's own [0,1] value); a gamma profile applies Gamma followed
// by RGBLimits with the parsed min/max.
func (p *Profile) Apply(e *curve.Engine) {
	if p.IsTable() {
		lookup := func(table []float64) curve.ChannelMapper {
			return func(v float64) float64 {
				y := int(v*float64(len(table)-1) + 0.5)
				if y < 0 {
					y = 0
				}
				if y > len(table)-1 {
					y = len(table) - 1
				}
				return table[y]
			}
		}
		e.Manipulate(lookup(p.Tables[0]), lookup(p.Tables[1]), lookup(p.Tables[2]))
		return
	}
	e.Gamma(p.Gamma[0].Gamma, curve.F(p.Gamma[1].Gamma), curve.F(p.Gamma[2].Gamma))
	e.RGBLimits(p.Gamma[0].Min, p.Gamma[0].Max, &curve.LimitOptions{
		MinG: curve.F(p.Gamma[1].Min), MinB: curve.F(p.Gamma[2].Min),
		MaxG: curve.F(p.Gamma[1].Max), MaxB: curve.F(p.Gamma[2].Max),
	})
}

// String renders a short human-readable description of the profile kind,
// useful for logging which calibration was applied.
func (p *Profile) String() string {
	if p.IsTable() {
		return fmt.Sprintf("icc.Profile{table, %d entries/channel}", len(p.Tables[0]))
	}
	return "icc.Profile{gamma}"
}
