/*
NAME
  edid.go

DESCRIPTION
  edid.go parses the 128-byte base EDID block a display backend returns,
  exposing the fields CRTC model needs for logging and ICC/
  profile matching: manufacturer, product and serial identifiers, the
  physical size, gamma, chromaticity primaries and whitepoint.

AUTHORS
  blueshiftd contributors

LICENSE
  Copyright (C) 2026 the blueshiftd contributors. All Rights Reserved.
*/

// Package edid parses Extended Display Identification Data, the 128-byte
// (or larger, extension-block-carrying) descriptor a monitor reports to
// its graphics adapter.
package edid

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/blueshiftd/blueshift/colour"
)

// ErrMalformed is returned by Parse when the input fails the magic-number
// or checksum invariant; this is the edid-malformed error kind.
var ErrMalformed = errors.New("edid: malformed EDID block")

var magic = [8]byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}

// DPMS flags, bit positions within the feature-support byte (byte 24).
const (
	DPMSStandby = 1 << 7
	DPMSSuspend = 1 << 6
	DPMSActive  = 1 << 5
)

// EDID is a parsed base EDID block: the manufacturer, product and
// serial identifiers plus display size a CRTC needs.
type EDID struct {
	Manufacturer string // three-letter PNP ID
	ProductCode  uint16
	Serial       uint32
	Week         int // 0 if unspecified
	Year         int // model year or manufacture year
	ModelYear    bool
	VersionMajor byte
	VersionMinor byte

	Digital bool // true: digital input; false: analog input

	WidthMM  int // 0 => None (undefined)
	HeightMM int

	Gamma float64 // 0 => None (0xFF sentinel, gamma defined elsewhere)

	DPMS        byte // OR of DPMSStandby/DPMSSuspend/DPMSActive
	SRGB        bool
	PreferredTiming bool
	GTF         bool

	Red, Green, Blue, White colour.XYY
}

func chromaticityXY(hi byte, loBits uint8) float64 {
	v := uint16(hi)<<2 | uint16(loBits)
	return float64(v) / 1024
}

// Parse parses a base EDID block. It requires at least 128 bytes and
// verifies both documented invariants: the leading 8-byte magic number,
// and that the sum of the first 128 bytes is congruent to 0 mod 256.
func Parse(raw []byte) (*EDID, error) {
	if len(raw) < 128 {
		return nil, errors.Wrapf(ErrMalformed, "block is %d bytes, need at least 128", len(raw))
	}
	var sum byte
	for _, b := range raw[:128] {
		sum += b
	}
	if sum != 0 {
		return nil, errors.Wrapf(ErrMalformed, "checksum byte sum %d is not congruent to 0 mod 256", sum)
	}
	for i, b := range magic {
		if raw[i] != b {
			return nil, errors.Wrapf(ErrMalformed, "byte %d: got %#x, want magic %#x", i, raw[i], b)
		}
	}

	e := &EDID{}
	mfg := uint16(raw[8])<<8 | uint16(raw[9])
	e.Manufacturer = string([]byte{
		byte('A' - 1 + (mfg>>10)&0x1f),
		byte('A' - 1 + (mfg>>5)&0x1f),
		byte('A' - 1 + mfg&0x1f),
	})
	e.ProductCode = uint16(raw[10]) | uint16(raw[11])<<8
	e.Serial = uint32(raw[12]) | uint32(raw[13])<<8 | uint32(raw[14])<<16 | uint32(raw[15])<<24

	week := int(raw[16])
	year := int(raw[17])
	switch {
	case week == 0xff:
		e.ModelYear = true
		e.Year = 1990 + year
	default:
		e.Week = week
		e.Year = 1990 + year
	}

	e.VersionMajor, e.VersionMinor = raw[18], raw[19]

	basic := raw[20]
	e.Digital = basic&0x80 != 0

	e.WidthMM = int(raw[21])
	e.HeightMM = int(raw[22])

	if raw[23] == 0xff {
		e.Gamma = 0
	} else {
		e.Gamma = (float64(raw[23]) + 100) / 100
	}

	features := raw[24]
	e.DPMS = features & (DPMSStandby | DPMSSuspend | DPMSActive)
	e.SRGB = features&0x04 != 0
	e.PreferredTiming = features&0x02 != 0
	e.GTF = features&0x01 != 0

	rgLo := raw[25]
	bwLo := raw[26]
	e.Red = colour.XYY{
		X:  chromaticityXY(raw[27], (rgLo>>6)&0x3),
		Y:  chromaticityXY(raw[28], (rgLo>>4)&0x3),
		YY: 1,
	}
	e.Green = colour.XYY{
		X:  chromaticityXY(raw[29], (rgLo>>2)&0x3),
		Y:  chromaticityXY(raw[30], rgLo&0x3),
		YY: 1,
	}
	e.Blue = colour.XYY{
		X:  chromaticityXY(raw[31], (bwLo>>6)&0x3),
		Y:  chromaticityXY(raw[32], (bwLo>>4)&0x3),
		YY: 1,
	}
	e.White = colour.XYY{
		X:  chromaticityXY(raw[33], (bwLo>>2)&0x3),
		Y:  chromaticityXY(raw[34], bwLo&0x3),
		YY: 1,
	}

	return e, nil
}

// String renders a short "<manufacturer>-<product>-<serial>" identifier
// suitable for log lines.
func (e *EDID) String() string {
	return fmt.Sprintf("%s-%04x-%08x", e.Manufacturer, e.ProductCode, e.Serial)
}
