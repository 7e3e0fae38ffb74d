package icc

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/blueshiftd/blueshift/curve"
)

func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

// buildGammaProfile constructs a minimal ICC profile with a single vcgt
// tag of gamma_type 1 (gamma/min/max), enough to exercise Parse end to
// end without a real ICC file on disk.
func buildGammaProfile(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(make([]byte, 128)) // header
	putU32(&buf, 1)              // one tag
	tagOffset := uint32(128 + 4 + 12)
	putU32(&buf, tagVCGT)
	putU32(&buf, tagOffset)
	putU32(&buf, 9*4+12)
	// tag body
	putU32(&buf, tagVCGT) // signature repeated inside the tag
	putU32(&buf, 0)       // reserved
	putU32(&buf, 1)       // gamma_type 1
	for ch := 0; ch < 3; ch++ {
		putU32(&buf, 65535) // gamma = 1.0
		putU32(&buf, 0)     // min = 0
		putU32(&buf, 65535) // max = 1.0
	}
	return buf.Bytes()
}

func TestParseGammaProfile(t *testing.T) {
	data := buildGammaProfile(t)
	p, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if p.IsTable() {
		t.Fatal("expected a gamma profile, not a table profile")
	}
	if p.Gamma[0].Gamma != 1 || p.Gamma[0].Max != 1 {
		t.Errorf("unexpected gamma curve: %+v", p.Gamma[0])
	}
}

func TestParseTruncated(t *testing.T) {
	if _, err := Parse(make([]byte, 64)); err == nil {
		t.Error("expected ErrTruncated for a profile shorter than the header")
	}
}

func TestParseUnsupported(t *testing.T) {
	data := make([]byte, 128+4)
	binary.BigEndian.PutUint32(data[128:], 0)
	if _, err := Parse(data); err == nil {
		t.Error("expected ErrUnsupported for a profile with no recognised tags")
	}
}

func TestApplyGammaProfile(t *testing.T) {
	e := curve.NewEngine(8, curve.DefaultOutputSize)
	p := &Profile{Gamma: [3]GammaCurve{{Gamma: 1, Min: 0, Max: 1}, {Gamma: 1, Min: 0, Max: 1}, {Gamma: 1, Min: 0, Max: 1}}}
	before := e.Working.Clone()
	p.Apply(e)
	for i := range before.Red {
		if e.Working.Red[i] != before.Red[i] {
			t.Error("identity gamma/limits should not change the working curve")
		}
	}
}
