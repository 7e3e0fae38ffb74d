package colour

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestStandardLinearRoundTrip(t *testing.T) {
	for c := 0.0; c <= 1.0; c += 0.01 {
		got := LinearToStandard(StandardToLinear(c))
		if math.Abs(got-c) > 1e-9 {
			t.Errorf("round trip of %v: got %v", c, got)
		}
	}
}

func TestXYYRoundTrip(t *testing.T) {
	cases := []RGB{
		{0.5, 0.5, 0.5},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.2, 0.8, 0.4},
	}
	for _, c := range cases {
		xyy := SRGBToXYY(c)
		back := XYYToSRGB(xyy)
		if diff := cmp.Diff(c, back, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("xyY round trip for %v mismatch (-want +got):\n%s", c, diff)
		}
	}
}

func TestXYZToXYYBlackPoint(t *testing.T) {
	got := XYZToXYY(XYZ{})
	if got.X != blackPointXYY.X || got.Y != blackPointXYY.Y || got.YY != 0 {
		t.Errorf("black point mapping: got %+v", got)
	}
}

func TestXYYToXYZZeroY(t *testing.T) {
	got := XYYToXYZ(XYY{X: 0.3, Y: 0, YY: 1})
	if (got != XYZ{}) {
		t.Errorf("expected zero vector for y=0, got %+v", got)
	}
}

func TestLabRoundTrip(t *testing.T) {
	cases := []RGB{
		{0.5, 0.5, 0.5},
		{0.9, 0.1, 0.2},
		{0.01, 0.01, 0.01},
	}
	for _, c := range cases {
		lab := SRGBToLab(c)
		xyz := LabToXYZ(lab)
		back := LinearToSRGB(XYZToLinear(xyz))
		if diff := cmp.Diff(c, back, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
			t.Errorf("lab round trip for %v mismatch (-want +got):\n%s", c, diff)
		}
	}
}

func TestDeltaEZeroForIdentical(t *testing.T) {
	c := RGB{0.3, 0.6, 0.9}
	if d := DeltaE(c, c); d > 1e-9 {
		t.Errorf("expected ~0 delta-E for identical colours, got %v", d)
	}
}

func TestValidateChromaticity(t *testing.T) {
	if err := ValidateChromaticity(0.3, 0); err == nil {
		t.Error("expected error for y=0")
	}
	if err := ValidateChromaticity(0.3, 0.3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
