package curve

import (
	"math"
	"testing"

	"github.com/blueshiftd/blueshift/blackbody"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestIdentityRamps(t *testing.T) {
	r := IdentityRamps(5, DepthFloat64)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i, v := range r.Red {
		if !approxEqual(v, want[i], 1e-9) {
			t.Errorf("stop %d: got %v want %v", i, v, want[i])
		}
	}
}

func TestMaximum(t *testing.T) {
	if Maximum(DepthFloat64) != 1 {
		t.Error("float64 depth should have maximum 1")
	}
	if Maximum(8) != 255 {
		t.Errorf("8-bit depth should have maximum 255, got %v", Maximum(8))
	}
	if Maximum(16) != 65535 {
		t.Errorf("16-bit depth should have maximum 65535, got %v", Maximum(16))
	}
}

func TestRGBBrightnessIdentity(t *testing.T) {
	e := NewEngine(8, DefaultOutputSize)
	before := e.Working.Clone()
	e.RGBBrightness(1, nil, nil)
	for i := range before.Red {
		if e.Working.Red[i] != before.Red[i] || e.Working.Green[i] != before.Green[i] || e.Working.Blue[i] != before.Blue[i] {
			t.Fatal("brightness level 1 should be a no-op")
		}
	}
}

func TestRGBBrightnessDefaulting(t *testing.T) {
	e := NewEngine(4, DefaultOutputSize)
	e.RGBBrightness(0.5, nil, nil)
	for i, v := range e.Working.Green {
		if !approxEqual(v, e.Working.Red[i], 1e-9) {
			t.Errorf("green should default to red: green[%d]=%v red[%d]=%v", i, v, i, e.Working.Red[i])
		}
	}
	for i, v := range e.Working.Blue {
		if !approxEqual(v, e.Working.Green[i], 1e-9) {
			t.Errorf("blue should default to green: blue[%d]=%v green[%d]=%v", i, v, i, e.Working.Green[i])
		}
	}
}

func TestRGBBrightnessExplicitChannel(t *testing.T) {
	e := NewEngine(4, DefaultOutputSize)
	e.RGBBrightness(0.5, F(0.25), nil)
	for i, v := range e.Working.Blue {
		if !approxEqual(v, e.Working.Green[i], 1e-9) {
			t.Errorf("blue should default to the explicit green value")
		}
		_ = v
	}
}

func TestGammaSkipsNonPositive(t *testing.T) {
	e := NewEngine(4, DefaultOutputSize)
	e.Working.Red[0] = 0
	before := e.Working.Red[0]
	e.Gamma(2.2, nil, nil)
	if e.Working.Red[0] != before {
		t.Error("gamma should leave a zero stop unchanged")
	}
}

func TestNegativeReversesOrder(t *testing.T) {
	e := NewEngine(4, DefaultOutputSize)
	before := append([]float64(nil), e.Working.Red...)
	e.Negative(true, nil, nil)
	for i, v := range e.Working.Red {
		if v != before[len(before)-1-i] {
			t.Errorf("stop %d not reversed: got %v want %v", i, v, before[len(before)-1-i])
		}
	}
}

func TestRGBInvertUsesChannelMaximum(t *testing.T) {
	e := NewEngine(4, 8)
	e.Working = IdentityRamps(4, 8)
	e.RGBInvert(true, nil, nil)
	max := Maximum(8)
	for i, v := range e.Working.Red {
		want := max - IdentityRamps(4, 8).Red[i]
		if !approxEqual(v, want, 1e-9) {
			t.Errorf("stop %d: got %v want %v", i, v, want)
		}
	}
}

func TestStartOverResetsToIdentity(t *testing.T) {
	e := NewEngine(4, DefaultOutputSize)
	e.RGBBrightness(0.1, nil, nil)
	e.StartOver()
	want := IdentityRamps(4, DepthFloat64)
	for i := range want.Red {
		if e.Working.Red[i] != want.Red[i] {
			t.Error("start over should restore the identity ramp")
		}
	}
}

func TestClip(t *testing.T) {
	e := NewEngine(4, DefaultOutputSize)
	e.Working.Red[0] = -0.5
	e.Working.Red[3] = 1.5
	e.Clip()
	if e.Working.Red[0] != 0 {
		t.Errorf("expected clip below to floor at 0, got %v", e.Working.Red[0])
	}
	if e.Working.Red[3] != 1 {
		t.Errorf("expected clip above to ceiling at 1, got %v", e.Working.Red[3])
	}
}

func TestRGBTemperatureD65IsNoOp(t *testing.T) {
	e := NewEngine(4, DefaultOutputSize)
	before := e.Working.Clone()
	if err := e.RGBTemperature(6500, blackbody.Pure(blackbody.SimpleWhitepoint)); err != nil {
		t.Fatal(err)
	}
	for i := range before.Red {
		if e.Working.Red[i] != before.Red[i] {
			t.Error("6500K should be a no-op")
		}
	}
}

func TestLowerResolutionPreservesLength(t *testing.T) {
	e := NewEngine(32, DefaultOutputSize)
	e.LowerResolution(4, 4)
	if len(e.Working.Red) != 32 {
		t.Errorf("lower_resolution must not change the working ramp length, got %d", len(e.Working.Red))
	}
}

func TestResizeNoOpWhenNotUpsampling(t *testing.T) {
	src := []float64{0, 0.5, 1}
	out, err := Resize(src, 3, Linear, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range src {
		if out[i] != src[i] {
			t.Error("resize to the same length should be a no-op copy")
		}
	}
}

func TestResizeLinearEndpoints(t *testing.T) {
	src := []float64{0, 1}
	out, err := Resize(src, 5, Linear, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != 0 || out[4] != 1 {
		t.Errorf("endpoints must be preserved: %v", out)
	}
	if !approxEqual(out[2], 0.5, 1e-9) {
		t.Errorf("midpoint should be 0.5, got %v", out[2])
	}
}

func TestResizeMonotoneCubicPreservesMonotonicity(t *testing.T) {
	src := []float64{0, 0.1, 0.9, 1}
	out, err := Resize(src, 20, MonotoneCubic, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(out); i++ {
		if out[i] < out[i-1]-1e-9 {
			t.Errorf("monotone cubic resize must not decrease: out[%d]=%v out[%d]=%v", i, out[i], i-1, out[i-1])
		}
	}
}

func TestResizePolynomialTooLarge(t *testing.T) {
	src := make([]float64, maxPolynomialDegree+1)
	if _, err := Resize(src, maxPolynomialDegree+2, Polynomial, 0); err == nil {
		t.Error("expected ErrPolynomialTooLarge")
	}
}

func TestHaloEliminateFlattensConstantInterval(t *testing.T) {
	src := []float64{0.5, 0.5}
	out := []float64{0.5, 0.6, 0.4, 0.5}
	haloEliminate(src, out)
	for _, v := range out {
		if v != 0.5 {
			t.Errorf("flat source interval must halo-eliminate to a constant, got %v", out)
			break
		}
	}
}
