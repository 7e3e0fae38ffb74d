package dummy

import (
	"testing"

	"github.com/blueshiftd/blueshift/curve"
	"github.com/blueshiftd/blueshift/monitor"
)

func openSingleCRTC(t *testing.T, cfg Config) *monitor.CRTC {
	t.Helper()
	b := New(cfg)
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	screens, err := b.OpenSite("")
	if err != nil {
		t.Fatal(err)
	}
	if len(screens) != 1 || len(screens[0].CRTCs) != 1 {
		t.Fatalf("unexpected site shape: %d screens", len(screens))
	}
	return screens[0].CRTCs[0]
}

// TestBackendCoercionRoundTrips exercises's "Backend
// coercion" property: setting a known ramp through coercion and
// reading it back on the same backend round-trips.
func TestBackendCoercionRoundTrips(t *testing.T) {
	cfg := Config{Screens: 1, CRTCsPerScreen: 1, RedSize: 16, GreenSize: 16, BlueSize: 16, Depth: curve.DepthFloat64}
	c := openSingleCRTC(t, cfg)

	want := curve.IdentityRamps(8, curve.DepthFloat64)
	if err := c.SetGamma(want, 0, "", monitor.UntilRemoval); err != nil {
		t.Fatal(err)
	}
	got, err := c.GetGamma()
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != c.RedSize {
		t.Fatalf("got ramp length %d, want CRTC native size %d", got.Len(), c.RedSize)
	}
	// A resized identity ramp is still an identity ramp, within rounding.
	max := curve.Maximum(c.Depth)
	for i, v := range got.Red {
		want := float64(i) * max / float64(len(got.Red)-1)
		if diff := v - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("red[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestCooperativeGammaPrioritizesHighestLayer(t *testing.T) {
	cfg := Config{Screens: 1, CRTCsPerScreen: 1, RedSize: 4, GreenSize: 4, BlueSize: 4, Depth: curve.DepthFloat64, Cooperative: true}
	c := openSingleCRTC(t, cfg)

	low := curve.Ramps{Red: []float64{0, 0, 0, 0}, Green: []float64{0, 0, 0, 0}, Blue: []float64{0, 0, 0, 0}, Depth: curve.DepthFloat64}
	high := curve.Ramps{Red: []float64{1, 1, 1, 1}, Green: []float64{1, 1, 1, 1}, Blue: []float64{1, 1, 1, 1}, Depth: curve.DepthFloat64}

	if err := c.SetGamma(low, 10, "low", monitor.UntilRemoval); err != nil {
		t.Fatal(err)
	}
	if err := c.SetGamma(high, 20, "high", monitor.UntilRemoval); err != nil {
		t.Fatal(err)
	}
	got, err := c.GetGamma()
	if err != nil {
		t.Fatal(err)
	}
	if got.Red[0] != 1 {
		t.Errorf("expected the higher-priority layer to win, got red[0]=%v", got.Red[0])
	}

	if err := c.SetGamma(curve.Ramps{}, 20, "high", monitor.Remove); err != nil {
		t.Fatal(err)
	}
	got, err = c.GetGamma()
	if err != nil {
		t.Fatal(err)
	}
	if got.Red[0] != 0 {
		t.Errorf("expected removal of the high layer to fall back to low, got red[0]=%v", got.Red[0])
	}
}

func TestRestoreResetsToIdentity(t *testing.T) {
	cfg := Config{Screens: 1, CRTCsPerScreen: 1, RedSize: 4, GreenSize: 4, BlueSize: 4, Depth: curve.DepthFloat64}
	c := openSingleCRTC(t, cfg)

	flat := curve.Ramps{Red: []float64{1, 1, 1, 1}, Green: []float64{1, 1, 1, 1}, Blue: []float64{1, 1, 1, 1}, Depth: curve.DepthFloat64}
	if err := c.SetGamma(flat, 0, "", monitor.UntilRemoval); err != nil {
		t.Fatal(err)
	}
	if err := c.Restore(); err != nil {
		t.Fatal(err)
	}
	got, err := c.GetGamma()
	if err != nil {
		t.Fatal(err)
	}
	if got.Red[0] != 0 || got.Red[3] != curve.Maximum(curve.DepthFloat64) {
		t.Errorf("expected identity ramp after restore, got %v", got.Red)
	}
}
