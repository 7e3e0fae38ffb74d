package adhoc

import (
	"testing"

	"github.com/blueshiftd/blueshift/config"
	"github.com/blueshiftd/blueshift/monitor"
	"github.com/blueshiftd/blueshift/monitor/dummy"
)

func openTestSite(t *testing.T) *monitor.Site {
	t.Helper()
	be := dummy.New(dummy.DefaultConfig())
	site := &monitor.Site{Backend: be}
	if err := site.Open(""); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { site.Close() })
	return site
}

func TestWithDefaultsFillsTemperatureWhenUnset(t *testing.T) {
	got := withDefaults(config.Config{})
	want := [2]float64{3500, 5500}
	if got.Temperature != want {
		t.Errorf("Temperature = %v, want %v", got.Temperature, want)
	}
	if got.CIETemperature != [2]float64{6500, 6500} {
		t.Errorf("CIETemperature = %v, want {6500, 6500}", got.CIETemperature)
	}
	if got.Gamma != [2]config.RGB{{1, 1, 1}, {1, 1, 1}} {
		t.Errorf("Gamma = %v, want identity both periods", got.Gamma)
	}
}

func TestWithDefaultsPreservesExplicitTemperature(t *testing.T) {
	cfg := config.Config{CIETemperature: [2]float64{5000, 7000}}
	got := withDefaults(cfg)
	if got.Temperature != [2]float64{6500, 6500} {
		t.Errorf("Temperature = %v, want neutral default when only CIE is set", got.Temperature)
	}
	if got.CIETemperature != [2]float64{5000, 7000} {
		t.Errorf("CIETemperature = %v, want unchanged", got.CIETemperature)
	}
}

func TestContinuousDetectsAsymmetricPairs(t *testing.T) {
	cfg := config.Default()
	if Continuous(cfg) {
		t.Error("Continuous(default) = true, want false")
	}
	cfg.Temperature = [2]float64{3500, 5500}
	if !Continuous(cfg) {
		t.Error("Continuous with distinct day/night temperature = false, want true")
	}
}

func TestContinuousDetectsLocation(t *testing.T) {
	cfg := config.Default()
	cfg.HasLocation = true
	if !Continuous(cfg) {
		t.Error("Continuous with HasLocation = false, want true")
	}
}

func TestClientApplyPushesThroughToCRTC(t *testing.T) {
	site := openTestSite(t)
	cfg := config.Default()
	cfg.Reset = true
	c := New(cfg, site)
	if err := c.Apply(1, 0); err != nil {
		t.Fatal(err)
	}
	crtc := site.AllCRTCs()[0]
	if _, err := crtc.GetGamma(); err != nil {
		t.Fatal(err)
	}
}

func TestClientRunResetSettlesAtIdentity(t *testing.T) {
	site := openTestSite(t)
	cfg := config.Default()
	cfg.Reset = true
	c := New(cfg, site)
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	crtc := site.AllCRTCs()[0]
	got, err := crtc.GetGamma()
	if err != nil {
		t.Fatal(err)
	}
	if got.Red[0] != 0 {
		t.Errorf("Red[0] = %v, want 0 after a reset apply", got.Red[0])
	}
}

func TestClientRunPanicgateSkipsFadeIn(t *testing.T) {
	site := openTestSite(t)
	cfg := config.Default()
	cfg.Panicgate = true
	c := New(cfg, site)
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
}
