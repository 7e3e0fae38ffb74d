package blackbody

import (
	"testing"

	"github.com/blueshiftd/blueshift/colour"
)

func TestSeriesDMonotonicBlue(t *testing.T) {
	prevBlue := -1.0
	for temp := 2000.0; temp <= 10000; temp += 500 {
		c := DivideByMaximum(SeriesD(temp))
		if c.B < prevBlue-1e-9 {
			t.Errorf("series_d blue not monotone at %v K: %v < %v", temp, c.B, prevBlue)
		}
		prevBlue = c.B
	}
}

func TestCMF10DegMonotonicBlue(t *testing.T) {
	prevBlue := -1.0
	for temp := 2000.0; temp <= 10000; temp += 500 {
		c, err := CMF10Deg(temp)
		if err != nil {
			t.Fatalf("CMF10Deg(%v): %v", temp, err)
		}
		c = DivideByMaximum(c)
		if c.B < prevBlue-1e-9 {
			t.Errorf("cmf_10deg blue not monotone at %v K: %v < %v", temp, c.B, prevBlue)
		}
		prevBlue = c.B
	}
}

func TestCMF10DegBoundaryClip(t *testing.T) {
	at1000, err := CMF10Deg(1000)
	if err != nil {
		t.Fatal(err)
	}
	below, err := CMF10Deg(999)
	if err != nil {
		t.Fatal(err)
	}
	if at1000 != below {
		t.Errorf("expected clipping below 1000K to equal the 1000K row: %+v vs %+v", at1000, below)
	}
}

func TestRedshiftOldDomain(t *testing.T) {
	c, err := Redshift(10000, true, false)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := Redshift(50000, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if c != c2 {
		t.Errorf("expected redshift_old to clip at 10000K: %+v vs %+v", c, c2)
	}
}

func TestDivideByMaximumZero(t *testing.T) {
	got := DivideByMaximum(colour.RGB{})
	if got != (colour.RGB{}) {
		t.Errorf("expected no-op for zero input, got %+v", got)
	}
}

func TestClipWhitepoint(t *testing.T) {
	got := ClipWhitepoint(colour.RGB{R: -1, G: 0.5, B: 2})
	if got.R != 0 || got.G != 0.5 || got.B != 1 {
		t.Errorf("unexpected clip result: %+v", got)
	}
}

func TestResolveTemperature(t *testing.T) {
	v, err := ResolveTemperature("K_D65")
	if err != nil || v != 6500 {
		t.Errorf("K_D65: got %v, %v", v, err)
	}
	if _, err := ResolveTemperature("K_DOES_NOT_EXIST"); err == nil {
		t.Error("expected error for unknown name")
	}
}
