package monitor

import (
	"testing"

	"github.com/blueshiftd/blueshift/curve"
)

type fakeBackend struct {
	name string
	set  map[*CRTC]curve.Ramps
}

func newFakeBackend(name string) *fakeBackend {
	return &fakeBackend{name: name, set: make(map[*CRTC]curve.Ramps)}
}

func (f *fakeBackend) Name() string { return f.name }
func (f *fakeBackend) Start() error { return nil }
func (f *fakeBackend) Stop() error  { return nil }
func (f *fakeBackend) OpenSite(string) ([]*Screen, error) {
	return nil, errUnavailable("fake: not used")
}
func (f *fakeBackend) OpenPartition(int) (*Screen, error) {
	return nil, errUnavailable("fake: not used")
}
func (f *fakeBackend) OpenCRTC(*Screen, int) (*CRTC, error) {
	return nil, errUnavailable("fake: not used")
}
func (f *fakeBackend) GetGamma(c *CRTC) (curve.Ramps, error) { return f.set[c], nil }
func (f *fakeBackend) SetGamma(c *CRTC, r curve.Ramps, priority int64, rule string, lifespan Lifespan) error {
	if lifespan == Remove {
		delete(f.set, c)
		return nil
	}
	f.set[c] = r
	return nil
}
func (f *fakeBackend) Restore(c *CRTC) error {
	delete(f.set, c)
	return nil
}

func newTestCRTC(backend *fakeBackend, r, g, b, depth int) *CRTC {
	c := &CRTC{Backend: backend.name, RedSize: r, GreenSize: g, BlueSize: b, Depth: depth}
	Bind(c, backend)
	return c
}

func TestMultiCRTCBucketsBySizeDepthBackend(t *testing.T) {
	be := newFakeBackend("fake")
	a := newTestCRTC(be, 4, 4, 4, curve.DepthFloat64)
	b := newTestCRTC(be, 4, 4, 4, curve.DepthFloat64)
	c := newTestCRTC(be, 8, 8, 8, curve.DepthFloat64)

	m := NewMultiCRTC([]*CRTC{a, b, c})
	if len(m.buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(m.buckets))
	}
	var bucketSizes []int
	for _, k := range m.order {
		bucketSizes = append(bucketSizes, len(m.buckets[k]))
	}
	total := 0
	for _, n := range bucketSizes {
		total += n
	}
	if total != 3 {
		t.Fatalf("bucketed %d CRTCs total, want 3", total)
	}
}

func TestMultiCRTCSetGammaCoercesOncePerBucket(t *testing.T) {
	be := newFakeBackend("fake")
	a := newTestCRTC(be, 4, 4, 4, curve.DepthFloat64)
	b := newTestCRTC(be, 4, 4, 4, curve.DepthFloat64)

	m := NewMultiCRTC([]*CRTC{a, b})
	ramps := curve.IdentityRamps(2, curve.DepthFloat64)
	if err := m.SetGamma(ramps, 0, "", UntilRemoval); err != nil {
		t.Fatal(err)
	}
	gotA, _ := a.GetGamma()
	gotB, _ := b.GetGamma()
	if gotA.Len() != 4 || gotB.Len() != 4 {
		t.Fatalf("expected both bucketed CRTCs to receive the resized ramp, got lens %d and %d", gotA.Len(), gotB.Len())
	}
	if gotA.Red[3] != gotB.Red[3] {
		t.Errorf("expected identical coerced ramps within a bucket, got %v vs %v", gotA.Red, gotB.Red)
	}
}

func TestMultiCRTCSetGammaRemoveDeregisters(t *testing.T) {
	be := newFakeBackend("fake")
	a := newTestCRTC(be, 4, 4, 4, curve.DepthFloat64)
	m := NewMultiCRTC([]*CRTC{a})

	ramps := curve.IdentityRamps(2, curve.DepthFloat64)
	if err := m.SetGamma(ramps, 5, "rule", UntilRemoval); err != nil {
		t.Fatal(err)
	}
	if _, ok := be.set[a]; !ok {
		t.Fatal("expected a ramp to be registered before removal")
	}
	if err := m.SetGamma(curve.Ramps{}, 5, "rule", Remove); err != nil {
		t.Fatal(err)
	}
	if _, ok := be.set[a]; ok {
		t.Error("expected removal to deregister the CRTC's ramp")
	}
}

func TestMultiErrorPanicsWhenEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MultiError{}.Error() to panic on an empty slice")
		}
	}()
	_ = MultiError(nil).Error()
}
