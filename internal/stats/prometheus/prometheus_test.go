package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gatherMetric(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func TestNew_DefaultRegistry(t *testing.T) {
	c := New(nil)
	if c.registry == nil {
		t.Error("registry = nil, want the default registerer")
	}
}

func TestIncCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncCounter("woodpusher_test_counter", 5)
	c.IncCounter("woodpusher_test_counter", 3)

	family := gatherMetric(t, reg, "woodpusher_test_counter")
	if family == nil {
		t.Fatal("counter not found in registry")
	}
	if got := family.GetMetric()[0].GetCounter().GetValue(); got != 8 {
		t.Errorf("counter value = %v, want 8", got)
	}
}

func TestSetGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.SetGauge("woodpusher_test_gauge", 42)
	c.SetGauge("woodpusher_test_gauge", 7)

	family := gatherMetric(t, reg, "woodpusher_test_gauge")
	if family == nil {
		t.Fatal("gauge not found in registry")
	}
	if got := family.GetMetric()[0].GetGauge().GetValue(); got != 7 {
		t.Errorf("gauge value = %v, want 7", got)
	}
}

func TestObserveHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveHistogram("woodpusher_test_seconds", 0.5)
	c.ObserveHistogram("woodpusher_test_seconds", 1.5)
	c.ObserveHistogram("woodpusher_test_seconds", 2.5)

	family := gatherMetric(t, reg, "woodpusher_test_seconds")
	if family == nil {
		t.Fatal("histogram not found in registry")
	}
	if got := family.GetMetric()[0].GetHistogram().GetSampleCount(); got != 3 {
		t.Errorf("histogram count = %v, want 3", got)
	}
}

func TestSharesPreRegisteredMetric(t *testing.T) {
	reg := prometheus.NewRegistry()

	existing := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "woodpusher_shared_counter",
		Help: "woodpusher_shared_counter",
	})
	reg.MustRegister(existing)
	existing.Add(100)

	c := New(reg)
	c.IncCounter("woodpusher_shared_counter", 5)

	family := gatherMetric(t, reg, "woodpusher_shared_counter")
	if family == nil {
		t.Fatal("counter not found in registry")
	}
	if got := family.GetMetric()[0].GetCounter().GetValue(); got != 105 {
		t.Errorf("counter value = %v, want 105 (both writers on one metric)", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.IncCounter("woodpusher_concurrent_counter", 1)
				c.SetGauge("woodpusher_concurrent_gauge", int64(j))
				c.ObserveHistogram("woodpusher_concurrent_seconds", float64(j))
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	family := gatherMetric(t, reg, "woodpusher_concurrent_counter")
	if family == nil {
		t.Fatal("counter not found in registry")
	}
	if got := family.GetMetric()[0].GetCounter().GetValue(); got != 1000 {
		t.Errorf("counter value = %v, want 1000", got)
	}
}
