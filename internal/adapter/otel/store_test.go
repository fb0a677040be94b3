package otel_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	adapter "github.com/neomorfeo/tourify/internal/adapter/otel"
	"github.com/neomorfeo/tourify/internal/domain"
)

type mapStore struct {
	data map[string][]byte
	err  error
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data[key], nil
}

func (m *mapStore) Set(_ context.Context, key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *mapStore) Delete(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

func newTracingStore(t *testing.T, inner domain.Store) *adapter.TracingStore {
	t.Helper()
	store, err := adapter.NewTracingStore(inner)
	if err != nil {
		t.Fatalf("NewTracingStore: %v", err)
	}
	return store
}

func TestTracingStore_SetGet_RecordsSpans(t *testing.T) {
	exporter := setupTestTracer(t)
	setupTestMeter(t)
	store := newTracingStore(t, &mapStore{data: map[string][]byte{}})
	ctx := context.Background()

	if err := store.Set(ctx, domain.KeyTours, []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, domain.KeyTours)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("Get = %q, want %q", got, "[]")
	}

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Name != "Store.Set" {
		t.Errorf("span[0] name = %q, want %q", spans[0].Name, "Store.Set")
	}
	if spans[1].Name != "Store.Get" {
		t.Errorf("span[1] name = %q, want %q", spans[1].Name, "Store.Get")
	}
	assertAttribute(t, spans[0], "store.key", "tours")
	assertAttribute(t, spans[0], "store.bytes", "2")
	assertAttribute(t, spans[1], "store.hit", "true")
}

func TestTracingStore_Get_MissingKeyIsMiss(t *testing.T) {
	exporter := setupTestTracer(t)
	setupTestMeter(t)
	store := newTracingStore(t, &mapStore{data: map[string][]byte{}})

	got, err := store.Get(context.Background(), domain.KeyProspects)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("Get = %q, want nil", got)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	assertAttribute(t, spans[0], "store.hit", "false")
}

func TestTracingStore_Delete_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	setupTestMeter(t)
	store := newTracingStore(t, &mapStore{err: errors.New("disk full")})

	if err := store.Delete(context.Background(), domain.KeyCurrentUser); err == nil {
		t.Fatal("expected error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "Store.Delete" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "Store.Delete")
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
}

func TestTracingStore_CountsOperations(t *testing.T) {
	setupTestTracer(t)
	reader := setupTestMeter(t)
	store := newTracingStore(t, &mapStore{data: map[string][]byte{}})
	ctx := context.Background()

	_ = store.Set(ctx, domain.KeyTours, []byte(`[]`))
	_, _ = store.Get(ctx, domain.KeyTours)
	_, _ = store.Get(ctx, domain.KeyTours)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "store.operations" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("store.operations data = %T, want Sum[int64]", m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	if total != 3 {
		t.Errorf("store.operations total = %d, want 3", total)
	}
}
