package journal

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewEntry_PayloadAndTrace(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	e := NewEntry(ctx, EntityOrder, "o1", ActionStatusChanged, map[string]string{"status": "Shipped"})
	if e.Payload != `{"status":"Shipped"}` {
		t.Fatalf("unexpected payload %q", e.Payload)
	}
	if e.TraceID != span.SpanContext().TraceID().String() || e.SpanID != span.SpanContext().SpanID().String() {
		t.Fatalf("trace ids not copied: %+v", e)
	}
	if e.RecordedAt.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestNewEntry_NoSpan(t *testing.T) {
	e := NewEntry(context.Background(), EntityProduct, "p1", ActionDeleted, nil)
	if e.Payload != "" || e.TraceID != "" || e.SpanID != "" {
		t.Fatalf("expected empty payload and trace, got %+v", e)
	}
}

func TestMemory_RecentNewestFirstAndBounded(t *testing.T) {
	m := NewMemory(3)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d"} {
		_ = m.Record(ctx, Entry{EntityID: id})
	}

	got, _ := m.Recent(ctx, 0)
	if len(got) != 3 || got[0].EntityID != "d" || got[2].EntityID != "b" {
		t.Fatalf("unexpected entries: %+v", got)
	}
	got, _ = m.Recent(ctx, 1)
	if len(got) != 1 || got[0].EntityID != "d" {
		t.Fatalf("unexpected limited entries: %+v", got)
	}
}

func TestMemory_RecentDefaultLimit(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()
	for i := 0; i < DefaultLimit+10; i++ {
		_ = m.Record(ctx, Entry{EntityID: "x"})
	}
	for _, limit := range []int{0, -1} {
		got, _ := m.Recent(ctx, limit)
		if len(got) != DefaultLimit {
			t.Fatalf("Recent(%d): expected %d entries, got %d", limit, DefaultLimit, len(got))
		}
	}
}
