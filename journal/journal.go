// Package journal keeps an append-only trail of changes made through the
// service. It is never read back into the store.
package journal

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type Entity string

const (
	EntityProduct  Entity = "product"
	EntityOrder    Entity = "order"
	EntityUser     Entity = "user"
	EntitySettings Entity = "settings"
)

type Action string

const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionDeleted       Action = "deleted"
	ActionStatusChanged Action = "status_changed"
	ActionItemAdded     Action = "item_added"
	ActionItemRemoved   Action = "item_removed"
)

// Entry is one recorded change.
type Entry struct {
	Entity     Entity    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	Action     Action    `json:"action"`
	Payload    string    `json:"payload,omitempty"`
	TraceID    string    `json:"trace_id,omitempty"`
	SpanID     string    `json:"span_id,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Journal is the port the service writes to.
type Journal interface {
	Record(ctx context.Context, e Entry) error
	// Recent returns up to limit entries, newest first. A limit <= 0
	// means DefaultLimit.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// NewEntry builds an entry stamped with the active span of ctx, if any.
// payload is stored as JSON; a nil payload leaves it empty.
func NewEntry(ctx context.Context, entity Entity, id string, action Action, payload any) Entry {
	e := Entry{
		Entity:     entity,
		EntityID:   id,
		Action:     action,
		RecordedAt: time.Now().UTC(),
	}
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			e.Payload = string(b)
		}
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		e.TraceID = sc.TraceID().String()
		e.SpanID = sc.SpanID().String()
	}
	return e
}

// Nop discards everything.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error          { return nil }
func (Nop) Recent(context.Context, int) ([]Entry, error) { return []Entry{}, nil }

// DefaultLimit is used by Recent when the caller passes limit <= 0.
const DefaultLimit = 50

// Memory keeps entries in a bounded ring.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
	max     int
}

// NewMemory keeps at most max entries; max <= 0 means 1000.
func NewMemory(max int) *Memory {
	if max <= 0 {
		max = 1000
	}
	return &Memory{max: max}
}

func (m *Memory) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	if over := len(m.entries) - m.max; over > 0 {
		m.entries = slices.Delete(m.entries, 0, over)
	}
	return nil
}

func (m *Memory) Recent(_ context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = DefaultLimit
	}
	n := min(limit, len(m.entries))
	out := make([]Entry, 0, n)
	for i := len(m.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}
