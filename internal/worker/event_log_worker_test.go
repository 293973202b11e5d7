package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-library/internal/model"
)

type memoryEventStore struct {
	events []model.ResourceEvent
	err    error
}

func (m *memoryEventStore) Create(_ context.Context, event *model.ResourceEvent) error {
	if m.err != nil {
		return m.err
	}
	event.ID = uint(len(m.events) + 1)
	m.events = append(m.events, *event)
	return nil
}

func TestEventLogWorkerHandle(t *testing.T) {
	store := &memoryEventStore{}
	w := NewEventLogWorker(nil, store, "resource.events")

	body := []byte(`{"id":99,"kind":"resource.created","resource_id":"r1","title":"a.pdf","type":"pdf","occurred_at":"2024-02-03T04:05:06Z"}`)
	require.NoError(t, w.handle(context.Background(), body))

	require.Len(t, store.events, 1)
	got := store.events[0]
	assert.Equal(t, uint(1), got.ID, "incoming ids are ignored")
	assert.Equal(t, model.EventResourceCreated, got.Kind)
	assert.Equal(t, "r1", got.ResourceID)
	assert.Equal(t, "a.pdf", got.Title)
	assert.Equal(t, model.ResourceTypePDF, got.Type)
	assert.True(t, got.OccurredAt.Equal(time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)))
}

func TestEventLogWorkerHandleErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		body  string
		store *memoryEventStore
	}{
		{name: "malformed json", body: `{"kind":`, store: &memoryEventStore{}},
		{name: "missing kind", body: `{"resource_id":"r1"}`, store: &memoryEventStore{}},
		{name: "missing resource id", body: `{"kind":"resource.deleted"}`, store: &memoryEventStore{}},
		{name: "store failure", body: `{"kind":"resource.deleted","resource_id":"r1"}`, store: &memoryEventStore{err: errors.New("disk full")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewEventLogWorker(nil, tt.store, "resource.events")
			assert.Error(t, w.handle(ctx, []byte(tt.body)))
			assert.Empty(t, tt.store.events)
		})
	}
}

func TestEventLogWorkerCloseWithoutStart(t *testing.T) {
	w := NewEventLogWorker(nil, &memoryEventStore{}, "resource.events")
	assert.NotPanics(t, w.Close)
}
