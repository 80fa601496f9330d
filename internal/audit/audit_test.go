package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dental-lab/internal/logger"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type memoryStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
	err     error
}

func (s *memoryStore) Create(_ context.Context, e *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	e.ID = uint(len(s.entries) + 1)
	s.entries = append(s.entries, *e)
	return nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	body [][]byte
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.body = append(p.body, payload)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var fixedNow = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

func TestLogger_WritesAndPublishes(t *testing.T) {
	store := &memoryStore{}
	pub := &recordingPublisher{}
	l := New(store, pub, fixedNow)

	actor := "sub-1"
	require.NoError(t, l.Log(context.Background(), Event{
		ActorSubject: &actor,
		Action:       "appointment_status_changed",
		Entity:       "appointment",
		EntityID:     "ap-1",
		Metadata:     map[string]string{"to": "confirmed"},
	}))

	require.Len(t, store.entries, 1)
	assert.Equal(t, `{"to":"confirmed"}`, store.entries[0].Metadata)
	assert.Equal(t, fixedNow(), store.entries[0].CreatedAt)

	require.Equal(t, []string{"appointment.appointment_status_changed"}, pub.keys)

	var msg map[string]any
	require.NoError(t, json.Unmarshal(pub.body[0], &msg))
	assert.Equal(t, "ap-1", msg["entity_id"])
	assert.Equal(t, "sub-1", msg["actor_subject"])
}

func TestLogger_StoreFailureSkipsPublish(t *testing.T) {
	pub := &recordingPublisher{}
	l := New(&memoryStore{err: errors.New("down")}, pub, fixedNow)

	assert.Error(t, l.Log(context.Background(), Event{Action: "x", Entity: "y"}))
	assert.Empty(t, pub.keys)
}

func TestDispatcher_DrainsOnClose(t *testing.T) {
	store := &memoryStore{}
	d := NewDispatcher(New(store, nil, fixedNow), logger.Discard())

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{Action: "contact_created", Entity: "contact"})
	}
	d.Close()

	assert.Len(t, store.entries, 10)
}

func TestDispatcher_NilIsSafe(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "x"}) })
}
