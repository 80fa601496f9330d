package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/dental-lab/internal/infra/events"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type Store interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// Logger persists an event and then mirrors it to the broker.
type Logger struct {
	store     Store
	publisher events.Publisher
	now       func() time.Time
}

func New(store Store, publisher events.Publisher, now func() time.Time) *Logger {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Logger{store: store, publisher: publisher, now: now}
}

type message struct {
	ID           uint      `json:"id"`
	ActorSubject *string   `json:"actor_subject,omitempty"`
	Action       string    `json:"action"`
	Entity       string    `json:"entity"`
	EntityID     string    `json:"entity_id"`
	Metadata     any       `json:"metadata,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ActorSubject: ev.ActorSubject,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
		CreatedAt:    l.now(),
	}

	if err := l.store.Create(ctx, &entry); err != nil {
		return err
	}

	payload, err := json.Marshal(message{
		ID:           entry.ID,
		ActorSubject: ev.ActorSubject,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     ev.Metadata,
		OccurredAt:   entry.CreatedAt,
	})
	if err != nil {
		return err
	}

	return l.publisher.Publish(ctx, ev.Entity+"."+ev.Action, payload)
}
