package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Event struct {
	ActorSubject *string
	Action       string
	Entity       string
	EntityID     string
	Metadata     any
}

const (
	queueSize  = 100
	logTimeout = 5 * time.Second
)

type Dispatcher struct {
	logger *Logger
	log    *slog.Logger
	queue  chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(logger *Logger, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log.With("module", "audit"),
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error("audit.write.failed", "action", ev.Action, "entity", ev.Entity, "err", err)
		}
		cancel()
	}
}

// Dispatch never blocks. A full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit.queue.full", "action", ev.Action, "entity", ev.Entity)
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() { close(d.queue) })
	<-d.done
}
