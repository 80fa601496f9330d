// Package notify sends the booking and contact e-mails. Delivery is best
// effort: failures are logged and never reach the request that caused them.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/dental-lab/internal/models"
)

var errUnknownKind = errors.New("unknown notification kind")

const sendTimeout = 10 * time.Second

type Dispatcher struct {
	sender     Sender
	from       string
	adminEmail string
	log        *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, from, adminEmail string, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		from:       from,
		adminEmail: adminEmail,
		log:        log.With("module", "notify"),
	}
}

// Dispatch renders kind for payload and hands it to the sender. True means
// the sender accepted the message.
func (d *Dispatcher) Dispatch(ctx context.Context, kind Kind, to string, payload any) bool {
	subject, html, text, err := render(kind, payload)
	if err != nil {
		d.log.Error("notify.render.failed", "kind", kind, "err", err)
		return false
	}

	if err := d.sender.Send(ctx, Message{
		From:    d.from,
		To:      to,
		Subject: subject,
		HTML:    html,
		Text:    text,
	}); err != nil {
		d.log.Error("notify.send.failed", "kind", kind, "to", to, "err", err)
		return false
	}
	return true
}

// AppointmentBooked notifies the client and the lab concurrently and returns
// without waiting for either.
func (d *Dispatcher) AppointmentBooked(ap models.Appointment) {
	d.fanOut(
		job{KindBookingClient, ap.Email, ap},
		job{KindBookingAdmin, d.adminEmail, ap},
	)
}

func (d *Dispatcher) ContactReceived(c models.Contact) {
	d.fanOut(
		job{KindContactClient, c.Email, c},
		job{KindContactAdmin, d.adminEmail, c},
	)
}

type job struct {
	kind    Kind
	to      string
	payload any
}

func (d *Dispatcher) fanOut(jobs ...job) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		for _, j := range jobs {
			d.log.Warn("notify.dropped", "kind", j.kind, "reason", "closed")
		}
		return
	}
	d.wg.Add(len(jobs))
	d.mu.Unlock()

	for _, j := range jobs {
		go func(j job) {
			defer d.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			defer cancel()

			if d.Dispatch(ctx, j.kind, j.to, j.payload) {
				d.log.Debug("notify.sent", "kind", j.kind)
			}
		}(j)
	}
}

// Close stops accepting dispatches and blocks until the in-flight ones
// finished. Later bookings are logged as dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.wg.Wait()
}
