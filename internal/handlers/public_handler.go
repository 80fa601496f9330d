package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
	contactDomain "github.com/BruksfildServices01/dental-lab/internal/domain/contact"
	"github.com/BruksfildServices01/dental-lab/internal/dto"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/httpresp"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/contact"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	availability *appointment.GetAvailability
	create       *appointment.CreateAppointment
	contacts     *contact.Service
}

func NewPublicHandler(
	availability *appointment.GetAvailability,
	create *appointment.CreateAppointment,
	contacts *contact.Service,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		create:       create,
		contacts:     contacts,
	}
}

////////////////////////////////////////////////////////
// HEALTH
////////////////////////////////////////////////////////

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health answers 200 while the database responds. A nil pinger only
// reports that the process is up.
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.Respond(c, httperr.ErrValidation([]string{domain.MsgDateRequired}))
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req domain.BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.BookingCreated(ap))
}

////////////////////////////////////////////////////////
// CREATE CONTACT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateContact(c *gin.Context) {
	var req contactDomain.Request
	if !bindJSON(c, &req) {
		return
	}

	ct, err := h.contacts.Create(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"id": ct.ID})
}
