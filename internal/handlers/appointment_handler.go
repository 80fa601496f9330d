package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/dto"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/httpresp"
	"github.com/BruksfildServices01/dental-lab/internal/middleware"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *appointment.CreateAppointment
	list         *appointment.ListAppointments
	get          *appointment.GetAppointment
	update       *appointment.UpdateAppointment
	updateStatus *appointment.UpdateStatus
	remove       *appointment.DeleteAppointment
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	list *appointment.ListAppointments,
	get *appointment.GetAppointment,
	update *appointment.UpdateAppointment,
	updateStatus *appointment.UpdateStatus,
	remove *appointment.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		list:         list,
		get:          get,
		update:       update,
		updateStatus: updateStatus,
		remove:       remove,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

// Create books on behalf of a client with the same rules as the public form.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req domain.BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context(), appointment.ListFilter{
		Date:  c.Query("date"),
		Email: c.Query("email"),
		Limit: queryInt(c, "limit", 0),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.AppointmentList(list))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// SlotTaken answers whether a live appointment already holds ?date=&time=.
func (h *AppointmentHandler) SlotTaken(c *gin.Context) {
	date, hm := c.Query("date"), c.Query("time")

	errs := []string{}
	if date == "" {
		errs = append(errs, domain.MsgDateRequired)
	}
	if hm == "" {
		errs = append(errs, domain.MsgTimeRequired)
	}
	if len(errs) > 0 {
		httperr.Respond(c, httperr.ErrValidation(errs))
		return
	}

	taken, err := h.get.IsSlotTaken(c.Request.Context(), date, hm)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"date": date, "time": hm, "taken": taken})
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	var patch domain.Patch
	if !bindJSON(c, &patch) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.ActorSubject(c), c.Param("id"), patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.updateStatus.Execute(
		c.Request.Context(),
		middleware.ActorSubject(c),
		c.Param("id"),
		domain.Status(req.Status),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), middleware.ActorSubject(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
