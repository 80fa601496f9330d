package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/dental-lab/internal/domain/contact"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/httpresp"
	"github.com/BruksfildServices01/dental-lab/internal/middleware"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/contact"
)

type ContactHandler struct {
	contacts *contact.Service
}

func NewContactHandler(contacts *contact.Service) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) List(c *gin.Context) {
	list, err := h.contacts.List(c.Request.Context(), domain.Filter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Limit:    queryInt(c, "limit", 0),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ContactHandler) Get(c *gin.Context) {
	ct, err := h.contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ct)
}

func (h *ContactHandler) Update(c *gin.Context) {
	var patch domain.Patch
	if !bindJSON(c, &patch) {
		return
	}

	ct, err := h.contacts.Update(c.Request.Context(), middleware.ActorSubject(c), c.Param("id"), patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ct)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), middleware.ActorSubject(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
