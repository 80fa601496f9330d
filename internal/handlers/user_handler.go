package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-lab/internal/dto"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/httpresp"
	"github.com/BruksfildServices01/dental-lab/internal/middleware"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/admin"
)

// UserHandler manages administrator accounts.
type UserHandler struct {
	admins *admin.Service
}

func NewUserHandler(admins *admin.Service) *UserHandler {
	return &UserHandler{admins: admins}
}

func (h *UserHandler) List(c *gin.Context) {
	list, err := h.admins.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.Admins(list))
}

func (h *UserHandler) Get(c *gin.Context) {
	a, err := h.admins.Get(c.Request.Context(), c.Param("subject"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.Admin(a))
}

func (h *UserHandler) Create(c *gin.Context) {
	var in admin.CreateInput
	if !bindJSON(c, &in) {
		return
	}

	actor := middleware.ActorSubject(c)
	a, err := h.admins.Create(c.Request.Context(), &actor, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.Admin(a))
}

func (h *UserHandler) Update(c *gin.Context) {
	var patch admin.Patch
	if !bindJSON(c, &patch) {
		return
	}

	a, err := h.admins.Update(c.Request.Context(), middleware.ActorSubject(c), c.Param("subject"), patch)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.Admin(a))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.admins.Delete(c.Request.Context(), middleware.ActorSubject(c), c.Param("subject")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
