package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-lab/internal/dto"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	a, err := middleware.CurrentAdmin(c)
	if err != nil {
		httperr.Unauthorized(c, "admin_not_in_context", "Inicia sesión para continuar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": dto.Admin(a)})
}
