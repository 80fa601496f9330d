package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-lab/internal/dto"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/admin"
)

type AuthHandler struct {
	admins *admin.Service
}

func NewAuthHandler(admins *admin.Service) *AuthHandler {
	return &AuthHandler{admins: admins}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, a, err := h.admins.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if httperr.IsBusiness(err, admin.CodeInvalidCredentials) {
			httperr.Unauthorized(c, admin.CodeInvalidCredentials, "Correo o contraseña incorrectos.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": dto.Admin(a),
	})
}
