package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string   `json:"error_code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

var businessMessages = map[string]string{
	CodeSlotTaken:         "El horario seleccionado ya no está disponible. Elige otro horario.",
	CodeTooSoon:           "Las citas para hoy requieren al menos dos horas de anticipación.",
	CodeInvalidTransition: "El cambio de estado solicitado no está permitido.",
	CodeNotFound:          "Registro no encontrado.",
	CodeInactiveAdmin:     "Tu cuenta de administrador no está activa.",
	CodeSelfDelete:        "No puedes eliminar tu propia cuenta.",
	CodeAdminExists:       "Ya existe un administrador con ese identificador o correo.",
	CodeNotAllowed:        "No puedes otorgar permisos que no tienes ni modificar esta cuenta.",
}

// Respond maps any service error onto the JSON envelope. Raw causes of
// infrastructure failures stay in the logs.
func Respond(c *gin.Context, err error) {
	var ve ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, HTTPError{
			Code:    "validation_failed",
			Message: "Revisa los datos ingresados.",
			Details: ve.Messages,
		})
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		msg, ok := businessMessages[be.Code]
		if !ok {
			msg = "La solicitud no pudo completarse."
		}
		Write(c, statusFor(KindOf(err)), be.Code, msg)
		return
	}

	switch KindOf(err) {
	case KindConflict:
		Write(c, http.StatusConflict, "conflict", "El registro entra en conflicto con otro existente.")
	case KindUnavailable:
		Write(c, http.StatusServiceUnavailable, "temporarily_unavailable", "El servicio no está disponible en este momento. Intenta nuevamente.")
	case KindPermission:
		Forbidden(c, "permission_denied", "No tienes permisos para realizar esta operación.")
	case KindNotFound:
		NotFound(c, "not_found", "Registro no encontrado.")
	default:
		Internal(c, "internal_error", "Algo salió mal. Intenta nuevamente.")
	}
}

func statusFor(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
