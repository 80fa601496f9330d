package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-lab/internal/auth"
	domain "github.com/BruksfildServices01/dental-lab/internal/domain/admin"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

const (
	ContextAdmin = "admin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, subject, email string) (*models.Administrator, error)
}

func bearer(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// RequireAdmin verifies the bearer token and loads the active administrator
// it names into the request context.
func RequireAdmin(tokens *auth.Tokens, authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c)
		if !ok {
			httperr.Unauthorized(c, "missing_authorization_header", "Inicia sesión para continuar.")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Tu sesión no es válida o expiró.")
			c.Abort()
			return
		}

		a, err := authn.Authenticate(c.Request.Context(), claims.Subject, claims.Email)
		if err != nil {
			// an unknown subject is an authentication failure, not a missing resource
			if httperr.IsKind(err, httperr.KindNotFound) {
				httperr.Unauthorized(c, "unknown_admin", "Tu sesión no es válida o expiró.")
				c.Abort()
				return
			}
			httperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAdmin, a)
		c.Next()
	}
}

// RequirePermission must run after RequireAdmin.
func RequirePermission(p domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := CurrentAdmin(c)
		if err != nil {
			httperr.Unauthorized(c, "missing_admin", "Inicia sesión para continuar.")
			c.Abort()
			return
		}

		if !domain.Has(a.Permissions.Data(), p) {
			httperr.Forbidden(c, "permission_denied", "No tienes permisos para realizar esta operación.")
			c.Abort()
			return
		}

		c.Next()
	}
}

var errNoAdmin = errors.New("no administrator in context")

func CurrentAdmin(c *gin.Context) (*models.Administrator, error) {
	v, ok := c.Get(ContextAdmin)
	if !ok {
		return nil, errNoAdmin
	}
	a, ok := v.(*models.Administrator)
	if !ok || a == nil {
		return nil, errNoAdmin
	}
	return a, nil
}

// ActorSubject is the subject of the calling administrator, empty when none.
func ActorSubject(c *gin.Context) string {
	a, err := CurrentAdmin(c)
	if err != nil {
		return ""
	}
	return a.Subject
}
