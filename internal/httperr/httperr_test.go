package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", gorm.ErrRecordNotFound, KindNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, KindConflict},
		{"deadline", context.DeadlineExceeded, KindUnavailable},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), KindUnavailable},
		{"pg unique", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"pg permission", &pgconn.PgError{Code: "42501"}, KindPermission},
		{"pg connection", &pgconn.PgError{Code: "08006"}, KindUnavailable},
		{"pg other", &pgconn.PgError{Code: "22001"}, KindInternal},
		{"anything else", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("op", tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClassify_PassesDomainErrorsThrough(t *testing.T) {
	be := ErrBusiness(CodeSlotTaken)
	assert.Equal(t, be, Classify("op", be))

	ve := ErrValidation([]string{"x"})
	assert.Equal(t, ve, Classify("op", ve))

	assert.NoError(t, Classify("op", nil))
}

func TestKindOf_Business(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(ErrBusiness(CodeSlotTaken)))
	assert.Equal(t, KindConflict, KindOf(ErrBusiness(CodeInvalidTransition)))
	assert.Equal(t, KindNotFound, KindOf(ErrBusiness(CodeNotFound)))
	assert.Equal(t, KindPermission, KindOf(ErrBusiness(CodeInactiveAdmin)))
	assert.Equal(t, KindValidation, KindOf(ErrBusiness(CodeSelfDelete)))
	assert.Equal(t, KindConflict, KindOf(ErrBusiness(CodeAdminExists)))
	assert.Equal(t, KindPermission, KindOf(ErrBusiness(CodeNotAllowed)))
	assert.Equal(t, KindValidation, KindOf(ErrValidation([]string{"x"})))
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", ErrValidation([]string{"a", "b"}), http.StatusUnprocessableEntity, "validation_failed"},
		{"slot taken", ErrBusiness(CodeSlotTaken), http.StatusConflict, CodeSlotTaken},
		{"unavailable", Classify("op", context.DeadlineExceeded), http.StatusServiceUnavailable, "temporarily_unavailable"},
		{"permission", Classify("op", &pgconn.PgError{Code: "42501"}), http.StatusForbidden, "permission_denied"},
		{"not found", Classify("op", gorm.ErrRecordNotFound), http.StatusNotFound, "not_found"},
		{"internal", errors.New("secret provider detail"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			Respond(c, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotContains(t, body.Message, "secret provider detail")
		})
	}
}

func TestRespond_ValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Respond(c, ErrValidation([]string{"nombre", "correo"}))

	var body HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"nombre", "correo"}, body.Details)
}
