package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/dental-lab/internal/infra/repository"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLister interface {
	List(ctx context.Context, f infraRepo.AuditFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditLister
}

func NewAuditLogsHandler(logs AuditLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}

	limit := queryInt(c, "limit", defaultAuditLimit)
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	// --------------------------------------------------
	// Filtros opcionales
	// --------------------------------------------------
	f := infraRepo.AuditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		From:   queryDate(c, "from"),
		To:     queryDate(c, "to"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
