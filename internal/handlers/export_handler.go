package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-lab/internal/export"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/httpresp"
)

type ExportHandler struct {
	exports *export.Service
}

func NewExportHandler(exports *export.Service) *ExportHandler {
	return &ExportHandler{exports: exports}
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

func (h *ExportHandler) Spreadsheet(c *gin.Context) {
	d, err := h.exports.Collect(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteSpreadsheet(&buf, d); err != nil {
		httperr.Respond(c, err)
		return
	}

	attachment(c, h.exports.FileName())
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// CSV serves /exports/<entity>.csv.
func (h *ExportHandler) CSV(c *gin.Context) {
	entity, ok := strings.CutSuffix(c.Param("file"), ".csv")
	if !ok {
		httperr.Respond(c, httperr.ErrBusiness(httperr.CodeNotFound))
		return
	}

	d, err := h.exports.Collect(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, entity, d); err != nil {
		httperr.Respond(c, err)
		return
	}

	attachment(c, entity+".csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) Upload(c *gin.Context) {
	if !h.exports.CanUpload() {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_not_configured", "El almacenamiento de archivos no está configurado.")
		return
	}

	key, url, err := h.exports.Upload(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"key":                key,
		"url":                url,
		"expires_in_seconds": int(export.LinkTTL.Seconds()),
	})
}
