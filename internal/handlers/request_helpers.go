package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/timezone"
)

// bindJSON decodes the body into v or answers 400.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return false
	}
	return true
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryDate parses an optional YYYY-MM-DD filter in lab time. Invalid values
// are ignored.
func queryDate(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	d, err := timezone.ParseDate(raw, timezone.Location(timezone.DefaultTimezone))
	if err != nil {
		return nil
	}
	return &d
}
