package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-lab/internal/content"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/httpresp"
)

type ContentHandler struct {
	site   *content.Site
	thumbs *content.Thumbnails
}

// NewContentHandler serves the embedded site data. thumbs is nil when
// object storage is not configured.
func NewContentHandler(site *content.Site, thumbs *content.Thumbnails) *ContentHandler {
	return &ContentHandler{site: site, thumbs: thumbs}
}

func (h *ContentHandler) Site(c *gin.Context) {
	httpresp.OK(c, h.site)
}

func (h *ContentHandler) Services(c *gin.Context) {
	httpresp.List(c, h.site.Services)
}

func (h *ContentHandler) Gallery(c *gin.Context) {
	httpresp.List(c, h.site.Gallery)
}

func (h *ContentHandler) Testimonials(c *gin.Context) {
	httpresp.List(c, h.site.Testimonials)
}

func (h *ContentHandler) Team(c *gin.Context) {
	httpresp.List(c, h.site.Team)
}

// GalleryImage streams a WebP rendition, ?w= picks the width.
func (h *ContentHandler) GalleryImage(c *gin.Context) {
	if h.thumbs == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_not_configured", "Las imágenes no están disponibles en este momento.")
		return
	}

	img, err := h.thumbs.Get(c.Request.Context(), c.Param("id"), queryInt(c, "w", 0))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/webp", img)
}
