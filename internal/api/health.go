package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/assessgen/internal/catalog"
)

// readinessProbeID is looked up to prove the catalog answers queries.
const readinessProbeID = "__readiness_probe__"

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}

func (h *handlers) ready(c *gin.Context) {
	_, err := h.Catalog.Get(c.Request.Context(), readinessProbeID)

	var nf *catalog.NotFoundError
	if err != nil && !errors.As(err, &nf) {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	counter, ok := h.Catalog.(catalog.Counter)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	n, err := counter.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "problems": n})
}
