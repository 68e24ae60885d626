package handlers

import (
	"context"
	"net/http"
	"time"

	"busconductor/internal/db"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server running"})
}

func (h *Handlers) DBCheck(c *gin.Context) {
	if h.Store == nil {
		respondError(c, http.StatusInternalServerError, "store_unavailable", "store not connected", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	missing, err := h.Store.MissingTables(ctx, db.RequiredTables...)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "store_unavailable", "store check failed: "+err.Error(), nil)
		return
	}
	if len(missing) > 0 {
		respondError(c, http.StatusInternalServerError, "schema_incomplete", "missing tables", missing)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "store connection OK"})
}
