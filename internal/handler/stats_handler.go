package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StartRefresher starts the stats refresher
func (h *Handlers) StartRefresher(c *gin.Context) {
	if err := h.refresher.Start(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stats refresher started successfully",
		"status":  "running",
	})
}

// StopRefresher stops the stats refresher
func (h *Handlers) StopRefresher(c *gin.Context) {
	if err := h.refresher.Stop(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stats refresher stopped successfully",
		"status":  "stopped",
	})
}

// RunRefresherOnce refreshes the store gauges once
func (h *Handlers) RunRefresherOnce(c *gin.Context) {
	if err := h.refresher.RunOnce(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stats refresh completed successfully",
	})
}

// GetRefresherStatus returns the current refresher status
func (h *Handlers) GetRefresherStatus(c *gin.Context) {
	status := "stopped"
	if h.refresher.IsRunning() {
		status = "running"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"next_run": h.refresher.GetNextRun(),
		"last_run": h.refresher.GetLastRun(),
	})
}
