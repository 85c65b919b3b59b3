package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is running successfully!"})
}

func (h *Handler) Health(c *gin.Context) {
	datasetStatus := "ok"
	if h.probe == nil {
		datasetStatus = "not configured"
	} else if err := h.probe(c.Request.Context()); err != nil {
		datasetStatus = "error: " + err.Error()
	}

	status := http.StatusOK
	if datasetStatus != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":  http.StatusText(status),
		"service": "travelbook API",
		"dataset": datasetStatus,
		"amadeus": h.upstream,
	})
}
