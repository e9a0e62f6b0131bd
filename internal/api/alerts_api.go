package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (api *Api) GetAlert(c *gin.Context) {
	id, ok := parseUUIDParam(c, "alertID")
	if !ok {
		return
	}

	alert, err := api.alerts.GetAlertByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if alert == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "alert not found")
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (api *Api) ListUnacknowledged(c *gin.Context) {
	alerts, err := api.alerts.GetUnacknowledgedAlerts(c.Request.Context(), nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (api *Api) AcknowledgeAlert(c *gin.Context) {
	id, ok := parseUUIDParam(c, "alertID")
	if !ok {
		return
	}

	acked, err := api.alerts.AcknowledgeAlert(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !acked {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "alert not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true})
}
