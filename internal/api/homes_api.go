package api

import (
	"net/http"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/gin-gonic/gin"
)

func (api *Api) ListHomes(c *gin.Context) {
	homes, err := api.homes.GetAllHomes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"homes": homes})
}

func (api *Api) GetHome(c *gin.Context) {
	id, ok := parseUUIDParam(c, "homeID")
	if !ok {
		return
	}

	h, err := api.homes.GetHomeByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if h == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "home not found")
		return
	}
	c.JSON(http.StatusOK, h)
}

func (api *Api) CreateHome(c *gin.Context) {
	var req model.CreateHomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid request body")
		return
	}

	h, err := api.homes.CreateHome(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h)
}

func (api *Api) UpdateHome(c *gin.Context) {
	id, ok := parseUUIDParam(c, "homeID")
	if !ok {
		return
	}

	var req model.UpdateHomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid request body")
		return
	}

	updated, err := api.homes.UpdateHome(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !updated {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "home not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (api *Api) DeleteHome(c *gin.Context) {
	id, ok := parseUUIDParam(c, "homeID")
	if !ok {
		return
	}

	deleted, err := api.homes.DeleteHome(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "home not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *Api) GetHomeWithWeather(c *gin.Context) {
	id, ok := parseUUIDParam(c, "homeID")
	if !ok {
		return
	}

	hw, err := api.homes.GetHomeWithWeather(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if hw == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "home not found")
		return
	}
	c.JSON(http.StatusOK, hw)
}

func (api *Api) ListSensorsByHome(c *gin.Context) {
	id, ok := parseUUIDParam(c, "homeID")
	if !ok {
		return
	}

	var (
		sensors []model.Sensor
		err     error
	)
	if c.Query("active") == "true" {
		sensors, err = api.sensors.GetActiveSensorsByHomeID(c.Request.Context(), id)
	} else {
		sensors, err = api.sensors.GetSensorsByHomeID(c.Request.Context(), id)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sensors": sensors})
}

func (api *Api) ListAlertsByHome(c *gin.Context) {
	id, ok := parseUUIDParam(c, "homeID")
	if !ok {
		return
	}

	alerts, err := api.alerts.GetAlertsByHomeID(c.Request.Context(), id, parseLimit(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (api *Api) ListUnacknowledgedByHome(c *gin.Context) {
	id, ok := parseUUIDParam(c, "homeID")
	if !ok {
		return
	}

	alerts, err := api.alerts.GetUnacknowledgedAlerts(c.Request.Context(), &id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	count, err := api.alerts.CountUnacknowledgedByHomeID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": count})
}
