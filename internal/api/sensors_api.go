package api

import (
	"net/http"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/gin-gonic/gin"
)

func (api *Api) ListSensors(c *gin.Context) {
	sensors, err := api.sensors.GetAllSensors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sensors": sensors})
}

func (api *Api) GetSensor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "sensorID")
	if !ok {
		return
	}

	s, err := api.sensors.GetSensorByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if s == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "sensor not found")
		return
	}
	c.JSON(http.StatusOK, s)
}

func (api *Api) CreateSensor(c *gin.Context) {
	var req model.CreateSensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid request body")
		return
	}

	s, err := api.sensors.CreateSensor(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (api *Api) UpdateSensor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "sensorID")
	if !ok {
		return
	}

	var req model.UpdateSensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid request body")
		return
	}

	updated, err := api.sensors.UpdateSensor(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !updated {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "sensor not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (api *Api) DeleteSensor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "sensorID")
	if !ok {
		return
	}

	deleted, err := api.sensors.DeleteSensor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "sensor not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *Api) ListReadingsBySensor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "sensorID")
	if !ok {
		return
	}

	readings, err := api.readings.GetReadingsBySensorID(c.Request.Context(), id, parseLimit(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"readings": readings})
}

func (api *Api) GetLatestReading(c *gin.Context) {
	id, ok := parseUUIDParam(c, "sensorID")
	if !ok {
		return
	}

	r, err := api.readings.GetLatestReading(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if r == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "no readings for sensor")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (api *Api) ListRulesBySensor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "sensorID")
	if !ok {
		return
	}

	rules, err := api.rules.GetRulesBySensorID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (api *Api) ListAlertsBySensor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "sensorID")
	if !ok {
		return
	}

	alerts, err := api.alerts.GetAlertsBySensorID(c.Request.Context(), id, parseLimit(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
