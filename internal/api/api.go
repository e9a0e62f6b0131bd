package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/casahub/smarthomes/internal/alerting"
	"github.com/casahub/smarthomes/internal/auth"
	"github.com/casahub/smarthomes/internal/home"
	"github.com/casahub/smarthomes/internal/sensor"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Api binds the business services to the HTTP surface.
type Api struct {
	auth     *auth.Service
	homes    *home.Service
	sensors  *sensor.Service
	readings *sensor.ReadingService
	alerts   *alerting.Service
	rules    *alerting.RuleService
}

type Deps struct {
	Auth     *auth.Service
	Homes    *home.Service
	Sensors  *sensor.Service
	Readings *sensor.ReadingService
	Alerts   *alerting.Service
	Rules    *alerting.RuleService
}

func New(router *gin.Engine, deps Deps) *Api {
	api := &Api{
		auth:     deps.Auth,
		homes:    deps.Homes,
		sensors:  deps.Sensors,
		readings: deps.Readings,
		alerts:   deps.Alerts,
		rules:    deps.Rules,
	}
	api.setupRouters(router)
	return api
}

func (api *Api) setupRouters(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")

	v1.POST("/auth/register", api.Register)
	v1.POST("/auth/login", api.Login)

	v1.GET("/homes", api.ListHomes)
	v1.POST("/homes", api.CreateHome)
	v1.GET("/homes/:homeID", api.GetHome)
	v1.PUT("/homes/:homeID", api.UpdateHome)
	v1.DELETE("/homes/:homeID", api.DeleteHome)
	v1.GET("/homes/:homeID/weather", api.GetHomeWithWeather)
	v1.GET("/homes/:homeID/sensors", api.ListSensorsByHome)
	v1.GET("/homes/:homeID/alerts", api.ListAlertsByHome)
	v1.GET("/homes/:homeID/alerts/unacknowledged", api.ListUnacknowledgedByHome)

	v1.GET("/sensors", api.ListSensors)
	v1.POST("/sensors", api.CreateSensor)
	v1.GET("/sensors/:sensorID", api.GetSensor)
	v1.PUT("/sensors/:sensorID", api.UpdateSensor)
	v1.DELETE("/sensors/:sensorID", api.DeleteSensor)
	v1.GET("/sensors/:sensorID/readings", api.ListReadingsBySensor)
	v1.GET("/sensors/:sensorID/readings/latest", api.GetLatestReading)
	v1.GET("/sensors/:sensorID/rules", api.ListRulesBySensor)
	v1.GET("/sensors/:sensorID/alerts", api.ListAlertsBySensor)

	v1.POST("/readings", api.CreateReading)
	v1.GET("/readings/:readingID", api.GetReading)

	v1.GET("/alertrules", api.ListRules)
	v1.POST("/alertrules", api.CreateRule)
	v1.GET("/alertrules/:ruleID", api.GetRule)
	v1.PUT("/alertrules/:ruleID", api.UpdateRule)
	v1.DELETE("/alertrules/:ruleID", api.DeleteRule)

	v1.GET("/alerts/unacknowledged", api.ListUnacknowledged)
	v1.GET("/alerts/:alertID", api.GetAlert)
	v1.POST("/alerts/:alertID/acknowledge", api.AcknowledgeAlert)
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// respondServiceError maps service-layer sentinel errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, alerting.ErrInvalidRule),
		errors.Is(err, sensor.ErrInvalidSensor),
		errors.Is(err, sensor.ErrInvalidReading),
		errors.Is(err, home.ErrInvalidHome),
		errors.Is(err, auth.ErrInvalidRegistration):
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	case errors.Is(err, alerting.ErrSensorNotFound),
		errors.Is(err, sensor.ErrSensorNotFound),
		errors.Is(err, sensor.ErrHomeNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, sensor.ErrSensorInactive),
		errors.Is(err, auth.ErrEmailTaken):
		respondError(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// parseLimit reads the optional ?limit= query parameter, capped at 500.
func parseLimit(c *gin.Context) int {
	const defaultLimit, maxLimit = 100, 500
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
