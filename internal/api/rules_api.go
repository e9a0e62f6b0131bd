package api

import (
	"net/http"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/gin-gonic/gin"
)

func (api *Api) ListRules(c *gin.Context) {
	rules, err := api.rules.GetAllRules(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (api *Api) GetRule(c *gin.Context) {
	id, ok := parseUUIDParam(c, "ruleID")
	if !ok {
		return
	}

	rule, err := api.rules.GetRuleByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if rule == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "alert rule not found")
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (api *Api) CreateRule(c *gin.Context) {
	var req model.CreateAlertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid request body")
		return
	}

	rule, err := api.rules.CreateRule(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (api *Api) UpdateRule(c *gin.Context) {
	id, ok := parseUUIDParam(c, "ruleID")
	if !ok {
		return
	}

	var req model.UpdateAlertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid request body")
		return
	}

	updated, err := api.rules.UpdateRule(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !updated {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "alert rule not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (api *Api) DeleteRule(c *gin.Context) {
	id, ok := parseUUIDParam(c, "ruleID")
	if !ok {
		return
	}

	deleted, err := api.rules.DeleteRule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "alert rule not found")
		return
	}
	c.Status(http.StatusNoContent)
}
