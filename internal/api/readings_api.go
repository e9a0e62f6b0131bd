package api

import (
	"net/http"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/gin-gonic/gin"
)

func (api *Api) CreateReading(c *gin.Context) {
	var req model.CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid request body")
		return
	}

	r, err := api.readings.CreateReading(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (api *Api) GetReading(c *gin.Context) {
	id, ok := parseUUIDParam(c, "readingID")
	if !ok {
		return
	}

	r, err := api.readings.GetReadingByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if r == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "reading not found")
		return
	}
	c.JSON(http.StatusOK, r)
}
