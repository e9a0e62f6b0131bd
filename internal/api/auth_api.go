package api

import (
	"net/http"

	"github.com/casahub/smarthomes/internal/model"
	"github.com/gin-gonic/gin"
)

func (api *Api) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid request body")
		return
	}

	resp, err := api.auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (api *Api) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", "invalid request body")
		return
	}

	resp, err := api.auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
