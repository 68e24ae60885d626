package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/login
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	conductor, err := h.authService(c).Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, conductor)
}
