package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/routes
func (h *Handlers) ListRoutes(c *gin.Context) {
	routes, err := h.routeService().ListRoutes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GET /api/routes/:routeNumber
func (h *Handlers) GetRoute(c *gin.Context) {
	route, err := h.routeService().GetRoute(c.Request.Context(), c.Param("routeNumber"))
	if err != nil {
		respondNotFound(c, err, "Route not found")
		return
	}
	c.JSON(http.StatusOK, route)
}

type fareRequest struct {
	RouteNumber   Stringish `json:"routeNumber"`
	PassengerType string    `json:"passengerType"`
}

// POST /api/calculate-fare
func (h *Handlers) CalculateFare(c *gin.Context) {
	var req fareRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	fare, err := h.routeService().QuoteFare(c.Request.Context(), req.RouteNumber.String(), req.PassengerType)
	if err != nil {
		respondNotFound(c, err, "Route not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"fare": fare})
}
