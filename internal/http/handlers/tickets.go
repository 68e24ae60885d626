package handlers

import (
	"net/http"

	"busconductor/internal/domain/models"
	"busconductor/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createTicketRequest struct {
	ConductorID    Stringish       `json:"conductorId"`
	RouteNumber    Stringish       `json:"routeNumber"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	PassengerName  string          `json:"passengerName"`
	PassengerType  string          `json:"passengerType"`
	PassengerCount int             `json:"passengerCount"`
	FareAmount     decimal.Decimal `json:"fareAmount"`
	PaymentMethod  string          `json:"paymentMethod"`
	SeatNumber     Stringish       `json:"seatNumber"`
}

// POST /api/tickets
func (h *Handlers) CreateTicket(c *gin.Context) {
	var req createTicketRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	conductorID, err := req.ConductorID.ID("conductorId")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	ticket, err := h.ticketService(c).CreateTicket(c.Request.Context(), services.TicketInput{
		ConductorID:    conductorID,
		RouteNumber:    req.RouteNumber.String(),
		Origin:         req.Origin,
		Destination:    req.Destination,
		PassengerName:  req.PassengerName,
		PassengerType:  req.PassengerType,
		PassengerCount: req.PassengerCount,
		FareAmount:     req.FareAmount,
		PaymentMethod:  req.PaymentMethod,
		SeatNumber:     req.SeatNumber.Ptr(),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func ticketQuery(c *gin.Context) (services.TicketQuery, error) {
	conductorID, err := parseID(c.Query("conductorId"), "conductorId")
	if err != nil {
		return services.TicketQuery{}, err
	}
	return services.TicketQuery{ConductorID: conductorID, Date: c.Query("date")}, nil
}

// GET /api/tickets?conductorId=&date=
func (h *Handlers) ListTickets(c *gin.Context) {
	q, err := ticketQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	tickets, err := h.ticketService(c).ListTickets(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	c.JSON(http.StatusOK, tickets)
}

// GET /api/tickets/:ticketNumber
func (h *Handlers) GetTicket(c *gin.Context) {
	ticket, err := h.ticketService(c).GetTicket(c.Request.Context(), c.Param("ticketNumber"))
	if err != nil {
		respondNotFound(c, err, "Ticket not found")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// GET /api/tickets/:ticketNumber/pdf
func (h *Handlers) TicketPDF(c *gin.Context) {
	pdf, filename, err := h.docsService(c).TicketPDF(c.Request.Context(), c.Param("ticketNumber"))
	if err != nil {
		respondNotFound(c, err, "Ticket not found")
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/statistics?conductorId=&date=
func (h *Handlers) Statistics(c *gin.Context) {
	q, err := ticketQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	stats, err := h.ticketService(c).Statistics(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalTickets":   gin.H{"count": stats.Count},
		"totalRevenue":   stats.TotalRevenue,
		"ticketsByType":  stats.ByType,
		"ticketsByRoute": stats.ByRoute,
	})
}
