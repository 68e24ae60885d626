package services

import (
	"context"

	"busconductor/internal/domain/models"
)

// RouteStore reads routes. GetRoute returns domain.NotFoundError when the
// number is unknown.
type RouteStore interface {
	ListRoutes(ctx context.Context) ([]models.Route, error)
	GetRoute(ctx context.Context, routeNumber string) (models.Route, error)
}

// TicketStore persists tickets. CreateTicket returns domain.ConflictError
// when the ticket number is already taken.
type TicketStore interface {
	CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error)
	ListTickets(ctx context.Context, f models.TicketFilter) ([]models.Ticket, error)
	GetTicket(ctx context.Context, ticketNumber string) (models.Ticket, error)
}

type ConductorStore interface {
	ListConductors(ctx context.Context) ([]models.Conductor, error)
	GetConductorByUsername(ctx context.Context, username string) (models.Conductor, error)
}

type ChatHistoryStore interface {
	AppendMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error)
	ListMessages(ctx context.Context, conductorID int64, limit uint64) ([]models.ChatMessage, error)
	ClearMessages(ctx context.Context, conductorID int64) error
}
