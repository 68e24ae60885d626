package repositories

import (
	"context"

	"busconductor/internal/db"
	"busconductor/internal/domain"
	"busconductor/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
)

var ticketColumns = []string{
	"id", "ticket_number", "conductor_id", "route_number", "origin", "destination",
	"passenger_name", "passenger_type", "passenger_count", "fare_amount",
	"payment_method", "seat_number", "ticket_date",
}

type TicketRepository struct {
	Store *db.Store
}

// CreateTicket inserts t as-is. A duplicate ticket number comes back as a
// ConflictError; nothing is overwritten.
func (r TicketRepository) CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	q := r.Store.Insert("tickets").
		Columns(ticketColumns[1:]...).
		Values(
			t.TicketNumber, t.ConductorID, t.RouteNumber, t.Origin, t.Destination,
			t.PassengerName, t.PassengerType, t.PassengerCount, t.FareAmount,
			t.PaymentMethod, t.SeatNumber, t.TicketDate,
		)
	id, err := r.Store.InsertReturningID(ctx, q)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Ticket{}, domain.ConflictError{Resource: "ticket", Msg: "ticket number " + t.TicketNumber + " already exists", Err: err}
		}
		return models.Ticket{}, domain.UpstreamError{Service: "store", Err: err}
	}
	t.ID = id
	return t, nil
}

// ListTickets returns tickets matching f, newest first.
func (r TicketRepository) ListTickets(ctx context.Context, f models.TicketFilter) ([]models.Ticket, error) {
	q := r.Store.Select(ticketColumns...).From("tickets")
	if f.ConductorID > 0 {
		q = q.Where(sq.Eq{"conductor_id": f.ConductorID})
	}
	if !f.From.IsZero() {
		q = q.Where(sq.GtOrEq{"ticket_date": f.From})
	}
	if !f.To.IsZero() {
		q = q.Where(sq.LtOrEq{"ticket_date": f.To})
	}
	q = q.OrderBy("ticket_date DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	out := []models.Ticket{}
	if err := r.Store.All(ctx, &out, q); err != nil {
		return nil, domain.UpstreamError{Service: "store", Err: err}
	}
	return out, nil
}

func (r TicketRepository) GetTicket(ctx context.Context, ticketNumber string) (models.Ticket, error) {
	var t models.Ticket
	q := r.Store.Select(ticketColumns...).From("tickets").Where(sq.Eq{"ticket_number": ticketNumber})
	if err := r.Store.One(ctx, &t, q); err != nil {
		if db.IsNoRows(err) {
			return models.Ticket{}, domain.NotFoundError{Resource: "ticket", Err: err}
		}
		return models.Ticket{}, domain.UpstreamError{Service: "store", Err: err}
	}
	return t, nil
}
