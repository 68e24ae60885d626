package services

import (
	"context"
	"strings"
	"time"

	"busconductor/internal/domain"
	"busconductor/internal/domain/models"
	"busconductor/internal/utils"

	"github.com/shopspring/decimal"
)

// TicketService issues and reads tickets directly, without the assistant.
type TicketService struct {
	Tickets   TicketStore
	Numbers   TicketNumberGenerator
	Now       func() time.Time
	RequestID string
}

// TicketInput is a conductor-entered ticket. The fare is taken as given;
// the route is not checked.
type TicketInput struct {
	ConductorID    int64
	RouteNumber    string
	Origin         string
	Destination    string
	PassengerName  string
	PassengerType  string
	PassengerCount int
	FareAmount     decimal.Decimal
	PaymentMethod  string
	SeatNumber     *string
}

// TicketQuery filters listings and statistics. Date is YYYY-MM-DD.
type TicketQuery struct {
	ConductorID int64
	Date        string
}

func (s TicketService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s TicketService) CreateTicket(ctx context.Context, in TicketInput) (models.Ticket, error) {
	count := in.PassengerCount
	if count < 1 {
		count = 1
	}
	t := models.Ticket{
		TicketNumber:   s.Numbers.Next(),
		ConductorID:    in.ConductorID,
		RouteNumber:    in.RouteNumber,
		Origin:         in.Origin,
		Destination:    in.Destination,
		PassengerName:  in.PassengerName,
		PassengerType:  in.PassengerType,
		PassengerCount: count,
		FareAmount:     in.FareAmount,
		PaymentMethod:  in.PaymentMethod,
		SeatNumber:     in.SeatNumber,
		TicketDate:     s.now(),
	}
	created, err := s.Tickets.CreateTicket(ctx, t)
	if err != nil {
		return models.Ticket{}, err
	}
	utils.LogEvent(s.RequestID, "tickets", "create", "ticket="+created.TicketNumber)
	return created, nil
}

func (s TicketService) ListTickets(ctx context.Context, q TicketQuery) ([]models.Ticket, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	return s.Tickets.ListTickets(ctx, f)
}

func (s TicketService) GetTicket(ctx context.Context, ticketNumber string) (models.Ticket, error) {
	ticketNumber = strings.TrimSpace(ticketNumber)
	if ticketNumber == "" {
		return models.Ticket{}, domain.NotFoundError{Resource: "Ticket"}
	}
	return s.Tickets.GetTicket(ctx, ticketNumber)
}

func (s TicketService) Statistics(ctx context.Context, q TicketQuery) (Statistics, error) {
	tickets, err := s.ListTickets(ctx, q)
	if err != nil {
		return Statistics{}, err
	}
	return Aggregate(tickets), nil
}

func (q TicketQuery) filter() (models.TicketFilter, error) {
	f := models.TicketFilter{ConductorID: q.ConductorID}
	if date := strings.TrimSpace(q.Date); date != "" {
		from, to, err := utils.DayRange(date)
		if err != nil {
			return models.TicketFilter{}, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD"}
		}
		f.From, f.To = from, to
	}
	return f, nil
}
