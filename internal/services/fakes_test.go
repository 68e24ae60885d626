package services

import (
	"context"
	"errors"
	"sync"

	"busconductor/internal/domain"
	"busconductor/internal/domain/models"
	"busconductor/internal/llm"

	"github.com/stretchr/testify/mock"
)

type memRoutes struct {
	routes []models.Route
	err    error
}

func (m *memRoutes) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return m.routes, m.err
}

func (m *memRoutes) GetRoute(ctx context.Context, routeNumber string) (models.Route, error) {
	if m.err != nil {
		return models.Route{}, m.err
	}
	for _, r := range m.routes {
		if r.RouteNumber == routeNumber {
			return r, nil
		}
	}
	return models.Route{}, domain.NotFoundError{Resource: "route"}
}

type memTickets struct {
	mu        sync.Mutex
	tickets   []models.Ticket
	lastQuery models.TicketFilter
	createErr error
}

func (m *memTickets) CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return models.Ticket{}, m.createErr
	}
	t.ID = int64(len(m.tickets) + 1)
	m.tickets = append(m.tickets, t)
	return t, nil
}

func (m *memTickets) ListTickets(ctx context.Context, f models.TicketFilter) ([]models.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuery = f
	var out []models.Ticket
	for _, t := range m.tickets {
		if f.ConductorID != 0 && t.ConductorID != f.ConductorID {
			continue
		}
		if !f.From.IsZero() && t.TicketDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && t.TicketDate.After(f.To) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memTickets) GetTicket(ctx context.Context, ticketNumber string) (models.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tickets {
		if t.TicketNumber == ticketNumber {
			return t, nil
		}
	}
	return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
}

type memConductors struct {
	conductors []models.Conductor
	err        error
}

func (m *memConductors) ListConductors(ctx context.Context) ([]models.Conductor, error) {
	return m.conductors, m.err
}

func (m *memConductors) GetConductorByUsername(ctx context.Context, username string) (models.Conductor, error) {
	if m.err != nil {
		return models.Conductor{}, m.err
	}
	for _, c := range m.conductors {
		if c.Username == username {
			return c, nil
		}
	}
	return models.Conductor{}, domain.NotFoundError{Resource: "conductor"}
}

type memHistory struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	err      error
}

func (m *memHistory) AppendMessage(ctx context.Context, msg models.ChatMessage) (models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.ChatMessage{}, m.err
	}
	msg.ID = int64(len(m.messages) + 1)
	m.messages = append(m.messages, msg)
	return msg, nil
}

func (m *memHistory) ListMessages(ctx context.Context, conductorID int64, limit uint64) ([]models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ChatMessage
	for _, msg := range m.messages {
		if msg.ConductorID == conductorID && uint64(len(out)) < limit {
			out = append(out, msg)
		}
	}
	return out, m.err
}

func (m *memHistory) ClearMessages(ctx context.Context, conductorID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.ConductorID != conductorID {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return m.err
}

// MockModel is a testify mock of llm.Model.
type MockModel struct {
	mock.Mock
}

func (m *MockModel) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockModel) Chat(ctx context.Context, history []llm.Message, message string) (string, error) {
	args := m.Called(ctx, history, message)
	return args.String(0), args.Error(1)
}

var errStoreDown = errors.New("store down")
