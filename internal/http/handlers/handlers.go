package handlers

import (
	"context"
	"time"

	"busconductor/internal/http/middleware"
	"busconductor/internal/llm"
	"busconductor/internal/services"

	"github.com/gin-gonic/gin"
)

// StoreChecker reports whether the relational store is reachable and
// carries the expected tables.
type StoreChecker interface {
	Ping(ctx context.Context) error
	MissingTables(ctx context.Context, tables ...string) ([]string, error)
}

// Handlers holds the collaborators every endpoint draws from. Services are
// built per request so they carry that request's id into their logs.
type Handlers struct {
	Routes     services.RouteStore
	Tickets    services.TicketStore
	Conductors services.ConductorStore
	History    services.ChatHistoryStore
	Model      llm.Model
	Classifier services.IntentClassifier
	Verifier   services.CredentialVerifier
	Store      StoreChecker
	Now        func() time.Time
}

func (h *Handlers) routeService() services.RouteService {
	return services.RouteService{Routes: h.Routes}
}

func (h *Handlers) ticketService(c *gin.Context) services.TicketService {
	return services.TicketService{
		Tickets:   h.Tickets,
		Now:       h.Now,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handlers) authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Conductors: h.Conductors,
		Verifier:   h.Verifier,
		RequestID:  middleware.GetRequestID(c),
	}
}

func (h *Handlers) docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Tickets:   h.Tickets,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handlers) assistantService(c *gin.Context) services.AssistantService {
	return services.AssistantService{
		Routes:     h.Routes,
		Tickets:    h.Tickets,
		Conductors: h.Conductors,
		History:    h.History,
		Model:      h.Model,
		Classifier: h.Classifier,
		Now:        h.Now,
		RequestID:  middleware.GetRequestID(c),
	}
}
