package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"busconductor/internal/domain"
	"busconductor/internal/domain/models"
	"busconductor/internal/llm"
	"busconductor/internal/utils"

	"golang.org/x/sync/errgroup"
)

const defaultHistoryLimit = 50

// AssistantService is the natural-language front of the system: it answers
// questions about routes, tickets and conductors, and issues tickets from
// free-text requests.
type AssistantService struct {
	Routes     RouteStore
	Tickets    TicketStore
	Conductors ConductorStore
	History    ChatHistoryStore
	Model      llm.Model
	Classifier IntentClassifier
	Numbers    TicketNumberGenerator
	Now        func() time.Time
	RequestID  string
}

// ContextCounts reports how much data went into a prompt.
type ContextCounts struct {
	RoutesCount     int `json:"routesCount"`
	TicketsCount    int `json:"ticketsCount"`
	ConductorsCount int `json:"conductorsCount"`
}

type QuestionAnswer struct {
	Answer  string
	Context ContextCounts
}

type GeneratedTicket struct {
	Ticket  models.Ticket
	Message string
}

type ConversationRequest struct {
	Messages       []models.Turn
	ConductorID    int64
	ConductorRoute string
}

// ConversationReply carries the assistant's answer. When ticket generation
// fails, Answer holds the user-facing failure text and the error is
// returned alongside.
type ConversationReply struct {
	Answer          string
	TicketGenerated bool
	Ticket          *models.Ticket
}

func (s AssistantService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AssistantService) classifier() IntentClassifier {
	if s.Classifier != nil {
		return s.Classifier
	}
	return KeywordClassifier{}
}

// FetchContext loads routes, the newest tickets and the conductor roster
// concurrently.
func (s AssistantService) FetchContext(ctx context.Context) (ContextBundle, error) {
	var bundle ContextBundle
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		routes, err := s.Routes.ListRoutes(gctx)
		bundle.Routes = routes
		return err
	})
	g.Go(func() error {
		tickets, err := s.Tickets.ListTickets(gctx, models.TicketFilter{Limit: recentTicketLimit})
		bundle.Tickets = tickets
		return err
	})
	g.Go(func() error {
		conductors, err := s.Conductors.ListConductors(gctx)
		bundle.Conductors = conductors
		return err
	})
	if err := g.Wait(); err != nil {
		return ContextBundle{}, err
	}
	return bundle, nil
}

// ProcessQuestion answers a standalone question with a one-shot prompt.
func (s AssistantService) ProcessQuestion(ctx context.Context, question string) (QuestionAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return QuestionAnswer{}, domain.ValidationError{Field: "question"}
	}

	bundle, err := s.FetchContext(ctx)
	if err != nil {
		return QuestionAnswer{}, err
	}
	answer, err := s.Model.Generate(ctx, QuestionPrompt(bundle, question))
	if err != nil {
		return QuestionAnswer{}, domain.UpstreamError{Service: "model", Err: err}
	}

	utils.LogEvent(s.RequestID, "assistant", "question", fmt.Sprintf("routes=%d tickets=%d conductors=%d",
		len(bundle.Routes), len(bundle.Tickets), len(bundle.Conductors)))
	return QuestionAnswer{
		Answer: answer,
		Context: ContextCounts{
			RoutesCount:     len(bundle.Routes),
			TicketsCount:    len(bundle.Tickets),
			ConductorsCount: len(bundle.Conductors),
		},
	}, nil
}

// ProcessConversation handles the latest turn of a conversation. A turn
// that asks for a ticket (and comes with a conductor id) issues one;
// anything else is answered by the model with the prior turns replayed.
func (s AssistantService) ProcessConversation(ctx context.Context, req ConversationRequest) (ConversationReply, error) {
	if len(req.Messages) == 0 {
		return ConversationReply{}, domain.ValidationError{Field: "messages", Msg: "messages must be a non-empty array"}
	}
	last := req.Messages[len(req.Messages)-1]

	if req.ConductorID > 0 && s.classifier().IsTicketRequest(last.Content) {
		generated, err := s.GenerateTicket(ctx, last.Content, req.ConductorID, req.ConductorRoute)
		s.saveTurn(ctx, req.ConductorID, domain.RoleUser, last.Content)
		if err != nil {
			return ConversationReply{Answer: "❌ Failed to generate ticket: " + err.Error()}, err
		}
		s.saveTurn(ctx, req.ConductorID, domain.RoleAssistant, generated.Message)
		return ConversationReply{
			Answer:          generated.Message,
			TicketGenerated: true,
			Ticket:          &generated.Ticket,
		}, nil
	}

	if req.ConductorID > 0 && last.Role == string(domain.RoleUser) {
		s.saveTurn(ctx, req.ConductorID, domain.RoleUser, last.Content)
	}

	bundle, err := s.FetchContext(ctx)
	if err != nil {
		return ConversationReply{}, err
	}

	history := make([]llm.Message, 0, len(req.Messages)+1)
	history = append(history,
		llm.Message{Role: llm.RoleUser, Text: ConversationContext(bundle)},
		llm.Message{Role: llm.RoleModel, Text: conversationAcknowledgement},
	)
	for _, m := range req.Messages[:len(req.Messages)-1] {
		role := llm.RoleModel
		if m.Role == string(domain.RoleUser) {
			role = llm.RoleUser
		}
		history = append(history, llm.Message{Role: role, Text: m.Content})
	}

	answer, err := s.Model.Chat(ctx, history, last.Content)
	if err != nil {
		return ConversationReply{}, domain.UpstreamError{Service: "model", Err: err}
	}

	if req.ConductorID > 0 {
		s.saveTurn(ctx, req.ConductorID, domain.RoleAssistant, answer)
	}
	return ConversationReply{Answer: answer}, nil
}

// GenerateTicket asks the model to extract ticket fields from prompt,
// prices the ticket from the matched route and persists it.
func (s AssistantService) GenerateTicket(ctx context.Context, prompt string, conductorID int64, conductorRoute string) (GeneratedTicket, error) {
	if strings.TrimSpace(prompt) == "" {
		return GeneratedTicket{}, domain.ValidationError{Field: "prompt"}
	}
	if conductorID <= 0 {
		return GeneratedTicket{}, domain.ValidationError{Field: "conductorId"}
	}

	routes, err := s.Routes.ListRoutes(ctx)
	if err != nil {
		return GeneratedTicket{}, err
	}

	raw, err := s.Model.Generate(ctx, ExtractionPrompt(routes, prompt))
	if err != nil {
		return GeneratedTicket{}, domain.UpstreamError{Service: "model", Err: err}
	}
	ext, err := parseExtraction(raw)
	if err != nil {
		return GeneratedTicket{}, err
	}

	routeNumber := utils.FirstNonEmpty(ext.RouteNumber, conductorRoute)
	if routeNumber == "" {
		return GeneratedTicket{}, domain.NotFoundError{Resource: "Route"}
	}
	route, err := s.Routes.GetRoute(ctx, routeNumber)
	if err != nil {
		if domain.IsNotFound(err) {
			return GeneratedTicket{}, domain.NotFoundError{Resource: "Route", Err: err}
		}
		return GeneratedTicket{}, err
	}

	ticket := models.Ticket{
		TicketNumber:   s.Numbers.Next(),
		ConductorID:    conductorID,
		RouteNumber:    route.RouteNumber,
		Origin:         utils.FirstNonEmpty(ext.Origin, route.Origin),
		Destination:    utils.FirstNonEmpty(ext.Destination, route.Destination),
		PassengerName:  ext.PassengerName,
		PassengerType:  string(ext.PassengerType),
		PassengerCount: ext.PassengerCount,
		FareAmount:     TicketFare(route.BaseFare, string(ext.PassengerType), ext.PassengerCount),
		PaymentMethod:  string(ext.PaymentMethod),
		SeatNumber:     ext.SeatNumber,
		TicketDate:     s.now(),
	}

	created, err := s.Tickets.CreateTicket(ctx, ticket)
	if err != nil {
		return GeneratedTicket{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	utils.LogEvent(s.RequestID, "assistant", "generate_ticket",
		"ticket="+created.TicketNumber+" conductor_id="+strconv.FormatInt(conductorID, 10))
	return GeneratedTicket{Ticket: created, Message: ConfirmationMessage(created)}, nil
}

// SaveMessage appends one turn to the conductor's chat log. An empty
// sessionID means today's date.
func (s AssistantService) SaveMessage(ctx context.Context, conductorID int64, role domain.Role, content, sessionID string) (models.ChatMessage, error) {
	if s.History == nil {
		return models.ChatMessage{}, errors.New("chat history store not configured")
	}
	now := s.now()
	if sessionID == "" {
		sessionID = utils.FormatDate(now)
	}
	return s.History.AppendMessage(ctx, models.ChatMessage{
		ConductorID: conductorID,
		Role:        string(role),
		Content:     content,
		SessionID:   sessionID,
		CreatedAt:   now,
	})
}

// saveTurn persists a turn and swallows failures: losing a log entry must
// not fail the answer.
func (s AssistantService) saveTurn(ctx context.Context, conductorID int64, role domain.Role, content string) {
	if _, err := s.SaveMessage(ctx, conductorID, role, content, ""); err != nil {
		utils.LogWarn(s.RequestID, "assistant", "save_chat_message", err)
	}
}

// ChatHistory returns up to limit messages, oldest first. limit <= 0 means 50.
func (s AssistantService) ChatHistory(ctx context.Context, conductorID int64, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.History.ListMessages(ctx, conductorID, uint64(limit))
}

func (s AssistantService) ClearHistory(ctx context.Context, conductorID int64) error {
	if err := s.History.ClearMessages(ctx, conductorID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "assistant", "clear_history", "conductor_id="+strconv.FormatInt(conductorID, 10))
	return nil
}
