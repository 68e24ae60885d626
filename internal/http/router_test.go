package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	intconfig "busconductor/internal/config"
	"busconductor/internal/domain"
	"busconductor/internal/domain/models"
	"busconductor/internal/http/handlers"
	"busconductor/internal/llm"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu         sync.Mutex
	routes     []models.Route
	tickets    []models.Ticket
	conductors []models.Conductor
	messages   []models.ChatMessage
	pingErr    error
	missing    []string
	createErr  error
}

func (s *fakeStore) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return s.routes, nil
}

func (s *fakeStore) GetRoute(ctx context.Context, routeNumber string) (models.Route, error) {
	for _, r := range s.routes {
		if r.RouteNumber == routeNumber {
			return r, nil
		}
	}
	return models.Route{}, domain.NotFoundError{Resource: "route"}
}

func (s *fakeStore) CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return models.Ticket{}, s.createErr
	}
	t.ID = int64(len(s.tickets) + 1)
	s.tickets = append(s.tickets, t)
	return t, nil
}

func (s *fakeStore) ListTickets(ctx context.Context, f models.TicketFilter) ([]models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Ticket
	for _, t := range s.tickets {
		if f.ConductorID == 0 || t.ConductorID == f.ConductorID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) GetTicket(ctx context.Context, ticketNumber string) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.TicketNumber == ticketNumber {
			return t, nil
		}
	}
	return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
}

func (s *fakeStore) ListConductors(ctx context.Context) ([]models.Conductor, error) {
	return s.conductors, nil
}

func (s *fakeStore) GetConductorByUsername(ctx context.Context, username string) (models.Conductor, error) {
	for _, c := range s.conductors {
		if c.Username == username {
			return c, nil
		}
	}
	return models.Conductor{}, domain.NotFoundError{Resource: "conductor"}
}

func (s *fakeStore) AppendMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = int64(len(s.messages) + 1)
	s.messages = append(s.messages, m)
	return m, nil
}

func (s *fakeStore) ListMessages(ctx context.Context, conductorID int64, limit uint64) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ChatMessage
	for _, m := range s.messages {
		if m.ConductorID == conductorID && uint64(len(out)) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeStore) ClearMessages(ctx context.Context, conductorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.ConductorID != conductorID {
			kept = append(kept, m)
		}
	}
	s.messages = kept
	return nil
}

func (s *fakeStore) Ping(ctx context.Context) error { return s.pingErr }

func (s *fakeStore) MissingTables(ctx context.Context, tables ...string) ([]string, error) {
	if s.pingErr != nil {
		return nil, s.pingErr
	}
	return s.missing, nil
}

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

func newTestRouter(t *testing.T) (*gin.Engine, *fakeStore, *MockModel) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := &fakeStore{
		routes: []models.Route{
			{RouteNumber: "12", Origin: "Central", Destination: "Airport", BaseFare: decimal.NewFromInt(100), DistanceKm: 18.5, DurationMinutes: 45},
		},
		conductors: []models.Conductor{
			{ID: 1, Username: "ravi", Password: "pass1", Name: "Ravi Kumar", EmployeeID: "EMP001", RouteNumber: "12"},
		},
	}
	model := &MockModel{}
	h := &handlers.Handlers{
		Routes:     store,
		Tickets:    store,
		Conductors: store,
		History:    store,
		Model:      model,
		Store:      store,
		Now:        func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local) },
	}
	return NewRouter(intconfig.Env{}, h), store, model
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Server running"}`, w.Body.String())
}

func TestDBCheck(t *testing.T) {
	r, store, _ := newTestRouter(t)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/db-check", "").Code)

	store.missing = []string{"chat_history"}
	w := do(r, http.MethodGet, "/api/db-check", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, []any{"chat_history"}, decode(t, w)["details"])

	store.missing = nil
	store.pingErr = errors.New("connection refused")
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/api/db-check", "").Code)
}

func TestRoutes(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/routes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var routes []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &routes))
	require.Len(t, routes, 1)
	assert.Equal(t, float64(100), routes[0]["base_fare"])

	w = do(r, http.MethodGet, "/api/routes/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", decode(t, w)["error"])
}

func TestCalculateFare(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/calculate-fare", `{"routeNumber":"12","passengerType":"child","passengerCount":4}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"fare":50}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/calculate-fare", `{"routeNumber":12,"passengerType":"adult"}`)
	assert.JSONEq(t, `{"fare":100}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/calculate-fare", `{"routeNumber":"99","passengerType":"adult"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAndFetchTicket(t *testing.T) {
	r, store, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/tickets", `{"conductorId":"1","routeNumber":"12","origin":"Central","destination":"Airport","passengerName":"Asha","passengerType":"adult","fareAmount":100,"paymentMethod":"cash"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, float64(1), created["passenger_count"])
	assert.Nil(t, created["seat_number"])
	number := created["ticket_number"].(string)
	assert.Regexp(t, `^TKT-\d+-[0-9A-Z]{7}$`, number)

	w = do(r, http.MethodGet, "/api/tickets/"+number, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/tickets/"+number+"/pdf", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w = do(r, http.MethodGet, "/api/tickets/TKT-0-MISSING", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ticket not found", decode(t, w)["error"])

	w = do(r, http.MethodGet, "/api/tickets?conductorId=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(r, http.MethodGet, "/api/tickets?conductorId=2", "")
	assert.Equal(t, "[]", w.Body.String())

	store.createErr = domain.ConflictError{Resource: "ticket", Msg: "ticket number already exists"}
	w = do(r, http.MethodPost, "/api/tickets", `{"conductorId":1,"routeNumber":"12","fareAmount":"100"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListTicketsRejectsBadDate(t *testing.T) {
	r, _, _ := newTestRouter(t)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/tickets?date=yesterday", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/tickets?conductorId=abc", "").Code)
}

func TestStatistics(t *testing.T) {
	r, store, _ := newTestRouter(t)
	store.tickets = []models.Ticket{
		{TicketNumber: "a", ConductorID: 1, RouteNumber: "12", PassengerType: "adult", FareAmount: decimal.NewFromInt(100)},
		{TicketNumber: "b", ConductorID: 1, RouteNumber: "12", PassengerType: "child", FareAmount: decimal.RequireFromString("50.5")},
	}

	w := do(r, http.MethodGet, "/api/statistics?conductorId=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalTickets":{"count":2},"totalRevenue":150.5,"ticketsByType":{"adult":1,"child":1},"ticketsByRoute":{"12":2}}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/statistics?conductorId=9", "")
	assert.JSONEq(t, `{"totalTickets":{"count":0},"totalRevenue":0,"ticketsByType":{},"ticketsByRoute":{}}`, w.Body.String())
}

func TestLogin(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/login", `{"username":"ravi","password":"pass1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"username":"ravi","name":"Ravi Kumar","employeeId":"EMP001","routeNumber":"12"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/login", `{"username":"ravi","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decode(t, w)["error"])

	w = do(r, http.MethodPost, "/api/login", `{"username":"ghost","password":"pass1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatQuestion(t *testing.T) {
	r, _, model := newTestRouter(t)
	model.On("Generate", mock.Anything, mock.Anything).Return("One route.", nil)

	w := do(r, http.MethodPost, "/api/chat", `{"question":"How many routes?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"answer":"One route.","context":{"routesCount":1,"ticketsCount":0,"conductorsCount":1}}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatQuestionModelFailure(t *testing.T) {
	r, _, model := newTestRouter(t)
	model.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	w := do(r, http.MethodPost, "/api/chat", `{"question":"hi"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["details"], "quota exceeded")
}

func TestConversationRequiresMessages(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/chat/conversation", `{"messages":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestConversationGeneratesTicket(t *testing.T) {
	r, store, model := newTestRouter(t)
	model.On("Generate", mock.Anything, mock.Anything).Return(`{"routeNumber":"12","passengerType":"senior"}`, nil)

	w := do(r, http.MethodPost, "/api/chat/conversation", `{"messages":[{"role":"user","content":"Issue ticket for a senior"}],"conductorId":1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["ticketGenerated"])
	assert.Contains(t, body["answer"], "**Ticket Number:**")
	require.Len(t, store.tickets, 1)
	assert.True(t, store.tickets[0].FareAmount.Equal(decimal.NewFromInt(75)))
}

func TestConversationTicketFailure(t *testing.T) {
	r, _, model := newTestRouter(t)
	model.On("Generate", mock.Anything, mock.Anything).Return("I cannot do that", nil)

	w := do(r, http.MethodPost, "/api/chat/conversation", `{"messages":[{"role":"user","content":"make ticket"}],"conductorId":1}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.True(t, strings.HasPrefix(body["answer"].(string), "❌ Failed to generate ticket: "))
}

func TestGenerateTicketEndpoint(t *testing.T) {
	r, _, model := newTestRouter(t)
	model.On("Generate", mock.Anything, mock.Anything).
		Return("```json\n{\"routeNumber\":\"12\",\"origin\":\"Central\",\"destination\":\"Airport\",\"passengerType\":\"child\",\"passengerCount\":2}\n```", nil)

	w := do(r, http.MethodPost, "/api/tickets/generate", `{"prompt":"book a ticket from Central to Airport for 2 children","conductorId":1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Success bool           `json:"success"`
		Ticket  map[string]any `json:"ticket"`
		Message string         `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "child", body.Ticket["passenger_type"])
	assert.Equal(t, float64(2), body.Ticket["passenger_count"])
	assert.Equal(t, float64(100), body.Ticket["fare_amount"])
	assert.Contains(t, body.Message, body.Ticket["ticket_number"].(string))
}

func TestGenerateTicketValidation(t *testing.T) {
	r, _, _ := newTestRouter(t)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/tickets/generate", `{"prompt":"book"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/tickets/generate", `{"conductorId":1}`).Code)
}

func TestGenerateTicketUnknownRoute(t *testing.T) {
	r, _, model := newTestRouter(t)
	model.On("Generate", mock.Anything, mock.Anything).Return(`{"routeNumber":"99"}`, nil)

	w := do(r, http.MethodPost, "/api/tickets/generate", `{"prompt":"to nowhere","conductorId":1}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Failed to generate ticket", body["error"])
	assert.Equal(t, "Route not found", body["details"])
}

func TestClearThenListHistory(t *testing.T) {
	r, store, _ := newTestRouter(t)
	store.messages = []models.ChatMessage{
		{ID: 1, ConductorID: 3, Role: "user", Content: "hi", SessionID: "2025-03-01"},
		{ID: 2, ConductorID: 3, Role: "assistant", Content: "hello", SessionID: "2025-03-01"},
	}

	w := do(r, http.MethodGet, "/api/chat/history/3?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var msgs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	assert.Len(t, msgs, 1)

	w = do(r, http.MethodDelete, "/api/chat/history/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/chat/history/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestUnknownPath(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "/api/nope", decode(t, w)["path"])
}
