package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"busconductor/internal/domain"
	"busconductor/internal/domain/models"
	"busconductor/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	questionFailed     = "Failed to process your question. Please try again."
	conversationFailed = "Failed to process conversation. Please try again."
	generationFailed   = "Failed to generate ticket"
)

type questionRequest struct {
	Question string `json:"question"`
}

// POST /api/chat
func (h *Handlers) Chat(c *gin.Context) {
	var req questionRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondAssistantError(c, questionFailed, domain.ValidationError{Msg: "Question is required"}, nil)
		return
	}

	res, err := h.assistantService(c).ProcessQuestion(c.Request.Context(), req.Question)
	if err != nil {
		respondAssistantError(c, questionFailed, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "answer": res.Answer, "context": res.Context})
}

type conversationRequest struct {
	Messages       []models.Turn `json:"messages"`
	ConductorID    Stringish     `json:"conductorId"`
	ConductorRoute Stringish     `json:"conductorRoute"`
}

// POST /api/chat/conversation
func (h *Handlers) Conversation(c *gin.Context) {
	var req conversationRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	if len(req.Messages) == 0 {
		respondAssistantError(c, conversationFailed, domain.ValidationError{Msg: "Messages array is required"}, nil)
		return
	}
	conductorID, err := req.ConductorID.ID("conductorId")
	if err != nil {
		respondAssistantError(c, conversationFailed, err, nil)
		return
	}

	reply, err := h.assistantService(c).ProcessConversation(c.Request.Context(), services.ConversationRequest{
		Messages:       req.Messages,
		ConductorID:    conductorID,
		ConductorRoute: req.ConductorRoute.String(),
	})
	if err != nil {
		var extra gin.H
		if reply.Answer != "" {
			extra = gin.H{"answer": reply.Answer, "error": generationFailed}
		}
		respondAssistantError(c, conversationFailed, err, extra)
		return
	}

	body := gin.H{"success": true, "answer": reply.Answer}
	if reply.TicketGenerated {
		body["ticketGenerated"] = true
		body["ticket"] = reply.Ticket
	}
	c.JSON(http.StatusOK, body)
}

// GET /api/chat/history/:conductorId?limit=
func (h *Handlers) ChatHistory(c *gin.Context) {
	conductorID, err := parseID(c.Param("conductorId"), "conductorId")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			RespondDomainError(c, domain.ValidationError{Field: "limit", Msg: "must be a non-negative integer"})
			return
		}
	}

	msgs, err := h.assistantService(c).ChatHistory(c.Request.Context(), conductorID, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, msgs)
}

// DELETE /api/chat/history/:conductorId
func (h *Handlers) ClearChatHistory(c *gin.Context) {
	conductorID, err := parseID(c.Param("conductorId"), "conductorId")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.assistantService(c).ClearHistory(c.Request.Context(), conductorID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type generateTicketRequest struct {
	Prompt         string    `json:"prompt"`
	ConductorID    Stringish `json:"conductorId"`
	ConductorRoute Stringish `json:"conductorRoute"`
}

// POST /api/tickets/generate
func (h *Handlers) GenerateTicket(c *gin.Context) {
	var req generateTicketRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	conductorID, err := req.ConductorID.ID("conductorId")
	if err != nil {
		respondAssistantError(c, generationFailed, err, nil)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" || conductorID == 0 {
		respondAssistantError(c, generationFailed, domain.ValidationError{Msg: "Prompt and conductorId are required"}, nil)
		return
	}

	res, err := h.assistantService(c).GenerateTicket(c.Request.Context(), req.Prompt, conductorID, req.ConductorRoute.String())
	if err != nil {
		respondAssistantError(c, generationFailed, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ticket": res.Ticket, "message": res.Message})
}
