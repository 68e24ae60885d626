package handlers

import (
	"net/http"

	"busconductor/internal/domain"
	"busconductor/internal/http/middleware"
	"busconductor/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Store and model
// failures are 500 with their message passed through.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	}
}

// respondNotFound replaces the message of a NotFound error with a fixed
// one such as "Route not found"; other errors map as usual.
func respondNotFound(c *gin.Context, err error, message string) {
	if domain.IsNotFound(err) {
		respondError(c, http.StatusNotFound, "not_found", message, nil)
		return
	}
	RespondDomainError(c, err)
}

// respondAssistantError writes the assistant failure envelope. Validation
// failures are 400; everything else is 500 with the cause in details.
func respondAssistantError(c *gin.Context, message string, err error, extra gin.H) {
	status := http.StatusInternalServerError
	body := gin.H{"success": false, "error": message, "details": err.Error()}
	if domain.IsValidation(err) {
		status = http.StatusBadRequest
		body["error"] = err.Error()
		delete(body, "details")
	} else {
		utils.LogError(middleware.GetRequestID(c), "assistant", c.FullPath(), err)
	}
	for k, v := range extra {
		body[k] = v
	}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		body["request_id"] = reqID
	}
	c.JSON(status, body)
}
