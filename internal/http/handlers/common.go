package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"busconductor/internal/domain"

	"github.com/gin-gonic/gin"
)

// Stringish tolerates string, number or null and yields a string.
type Stringish string

func (s *Stringish) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null" || len(b) == 0:
		*s = ""
	case b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Stringish(strings.TrimSpace(str))
	default:
		*s = Stringish(string(b))
	}
	return nil
}

func (s Stringish) String() string { return string(s) }

// Ptr returns nil for an empty value.
func (s Stringish) Ptr() *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}

// ID parses the value as a conductor or record id. Empty is 0.
func (s Stringish) ID(field string) (int64, error) {
	return parseID(string(s), field)
}

func parseID(raw, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, domain.ValidationError{Field: field, Msg: fmt.Sprintf("invalid id %q", raw)}
	}
	return id, nil
}

// bindJSONOrError ensures body is present and parsable.
func bindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", err.Error())
		return false
	}
	return true
}
