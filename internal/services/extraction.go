package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"busconductor/internal/domain"
	"busconductor/internal/utils"
)

// looseString accepts a JSON string, number or null. Models are not
// consistent about quoting route and seat numbers.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*s = ""
		return nil
	case b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = looseString(strings.TrimSpace(str))
		return nil
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*s = looseString(n.String())
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", b)
}

// looseCount accepts an integer JSON number or a string of digits.
type looseCount struct {
	Value int
	Set   bool
}

func (c *looseCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*c = looseCount{}
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("passengerCount must be an integer, got %s", b)
	}
	*c = looseCount{Value: n, Set: true}
	return nil
}

type ticketExtraction struct {
	RouteNumber    looseString `json:"routeNumber"`
	Origin         string      `json:"origin"`
	Destination    string      `json:"destination"`
	PassengerName  string      `json:"passengerName"`
	PassengerType  string      `json:"passengerType"`
	PassengerCount looseCount  `json:"passengerCount"`
	PaymentMethod  string      `json:"paymentMethod"`
	SeatNumber     looseString `json:"seatNumber"`
}

// extractedTicket is a validated extraction with defaults applied.
type extractedTicket struct {
	RouteNumber    string
	Origin         string
	Destination    string
	PassengerName  string
	PassengerType  domain.PassengerType
	PassengerCount int
	PaymentMethod  domain.PaymentMethod
	SeatNumber     *string
}

// parseExtraction decodes the model's answer and checks every field. Any
// shape or enum mismatch is a ParseError; nothing malformed reaches the
// store.
func parseExtraction(raw string) (extractedTicket, error) {
	body := utils.StripCodeFences(raw)
	if !strings.HasPrefix(body, "{") {
		return extractedTicket{}, domain.ParseError{Msg: "model did not return a ticket JSON object"}
	}

	var ext ticketExtraction
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&ext); err != nil {
		return extractedTicket{}, domain.ParseError{Msg: "model did not return a ticket JSON object", Err: err}
	}
	if dec.More() {
		return extractedTicket{}, domain.ParseError{Msg: "model returned trailing content after the ticket JSON object"}
	}

	out := extractedTicket{
		RouteNumber:    string(ext.RouteNumber),
		Origin:         strings.TrimSpace(ext.Origin),
		Destination:    strings.TrimSpace(ext.Destination),
		PassengerName:  utils.FirstNonEmpty(ext.PassengerName, "Passenger"),
		PassengerType:  domain.PassengerAdult,
		PassengerCount: 1,
		PaymentMethod:  domain.PaymentCash,
	}

	if pt := strings.ToLower(strings.TrimSpace(ext.PassengerType)); pt != "" {
		out.PassengerType = domain.PassengerType(pt)
		if !out.PassengerType.Valid() {
			return extractedTicket{}, domain.ParseError{Msg: fmt.Sprintf("unknown passengerType %q", ext.PassengerType)}
		}
	}
	if pm := strings.ToLower(strings.TrimSpace(ext.PaymentMethod)); pm != "" {
		out.PaymentMethod = domain.PaymentMethod(pm)
		if !out.PaymentMethod.Valid() {
			return extractedTicket{}, domain.ParseError{Msg: fmt.Sprintf("unknown paymentMethod %q", ext.PaymentMethod)}
		}
	}
	if ext.PassengerCount.Set {
		switch {
		case ext.PassengerCount.Value < 0:
			return extractedTicket{}, domain.ParseError{Msg: fmt.Sprintf("passengerCount must be at least 1, got %d", ext.PassengerCount.Value)}
		case ext.PassengerCount.Value > 0:
			out.PassengerCount = ext.PassengerCount.Value
		}
	}
	if seat := string(ext.SeatNumber); seat != "" {
		out.SeatNumber = &seat
	}
	return out, nil
}
