package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is an issued fare record. Origin and destination are copied from
// the route at issuance time and may drift from it later.
type Ticket struct {
	ID             int64           `db:"id" json:"id"`
	TicketNumber   string          `db:"ticket_number" json:"ticket_number"`
	ConductorID    int64           `db:"conductor_id" json:"conductor_id"`
	RouteNumber    string          `db:"route_number" json:"route_number"`
	Origin         string          `db:"origin" json:"origin"`
	Destination    string          `db:"destination" json:"destination"`
	PassengerName  string          `db:"passenger_name" json:"passenger_name"`
	PassengerType  string          `db:"passenger_type" json:"passenger_type"`
	PassengerCount int             `db:"passenger_count" json:"passenger_count"`
	FareAmount     decimal.Decimal `db:"fare_amount" json:"fare_amount"`
	PaymentMethod  string          `db:"payment_method" json:"payment_method"`
	SeatNumber     *string         `db:"seat_number" json:"seat_number"`
	TicketDate     time.Time       `db:"ticket_date" json:"ticket_date"`
}

// TicketFilter narrows ticket listings. Zero values mean "no filter".
type TicketFilter struct {
	ConductorID int64
	From        time.Time
	To          time.Time
	Limit       uint64
}
