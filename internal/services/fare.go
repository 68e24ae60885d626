package services

import (
	"busconductor/internal/domain"

	"github.com/shopspring/decimal"
)

var fareMultipliers = map[domain.PassengerType]decimal.Decimal{
	domain.PassengerAdult:   decimal.NewFromInt(1),
	domain.PassengerChild:   decimal.RequireFromString("0.5"),
	domain.PassengerStudent: decimal.RequireFromString("0.6"),
	domain.PassengerSenior:  decimal.RequireFromString("0.75"),
}

// CalculateFare applies the passenger-type discount to baseFare and rounds
// to a whole currency unit, halves away from zero. Unknown types pay full
// fare.
func CalculateFare(baseFare decimal.Decimal, passengerType string) decimal.Decimal {
	multiplier, ok := fareMultipliers[domain.PassengerType(passengerType)]
	if !ok {
		return baseFare.Round(0)
	}
	return baseFare.Mul(multiplier).Round(0)
}

// TicketFare is the amount charged on an assistant-issued ticket: the
// rounded per-passenger fare times the passenger count. The plain fare
// quote never multiplies by count.
func TicketFare(baseFare decimal.Decimal, passengerType string, passengerCount int) decimal.Decimal {
	if passengerCount < 1 {
		passengerCount = 1
	}
	return CalculateFare(baseFare, passengerType).Mul(decimal.NewFromInt(int64(passengerCount)))
}
