package services

import (
	"busconductor/internal/domain/models"

	"github.com/shopspring/decimal"
)

// Statistics summarises a set of tickets.
type Statistics struct {
	Count        int
	TotalRevenue decimal.Decimal
	ByType       map[string]int
	ByRoute      map[string]int
}

// Aggregate is pure: the statistics endpoint and the assistant prompt both
// rely on it producing identical output for identical input.
func Aggregate(tickets []models.Ticket) Statistics {
	stats := Statistics{
		Count:        len(tickets),
		TotalRevenue: decimal.Zero,
		ByType:       map[string]int{},
		ByRoute:      map[string]int{},
	}
	for _, t := range tickets {
		stats.TotalRevenue = stats.TotalRevenue.Add(t.FareAmount)
		stats.ByType[t.PassengerType]++
		stats.ByRoute[t.RouteNumber]++
	}
	return stats
}
