package models

import "github.com/shopspring/decimal"

func init() {
	// Money leaves the API as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Route is a scheduled bus path. Read-only from this service's side.
type Route struct {
	RouteNumber     string          `db:"route_number" json:"route_number"`
	Origin          string          `db:"origin" json:"origin"`
	Destination     string          `db:"destination" json:"destination"`
	BaseFare        decimal.Decimal `db:"base_fare" json:"base_fare"`
	DistanceKm      float64         `db:"distance_km" json:"distance_km"`
	DurationMinutes int             `db:"duration_minutes" json:"duration_minutes"`
}
