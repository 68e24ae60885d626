package services

import (
	"context"
	"strings"

	"busconductor/internal/domain"
	"busconductor/internal/domain/models"
)

type RouteService struct {
	Routes RouteStore
}

func (s RouteService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return s.Routes.ListRoutes(ctx)
}

func (s RouteService) GetRoute(ctx context.Context, routeNumber string) (models.Route, error) {
	routeNumber = strings.TrimSpace(routeNumber)
	if routeNumber == "" {
		return models.Route{}, domain.NotFoundError{Resource: "Route"}
	}
	return s.Routes.GetRoute(ctx, routeNumber)
}

// QuoteFare returns the discounted, rounded single-passenger fare for a
// route. Passenger count plays no part here.
func (s RouteService) QuoteFare(ctx context.Context, routeNumber, passengerType string) (int64, error) {
	route, err := s.GetRoute(ctx, routeNumber)
	if err != nil {
		return 0, err
	}
	return CalculateFare(route.BaseFare, passengerType).IntPart(), nil
}
