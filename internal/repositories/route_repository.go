package repositories

import (
	"context"

	"busconductor/internal/db"
	"busconductor/internal/domain"
	"busconductor/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
)

var routeColumns = []string{"route_number", "origin", "destination", "base_fare", "distance_km", "duration_minutes"}

type RouteRepository struct {
	Store *db.Store
}

// ListRoutes returns every route ordered by route number.
func (r RouteRepository) ListRoutes(ctx context.Context) ([]models.Route, error) {
	out := []models.Route{}
	q := r.Store.Select(routeColumns...).From("routes").OrderBy("route_number ASC")
	if err := r.Store.All(ctx, &out, q); err != nil {
		return nil, domain.UpstreamError{Service: "store", Err: err}
	}
	return out, nil
}

func (r RouteRepository) GetRoute(ctx context.Context, routeNumber string) (models.Route, error) {
	var route models.Route
	q := r.Store.Select(routeColumns...).From("routes").Where(sq.Eq{"route_number": routeNumber})
	if err := r.Store.One(ctx, &route, q); err != nil {
		if db.IsNoRows(err) {
			return models.Route{}, domain.NotFoundError{Resource: "route", Err: err}
		}
		return models.Route{}, domain.UpstreamError{Service: "store", Err: err}
	}
	return route, nil
}
