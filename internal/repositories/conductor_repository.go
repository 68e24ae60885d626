package repositories

import (
	"context"

	"busconductor/internal/db"
	"busconductor/internal/domain"
	"busconductor/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
)

// rosterColumns deliberately omits the password column.
var rosterColumns = []string{"id", "username", "name", "employee_id", "route_number"}

type ConductorRepository struct {
	Store *db.Store
}

func (r ConductorRepository) ListConductors(ctx context.Context) ([]models.Conductor, error) {
	out := []models.Conductor{}
	if err := r.Store.All(ctx, &out, r.Store.Select(rosterColumns...).From("conductors")); err != nil {
		return nil, domain.UpstreamError{Service: "store", Err: err}
	}
	return out, nil
}

// GetConductorByUsername includes the stored password for credential checks.
func (r ConductorRepository) GetConductorByUsername(ctx context.Context, username string) (models.Conductor, error) {
	var c models.Conductor
	q := r.Store.Select(append(rosterColumns, "password")...).
		From("conductors").
		Where(sq.Eq{"username": username})
	if err := r.Store.One(ctx, &c, q); err != nil {
		if db.IsNoRows(err) {
			return models.Conductor{}, domain.NotFoundError{Resource: "conductor", Err: err}
		}
		return models.Conductor{}, domain.UpstreamError{Service: "store", Err: err}
	}
	return c, nil
}
