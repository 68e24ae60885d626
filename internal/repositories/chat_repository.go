package repositories

import (
	"context"

	"busconductor/internal/db"
	"busconductor/internal/domain"
	"busconductor/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
)

var chatColumns = []string{"id", "conductor_id", "role", "content", "session_id", "created_at"}

type ChatRepository struct {
	Store *db.Store
}

func (r ChatRepository) AppendMessage(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	q := r.Store.Insert("chat_history").
		Columns(chatColumns[1:]...).
		Values(m.ConductorID, m.Role, m.Content, m.SessionID, m.CreatedAt)
	id, err := r.Store.InsertReturningID(ctx, q)
	if err != nil {
		return models.ChatMessage{}, domain.UpstreamError{Service: "store", Err: err}
	}
	m.ID = id
	return m, nil
}

// ListMessages returns the oldest limit messages of a conductor, oldest first.
func (r ChatRepository) ListMessages(ctx context.Context, conductorID int64, limit uint64) ([]models.ChatMessage, error) {
	q := r.Store.Select(chatColumns...).
		From("chat_history").
		Where(sq.Eq{"conductor_id": conductorID}).
		OrderBy("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	out := []models.ChatMessage{}
	if err := r.Store.All(ctx, &out, q); err != nil {
		return nil, domain.UpstreamError{Service: "store", Err: err}
	}
	return out, nil
}

func (r ChatRepository) ClearMessages(ctx context.Context, conductorID int64) error {
	if _, err := r.Store.Exec(ctx, r.Store.Delete("chat_history").Where(sq.Eq{"conductor_id": conductorID})); err != nil {
		return domain.UpstreamError{Service: "store", Err: err}
	}
	return nil
}
