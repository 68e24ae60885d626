package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

// RequiredTables are the tables the service reads and writes.
var RequiredTables = []string{"routes", "tickets", "conductors", "chat_history"}

// MissingTables returns which of tables are absent from the current
// schema.
func (s *Store) MissingTables(ctx context.Context, tables ...string) ([]string, error) {
	if err := s.Ping(ctx); err != nil {
		return nil, err
	}
	schema := sq.Expr("table_schema = DATABASE()")
	if s.Dialect == DialectPostgres {
		schema = sq.Expr("table_schema = current_schema()")
	}

	var missing []string
	for _, table := range tables {
		var name string
		err := s.One(ctx, &name, s.Select("table_name").
			From("information_schema.tables").
			Where(schema).
			Where(sq.Eq{"table_name": table}))
		if IsNoRows(err) {
			missing = append(missing, table)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return missing, nil
}
