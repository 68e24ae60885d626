package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Dialect selects placeholder style and insert-id strategy.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps a driver name to a Dialect, defaulting to MySQL.
func ParseDialect(driver string) (Dialect, error) {
	switch driver {
	case "", "mysql":
		return DialectMySQL, nil
	case "postgres", "postgresql", "pq":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("unsupported store driver %q", driver)
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "mysql"
}

// Store is a thin filter/order/limit query surface over the relational
// store. It holds no state beyond the pool.
type Store struct {
	DB      *sqlx.DB
	Dialect Dialect
	builder sq.StatementBuilderType
}

func NewStore(db *sqlx.DB, dialect Dialect) *Store {
	var format sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		format = sq.Dollar
	}
	return &Store{
		DB:      db,
		Dialect: dialect,
		builder: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

func (s *Store) Select(columns ...string) sq.SelectBuilder {
	return s.builder.Select(columns...)
}

func (s *Store) Insert(table string) sq.InsertBuilder {
	return s.builder.Insert(table)
}

func (s *Store) Delete(table string) sq.DeleteBuilder {
	return s.builder.Delete(table)
}

// All runs q and scans every row into dest, which must be a pointer to a
// slice of structs with db tags.
func (s *Store) All(ctx context.Context, dest any, q sq.SelectBuilder) error {
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}
	return s.DB.SelectContext(ctx, dest, query, args...)
}

// One scans the first row of q into dest. It returns sql.ErrNoRows when
// nothing matches.
func (s *Store) One(ctx context.Context, dest any, q sq.SelectBuilder) error {
	query, args, err := q.Limit(1).ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}
	return s.DB.GetContext(ctx, dest, query, args...)
}

// InsertReturningID executes q and returns the generated primary key.
func (s *Store) InsertReturningID(ctx context.Context, q sq.InsertBuilder) (int64, error) {
	if s.Dialect == DialectPostgres {
		query, args, err := q.Suffix("RETURNING id").ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert: %w", err)
		}
		var id int64
		if err := s.DB.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Exec runs a write statement and reports affected rows.
func (s *Store) Exec(ctx context.Context, q sq.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build statement: %w", err)
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store not connected")
	}
	return s.DB.PingContext(ctx)
}

// IsNoRows reports whether err means "no matching record".
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation recognises duplicate-key errors from either driver.
func IsUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
