package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"busconductor/internal/db"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// OpenDB opens the pool named by STORE_DRIVER/STORE_URL and pings it.
func OpenDB(env Env) (*db.Store, error) {
	dialect, err := db.ParseDialect(env.StoreDriver)
	if err != nil {
		return nil, err
	}
	dsn, err := BuildDSN(dialect, env.StoreURL, env.StoreAccessKey)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(10 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	return db.NewStore(conn, dialect), nil
}

// BuildDSN injects accessKey as the password of storeURL. MySQL DSNs always
// get parseTime so DATETIME columns scan into time.Time.
func BuildDSN(dialect db.Dialect, storeURL, accessKey string) (string, error) {
	if storeURL == "" {
		return "", errors.New("STORE_URL is not set")
	}

	switch dialect {
	case db.DialectPostgres:
		u, err := url.Parse(storeURL)
		if err != nil {
			return "", fmt.Errorf("parse STORE_URL: %w", err)
		}
		if accessKey != "" {
			name := ""
			if u.User != nil {
				name = u.User.Username()
			}
			u.User = url.UserPassword(name, accessKey)
		}
		return u.String(), nil
	default:
		cfg, err := mysql.ParseDSN(storeURL)
		if err != nil {
			return "", fmt.Errorf("parse STORE_URL: %w", err)
		}
		if accessKey != "" {
			cfg.Passwd = accessKey
		}
		cfg.ParseTime = true
		return cfg.FormatDSN(), nil
	}
}
