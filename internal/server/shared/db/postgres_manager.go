package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/migrations"
	"github.com/dmitrijs2005/authgate/internal/server/refreshtokens"
	"github.com/dmitrijs2005/authgate/internal/server/users"
)

const pingTimeout = 5 * time.Second

type PostgresManager struct {
	db *sql.DB
}

// NewPostgresManager opens the pgx database/sql pool, verifies connectivity,
// and applies pending migrations.
func NewPostgresManager(ctx context.Context, dsn string, maxOpenConns, maxIdleConns int) (*PostgresManager, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)

	m := &PostgresManager{db: conn}

	if err := m.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func (m *PostgresManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresManager) Users(q dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(q)
}

func (m *PostgresManager) RefreshTokens(q dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(q)
}

func (m *PostgresManager) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return m.db.PingContext(ctx)
}

func (m *PostgresManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

func (m *PostgresManager) Close() error {
	return m.db.Close()
}
