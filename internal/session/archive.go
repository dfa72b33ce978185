package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// Archive mirrors session files into Postgres so sessions survive
// container restarts with ephemeral disks. Writes are best effort; the
// JSON file on disk stays the source of truth.
type Archive struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewArchive(dsn string, logger *zap.Logger) (*Archive, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	logger.Info("PostgreSQL session archive connected")

	return &Archive{db: db, logger: logger}, nil
}

func (a *Archive) Save(ctx context.Context, sessionID string, payload []byte, updatedAt time.Time) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO sessions (id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		sessionID, payload, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", sessionID, err)
	}
	return nil
}

func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (a *Archive) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *Archive) Close() error {
	return a.db.Close()
}
