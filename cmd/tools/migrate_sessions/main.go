package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// CLI flags
var (
	dryRun      = flag.Bool("dry-run", false, "Run without committing to database")
	sessionDir  = flag.String("dir", "data/sessions", "Directory holding session JSON files")
	databaseURL = flag.String("database-url", "", "PostgreSQL connection string (defaults to DATABASE_URL)")
	verbose     = flag.Bool("verbose", false, "Verbose output")
)

type sessionFile struct {
	ID        string
	Path      string
	Payload   []byte
	UpdatedAt time.Time
}

func main() {
	flag.Parse()

	log.Println("==================================")
	log.Println("Session files to PostgreSQL import")
	log.Println("==================================")

	if *dryRun {
		log.Println("[DRY RUN MODE] No database changes will be made")
	}

	files, skipped, err := loadSessionFiles(*sessionDir)
	if err != nil {
		log.Fatalf("Failed to load session files: %v", err)
	}
	log.Printf("✓ Loaded %d session files (%d skipped)", len(files), skipped)

	if len(files) == 0 {
		log.Println("Nothing to import")
		return
	}

	if *dryRun {
		printSummary(files)
		log.Println("✓ Dry-run completed successfully")
		return
	}

	dsn := *databaseURL
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		log.Fatal("No database connection string: set --database-url or DATABASE_URL")
	}

	db, err := connectDB(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	inserted, err := importSessions(db, files)
	if err != nil {
		log.Fatalf("Failed to import sessions: %v", err)
	}

	log.Printf("✓ Imported %d sessions", inserted)
	log.Println("✓ Migration completed successfully")
}

func loadSessionFiles(dir string) ([]sessionFile, int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "session_*.json"))
	if err != nil {
		return nil, 0, err
	}

	files := make([]sessionFile, 0, len(paths))
	skipped := 0

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("! Skipping %s: %v", path, err)
			skipped++
			continue
		}

		var meta struct {
			SessionID string    `json:"session_id"`
			UpdatedAt time.Time `json:"updated_at"`
		}
		if err := json.Unmarshal(data, &meta); err != nil {
			log.Printf("! Skipping %s: invalid JSON: %v", path, err)
			skipped++
			continue
		}

		id := meta.SessionID
		if id == "" {
			base := filepath.Base(path)
			id = strings.TrimSuffix(strings.TrimPrefix(base, "session_"), ".json")
		}
		if id == "" {
			log.Printf("! Skipping %s: no session id", path)
			skipped++
			continue
		}

		updatedAt := meta.UpdatedAt
		if updatedAt.IsZero() {
			if info, serr := os.Stat(path); serr == nil {
				updatedAt = info.ModTime()
			} else {
				updatedAt = time.Now()
			}
		}

		if *verbose {
			log.Printf("  %s (updated %s)", id, updatedAt.Format(time.RFC3339))
		}

		files = append(files, sessionFile{
			ID:        id,
			Path:      path,
			Payload:   data,
			UpdatedAt: updatedAt,
		})
	}

	return files, skipped, nil
}

func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("✓ Connected to PostgreSQL")
	return db, nil
}

func importSessions(db *sql.DB, files []sessionFile) (int, error) {
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`); err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sessions (id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
		WHERE sessions.updated_at < EXCLUDED.updated_at`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, f := range files {
		if _, err := stmt.ExecContext(ctx, f.ID, f.Payload, f.UpdatedAt); err != nil {
			log.Printf("! Failed to import %s: %v", f.ID, err)
			continue
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func printSummary(files []sessionFile) {
	log.Println("---------------------------------")
	log.Printf("Would import %d sessions:", len(files))
	max := len(files)
	if max > 20 {
		max = 20
	}
	for i := 0; i < max; i++ {
		log.Printf("  %s (%d bytes)", files[i].ID, len(files[i].Payload))
	}
	if len(files) > max {
		log.Printf("  ... and %d more", len(files)-max)
	}
}
