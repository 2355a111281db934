package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"media-server/internal/logging"
	"media-server/internal/metrics"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// Database is the metadata catalog: one row per ingested media file.
// It is the authoritative source for listings and metadata; the on-disk
// store is authoritative for byte existence.
type Database struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// New opens (or creates) the catalog database at dbPath and ensures the
// schema is current. dbPath is the full path to the database file; its
// parent directory must already exist and be writable.
func New(ctx context.Context, dbPath string) (*Database, error) {
	logging.Info("Database path: %s", dbPath)

	// WAL mode and a busy timeout keep single-process concurrent reads
	// from tripping over "database is locked" errors.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	d := &Database{
		db:     db,
		dbPath: dbPath,
	}

	if err := d.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.Info("Database initialized successfully at %s", dbPath)
	return d, nil
}

func (d *Database) initialize(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { recordQuery("initialize_schema", start, err) }()

	schema := `
	CREATE TABLE IF NOT EXISTS videos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		filename TEXT NOT NULL UNIQUE,
		original_filename TEXT NOT NULL,
		file_size INTEGER NOT NULL DEFAULT 0,
		thumbnail TEXT,
		created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at);
	CREATE INDEX IF NOT EXISTS idx_videos_thumbnail ON videos(thumbnail);
	`

	if _, err = d.db.ExecContext(ctx, schema); err != nil {
		return err
	}

	return d.migrate(ctx)
}

// migrate applies additive schema migrations. Databases created before
// thumbnails were introduced lack the thumbnail column; it is added in
// place without touching existing rows.
func (d *Database) migrate(ctx context.Context) error {
	rows, err := d.db.QueryContext(ctx, "PRAGMA table_info(videos)")
	if err != nil {
		return fmt.Errorf("failed to inspect videos table: %w", err)
	}
	defer rows.Close()

	hasThumbnail := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("failed to scan table info: %w", err)
		}
		if name == "thumbnail" {
			hasThumbnail = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !hasThumbnail {
		logging.Info("Adding thumbnail column to videos table")
		if _, err := d.db.ExecContext(ctx, "ALTER TABLE videos ADD COLUMN thumbnail TEXT"); err != nil {
			return fmt.Errorf("failed to add thumbnail column: %w", err)
		}
	}

	return nil
}

// Path returns the filesystem path of the database file.
func (d *Database) Path() string {
	return d.dbPath
}

// Close closes the underlying database handle.
func (d *Database) Close() error {
	return d.db.Close()
}

// recordQuery records database query metrics
func recordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}
