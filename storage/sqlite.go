package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLite holds the SQLite database connection for rule and list persistence.
type SQLite struct {
	DB     *sql.DB
	Path   string
	Logger *zap.SugaredLogger
}

// NewSQLite opens (creating if necessary) the SQLite database at dbPath,
// applies the connection pragmas and ensures the schema exists.
func NewSQLite(dbPath string, logger *zap.SugaredLogger) (*SQLite, error) {
	if err := validateDatabasePath(dbPath); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	// Each pooled connection to a plain :memory: path would get its own
	// empty database; shared cache keeps them on one.
	actualPath := dbPath
	if dbPath == ":memory:" {
		actualPath = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", actualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := configureConnection(db, dbPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLite{
		DB:     db,
		Path:   dbPath,
		Logger: logger.Named("storage"),
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	s.Logger.Infow("SQLite database opened", "path", dbPath)
	return s, nil
}

// configureConnection applies the standard pragmas. WAL mode is skipped for
// in-memory databases, which only support the memory journal mode.
func configureConnection(db *sql.DB, dbPath string) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to query journal mode: %w", err)
	}
	if dbPath != ":memory:" && journalMode != "wal" {
		return fmt.Errorf("WAL mode not enabled (got: %s)", journalMode)
	}

	return nil
}

// createTables ensures the correction rule and validation entry tables exist.
func (s *SQLite) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS correction_rules (
			id TEXT PRIMARY KEY,
			from_text TEXT NOT NULL,
			to_text TEXT NOT NULL,
			rule_type TEXT NOT NULL DEFAULT 'exact',
			priority INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT 'general',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_correction_rules_category ON correction_rules(category)`,
		`CREATE TABLE IF NOT EXISTS validation_entries (
			list_name TEXT NOT NULL,
			value TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (list_name, value)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.DB == nil {
		return nil
	}
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// HealthCheck verifies the database connection is alive.
func (s *SQLite) HealthCheck() error {
	if s.DB == nil {
		return fmt.Errorf("database connection is nil")
	}
	if err := s.DB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// validateDatabasePath rejects paths that could escape the working
// directory or abuse the filesystem. :memory: and temp directories are
// allowed for tests.
func validateDatabasePath(dbPath string) error {
	if dbPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if len(dbPath) > 512 {
		return fmt.Errorf("database path exceeds maximum length of 512 characters")
	}
	if filepath.IsAbs(dbPath) && dbPath != ":memory:" {
		if !strings.Contains(dbPath, os.TempDir()) {
			return fmt.Errorf("absolute paths not allowed: %s", dbPath)
		}
	}
	if strings.Contains(dbPath, "..") {
		return fmt.Errorf("path traversal not allowed (..): %s", dbPath)
	}
	if strings.Contains(dbPath, "\x00") {
		return fmt.Errorf("null bytes not allowed in path")
	}
	return nil
}
