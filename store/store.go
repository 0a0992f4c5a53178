package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/propintel/underwrite/underwriting"
)

// ErrNotFound indicates the report was not found
var ErrNotFound = errors.New("report not found")

// Config holds store configuration
type Config struct {
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"` // Database file path (default: ~/.cache/underwrite.db)
	// Retention is how long reports are kept, 0 keeps them forever
	Retention time.Duration `json:"retention,omitempty" yaml:"retention,omitempty"`
}

// Report is one underwriting run saved to history
type Report struct {
	ID        uuid.UUID           `json:"id"`
	Record    underwriting.Record `json:"record"`
	Summary   string              `json:"summary"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Store keeps the report history in SQLite
type Store struct {
	db     *sql.DB
	config Config
	log    logger.Logger
}

// New opens the database, creating it and its schema when needed
func New(config Config) (*Store, error) {
	if config.DBPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.DBPath = filepath.Join(homeDir, ".cache", "underwrite.db")
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(embeddedSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, config: config, log: logger.GetLogger("store")}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Save stores a report, assigning an id and timestamp when they are unset
func (s *Store) Save(ctx context.Context, report *Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	record, err := json.Marshal(report.Record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, address, property_type, dscr, summary, record, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, report.ID.String(), report.Record.Address, string(report.Record.Type), report.Record.DSCR,
		report.Summary, string(record), report.CreatedAt.UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	s.log.Debugf("saved report %s for %s (%s)", report.ID, report.Record.Address, report.Summary)
	return nil
}

// Recent returns up to limit reports, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, summary, record, created_at
		FROM reports
		ORDER BY created_at DESC, seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return reports, nil
}

// Get returns a single report by id
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, summary, record, created_at FROM reports WHERE id = ?
	`, id.String())

	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return report, err
}

// Prune deletes reports older than the configured retention and returns how
// many were removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s.config.Retention <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-s.config.Retention).UTC().UnixNano()

	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune reports: %w", err)
	}
	n, _ := result.RowsAffected()
	if n > 0 {
		s.log.Infof("pruned %d reports older than %s", n, s.config.Retention)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*Report, error) {
	var (
		report  Report
		id      string
		record  string
		created int64
	)
	if err := row.Scan(&id, &report.Summary, &record, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid report id %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(record), &report.Record); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", id, err)
	}

	report.ID = parsed
	report.CreatedAt = time.Unix(0, created).UTC()
	return &report, nil
}
