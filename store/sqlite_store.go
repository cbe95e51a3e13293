package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	internalErrors "github.com/gcbaptista/faq-assistant/internal/errors"
	"github.com/gcbaptista/faq-assistant/model"
	"github.com/gcbaptista/faq-assistant/services"
)

// SQLiteStore keeps FAQ records in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

const faqColumns = `id, category, question, answer, keywords, priority, is_active, created_at, updated_at`

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, internalErrors.NewStorageError("create database directory", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, internalErrors.NewStorageError("open database", err)
	}
	// One connection serializes every statement against the database file.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, internalErrors.NewStorageError("migrate", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS faqs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			keywords TEXT NOT NULL DEFAULT '',
			priority INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_faqs_order ON faqs(priority DESC, seq);
		CREATE INDEX IF NOT EXISTS idx_faqs_category ON faqs(category);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// whereClause renders the filters in opts as a SQL condition and its arguments.
func whereClause(opts services.ListOptions) (string, []any) {
	var conds []string
	var args []any

	if opts.ActiveOnly {
		conds = append(conds, "is_active = 1")
	}
	if opts.InactiveOnly {
		conds = append(conds, "is_active = 0")
	}
	if opts.Category != "" {
		conds = append(conds, "lower(category) = lower(?)")
		args = append(args, opts.Category)
	}
	if text := strings.ToLower(strings.TrimSpace(opts.Text)); text != "" {
		conds = append(conds, "(instr(lower(question), ?) > 0 OR instr(lower(answer), ?) > 0 OR instr(lower(keywords), ?) > 0)")
		args = append(args, text, text, text)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns the records matching opts.
func (s *SQLiteStore) List(ctx context.Context, opts services.ListOptions) ([]model.FaqRecord, error) {
	where, args := whereClause(opts)

	limit := -1
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	query := `SELECT ` + faqColumns + ` FROM faqs` + where + ` ORDER BY priority DESC, seq ASC LIMIT ? OFFSET ?`
	args = append(args, limit, max(opts.Offset, 0))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, internalErrors.NewStorageError("list", err)
	}
	defer rows.Close()

	records := make([]model.FaqRecord, 0)
	for rows.Next() {
		rec, err := scanFAQ(rows)
		if err != nil {
			return nil, internalErrors.NewStorageError("list", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, internalErrors.NewStorageError("list", err)
	}
	return records, nil
}

// Count returns how many records match opts, ignoring Offset and Limit.
func (s *SQLiteStore) Count(ctx context.Context, opts services.ListOptions) (int, error) {
	where, args := whereClause(opts)

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faqs`+where, args...).Scan(&count); err != nil {
		return 0, internalErrors.NewStorageError("count", err)
	}
	return count, nil
}

// Get returns one record by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (model.FaqRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+faqColumns+` FROM faqs WHERE id = ?`, id)
	rec, err := scanFAQ(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FaqRecord{}, internalErrors.NewFAQNotFoundError(id)
	}
	if err != nil {
		return model.FaqRecord{}, internalErrors.NewStorageError("get", err)
	}
	return rec, nil
}

// Create adds a record, generating an ID when rec.ID is empty.
func (s *SQLiteStore) Create(ctx context.Context, rec model.FaqRecord) (model.FaqRecord, error) {
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := s.now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO faqs (`+faqColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Category, rec.Question, rec.Answer, rec.Keywords, rec.Priority, rec.IsActive, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return model.FaqRecord{}, internalErrors.NewFAQAlreadyExistsError(rec.ID)
		}
		return model.FaqRecord{}, internalErrors.NewStorageError("create", err)
	}
	return rec, nil
}

// Update replaces an existing record, keeping its creation time and position.
func (s *SQLiteStore) Update(ctx context.Context, rec model.FaqRecord) (model.FaqRecord, error) {
	existing, err := s.Get(ctx, rec.ID)
	if err != nil {
		return model.FaqRecord{}, err
	}
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = s.now().UTC()

	res, err := s.db.ExecContext(ctx,
		`UPDATE faqs SET category = ?, question = ?, answer = ?, keywords = ?, priority = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		rec.Category, rec.Question, rec.Answer, rec.Keywords, rec.Priority, rec.IsActive, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return model.FaqRecord{}, internalErrors.NewStorageError("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.FaqRecord{}, internalErrors.NewStorageError("update", err)
	}
	// The row can disappear between the lookup and the write.
	if n == 0 {
		return model.FaqRecord{}, internalErrors.NewFAQNotFoundError(rec.ID)
	}
	return rec, nil
}

// Delete removes a record.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = ?`, id)
	if err != nil {
		return internalErrors.NewStorageError("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return internalErrors.NewStorageError("delete", err)
	}
	if n == 0 {
		return internalErrors.NewFAQNotFoundError(id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFAQ(row rowScanner) (model.FaqRecord, error) {
	var rec model.FaqRecord
	err := row.Scan(&rec.ID, &rec.Category, &rec.Question, &rec.Answer, &rec.Keywords,
		&rec.Priority, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return model.FaqRecord{}, fmt.Errorf("scan faq row: %w", err)
	}
	return rec, nil
}
