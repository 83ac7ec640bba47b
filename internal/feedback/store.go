package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/annoview/internal/db"
)

// Store persists feedback in SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create validates and inserts fb. An empty ID is replaced by a UUID and a
// zero CreatedAt by the current time. The stored record is returned.
func (s *Store) Create(ctx context.Context, fb Feedback) (*Feedback, error) {
	if err := fb.Validate(); err != nil {
		return nil, err
	}
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}
	fb.CreatedAt = fb.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (
			id, filename, section_id, element_id, verdict, comment, reviewer, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fb.ID,
		fb.Filename,
		fb.SectionID,
		fb.ElementID,
		string(fb.Verdict),
		fb.Comment,
		fb.Reviewer,
		fb.CreatedAt.Format(time.DateTime),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting feedback: %w", err)
	}
	return &fb, nil
}

// GetByID retrieves a single feedback record.
func (s *Store) GetByID(ctx context.Context, id string) (*Feedback, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, section_id, element_id, verdict, comment, reviewer, created_at
		FROM feedback WHERE id = ?`, id)

	fb, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return fb, err
}

// ListFilter controls which feedback List returns. Empty fields match all.
type ListFilter struct {
	Filename  string
	SectionID string
	ElementID string
	Verdict   Verdict
	Limit     int
}

// List returns feedback matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Feedback, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Filename != "" {
		clauses = append(clauses, "filename = ?")
		args = append(args, filter.Filename)
	}
	if filter.SectionID != "" {
		clauses = append(clauses, "section_id = ?")
		args = append(args, filter.SectionID)
	}
	if filter.ElementID != "" {
		clauses = append(clauses, "element_id = ?")
		args = append(args, filter.ElementID)
	}
	if filter.Verdict != "" {
		clauses = append(clauses, "verdict = ?")
		args = append(args, string(filter.Verdict))
	}

	query := "SELECT id, filename, section_id, element_id, verdict, comment, reviewer, created_at FROM feedback"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	out := []Feedback{}
	for rows.Next() {
		fb, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *fb)
	}
	return out, rows.Err()
}

// Counts returns the number of verdicts of each kind for an element.
func (s *Store) Counts(ctx context.Context, filename, sectionID, elementID string) (map[Verdict]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT verdict, COUNT(*) FROM feedback
		WHERE filename = ? AND section_id = ? AND element_id = ?
		GROUP BY verdict`, filename, sectionID, elementID)
	if err != nil {
		return nil, fmt.Errorf("counting feedback: %w", err)
	}
	defer rows.Close()

	counts := make(map[Verdict]int)
	for rows.Next() {
		var (
			v string
			n int
		)
		if err := rows.Scan(&v, &n); err != nil {
			return nil, err
		}
		counts[Verdict(v)] = n
	}
	return counts, rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Feedback, error) {
	var (
		fb      Feedback
		verdict string
		ts      string
	)

	err := sc.Scan(
		&fb.ID, &fb.Filename, &fb.SectionID, &fb.ElementID,
		&verdict, &fb.Comment, &fb.Reviewer, &ts,
	)
	if err != nil {
		return nil, err
	}
	fb.Verdict = Verdict(verdict)

	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		fb.CreatedAt = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		fb.CreatedAt = t
	}
	return &fb, nil
}
