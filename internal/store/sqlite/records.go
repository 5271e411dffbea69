package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/chapterlog/chapterlog-server/internal/domain"
)

// recordColumns is the ordered list of columns selected in record queries.
// Must match the scan order in scanRecord.
const recordColumns = `id, book_id, overall_rating, writing_rating,
	story_rating, read_date, notes, created_at, updated_at`

// scanRecord scans a sql.Row (or sql.Rows via its Scan method) into a domain.ReadingRecord.
func scanRecord(scanner interface{ Scan(dest ...any) error }) (*domain.ReadingRecord, error) {
	var r domain.ReadingRecord

	var (
		writing   sql.NullInt64
		story     sql.NullInt64
		notes     sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.BookID,
		&r.OverallRating,
		&writing,
		&story,
		&r.ReadDate,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.WritingRating = intPtr(writing)
	r.StoryRating = intPtr(story)
	r.Notes = notes.String

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecord inserts a new reading record.
func (s *Store) CreateRecord(ctx context.Context, r *domain.ReadingRecord) error {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reading_records (
			id, book_id, overall_rating, writing_rating, story_rating,
			read_date, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.BookID,
		r.OverallRating,
		nullInt(r.WritingRating),
		nullInt(r.StoryRating),
		r.ReadDate,
		nullString(r.Notes),
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	)
	return err
}

// GetRecord returns a reading record by ID.
// Returns ErrRecordNotFound if no row matches.
func (s *Store) GetRecord(ctx context.Context, id string) (*domain.ReadingRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM reading_records WHERE id = ?`, id)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	return r, err
}

// RecordUpdate describes a partial update to a reading record.
// Only non-nil fields are written; updated_at is always refreshed.
type RecordUpdate struct {
	OverallRating *int
	WritingRating *int
	StoryRating   *int
	ReadDate      *string
	Notes         *string
}

// IsEmpty reports whether the update carries no field mutations.
func (u *RecordUpdate) IsEmpty() bool {
	return u.OverallRating == nil &&
		u.WritingRating == nil &&
		u.StoryRating == nil &&
		u.ReadDate == nil &&
		u.Notes == nil
}

// UpdateRecord applies the supplied field mutations to an existing record.
// Returns ErrRecordNotFound if the record does not exist.
func (s *Store) UpdateRecord(ctx context.Context, id string, update *RecordUpdate) error {
	setClauses := make([]string, 0, 6)
	args := make([]any, 0, 7)

	if update.OverallRating != nil {
		setClauses = append(setClauses, "overall_rating = ?")
		args = append(args, *update.OverallRating)
	}
	if update.WritingRating != nil {
		setClauses = append(setClauses, "writing_rating = ?")
		args = append(args, *update.WritingRating)
	}
	if update.StoryRating != nil {
		setClauses = append(setClauses, "story_rating = ?")
		args = append(args, *update.StoryRating)
	}
	if update.ReadDate != nil {
		setClauses = append(setClauses, "read_date = ?")
		args = append(args, *update.ReadDate)
	}
	if update.Notes != nil {
		setClauses = append(setClauses, "notes = ?")
		args = append(args, nullString(*update.Notes))
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, formatTime(time.Now()))
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		`UPDATE reading_records SET `+strings.Join(setClauses, ", ")+` WHERE id = ?`,
		args...,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteRecord removes a reading record. The referenced book is untouched.
// Returns ErrRecordNotFound if the record does not exist.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM reading_records WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// historyColumns selects reading records joined with their book's catalog fields.
const historyColumns = `r.id, b.id, b.title, b.author, b.isbn, b.cover_url,
	b.publication_date, b.pages, b.description,
	r.overall_rating, r.writing_rating, r.story_rating,
	r.read_date, r.notes, r.created_at`

// scanHistoryEntry scans a joined record+book row into a domain.HistoryEntry.
func scanHistoryEntry(scanner interface{ Scan(dest ...any) error }) (*domain.HistoryEntry, error) {
	var e domain.HistoryEntry

	var (
		isbn      sql.NullString
		coverURL  sql.NullString
		pubDate   sql.NullString
		pages     sql.NullInt64
		desc      sql.NullString
		writing   sql.NullInt64
		story     sql.NullInt64
		notes     sql.NullString
		createdAt string
	)

	err := scanner.Scan(
		&e.RecordID,
		&e.BookID,
		&e.Title,
		&e.Author,
		&isbn,
		&coverURL,
		&pubDate,
		&pages,
		&desc,
		&e.OverallRating,
		&writing,
		&story,
		&e.ReadDate,
		&notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.ISBN = isbn.String
	e.CoverURL = coverURL.String
	e.PublicationDate = pubDate.String
	e.Pages = intPtr(pages)
	e.Description = desc.String
	e.WritingRating = intPtr(writing)
	e.StoryRating = intPtr(story)
	e.Notes = notes.String

	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// ListHistory returns all reading records joined with book fields,
// most recently read first.
func (s *Store) ListHistory(ctx context.Context) ([]*domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM reading_records r
		JOIN books b ON r.book_id = b.id
		ORDER BY r.read_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.HistoryEntry, 0)
	for rows.Next() {
		e, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetHistoryEntry returns a single reading record joined with its book.
// Returns ErrRecordNotFound if the record does not exist.
func (s *Store) GetHistoryEntry(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+historyColumns+`
		FROM reading_records r
		JOIN books b ON r.book_id = b.id
		WHERE r.id = ?`, id)

	e, err := scanHistoryEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	return e, err
}
