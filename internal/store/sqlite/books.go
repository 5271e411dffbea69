package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/chapterlog/chapterlog-server/internal/domain"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, author, isbn, cover_url, amazon_id,
	publication_date, pages, description, created_at, updated_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		isbn      sql.NullString
		coverURL  sql.NullString
		amazonID  sql.NullString
		pubDate   sql.NullString
		pages     sql.NullInt64
		desc      sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&isbn,
		&coverURL,
		&amazonID,
		&pubDate,
		&pages,
		&desc,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.ISBN = isbn.String
	b.CoverURL = coverURL.String
	b.AmazonID = amazonID.String
	b.PublicationDate = pubDate.String
	b.Pages = intPtr(pages)
	b.Description = desc.String

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new catalog entry.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (
			id, title, author, isbn, cover_url, amazon_id,
			publication_date, pages, description, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.Title,
		b.Author,
		nullString(b.ISBN),
		nullString(b.CoverURL),
		nullString(b.AmazonID),
		nullString(b.PublicationDate),
		nullInt(b.Pages),
		nullString(b.Description),
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	return err
}

// GetBook returns a catalog entry by ID.
// Returns ErrBookNotFound if no row matches.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	return b, err
}

// FindBookByISBN returns the catalog entry with the given ISBN, or
// ErrBookNotFound if none exists.
func (s *Store) FindBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE isbn = ?`, isbn)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	return b, err
}

// FindBookByTitleAuthor returns the catalog entry exactly matching the
// (title, author) pair, or ErrBookNotFound if none exists.
func (s *Store) FindBookByTitleAuthor(ctx context.Context, title, author string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE title = ? AND author = ?`, title, author)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	return b, err
}

// ResolveOrCreateBook implements the catalog dedup rule: look up by ISBN
// first, then by exact (title, author), and insert only when both miss.
// Returns the resolved or created book and whether it was created.
//
// The unique index on books.isbn backstops concurrent callers: if two
// requests race past the lookups, the loser's insert fails and is resolved
// by a fresh ISBN lookup.
func (s *Store) ResolveOrCreateBook(ctx context.Context, b *domain.Book) (*domain.Book, bool, error) {
	if b.ISBN != "" {
		existing, err := s.FindBookByISBN(ctx, b.ISBN)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, ErrBookNotFound) {
			return nil, false, err
		}
	}

	existing, err := s.FindBookByTitleAuthor(ctx, b.Title, b.Author)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrBookNotFound) {
		return nil, false, err
	}

	if err := s.CreateBook(ctx, b); err != nil {
		if b.ISBN != "" && strings.Contains(err.Error(), "UNIQUE constraint failed") {
			// Lost a race with a concurrent insert of the same ISBN.
			existing, lookupErr := s.FindBookByISBN(ctx, b.ISBN)
			if lookupErr != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return b, true, nil
}
