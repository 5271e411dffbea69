// Package service contains the business logic for the Chapterlog reading log.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/chapterlog/chapterlog-server/internal/domain"
	domainerrors "github.com/chapterlog/chapterlog-server/internal/errors"
	"github.com/chapterlog/chapterlog-server/internal/id"
	"github.com/chapterlog/chapterlog-server/internal/store/sqlite"
	"github.com/chapterlog/chapterlog-server/internal/validation"
)

// CatalogSearcher is the external book catalog dependency.
type CatalogSearcher interface {
	Search(ctx context.Context, query string) ([]domain.CandidateBook, error)
}

// LibraryService orchestrates catalog search and reading record mutations.
type LibraryService struct {
	store     *sqlite.Store
	catalog   CatalogSearcher
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLibraryService creates a new library service.
func NewLibraryService(store *sqlite.Store, catalog CatalogSearcher, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:     store,
		catalog:   catalog,
		validator: validation.New(),
		logger:    logger,
	}
}

// recordNotFoundMsg is the user-facing message for unknown record IDs.
const recordNotFoundMsg = "Book not found in your library"

// SearchCatalog searches the external catalog for candidate books.
// A blank query is rejected before any external call is made; an empty
// result set is a valid outcome.
func (s *LibraryService) SearchCatalog(ctx context.Context, query string) ([]domain.CandidateBook, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("Search query is required")
	}

	results, err := s.catalog.Search(ctx, query)
	if err != nil {
		s.logger.Error("catalog search failed", "query", query, "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "Failed to search books")
	}

	return results, nil
}

// AddBookRequest carries the fields for adding a book to the library.
// Book metadata beyond title/author is optional and stored only when the
// catalog entry is created.
type AddBookRequest struct {
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	ISBN            string `json:"isbn" validate:"omitempty,max=20"`
	CoverURL        string `json:"cover_url" validate:"omitempty,url"`
	AmazonID        string `json:"amazon_id"`
	PublicationDate string `json:"publication_date"`
	Pages           *int   `json:"pages" validate:"omitempty,gte=1"`
	Description     string `json:"description"`
	OverallRating   int    `json:"overall_rating" validate:"required,min=1,max=5"`
	WritingRating   *int   `json:"writing_rating" validate:"omitempty,min=1,max=5"`
	StoryRating     *int   `json:"story_rating" validate:"omitempty,min=1,max=5"`
	ReadDate        string `json:"read_date" validate:"required,datetime=2006-01-02"`
	Notes           string `json:"notes"`
}

// AddBookResult identifies the catalog entry and the new reading record.
type AddBookResult struct {
	BookID   string
	RecordID string
}

// AddBook resolves or creates the catalog entry for the request and inserts
// a new reading record linked to it.
func (s *LibraryService) AddBook(ctx context.Context, req AddBookRequest) (*AddBookResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	book := &domain.Book{
		ID:              id.MustGenerate(id.PrefixBook),
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		CoverURL:        req.CoverURL,
		AmazonID:        req.AmazonID,
		PublicationDate: req.PublicationDate,
		Pages:           req.Pages,
		Description:     req.Description,
	}

	resolved, created, err := s.store.ResolveOrCreateBook(ctx, book)
	if err != nil {
		s.logger.Error("resolve or create book failed", "title", req.Title, "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "Failed to add book to library")
	}

	record := &domain.ReadingRecord{
		ID:            id.MustGenerate(id.PrefixRecord),
		BookID:        resolved.ID,
		OverallRating: req.OverallRating,
		WritingRating: req.WritingRating,
		StoryRating:   req.StoryRating,
		ReadDate:      req.ReadDate,
		Notes:         req.Notes,
	}
	if err := s.store.CreateRecord(ctx, record); err != nil {
		s.logger.Error("create record failed", "book_id", resolved.ID, "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "Failed to add book to library")
	}

	s.logger.Info("book added to library",
		"book_id", resolved.ID,
		"record_id", record.ID,
		"book_created", created,
	)

	return &AddBookResult{BookID: resolved.ID, RecordID: record.ID}, nil
}

// UpdateRecordRequest carries a partial update; only non-nil fields mutate.
type UpdateRecordRequest struct {
	OverallRating *int
	WritingRating *int
	StoryRating   *int
	ReadDate      *string
	Notes         *string
}

// UpdateRecord applies a partial update to an existing reading record.
// Supplying no mutable fields is a validation error; rating fields are
// validated independently when supplied.
func (s *LibraryService) UpdateRecord(ctx context.Context, recordID string, req UpdateRecordRequest) error {
	update := &sqlite.RecordUpdate{
		OverallRating: req.OverallRating,
		WritingRating: req.WritingRating,
		StoryRating:   req.StoryRating,
		ReadDate:      req.ReadDate,
		Notes:         req.Notes,
	}
	if update.IsEmpty() {
		return domainerrors.Validation("No fields to update")
	}

	if req.OverallRating != nil && !domain.ValidRating(*req.OverallRating) {
		return domainerrors.Validation("Overall rating must be between 1 and 5")
	}
	if req.WritingRating != nil && !domain.ValidRating(*req.WritingRating) {
		return domainerrors.Validation("Writing rating must be between 1 and 5")
	}
	if req.StoryRating != nil && !domain.ValidRating(*req.StoryRating) {
		return domainerrors.Validation("Story rating must be between 1 and 5")
	}
	if req.ReadDate != nil {
		if _, err := time.Parse(domain.ReadDateLayout, *req.ReadDate); err != nil {
			return domainerrors.Validation("Read date must be in YYYY-MM-DD format")
		}
	}

	err := s.store.UpdateRecord(ctx, recordID, update)
	if errors.Is(err, sqlite.ErrRecordNotFound) {
		return domainerrors.NotFound(recordNotFoundMsg)
	}
	if err != nil {
		s.logger.Error("update record failed", "record_id", recordID, "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "Failed to update book")
	}

	return nil
}

// DeleteRecord removes a reading record. The book stays in the catalog.
func (s *LibraryService) DeleteRecord(ctx context.Context, recordID string) error {
	err := s.store.DeleteRecord(ctx, recordID)
	if errors.Is(err, sqlite.ErrRecordNotFound) {
		return domainerrors.NotFound(recordNotFoundMsg)
	}
	if err != nil {
		s.logger.Error("delete record failed", "record_id", recordID, "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "Failed to remove book from library")
	}

	return nil
}

// ListHistory returns the full reading history, most recent first.
func (s *LibraryService) ListHistory(ctx context.Context) ([]*domain.HistoryEntry, error) {
	entries, err := s.store.ListHistory(ctx)
	if err != nil {
		s.logger.Error("list history failed", "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "Failed to fetch reading history")
	}
	return entries, nil
}

// GetRecord returns one reading record joined with its book.
func (s *LibraryService) GetRecord(ctx context.Context, recordID string) (*domain.HistoryEntry, error) {
	entry, err := s.store.GetHistoryEntry(ctx, recordID)
	if errors.Is(err, sqlite.ErrRecordNotFound) {
		return nil, domainerrors.NotFound(recordNotFoundMsg)
	}
	if err != nil {
		s.logger.Error("get record failed", "record_id", recordID, "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "Failed to fetch reading record")
	}
	return entry, nil
}
