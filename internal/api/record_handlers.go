package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chapterlog/chapterlog-server/internal/domain"
	"github.com/chapterlog/chapterlog-server/internal/service"
)

func (s *Server) registerRecordRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/records",
		Summary:       "Add book",
		Description:   "Adds a book to the reading history, creating the catalog entry if needed",
		Tags:          []string{"Records"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listHistory",
		Method:      http.MethodGet,
		Path:        "/api/v1/records",
		Summary:     "List reading history",
		Description: "Returns all reading records with book details, most recent first",
		Tags:        []string{"Records"},
	}, s.handleListHistory)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecord",
		Method:      http.MethodGet,
		Path:        "/api/v1/records/{id}",
		Summary:     "Get record",
		Description: "Returns one reading record with book details",
		Tags:        []string{"Records"},
	}, s.handleGetRecord)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecord",
		Method:      http.MethodPatch,
		Path:        "/api/v1/records/{id}",
		Summary:     "Update record",
		Description: "Applies a partial update to a reading record",
		Tags:        []string{"Records"},
	}, s.handleUpdateRecord)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRecord",
		Method:        http.MethodDelete,
		Path:          "/api/v1/records/{id}",
		Summary:       "Delete record",
		Description:   "Removes a reading record; the book stays in the catalog",
		Tags:          []string{"Records"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRecord)
}

// === DTOs ===

// AddBookRequest is the request body for adding a book.
type AddBookRequest struct {
	Title           string `json:"title" doc:"Book title"`
	Author          string `json:"author" doc:"Book author"`
	ISBN            string `json:"isbn,omitempty" doc:"ISBN-13 or ISBN-10"`
	CoverURL        string `json:"cover_url,omitempty" doc:"Cover image URL"`
	AmazonID        string `json:"amazon_id,omitempty" doc:"Amazon ASIN"`
	PublicationDate string `json:"publication_date,omitempty" doc:"Publication date as free text"`
	Pages           *int   `json:"pages,omitempty" doc:"Page count"`
	Description     string `json:"description,omitempty" doc:"Book description"`
	OverallRating   int    `json:"overall_rating" doc:"Overall rating, 1 to 5"`
	WritingRating   *int   `json:"writing_rating,omitempty" doc:"Writing quality rating, 1 to 5"`
	StoryRating     *int   `json:"story_rating,omitempty" doc:"Story rating, 1 to 5"`
	ReadDate        string `json:"read_date" doc:"Date finished, YYYY-MM-DD"`
	Notes           string `json:"notes,omitempty" doc:"Free-form notes"`
}

// AddBookInput wraps the add book request for Huma.
type AddBookInput struct {
	Body AddBookRequest
}

// AddBookResponse identifies the catalog entry and the new record.
type AddBookResponse struct {
	BookID   string `json:"book_id" doc:"Catalog book ID"`
	RecordID string `json:"user_book_id" doc:"Reading record ID"`
}

// AddBookOutput wraps the add book response for Huma.
type AddBookOutput struct {
	Body AddBookResponse
}

// HistoryResponse contains the full reading history.
type HistoryResponse struct {
	Records []*domain.HistoryEntry `json:"records" doc:"Reading records, most recent first"`
	Total   int                    `json:"total" doc:"Number of records"`
}

// HistoryOutput wraps the history response for Huma.
type HistoryOutput struct {
	Body HistoryResponse
}

// GetRecordInput contains parameters for fetching one record.
type GetRecordInput struct {
	ID string `path:"id" doc:"Reading record ID"`
}

// RecordOutput wraps a single history entry for Huma.
type RecordOutput struct {
	Body domain.HistoryEntry
}

// UpdateRecordRequest is the request body for a partial record update.
// Absent fields are left untouched.
type UpdateRecordRequest struct {
	OverallRating *int    `json:"overall_rating,omitempty" doc:"Overall rating, 1 to 5"`
	WritingRating *int    `json:"writing_rating,omitempty" doc:"Writing quality rating, 1 to 5"`
	StoryRating   *int    `json:"story_rating,omitempty" doc:"Story rating, 1 to 5"`
	ReadDate      *string `json:"read_date,omitempty" doc:"Date finished, YYYY-MM-DD"`
	Notes         *string `json:"notes,omitempty" doc:"Free-form notes; empty string clears"`
}

// UpdateRecordInput wraps the update request for Huma.
type UpdateRecordInput struct {
	ID   string `path:"id" doc:"Reading record ID"`
	Body UpdateRecordRequest
}

// DeleteRecordInput contains parameters for deleting a record.
type DeleteRecordInput struct {
	ID string `path:"id" doc:"Reading record ID"`
}

// DeleteRecordOutput is the empty response for a successful delete.
type DeleteRecordOutput struct{}

// === Handlers ===

func (s *Server) handleAddBook(ctx context.Context, input *AddBookInput) (*AddBookOutput, error) {
	result, err := s.services.Library.AddBook(ctx, service.AddBookRequest{
		Title:           input.Body.Title,
		Author:          input.Body.Author,
		ISBN:            input.Body.ISBN,
		CoverURL:        input.Body.CoverURL,
		AmazonID:        input.Body.AmazonID,
		PublicationDate: input.Body.PublicationDate,
		Pages:           input.Body.Pages,
		Description:     input.Body.Description,
		OverallRating:   input.Body.OverallRating,
		WritingRating:   input.Body.WritingRating,
		StoryRating:     input.Body.StoryRating,
		ReadDate:        input.Body.ReadDate,
		Notes:           input.Body.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &AddBookOutput{
		Body: AddBookResponse{
			BookID:   result.BookID,
			RecordID: result.RecordID,
		},
	}, nil
}

func (s *Server) handleListHistory(ctx context.Context, _ *struct{}) (*HistoryOutput, error) {
	entries, err := s.services.Library.ListHistory(ctx)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []*domain.HistoryEntry{}
	}

	return &HistoryOutput{
		Body: HistoryResponse{
			Records: entries,
			Total:   len(entries),
		},
	}, nil
}

func (s *Server) handleGetRecord(ctx context.Context, input *GetRecordInput) (*RecordOutput, error) {
	entry, err := s.services.Library.GetRecord(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecordOutput{Body: *entry}, nil
}

func (s *Server) handleUpdateRecord(ctx context.Context, input *UpdateRecordInput) (*RecordOutput, error) {
	err := s.services.Library.UpdateRecord(ctx, input.ID, service.UpdateRecordRequest{
		OverallRating: input.Body.OverallRating,
		WritingRating: input.Body.WritingRating,
		StoryRating:   input.Body.StoryRating,
		ReadDate:      input.Body.ReadDate,
		Notes:         input.Body.Notes,
	})
	if err != nil {
		return nil, err
	}

	entry, err := s.services.Library.GetRecord(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecordOutput{Body: *entry}, nil
}

func (s *Server) handleDeleteRecord(ctx context.Context, input *DeleteRecordInput) (*DeleteRecordOutput, error) {
	if err := s.services.Library.DeleteRecord(ctx, input.ID); err != nil {
		return nil, err
	}

	return &DeleteRecordOutput{}, nil
}
