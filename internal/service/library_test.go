package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapterlog/chapterlog-server/internal/domain"
	domainerrors "github.com/chapterlog/chapterlog-server/internal/errors"
	"github.com/chapterlog/chapterlog-server/internal/store/sqlite"
)

// stubCatalog returns canned results or a canned error.
type stubCatalog struct {
	results []domain.CandidateBook
	err     error
	queries []string
}

func (c *stubCatalog) Search(_ context.Context, query string) ([]domain.CandidateBook, error) {
	c.queries = append(c.queries, query)
	if c.err != nil {
		return nil, c.err
	}
	return c.results, nil
}

func setupLibraryTest(t *testing.T) (*LibraryService, *sqlite.Store, *stubCatalog) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	testStore, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { testStore.Close() })

	catalog := &stubCatalog{}
	svc := NewLibraryService(testStore, catalog, logger)
	return svc, testStore, catalog
}

func validAddRequest() AddBookRequest {
	return AddBookRequest{
		Title:         "The Dispossessed",
		Author:        "Ursula K. Le Guin",
		ISBN:          "9780060512750",
		OverallRating: 5,
		ReadDate:      "2024-03-10",
	}
}

func TestSearchCatalog(t *testing.T) {
	svc, _, catalog := setupLibraryTest(t)
	ctx := context.Background()

	catalog.results = []domain.CandidateBook{
		{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"},
	}

	results, err := svc.SearchCatalog(ctx, "  dune  ")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Dune", results[0].Title)

	// Query is trimmed before it reaches the catalog.
	require.Len(t, catalog.queries, 1)
	assert.Equal(t, "dune", catalog.queries[0])
}

func TestSearchCatalog_BlankQuery(t *testing.T) {
	svc, _, catalog := setupLibraryTest(t)

	_, err := svc.SearchCatalog(context.Background(), "   ")
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)
	assert.Equal(t, "Search query is required", derr.Message)
	assert.Empty(t, catalog.queries)
}

func TestSearchCatalog_UpstreamFailure(t *testing.T) {
	svc, _, catalog := setupLibraryTest(t)
	catalog.err = assert.AnError

	_, err := svc.SearchCatalog(context.Background(), "dune")
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeUnavailable, derr.Code)
}

func TestAddBook(t *testing.T) {
	svc, testStore, _ := setupLibraryTest(t)
	ctx := context.Background()

	result, err := svc.AddBook(ctx, validAddRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.BookID)
	assert.NotEmpty(t, result.RecordID)

	entry, err := testStore.GetHistoryEntry(ctx, result.RecordID)
	require.NoError(t, err)
	assert.Equal(t, result.BookID, entry.BookID)
	assert.Equal(t, "The Dispossessed", entry.Title)
	assert.Equal(t, 5, entry.OverallRating)
	assert.Equal(t, "2024-03-10", entry.ReadDate)
}

func TestAddBook_RereadReusesBook(t *testing.T) {
	svc, _, _ := setupLibraryTest(t)
	ctx := context.Background()

	first, err := svc.AddBook(ctx, validAddRequest())
	require.NoError(t, err)

	req := validAddRequest()
	req.OverallRating = 3
	req.ReadDate = "2025-01-02"
	second, err := svc.AddBook(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.BookID, second.BookID)
	assert.NotEqual(t, first.RecordID, second.RecordID)
}

func TestAddBook_Validation(t *testing.T) {
	svc, _, _ := setupLibraryTest(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*AddBookRequest)
	}{
		{"missing title", func(r *AddBookRequest) { r.Title = "" }},
		{"missing author", func(r *AddBookRequest) { r.Author = "" }},
		{"missing rating", func(r *AddBookRequest) { r.OverallRating = 0 }},
		{"rating too high", func(r *AddBookRequest) { r.OverallRating = 6 }},
		{"missing read date", func(r *AddBookRequest) { r.ReadDate = "" }},
		{"malformed read date", func(r *AddBookRequest) { r.ReadDate = "March 10 2024" }},
		{"writing rating out of range", func(r *AddBookRequest) { v := 0; r.WritingRating = &v }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAddRequest()
			tt.mutate(&req)

			_, err := svc.AddBook(ctx, req)
			require.Error(t, err)

			var derr *domainerrors.Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, domainerrors.CodeValidation, derr.Code)
		})
	}
}

func TestUpdateRecord(t *testing.T) {
	svc, testStore, _ := setupLibraryTest(t)
	ctx := context.Background()

	added, err := svc.AddBook(ctx, validAddRequest())
	require.NoError(t, err)

	rating := 4
	notes := "better on a reread"
	err = svc.UpdateRecord(ctx, added.RecordID, UpdateRecordRequest{
		OverallRating: &rating,
		Notes:         &notes,
	})
	require.NoError(t, err)

	entry, err := testStore.GetHistoryEntry(ctx, added.RecordID)
	require.NoError(t, err)
	assert.Equal(t, 4, entry.OverallRating)
	assert.Equal(t, "better on a reread", entry.Notes)
	// Untouched fields survive the partial update.
	assert.Equal(t, "2024-03-10", entry.ReadDate)
}

func TestUpdateRecord_NoFields(t *testing.T) {
	svc, _, _ := setupLibraryTest(t)

	err := svc.UpdateRecord(context.Background(), "read-missing", UpdateRecordRequest{})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)
	assert.Equal(t, "No fields to update", derr.Message)
}

func TestUpdateRecord_InvalidRating(t *testing.T) {
	svc, _, _ := setupLibraryTest(t)

	rating := 9
	err := svc.UpdateRecord(context.Background(), "read-missing", UpdateRecordRequest{
		OverallRating: &rating,
	})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)
}

func TestUpdateRecord_NotFound(t *testing.T) {
	svc, _, _ := setupLibraryTest(t)

	rating := 3
	err := svc.UpdateRecord(context.Background(), "read-missing", UpdateRecordRequest{
		OverallRating: &rating,
	})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeNotFound, derr.Code)
	assert.Equal(t, "Book not found in your library", derr.Message)
}

func TestDeleteRecord(t *testing.T) {
	svc, testStore, _ := setupLibraryTest(t)
	ctx := context.Background()

	added, err := svc.AddBook(ctx, validAddRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecord(ctx, added.RecordID))

	_, err = testStore.GetHistoryEntry(ctx, added.RecordID)
	assert.ErrorIs(t, err, sqlite.ErrRecordNotFound)

	// The catalog entry outlives the record.
	_, err = testStore.GetBook(ctx, added.BookID)
	assert.NoError(t, err)
}

func TestDeleteRecord_NotFound(t *testing.T) {
	svc, _, _ := setupLibraryTest(t)

	err := svc.DeleteRecord(context.Background(), "read-missing")
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeNotFound, derr.Code)
}

func TestListHistory(t *testing.T) {
	svc, _, _ := setupLibraryTest(t)
	ctx := context.Background()

	entries, err := svc.ListHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.AddBook(ctx, validAddRequest())
	require.NoError(t, err)

	later := validAddRequest()
	later.Title = "The Left Hand of Darkness"
	later.ISBN = "9780441478125"
	later.ReadDate = "2025-06-01"
	_, err = svc.AddBook(ctx, later)
	require.NoError(t, err)

	entries, err = svc.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "The Left Hand of Darkness", entries[0].Title)
	assert.Equal(t, "The Dispossessed", entries[1].Title)
}

func TestGetRecord_NotFound(t *testing.T) {
	svc, _, _ := setupLibraryTest(t)

	_, err := svc.GetRecord(context.Background(), "read-missing")
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeNotFound, derr.Code)
}
