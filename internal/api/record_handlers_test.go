package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapterlog/chapterlog-server/internal/domain"
)

func TestAddBook_Created(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/records", map[string]any{
		"title":          "Piranesi",
		"author":         "Susanna Clarke",
		"isbn":           "9781635575637",
		"overall_rating": 5,
		"writing_rating": 5,
		"read_date":      "2024-08-01",
		"notes":          "strange and lovely",
	})
	assert.Equal(t, http.StatusCreated, resp.Code)

	var envelope testEnvelope[AddBookResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.BookID)
	assert.NotEmpty(t, envelope.Data.RecordID)
}

func TestAddBook_ValidationError(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/records", map[string]any{
		"title":          "",
		"author":         "Susanna Clarke",
		"overall_rating": 5,
		"read_date":      "2024-08-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Error.Code)
}

func TestAddBook_RatingOutOfRange(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/records", map[string]any{
		"title":          "Piranesi",
		"author":         "Susanna Clarke",
		"overall_rating": 11,
		"read_date":      "2024-08-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListHistory(t *testing.T) {
	ts := setupTestServer(t)

	ts.addBook(t, "Book One", "Author A", "2024-01-15", 4)
	ts.addBook(t, "Book Two", "Author B", "2024-06-20", 5)

	resp := ts.api.Get("/api/v1/records")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HistoryResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, 2, envelope.Data.Total)
	require.Len(t, envelope.Data.Records, 2)
	assert.Equal(t, "Book Two", envelope.Data.Records[0].Title)
	assert.Equal(t, "Book One", envelope.Data.Records[1].Title)
}

func TestListHistory_Empty(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/records")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HistoryResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, 0, envelope.Data.Total)
	assert.Empty(t, envelope.Data.Records)
}

func TestGetRecord(t *testing.T) {
	ts := setupTestServer(t)

	bookID, recordID := ts.addBook(t, "Book One", "Author A", "2024-01-15", 4)

	resp := ts.api.Get("/api/v1/records/" + recordID)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.HistoryEntry]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, recordID, envelope.Data.RecordID)
	assert.Equal(t, bookID, envelope.Data.BookID)
	assert.Equal(t, "Book One", envelope.Data.Title)
}

func TestGetRecord_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/records/read-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
	assert.Equal(t, "Book not found in your library", envelope.Error.Message)
}

func TestUpdateRecord(t *testing.T) {
	ts := setupTestServer(t)

	_, recordID := ts.addBook(t, "Book One", "Author A", "2024-01-15", 4)

	resp := ts.api.Patch("/api/v1/records/"+recordID, map[string]any{
		"overall_rating": 2,
		"notes":          "did not hold up",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.HistoryEntry]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, 2, envelope.Data.OverallRating)
	assert.Equal(t, "did not hold up", envelope.Data.Notes)
	assert.Equal(t, "2024-01-15", envelope.Data.ReadDate)
}

func TestUpdateRecord_EmptyBody(t *testing.T) {
	ts := setupTestServer(t)

	_, recordID := ts.addBook(t, "Book One", "Author A", "2024-01-15", 4)

	resp := ts.api.Patch("/api/v1/records/"+recordID, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "VALIDATION", envelope.Error.Code)
	assert.Equal(t, "No fields to update", envelope.Error.Message)
}

func TestUpdateRecord_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Patch("/api/v1/records/read-missing", map[string]any{
		"overall_rating": 3,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteRecord(t *testing.T) {
	ts := setupTestServer(t)

	_, recordID := ts.addBook(t, "Book One", "Author A", "2024-01-15", 4)

	resp := ts.api.Delete("/api/v1/records/" + recordID)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/records/" + recordID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteRecord_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Delete("/api/v1/records/read-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
