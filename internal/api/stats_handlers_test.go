package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapterlog/chapterlog-server/internal/domain"
)

func TestGetReadingStats_Empty(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/stats")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.ReadingStats]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, 0, envelope.Data.Summary.TotalBooks)
	assert.Equal(t, float64(0), envelope.Data.Ratings.AverageOverall)
	assert.Empty(t, envelope.Data.TopAuthors)
	assert.Empty(t, envelope.Data.RecentBooks)
}

func TestGetReadingStats(t *testing.T) {
	ts := setupTestServer(t)

	// Read dates near now so the year/month windows include them.
	thisMonth := time.Now().Format("2006-01") + "-01"
	ts.addBook(t, "Book One", "Author A", thisMonth, 5)
	ts.addBook(t, "Book Two", "Author A", thisMonth, 3)

	resp := ts.api.Get("/api/v1/stats")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[domain.ReadingStats]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, 2, envelope.Data.Summary.TotalBooks)
	assert.Equal(t, 2, envelope.Data.Summary.BooksThisYear)
	assert.Equal(t, 2, envelope.Data.Summary.BooksThisMonth)
	assert.InDelta(t, 4.0, envelope.Data.Ratings.AverageOverall, 0.001)

	require.Len(t, envelope.Data.TopAuthors, 1)
	assert.Equal(t, "Author A", envelope.Data.TopAuthors[0].Author)
	assert.Equal(t, 2, envelope.Data.TopAuthors[0].BookCount)

	require.Len(t, envelope.Data.RecentBooks, 2)
}
