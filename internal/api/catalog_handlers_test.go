package api

import (
	"encoding/json/v2"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapterlog/chapterlog-server/internal/domain"
)

func TestSearchCatalog(t *testing.T) {
	ts := setupTestServer(t)
	ts.catalog.results = []domain.CandidateBook{
		{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"},
		{Title: "Dune Messiah", Author: "Frank Herbert", ISBN: "9780593098233"},
	}

	resp := ts.api.Get("/api/v1/catalog/search?q=dune")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SearchCatalogResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.Results, 2)
	assert.Equal(t, "Dune", envelope.Data.Results[0].Title)
}

func TestSearchCatalog_NoMatches(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/search?q=zzzzz")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[SearchCatalogResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Empty(t, envelope.Data.Results)
}

func TestSearchCatalog_MissingQuery(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/search")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "VALIDATION", envelope.Error.Code)
	assert.Equal(t, "Search query is required", envelope.Error.Message)
}

func TestSearchCatalog_UpstreamDown(t *testing.T) {
	ts := setupTestServer(t)
	ts.catalog.err = errors.New("connection refused")

	resp := ts.api.Get("/api/v1/catalog/search?q=dune")
	assert.Equal(t, http.StatusBadGateway, resp.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "UNAVAILABLE", envelope.Error.Code)
	assert.Equal(t, "Failed to search books", envelope.Error.Message)
}
