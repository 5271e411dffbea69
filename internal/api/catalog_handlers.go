package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chapterlog/chapterlog-server/internal/domain"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search catalog",
		Description: "Searches the external book catalog by title, author, or ISBN",
		Tags:        []string{"Catalog"},
	}, s.handleSearchCatalog)
}

// === DTOs ===

// SearchCatalogInput contains parameters for a catalog search.
type SearchCatalogInput struct {
	Query string `query:"q" doc:"Free-text search query"`
}

// SearchCatalogResponse contains normalized catalog search results.
type SearchCatalogResponse struct {
	Results []domain.CandidateBook `json:"results" doc:"Candidate books, possibly empty"`
}

// SearchCatalogOutput wraps the search response for Huma.
type SearchCatalogOutput struct {
	Body SearchCatalogResponse
}

// === Handlers ===

func (s *Server) handleSearchCatalog(ctx context.Context, input *SearchCatalogInput) (*SearchCatalogOutput, error) {
	results, err := s.services.Library.SearchCatalog(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	if results == nil {
		results = []domain.CandidateBook{}
	}

	return &SearchCatalogOutput{Body: SearchCatalogResponse{Results: results}}, nil
}
