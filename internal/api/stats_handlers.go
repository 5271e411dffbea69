package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chapterlog/chapterlog-server/internal/domain"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getReadingStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "Get reading statistics",
		Description: "Returns aggregate statistics over the reading history",
		Tags:        []string{"Stats"},
	}, s.handleGetReadingStats)
}

// StatsOutput wraps the statistics response for Huma.
type StatsOutput struct {
	Body domain.ReadingStats
}

func (s *Server) handleGetReadingStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	stats, err := s.services.Stats.GetReadingStats(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{Body: *stats}, nil
}
