package api

import (
	"github.com/chapterlog/chapterlog-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Library *service.LibraryService
	Stats   *service.StatsService
}
