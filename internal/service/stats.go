package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/chapterlog/chapterlog-server/internal/domain"
	domainerrors "github.com/chapterlog/chapterlog-server/internal/errors"
	"github.com/chapterlog/chapterlog-server/internal/store/sqlite"
)

const (
	topAuthorLimit   = 5
	recentBookLimit  = 5
	monthlyWindowYrs = 1
)

// StatsService aggregates reading statistics from the store.
type StatsService struct {
	store  *sqlite.Store
	logger *slog.Logger

	// now is swappable in tests so the year/month windows are stable.
	now func() time.Time
}

// NewStatsService creates a new stats service.
func NewStatsService(store *sqlite.Store, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// GetReadingStats computes the full statistics view. The year and month
// windows are evaluated against the current date and the monthly series
// covers the trailing twelve months.
func (s *StatsService) GetReadingStats(ctx context.Context) (*domain.ReadingStats, error) {
	now := s.now()
	since := now.AddDate(-monthlyWindowYrs, 0, 0).Format(domain.ReadDateLayout)

	stats := &domain.ReadingStats{}

	var err error
	if stats.Summary.TotalBooks, err = s.store.CountRecords(ctx); err != nil {
		return nil, s.statsError(err)
	}
	if stats.Summary.BooksThisYear, err = s.store.CountRecordsInYear(ctx, now.Year()); err != nil {
		return nil, s.statsError(err)
	}
	if stats.Summary.BooksThisMonth, err = s.store.CountRecordsInMonth(ctx, now.Year(), int(now.Month())); err != nil {
		return nil, s.statsError(err)
	}
	if stats.Summary.TotalPages, err = s.store.TotalPages(ctx); err != nil {
		return nil, s.statsError(err)
	}

	overall, writing, story, err := s.store.AverageRatings(ctx)
	if err != nil {
		return nil, s.statsError(err)
	}
	stats.Ratings.AverageOverall = overall
	stats.Ratings.AverageWriting = writing
	stats.Ratings.AverageStory = story

	if stats.Ratings.Distribution, err = s.store.RatingDistribution(ctx); err != nil {
		return nil, s.statsError(err)
	}
	if stats.TopAuthors, err = s.store.TopAuthors(ctx, topAuthorLimit); err != nil {
		return nil, s.statsError(err)
	}
	if stats.MonthlyReading, err = s.store.MonthlyCounts(ctx, since); err != nil {
		return nil, s.statsError(err)
	}
	if stats.RecentBooks, err = s.store.RecentRecords(ctx, recentBookLimit); err != nil {
		return nil, s.statsError(err)
	}

	return stats, nil
}

func (s *StatsService) statsError(err error) error {
	s.logger.Error("stats query failed", "error", err)
	return domainerrors.Wrap(err, domainerrors.CodeStorage, "Failed to fetch statistics")
}
