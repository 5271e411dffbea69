package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chapterlog/chapterlog-server/internal/domain"
)

// Statistics queries. These are all independent read-only queries; callers
// may issue them in any order, including concurrently. Every query reports
// zeros or empty slices over an empty store.

// CountRecords returns the total number of reading records.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reading_records`).Scan(&n)
	return n, err
}

// CountRecordsInYear returns the number of records read in the given calendar year.
func (s *Store) CountRecordsInYear(ctx context.Context, year int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reading_records WHERE strftime('%Y', read_date) = ?`,
		fmt.Sprintf("%04d", year)).Scan(&n)
	return n, err
}

// CountRecordsInMonth returns the number of records read in the given calendar month.
func (s *Store) CountRecordsInMonth(ctx context.Context, year, month int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reading_records
		WHERE strftime('%Y', read_date) = ? AND strftime('%m', read_date) = ?`,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month)).Scan(&n)
	return n, err
}

// AverageRatings returns the per-dimension rating averages rounded to two
// decimal places. Dimensions with no qualifying records report 0.
func (s *Store) AverageRatings(ctx context.Context) (overall, writing, story float64, err error) {
	var avgOverall, avgWriting, avgStory sql.NullFloat64
	err = s.db.QueryRowContext(ctx, `
		SELECT
			ROUND(AVG(overall_rating), 2),
			ROUND(AVG(writing_rating), 2),
			ROUND(AVG(story_rating), 2)
		FROM reading_records`).Scan(&avgOverall, &avgWriting, &avgStory)
	if err != nil {
		return 0, 0, 0, err
	}
	return avgOverall.Float64, avgWriting.Float64, avgStory.Float64, nil
}

// TotalPages sums the page counts of the books behind every reading record,
// counting a book once per record. Books without a page count are skipped.
func (s *Store) TotalPages(ctx context.Context) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(b.pages)
		FROM reading_records r
		JOIN books b ON r.book_id = b.id
		WHERE b.pages IS NOT NULL`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

// TopAuthors returns the most-read authors by record count, descending.
// Ties are broken arbitrarily.
func (s *Store) TopAuthors(ctx context.Context, limit int) ([]domain.AuthorCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.author, COUNT(*) AS book_count
		FROM reading_records r
		JOIN books b ON r.book_id = b.id
		GROUP BY b.author
		ORDER BY book_count DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := make([]domain.AuthorCount, 0, limit)
	for rows.Next() {
		var a domain.AuthorCount
		if err := rows.Scan(&a.Author, &a.BookCount); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// RatingDistribution returns the overall-rating histogram, ascending by
// rating. Only ratings present in the data appear.
func (s *Store) RatingDistribution(ctx context.Context) ([]domain.RatingCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT overall_rating, COUNT(*)
		FROM reading_records
		GROUP BY overall_rating
		ORDER BY overall_rating`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dist := make([]domain.RatingCount, 0, domain.MaxRating)
	for rows.Next() {
		var rc domain.RatingCount
		if err := rows.Scan(&rc.Rating, &rc.Count); err != nil {
			return nil, err
		}
		dist = append(dist, rc)
	}
	return dist, rows.Err()
}

// MonthlyCounts returns per-month record counts for read dates on or after
// since (a date in domain.ReadDateLayout), descending by year then month.
func (s *Store) MonthlyCounts(ctx context.Context, since string) ([]domain.MonthlyCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			CAST(strftime('%Y', read_date) AS INTEGER) AS year,
			CAST(strftime('%m', read_date) AS INTEGER) AS month,
			COUNT(*) AS book_count
		FROM reading_records
		WHERE read_date >= ?
		GROUP BY year, month
		ORDER BY year DESC, month DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	months := make([]domain.MonthlyCount, 0, 12)
	for rows.Next() {
		var m domain.MonthlyCount
		if err := rows.Scan(&m.Year, &m.Month, &m.BookCount); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

// RecentRecords returns the most recently read records, trimmed for display.
func (s *Store) RecentRecords(ctx context.Context, limit int) ([]domain.RecentBook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.title, b.author, r.overall_rating, r.read_date
		FROM reading_records r
		JOIN books b ON r.book_id = b.id
		ORDER BY r.read_date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recent := make([]domain.RecentBook, 0, limit)
	for rows.Next() {
		var rb domain.RecentBook
		if err := rows.Scan(&rb.Title, &rb.Author, &rb.Rating, &rb.ReadDate); err != nil {
			return nil, err
		}
		recent = append(recent, rb)
	}
	return recent, rows.Err()
}
