package domain

// ReadingStats is the full derived view over the catalog and record tables.
// It is read-only and must be computable from an empty store (zero counts,
// zero averages, empty lists).
type ReadingStats struct {
	Summary        StatsSummary   `json:"summary"`
	Ratings        RatingStats    `json:"ratings"`
	TopAuthors     []AuthorCount  `json:"top_authors"`
	MonthlyReading []MonthlyCount `json:"monthly_reading"`
	RecentBooks    []RecentBook   `json:"recent_books"`
}

// StatsSummary holds headline counts.
type StatsSummary struct {
	TotalBooks     int `json:"total_books"`
	BooksThisYear  int `json:"books_this_year"`
	BooksThisMonth int `json:"books_this_month"`
	TotalPages     int `json:"total_pages"`
}

// RatingStats holds per-dimension averages and the overall-rating histogram.
// Averages are rounded to two decimal places; an empty dimension reports 0.
type RatingStats struct {
	AverageOverall float64       `json:"average_overall"`
	AverageWriting float64       `json:"average_writing"`
	AverageStory   float64       `json:"average_story"`
	Distribution   []RatingCount `json:"distribution"`
}

// RatingCount is one bucket of the overall-rating distribution.
// Only ratings present in the data appear.
type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// AuthorCount is a most-read author with its record count.
type AuthorCount struct {
	Author    string `json:"author"`
	BookCount int    `json:"book_count"`
}

// MonthlyCount is the number of records read in one calendar month.
type MonthlyCount struct {
	Year      int `json:"year"`
	Month     int `json:"month"`
	BookCount int `json:"book_count"`
}

// RecentBook is a recently read record, trimmed for display.
type RecentBook struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Rating   int    `json:"rating"`
	ReadDate string `json:"read_date"`
}
