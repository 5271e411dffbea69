package domain

import "time"

// ReadDateLayout is the calendar-date format used for read dates.
// Read dates are dates, not instants, so they are kept as day precision
// throughout (storage, API, and stats grouping).
const ReadDateLayout = "2006-01-02"

// Rating bounds for all rating dimensions.
const (
	MinRating = 1
	MaxRating = 5
)

// ReadingRecord is one act of reading a specific book, with the reader's
// ratings and notes. Several records may reference the same book (rereads).
type ReadingRecord struct {
	ID            string    `json:"id"`
	BookID        string    `json:"book_id"`
	OverallRating int       `json:"overall_rating"`
	WritingRating *int      `json:"writing_rating,omitempty"`
	StoryRating   *int      `json:"story_rating,omitempty"`
	ReadDate      string    `json:"read_date"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HistoryEntry is a reading record joined with its book's catalog fields,
// as returned by the history listing.
type HistoryEntry struct {
	RecordID        string    `json:"user_book_id"`
	BookID          string    `json:"book_id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn,omitempty"`
	CoverURL        string    `json:"cover_url,omitempty"`
	PublicationDate string    `json:"publication_date,omitempty"`
	Pages           *int      `json:"pages,omitempty"`
	Description     string    `json:"description,omitempty"`
	OverallRating   int       `json:"overall_rating"`
	WritingRating   *int      `json:"writing_rating,omitempty"`
	StoryRating     *int      `json:"story_rating,omitempty"`
	ReadDate        string    `json:"read_date"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ValidRating reports whether r is inside the allowed rating range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
