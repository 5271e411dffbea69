// Package domain contains the core business entities for the Chapterlog reading log.
package domain

import "time"

// Book is a canonical catalog entry for a work, independent of any reading of it.
// Books are created lazily the first time a record references them and are
// never updated or deleted afterwards.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn,omitempty"`
	CoverURL        string    `json:"cover_url,omitempty"`
	AmazonID        string    `json:"amazon_id,omitempty"`
	PublicationDate string    `json:"publication_date,omitempty"`
	Pages           *int      `json:"pages,omitempty"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CandidateBook is a normalized external catalog search result.
// It carries the Book metadata fields without identity or timestamps;
// the external catalog ID is kept separately so callers can correlate
// results without treating it as a library identifier.
type CandidateBook struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn,omitempty"`
	CoverURL        string `json:"cover_url,omitempty"`
	Description     string `json:"description,omitempty"`
	PublicationDate string `json:"publication_date,omitempty"`
	Pages           *int   `json:"pages,omitempty"`
	GoogleBooksID   string `json:"google_books_id,omitempty"`
}
