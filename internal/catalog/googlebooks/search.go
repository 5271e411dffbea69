package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/chapterlog/chapterlog-server/internal/domain"
)

// maxResults caps how many candidates a single search returns.
const maxResults = 20

// Fallbacks for volumes missing basic metadata.
const (
	unknownTitle  = "Unknown Title"
	unknownAuthor = "Unknown Author"
)

// Search queries Google Books for volumes matching the free-text query and
// returns up to 20 normalized candidates. An empty result set is a valid
// outcome, not an error. The query must already be trimmed and non-empty;
// blank-query rejection happens at the service boundary before any call here.
func (c *Client) Search(ctx context.Context, query string) ([]domain.CandidateBook, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	searchURL := c.baseURL + "?" + params.Encode()

	c.logger.Debug("searching Google Books",
		"query", query,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Chapterlog/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var volumes volumesResponse
	if err := json.UnmarshalRead(resp.Body, &volumes); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("Google Books search results",
		"query", query,
		"count", len(volumes.Items),
	)

	results := make([]domain.CandidateBook, 0, len(volumes.Items))
	for i := range volumes.Items {
		results = append(results, normalizeVolume(&volumes.Items[i]))
	}

	return results, nil
}

// normalizeVolume maps a raw volume into the candidate book shape.
func normalizeVolume(v *volume) domain.CandidateBook {
	info := &v.VolumeInfo

	title := strings.TrimSpace(info.Title)
	if title == "" {
		title = unknownTitle
	}

	author := unknownAuthor
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}

	candidate := domain.CandidateBook{
		Title:           title,
		Author:          author,
		ISBN:            pickISBN(info.IndustryIdentifiers),
		CoverURL:        pickCoverURL(&info.ImageLinks),
		Description:     info.Description,
		PublicationDate: info.PublishedDate,
		GoogleBooksID:   v.ID,
	}

	if info.PageCount > 0 {
		pages := info.PageCount
		candidate.Pages = &pages
	}

	return candidate
}

// pickISBN prefers ISBN-13 over ISBN-10 when both are present.
func pickISBN(identifiers []industryIdentifier) string {
	var isbn10 string
	for _, id := range identifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}

// pickCoverURL returns the largest cover image a volume offers.
func pickCoverURL(links *imageLinks) string {
	for _, u := range []string{
		links.ExtraLarge,
		links.Large,
		links.Medium,
		links.Small,
		links.Thumbnail,
		links.SmallThumbnail,
	} {
		if u != "" {
			return u
		}
	}
	return ""
}
