// Package catalog serves the public book directory. It is not tier gated and
// stands in for the external book data API.
package catalog

import (
	"strings"

	"arnio/internal/domain"
)

// Book is a public catalog entry.
type Book struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	ISBN          string   `json:"isbn"`
	Genre         string   `json:"genre"`
	PublishedYear int      `json:"publishedYear"`
	Pages         int      `json:"pages"`
	Rating        float64  `json:"rating"`
	Description   string   `json:"description"`
	CoverURL      string   `json:"cover"`
	Tags          []string `json:"tags"`
	Language      string   `json:"language"`
}

// Page describes a paginated listing.
type Page struct {
	Books      []Book `json:"books"`
	Current    int    `json:"currentPage"`
	TotalPages int    `json:"totalPages"`
	TotalBooks int    `json:"totalBooks"`
	HasNext    bool   `json:"hasNext"`
	HasPrev    bool   `json:"hasPrev"`
}

var books = []Book{
	{
		ID: 1, Title: "The Psychology of Learning", Author: "Dr. Sarah Johnson",
		ISBN: "978-0123456789", Genre: "Education", PublishedYear: 2023, Pages: 320, Rating: 4.8,
		Description: "A comprehensive guide to understanding how we learn and retain information.",
		CoverURL:    "https://images.pexels.com/photos/159711/books-bookstore-book-reading-159711.jpeg",
		Tags:        []string{"psychology", "learning", "education"}, Language: "English",
	},
	{
		ID: 2, Title: "Digital Minimalism", Author: "Cal Newport",
		ISBN: "978-0987654321", Genre: "Self-Help", PublishedYear: 2019, Pages: 280, Rating: 4.6,
		Description: "A philosophy for living better with less technology.",
		CoverURL:    "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg",
		Tags:        []string{"technology", "minimalism", "productivity"}, Language: "English",
	},
	{
		ID: 3, Title: "The Art of Memory", Author: "Frances Yates",
		ISBN: "978-0456789123", Genre: "History", PublishedYear: 1966, Pages: 400, Rating: 4.7,
		Description: "An exploration of memory techniques throughout history.",
		CoverURL:    "https://images.pexels.com/photos/1370295/pexels-photo-1370295.jpeg",
		Tags:        []string{"memory", "history", "techniques"}, Language: "English",
	},
}

var genres = []string{
	"Education", "Self-Help", "History", "Psychology", "Science",
	"Technology", "Fiction", "Biography", "Philosophy", "Business",
}

// List returns one page of the catalog, optionally filtered by genre.
func List(page, limit int, genre string) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	filtered := books
	if genre != "" {
		filtered = nil
		for _, b := range books {
			if strings.EqualFold(b.Genre, genre) {
				filtered = append(filtered, b)
			}
		}
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Books:      append([]Book(nil), filtered[start:end]...),
		Current:    page,
		TotalPages: totalPages,
		TotalBooks: total,
		HasNext:    end < total,
		HasPrev:    page > 1,
	}
}

// ByID resolves a single catalog entry.
func ByID(id int) (Book, error) {
	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, domain.ErrNotFound
}

// Filters narrows a search beyond the text query.
type Filters struct {
	Genre     string
	MinRating float64
}

// Search matches the query against title, author and tags.
func Search(query string, filters Filters) []Book {
	q := strings.ToLower(query)
	var out []Book
	for _, b := range books {
		if q != "" && !matches(b, q) {
			continue
		}
		if filters.Genre != "" && !strings.EqualFold(b.Genre, filters.Genre) {
			continue
		}
		if b.Rating < filters.MinRating {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matches(b Book, q string) bool {
	if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Author), q) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Genres lists the supported genre names.
func Genres() []string {
	return append([]string(nil), genres...)
}
