// Package recommend is the gateway for tier-gated book and music
// recommendations. The catalogs are fixed stand-ins for the external AI
// service; ordering is stable so clients and tests see deterministic slices.
package recommend

import (
	"arnio/internal/domain"
	"arnio/internal/metrics"
)

// Book is a recommended title.
type Book struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	CoverURL    string  `json:"cover"`
	AIScore     float64 `json:"aiScore"`
}

// Track is a recommended ambient listening entry.
type Track struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Duration    string `json:"duration"`
	Kind        string `json:"type"`
	Description string `json:"description"`
}

var bookCatalog = []Book{
	{
		ID: 1, Title: "The Psychology of Learning", Author: "Dr. Sarah Johnson",
		Genre: "Education", Rating: 4.8, AIScore: 0.95,
		Description: "A comprehensive guide to understanding how we learn and retain information.",
		CoverURL:    "https://images.pexels.com/photos/159711/books-bookstore-book-reading-159711.jpeg",
	},
	{
		ID: 2, Title: "Digital Minimalism", Author: "Cal Newport",
		Genre: "Self-Help", Rating: 4.6, AIScore: 0.88,
		Description: "A philosophy for living better with less technology.",
		CoverURL:    "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg",
	},
	{
		ID: 3, Title: "The Art of Memory", Author: "Frances Yates",
		Genre: "History", Rating: 4.7, AIScore: 0.92,
		Description: "An exploration of memory techniques throughout history.",
		CoverURL:    "https://images.pexels.com/photos/1370295/pexels-photo-1370295.jpeg",
	},
	{
		ID: 4, Title: "Mindset: The New Psychology of Success", Author: "Carol S. Dweck",
		Genre: "Psychology", Rating: 4.9, AIScore: 0.96,
		Description: "How a simple idea about the brain can help you learn and improve.",
		CoverURL:    "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg",
	},
	{
		ID: 5, Title: "The Feynman Technique", Author: "Richard Feynman",
		Genre: "Science", Rating: 4.8, AIScore: 0.94,
		Description: "Learn anything faster with this simple technique.",
		CoverURL:    "https://images.pexels.com/photos/159711/books-bookstore-book-reading-159711.jpeg",
	},
}

var musicCatalog = []Track{
	{ID: 1, Title: "Forest Rain", Artist: "Nature Sounds", Duration: "60:00", Kind: "ambient", Description: "Gentle rain sounds for deep focus"},
	{ID: 2, Title: "Classical Focus", Artist: "Various Artists", Duration: "45:30", Kind: "classical", Description: "Baroque music for enhanced concentration"},
	{ID: 3, Title: "Binaural Beats - Alpha", Artist: "BrainWave", Duration: "30:00", Kind: "binaural", Description: "Alpha waves for relaxed alertness"},
	{ID: 4, Title: "Cafe Ambience", Artist: "Urban Sounds", Duration: "120:00", Kind: "ambient", Description: "Coffee shop atmosphere for productivity"},
}

// proMusicCount is how many tracks the pro tier receives.
const proMusicCount = 2

// Service serves tier-limited recommendation slices.
type Service struct {
	rec metrics.Recorder
}

// NewService creates a Service.
func NewService(rec metrics.Recorder) *Service {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{rec: rec}
}

// Books returns the first min(quota, catalog size) entries in catalog order.
// A zero quota is ErrFeatureNotAvailable so the caller can tell "not
// entitled" apart from "no results".
func (s *Service) Books(plan domain.Plan) ([]Book, error) {
	quota := domain.RecommendationQuota(plan)
	if quota == 0 {
		return nil, domain.ErrFeatureNotAvailable
	}
	n := len(bookCatalog)
	if quota.Bounded() && int(quota) < n {
		n = int(quota)
	}
	out := make([]Book, n)
	copy(out, bookCatalog[:n])
	s.rec.RecordRecommendationsServed("books", n)
	return out, nil
}

// Music returns the full catalog for ultraPro and the first two entries for
// pro; other plans are not entitled.
func (s *Service) Music(plan domain.Plan) ([]Track, error) {
	if !domain.MusicEnabled(plan) {
		return nil, domain.ErrFeatureNotAvailable
	}
	n := len(musicCatalog)
	if plan.ID != domain.PlanUltraPro && proMusicCount < n {
		n = proMusicCount
	}
	out := make([]Track, n)
	copy(out, musicCatalog[:n])
	s.rec.RecordRecommendationsServed("music", n)
	return out, nil
}
