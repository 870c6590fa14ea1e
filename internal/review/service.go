package review

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	"storefront/internal/domain"
)

// Summary aggregates a product's approved reviews for display.
type Summary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Service serves product reviews from a JSON data file parsed once at
// construction. Only approved reviews are ever returned.
type Service struct {
	bySlug map[string][]domain.Review
	logger *log.Logger
}

func NewService(dir string, logger *log.Logger) (*Service, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	data, err := os.ReadFile(filepath.Join(dir, "reviews.json"))
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	var reviews []domain.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("parse reviews.json: %w", err)
	}

	s := &Service{bySlug: make(map[string][]domain.Review), logger: logger}
	approved := 0
	for _, r := range reviews {
		if !r.IsApproved {
			continue
		}
		s.bySlug[r.ProductSlug] = append(s.bySlug[r.ProductSlug], r)
		approved++
	}
	logger.Printf("reviews: loaded %d approved reviews for %d products", approved, len(s.bySlug))
	return s, nil
}

// ForProduct returns the approved reviews for slug, empty when there are
// none.
func (s *Service) ForProduct(_ context.Context, slug string) ([]domain.Review, error) {
	reviews := s.bySlug[slug]
	out := make([]domain.Review, len(reviews))
	copy(out, reviews)
	return out, nil
}

// Summarize computes the review count and the average rating rounded to one
// decimal.
func Summarize(reviews []domain.Review) Summary {
	if len(reviews) == 0 {
		return Summary{}
	}
	var total int
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return Summary{
		Count:   len(reviews),
		Average: math.Round(avg*10) / 10,
	}
}
