// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"

	"github.com/naka-gawa/github-harvest/internal/domain"
)

// ElementSource answers text queries against a rendered page.
// Both a live browser session and a saved snapshot satisfy it.
type ElementSource interface {
	Texts(ctx context.Context, selector string) ([]string, error)
}

// Selectors name the two positionally aligned element lists on a results page.
type Selectors struct {
	Name string
	Star string
}

// Extract reads the name and star-label lists from src and merges them into c.
// It returns the names it read so callers can tell when the page has changed.
func Extract(ctx context.Context, src ElementSource, sel Selectors, c *domain.Collection) ([]string, error) {
	names, err := src.Texts(ctx, sel.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository names: %w", err)
	}
	labels, err := src.Texts(ctx, sel.Star)
	if err != nil {
		return nil, fmt.Errorf("failed to read star labels: %w", err)
	}
	if err := c.Merge(names, labels); err != nil {
		return nil, err
	}
	return names, nil
}
