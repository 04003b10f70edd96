package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/naka-gawa/github-harvest/internal/browser"
	"github.com/naka-gawa/github-harvest/internal/store"
)

// ErrInvalidCount is returned when a negative number of screenshots is requested.
var ErrInvalidCount = errors.New("screenshot count must not be negative")

// FacesOptions are the inputs of the screenshot flow.
type FacesOptions struct {
	URL      string
	Selector string
	Dir      string
	Count    int
}

// Photographer screenshots one element of a page, reloading between shots.
type Photographer struct {
	driver Driver
	opts   FacesOptions
	logger *zap.Logger
}

// NewPhotographer creates a new Photographer instance.
func NewPhotographer(driver Driver, opts FacesOptions, logger *zap.Logger) *Photographer {
	return &Photographer{
		driver: driver,
		opts:   opts,
		logger: logger,
	}
}

// Run writes opts.Count screenshots named 0.png, 1.png, ... and returns their paths.
func (p *Photographer) Run(ctx context.Context) ([]string, error) {
	if p.opts.Count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, p.opts.Count)
	}
	if err := p.driver.Navigate(ctx, p.opts.URL); err != nil {
		return nil, err
	}
	if err := p.driver.Maximize(ctx); err != nil {
		return nil, err
	}

	target := browser.CSS(p.opts.Selector)
	paths := make([]string, 0, p.opts.Count)
	for i := 0; i < p.opts.Count; i++ {
		png, err := p.driver.Screenshot(ctx, target)
		if err != nil {
			return paths, fmt.Errorf("shot %d: %w", i, err)
		}
		path, err := store.WriteScreenshot(p.opts.Dir, i, png)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
		p.logger.Debug("screenshot written", zap.String("path", path))

		if err := p.driver.Reload(ctx); err != nil {
			return paths, err
		}
	}
	return paths, nil
}
