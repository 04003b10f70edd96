package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/naka-gawa/github-harvest/internal/browser"
	"github.com/naka-gawa/github-harvest/internal/domain"
	"github.com/naka-gawa/github-harvest/internal/store"
)

// ErrResultsRemaining is returned when the last visited page still shows results.
// The collection has already been written when it is returned.
var ErrResultsRemaining = errors.New("search results were not exhausted")

const noResultsMarker = "No results found."

// pollInterval is how often a page is re-read while waiting for it to change.
var pollInterval = 250 * time.Millisecond

// Driver is the set of browser interactions the flows replay.
type Driver interface {
	ElementSource
	Navigate(ctx context.Context, url string) error
	Reload(ctx context.Context) error
	Maximize(ctx context.Context) error
	Click(ctx context.Context, loc browser.Locator) error
	Input(ctx context.Context, loc browser.Locator, text string) error
	Submit(ctx context.Context, loc browser.Locator) error
	Screenshot(ctx context.Context, loc browser.Locator) ([]byte, error)
	HTML(ctx context.Context) (string, error)
}

// SearchOptions are the inputs of the advanced-search flow.
type SearchOptions struct {
	URL        string
	Username   string
	Password   string
	Language   string
	Stars      string
	Size       string
	Path       string
	Pages      int
	Output     string
	HostPrefix string
	Selectors  Selectors
	// PageChange bounds how long to wait for new results after clicking "Next".
	PageChange time.Duration
}

// Harvester replays the login, search and pagination sequence and collects repositories.
type Harvester struct {
	driver Driver
	opts   SearchOptions
	logger *zap.Logger
}

// NewHarvester creates a new Harvester instance.
func NewHarvester(driver Driver, opts SearchOptions, logger *zap.Logger) *Harvester {
	return &Harvester{
		driver: driver,
		opts:   opts,
		logger: logger,
	}
}

// Run executes the whole flow. Entries are written to the output file once, after the last page;
// any earlier failure discards them.
func (h *Harvester) Run(ctx context.Context) (*domain.Collection, error) {
	h.logger.Info("Usecase: Starting repository harvest...", zap.String("url", h.opts.URL))

	if err := h.signIn(ctx); err != nil {
		return nil, err
	}
	if err := h.search(ctx); err != nil {
		return nil, err
	}

	collection := domain.NewCollection(h.opts.HostPrefix)
	for i := 0; i < h.opts.Pages; i++ {
		names, err := Extract(ctx, h.driver, h.opts.Selectors, collection)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		h.logger.Debug("page extracted", zap.Int("page", i+1), zap.Int("anchors", len(names)), zap.Int("collected", collection.Len()))

		if err := h.driver.Click(ctx, browser.LinkText("Next")); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		if err := h.awaitNewPage(ctx, names); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	h.logger.Info("Usecase: Pagination complete.", zap.Int("collected", collection.Len()))

	if err := store.AppendLines(h.opts.Output, collection.Lines()); err != nil {
		return nil, err
	}
	h.logger.Info("Usecase: Entries written.", zap.String("output", h.opts.Output))

	html, err := h.driver.HTML(ctx)
	if err != nil {
		return collection, err
	}
	if !strings.Contains(html, noResultsMarker) {
		return collection, ErrResultsRemaining
	}
	return collection, nil
}

func (h *Harvester) signIn(ctx context.Context) error {
	if err := h.driver.Navigate(ctx, h.opts.URL); err != nil {
		return err
	}
	if err := h.driver.Click(ctx, browser.LinkText("Sign in")); err != nil {
		return err
	}
	if err := h.driver.Input(ctx, browser.ID("login_field"), h.opts.Username); err != nil {
		return err
	}
	if err := h.driver.Input(ctx, browser.ID("password"), h.opts.Password); err != nil {
		return err
	}
	if err := h.driver.Click(ctx, browser.Name("commit")); err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}
	return nil
}

func (h *Harvester) search(ctx context.Context) error {
	if err := h.driver.Input(ctx, browser.ID("search_language"), h.opts.Language); err != nil {
		return err
	}
	if err := h.driver.Input(ctx, browser.ID("search_stars"), h.opts.Stars); err != nil {
		return err
	}
	if err := h.driver.Input(ctx, browser.ID("search_size"), h.opts.Size); err != nil {
		return err
	}
	if err := h.driver.Input(ctx, browser.ID("search_path"), h.opts.Path); err != nil {
		return err
	}
	if err := h.driver.Submit(ctx, browser.ID("search_path")); err != nil {
		return err
	}
	if err := h.driver.Click(ctx, browser.XPath("//span[text()='Best match']")); err != nil {
		return err
	}
	if err := h.driver.Click(ctx, browser.XPath("//span[text()='Most stars']")); err != nil {
		return fmt.Errorf("failed to sort by stars: %w", err)
	}
	return nil
}

// awaitNewPage polls the result names until they differ from previous.
func (h *Harvester) awaitNewPage(ctx context.Context, previous []string) error {
	waitCtx, cancel := context.WithTimeout(ctx, h.opts.PageChange)
	defer cancel()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		names, err := h.driver.Texts(waitCtx, h.opts.Selectors.Name)
		if err != nil {
			return fmt.Errorf("failed to read next page: %w", err)
		}
		if !slices.Equal(names, previous) {
			return nil
		}
		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: results did not change after pagination", browser.ErrElementTimeout)
		case <-ticker.C:
		}
	}
}
