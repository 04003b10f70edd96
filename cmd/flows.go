package cmd

import (
	"context"
	"fmt"

	"github.com/naka-gawa/github-harvest/internal/browser"
	"github.com/naka-gawa/github-harvest/internal/domain"
	"github.com/naka-gawa/github-harvest/internal/gateway"
	"github.com/naka-gawa/github-harvest/internal/usecase"
)

const (
	sourceBrowser = "browser"
	sourceAPI     = "api"
)

func searchOptions() usecase.SearchOptions {
	s := cfg.Search
	return usecase.SearchOptions{
		URL:        s.URL,
		Username:   s.Username,
		Password:   s.Password,
		Language:   s.Language,
		Stars:      s.Stars,
		Size:       s.Size,
		Path:       s.Path,
		Pages:      s.Pages,
		Output:     s.Output,
		HostPrefix: s.HostPrefix,
		Selectors:  usecase.Selectors{Name: s.NameSelector, Star: s.StarSelector},
		PageChange: cfg.Timeouts.PageSettle.Std(),
	}
}

func facesOptions() usecase.FacesOptions {
	f := cfg.Faces
	return usecase.FacesOptions{URL: f.URL, Selector: f.Selector, Dir: f.Dir, Count: f.Count}
}

func openSession(ctx context.Context) (*browser.Session, error) {
	return browser.Open(ctx, browser.Config{
		Bin:         cfg.Browser.Bin,
		DebuggerURL: cfg.Browser.DebuggerURL,
		Headless:    cfg.Browser.Headless,
		Wait:        cfg.Timeouts.Element.Std(),
	}, logger)
}

// runSearch runs the search flow against the chosen source and returns the collection.
func runSearch(ctx context.Context, source string) (*domain.Collection, error) {
	switch source {
	case sourceAPI:
		if cfg.Verify.Token == "" {
			return nil, fmt.Errorf("the %s source needs GITHUB_TOKEN", sourceAPI)
		}
		fetcher, err := gateway.NewGitHubGateway(cfg.Verify.Token, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		return usecase.NewAPICollector(fetcher, searchOptions(), logger).Run(ctx)
	case sourceBrowser:
		if err := cfg.RequireCredentials(); err != nil {
			return nil, err
		}
		session, err := openSession(ctx)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		return usecase.NewHarvester(session, searchOptions(), logger).Run(ctx)
	default:
		return nil, fmt.Errorf("unknown source %q: use %q or %q", source, sourceBrowser, sourceAPI)
	}
}

// runFaces runs the screenshot flow in its own browser session.
func runFaces(ctx context.Context) ([]string, error) {
	if cfg.Faces.Count < 0 {
		return nil, fmt.Errorf("%w: %d", usecase.ErrInvalidCount, cfg.Faces.Count)
	}
	session, err := openSession(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return usecase.NewPhotographer(session, facesOptions(), logger).Run(ctx)
}
