// Package browser drives a Chrome instance through the DevTools protocol.
package browser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// ErrElementTimeout is returned when an element does not become ready within the wait window.
var ErrElementTimeout = errors.New("timed out waiting for element")

// Config holds the settings needed to open a session.
type Config struct {
	Bin         string
	DebuggerURL string
	Headless    bool
	// Wait bounds every element lookup.
	Wait time.Duration
}

// Session owns one browser and one page. It is not safe for concurrent use;
// each flow opens its own.
type Session struct {
	cfg     Config
	browser *rod.Browser
	page    *rod.Page
	logger  *zap.Logger
}

// Open connects to cfg.DebuggerURL or launches a new Chrome, then opens a blank page.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Session, error) {
	if cfg.Wait <= 0 {
		cfg.Wait = 10 * time.Second
	}

	controlURL := cfg.DebuggerURL
	if controlURL == "" {
		l := launcher.New().Headless(cfg.Headless)
		if cfg.Bin != "" {
			l = l.Bin(cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}
	logger.Debug("connecting to browser", zap.String("control_url", controlURL))

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &Session{cfg: cfg, browser: b, page: page, logger: logger}, nil
}

// Close shuts the browser down.
func (s *Session) Close() error {
	return s.browser.Close()
}

// Navigate loads url and waits for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("navigate", zap.String("url", url))
	p := s.page.Context(ctx).Timeout(s.cfg.Wait)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, timeoutErr(err))
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait for %s to load: %w", url, timeoutErr(err))
	}
	return nil
}

// Reload reloads the current page and waits for the load event.
func (s *Session) Reload(ctx context.Context) error {
	p := s.page.Context(ctx).Timeout(s.cfg.Wait)
	if err := p.Reload(); err != nil {
		return fmt.Errorf("reload: %w", timeoutErr(err))
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait for reload: %w", timeoutErr(err))
	}
	return nil
}

// Maximize maximizes the browser window that holds the page.
func (s *Session) Maximize(ctx context.Context) error {
	err := s.page.Context(ctx).SetWindow(&proto.BrowserBounds{
		WindowState: proto.BrowserWindowStateMaximized,
	})
	if err != nil {
		return fmt.Errorf("maximize window: %w", err)
	}
	return nil
}

// Click waits for the element located by loc to be visible and clicks it.
func (s *Session) Click(ctx context.Context, loc Locator) error {
	el, err := s.visible(ctx, loc)
	if err != nil {
		return err
	}
	s.logger.Debug("click", zap.Stringer("locator", loc))
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	return nil
}

// Input waits for the element located by loc and types text into it.
func (s *Session) Input(ctx context.Context, loc Locator, text string) error {
	el, err := s.visible(ctx, loc)
	if err != nil {
		return err
	}
	s.logger.Debug("input", zap.Stringer("locator", loc))
	if err := el.Input(text); err != nil {
		return fmt.Errorf("input into %s: %w", loc, err)
	}
	return nil
}

// Submit presses Enter on the element located by loc.
func (s *Session) Submit(ctx context.Context, loc Locator) error {
	el, err := s.visible(ctx, loc)
	if err != nil {
		return err
	}
	s.logger.Debug("submit", zap.Stringer("locator", loc))
	if err := el.Type(input.Enter); err != nil {
		return fmt.Errorf("submit %s: %w", loc, err)
	}
	return nil
}

// Texts returns the visible text of every element matching the CSS selector, in document order.
// It waits for the page to finish loading but not for any element to appear; an empty page yields no texts.
func (s *Session) Texts(ctx context.Context, selector string) ([]string, error) {
	p := s.page.Context(ctx).Timeout(s.cfg.Wait)
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for results: %w", timeoutErr(err))
	}
	els, err := p.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	texts := make([]string, 0, len(els))
	for _, el := range els {
		t, err := el.Text()
		if err != nil {
			return nil, fmt.Errorf("read text of %s: %w", selector, err)
		}
		texts = append(texts, t)
	}
	return texts, nil
}

// Screenshot captures the element located by loc as PNG.
func (s *Session) Screenshot(ctx context.Context, loc Locator) ([]byte, error) {
	el, err := s.visible(ctx, loc)
	if err != nil {
		return nil, err
	}
	png, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("screenshot %s: %w", loc, err)
	}
	return png, nil
}

// HTML returns the current page source.
func (s *Session) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("read page source: %w", err)
	}
	return html, nil
}

// visible polls until the located element exists and is visible, bounded by the wait window.
func (s *Session) visible(ctx context.Context, loc Locator) (*rod.Element, error) {
	p := s.page.Context(ctx).Timeout(s.cfg.Wait)
	var (
		el  *rod.Element
		err error
	)
	switch loc.Kind {
	case ByID:
		el, err = p.Element("#" + loc.Value)
	case ByName:
		el, err = p.Element(fmt.Sprintf("[name=%q]", loc.Value))
	case ByLinkText:
		el, err = p.ElementR("a", "^\\s*"+regexp.QuoteMeta(loc.Value)+"\\s*$")
	case ByXPath:
		el, err = p.ElementX(loc.Value)
	default:
		el, err = p.Element(loc.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", loc, timeoutErr(err))
	}
	if err := el.WaitVisible(); err != nil {
		return nil, fmt.Errorf("wait for %s: %w", loc, timeoutErr(err))
	}
	// Rebind to the caller's context so the action itself is not cut short by the lookup deadline.
	return el.Context(ctx), nil
}

func timeoutErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrElementTimeout, err)
	}
	return err
}
