package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/quizlens/internal/actuate"
	"github.com/hyperifyio/quizlens/internal/browser"
	"github.com/hyperifyio/quizlens/internal/cache"
	"github.com/hyperifyio/quizlens/internal/classify"
	"github.com/hyperifyio/quizlens/internal/fetch"
	"github.com/hyperifyio/quizlens/internal/llm"
	"github.com/hyperifyio/quizlens/internal/locate"
	"github.com/hyperifyio/quizlens/internal/match"
	"github.com/hyperifyio/quizlens/internal/oracle"
	"github.com/hyperifyio/quizlens/internal/report"
)

const defaultUserAgent = "quizlens/1.0 (+https://github.com/hyperifyio/quizlens)"

// App wires configuration into a Solver and the page surfaces.
type App struct {
	cfg      Config
	Solver   *Solver
	Provider llm.Provider

	fetcher *fetch.Client
	browser *browser.Manager
}

// New builds the application. A missing API key is not an error: the
// solver then reports a failed precondition for every solve.
func New(ctx context.Context, cfg Config, notifier report.Notifier) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	rules, err := classify.Load(cfg.Rules)
	if err != nil {
		return nil, err
	}

	var answers *cache.AnswerCache
	var pages *cache.PageCache
	if cfg.CacheDir != "" {
		prepareCache(cfg)
		answers = &cache.AnswerCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
		pages = &cache.PageCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	a := &App{cfg: cfg}
	var orc oracle.Oracle
	if strings.TrimSpace(cfg.APIKey) != "" {
		p, err := llm.New(ctx, cfg.LLMConfig())
		if err != nil {
			return nil, err
		}
		a.Provider = p
		orc = &oracle.Client{Provider: p, Language: cfg.Language, Cache: answers, Timeout: cfg.OracleTimeout}
		log.Debug().Str("provider", p.Name()).Str("model", p.ModelID()).Msg("oracle configured")
	}

	a.Solver = &Solver{
		Oracle:   orc,
		Detector: locate.Detector{Classifier: &rules},
		Scanner:  match.Scanner{Threshold: cfg.ScanThreshold},
		Actuator: actuate.Actuator{Delay: cfg.EffectiveDelay()},
		Notifier: notifier,
		Settings: Settings{
			AutoSelect:      cfg.AutoSelectEnabled(),
			OptionThreshold: cfg.OptionThreshold,
			Language:        cfg.Language,
		},
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	a.fetcher = &fetch.Client{
		HTTPClient:        newHTTPClient(),
		UserAgent:         ua,
		MaxAttempts:       2,
		PerRequestTimeout: 15 * time.Second,
		Cache:             pages,
	}
	a.browser = browser.NewManager(browser.Config{RemoteURL: cfg.BrowserURL, Headful: cfg.Headful, Stealth: true})
	return a, nil
}

// prepareCache applies the invalidation settings. Failures only cost cache
// hits and are logged.
func prepareCache(cfg Config) {
	if cfg.CacheClear {
		if err := cache.ClearDir(cfg.CacheDir); err != nil {
			log.Warn().Err(err).Msg("cache clear failed")
		}
	}
	if cfg.CacheMaxAge > 0 {
		if n, err := cache.PurgeAnswersByAge(cfg.CacheDir, cfg.CacheMaxAge); err == nil && n > 0 {
			log.Debug().Int("removed", n).Msg("purged old answers")
		}
		if n, err := cache.PurgePagesByAge(cfg.CacheDir, cfg.CacheMaxAge); err == nil && n > 0 {
			log.Debug().Int("removed", n).Msg("purged old pages")
		}
	}
	if cfg.CacheMaxBytes > 0 || cfg.CacheMaxCount > 0 {
		_, _ = cache.EnforceAnswerLimits(cfg.CacheDir, cfg.CacheMaxBytes, cfg.CacheMaxCount)
		_, _ = cache.EnforcePageLimits(cfg.CacheDir, cfg.CacheMaxBytes, cfg.CacheMaxCount)
	}
}

// Close releases the browser if one was started.
func (a *App) Close() error {
	if a.browser == nil {
		return nil
	}
	return a.browser.Close()
}

// Hold keeps a visible Chrome window this process launched open until ctx
// is done, so the highlighted answer can be looked at. It returns at once
// for headless, remote and static pages.
func (a *App) Hold(ctx context.Context) {
	if a.browser == nil || !a.browser.Interactive() {
		return
	}
	log.Info().Msg("browser window left open, press Ctrl+C to close it")
	<-ctx.Done()
}

// Check verifies the configured credential against the vendor.
func (a *App) Check(ctx context.Context) error {
	if a.Provider == nil {
		return ErrMissingCredential
	}
	c, ok := a.Provider.(llm.Checker)
	if !ok {
		return fmt.Errorf("%s provider cannot verify credentials", a.Provider.Name())
	}
	return c.Check(ctx)
}

// Source names where a page comes from. Exactly one of File and URL is set;
// Browser opens URL in Chrome instead of fetching it.
type Source struct {
	File    string
	URL     string
	Browser bool
	// Image is an optional screenshot file for static pages.
	Image string
}

// Open loads the page described by src.
func (a *App) Open(ctx context.Context, src Source) (Page, error) {
	switch {
	case src.Browser:
		if src.URL == "" {
			return nil, errors.New("browser mode needs a URL")
		}
		p, err := a.browser.Open(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		return LivePage{Page: p}, nil
	case src.URL != "":
		body, _, err := a.fetcher.Get(ctx, src.URL)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", src.URL, err)
		}
		return a.static(string(body), src.Image)
	case src.File != "":
		var b []byte
		var err error
		if src.File == "-" {
			b, err = io.ReadAll(os.Stdin)
		} else {
			b, err = os.ReadFile(src.File)
		}
		if err != nil {
			return nil, err
		}
		return a.static(string(b), src.Image)
	case src.Image != "":
		return a.static("", src.Image)
	}
	return nil, errors.New("no page given: use a file or a URL")
}

func (a *App) static(html, image string) (*StaticPage, error) {
	p, err := ParseStaticPage(html)
	if err != nil {
		return nil, err
	}
	if image != "" {
		img, err := os.ReadFile(image)
		if err != nil {
			return nil, fmt.Errorf("read screenshot: %w", err)
		}
		p.Image = img
	}
	return p, nil
}
