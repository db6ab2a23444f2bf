// Package browser drives a live Chrome through go-rod so quiz pages can be
// read, highlighted and answered where they are actually rendered.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/rs/zerolog/log"
)

// Config controls how Chrome is obtained.
type Config struct {
	// RemoteURL is a DevTools websocket to connect to instead of launching
	// a local Chrome.
	RemoteURL string
	// Headful shows the browser window. Local launches are headless
	// otherwise.
	Headful bool
	// NavigateTimeout bounds navigation and load. Default: 30s.
	NavigateTimeout time.Duration
	// Stealth patches the usual headless fingerprints on every page.
	Stealth bool
}

func (c *Config) defaults() {
	if c.NavigateTimeout <= 0 {
		c.NavigateTimeout = 30 * time.Second
	}
}

// wsConn is the DevTools transport of a remote browser. Closing it
// disconnects without touching the browser itself.
type wsConn interface {
	cdp.WebSocketable
	Close() error
}

func dialWS(ctx context.Context, wsURL string) (wsConn, error) {
	ws := &cdp.WebSocket{}
	if err := ws.Connect(ctx, wsURL, nil); err != nil {
		return nil, err
	}
	return ws, nil
}

// Manager holds one browser for the lifetime of a command or server. A
// Chrome it launched is shut down by Close; a remote one is only
// disconnected from, so its windows and tabs survive.
type Manager struct {
	cfg  Config
	dial func(ctx context.Context, wsURL string) (wsConn, error)

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	conn    wsConn
	owned   bool
	closed  bool
}

// NewManager returns a manager; Chrome is started lazily by Open.
func NewManager(cfg Config) *Manager {
	cfg.defaults()
	return &Manager{cfg: cfg, dial: dialWS}
}

// Owned reports whether Chrome was launched by this manager.
func (m *Manager) Owned() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owned
}

// Interactive reports whether a visible window launched by this manager is
// open, so the user can look at the result before it is closed.
func (m *Manager) Interactive() bool {
	return m.cfg.Headful && m.Owned()
}

// ErrClosed is returned by Open after Close.
var ErrClosed = errors.New("browser: manager closed")

func (m *Manager) ensure() (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	if m.browser != nil {
		return m.browser, nil
	}
	b, err := m.launch()
	if err != nil {
		return nil, err
	}
	m.browser = b
	return b, nil
}

func (m *Manager) launch() (*rod.Browser, error) {
	if wsURL := m.cfg.RemoteURL; wsURL != "" {
		log.Info().Str("url", wsURL).Msg("browser: connecting to remote")
		conn, err := m.dial(context.Background(), wsURL)
		if err != nil {
			return nil, fmt.Errorf("browser: connect: %w", err)
		}
		b := rod.New().Client(cdp.New().Start(conn))
		if err := b.Connect(); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("browser: connect: %w", err)
		}
		m.conn = conn
		return b, nil
	}

	l := launcher.New().Headless(!m.cfg.Headful)
	l = l.Set("disable-blink-features", "AutomationControlled")
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}
	log.Info().Str("url", u).Bool("headful", m.cfg.Headful).Msg("browser: launched local chrome")

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	m.lnch = l
	m.owned = true
	return b, nil
}

// Open creates a tab, navigates it to pageURL and waits for load. A load
// timeout is logged and tolerated: quiz pages often keep long-polling.
func (m *Manager) Open(ctx context.Context, pageURL string) (*Page, error) {
	b, err := m.ensure()
	if err != nil {
		return nil, err
	}

	var p *rod.Page
	if m.cfg.Stealth {
		p, err = stealth.Page(b)
	} else {
		p, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, m.cfg.NavigateTimeout)
	defer cancel()
	if err := p.Context(navCtx).Navigate(pageURL); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := p.Context(navCtx).WaitLoad(); err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("browser: wait load")
	}
	return &Page{page: p, url: pageURL}, nil
}

// Close shuts down a Chrome this manager launched, or disconnects from a
// remote one and leaves it running with its tabs. It is safe to call more
// than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	var err error
	switch {
	case m.owned && m.browser != nil:
		err = m.browser.Close()
	case m.conn != nil:
		err = m.conn.Close()
	}
	m.browser = nil
	m.conn = nil
	m.owned = false
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
	return err
}
