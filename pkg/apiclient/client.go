// Package apiclient talks to the store REST API: bearer auth, a single-level
// base URL fallback for APIs mounted with or without /api, and the 401 logout policy.
package apiclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/benedict-erwin/store-console/pkg/logger"
	"github.com/benedict-erwin/store-console/pkg/token"
)

const defaultUserAgent = "store-console/0.1"

// Config wires the resolved base URL, token store and navigation for a Client
type Config struct {
	BaseURL    string
	Store      token.Store
	Navigator  Navigator
	HTTPClient *http.Client
	Hooks      Hooks
	UserAgent  string
}

// Attempt outcomes
const (
	OutcomeOK           = "ok"
	OutcomeRoutingMiss  = "routing_miss"
	OutcomeFailure      = "failure"
	OutcomeUnauthorized = "unauthorized"
)

// Attempt describes one try against one base URL candidate
type Attempt struct {
	Method   string
	Endpoint string
	BaseURL  string
	Status   int
	Outcome  string
	Latency  time.Duration
	Err      error
}

// Hooks observe requests without changing them
type Hooks struct {
	OnAttempt func(ctx context.Context, a Attempt)
}

// Client is safe for concurrent use. Its base URL never changes after New.
type Client struct {
	baseURL    string
	store      token.Store
	navigator  Navigator
	httpClient *http.Client
	hooks      Hooks
	userAgent  string
}

// New validates cfg and returns a Client
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("apiclient: base URL required")
	}
	store := cfg.Store
	if store == nil {
		store = token.NewMemoryStore("")
	}
	nav := cfg.Navigator
	if nav == nil {
		nav = NopNavigator{}
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		store:      store,
		navigator:  nav,
		httpClient: httpClient,
		hooks:      cfg.Hooks,
		userAgent:  ua,
	}, nil
}

// BaseURL returns the resolved base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Store returns the token store the client reads on every request
func (c *Client) Store() token.Store {
	return c.store
}

// With returns a copy bound to another store and navigator, sharing everything else.
// A nil argument keeps the current one.
func (c *Client) With(store token.Store, nav Navigator) *Client {
	clone := *c
	if store != nil {
		clone.store = store
	}
	if nav != nil {
		clone.navigator = nav
	}
	return &clone
}

// HandleAuthError clears the token and sends the user to the login page
// unless they are already on a sign-in page.
func (c *Client) HandleAuthError(ctx context.Context) {
	log := logger.WithScope("handleAuthError")
	if err := c.store.Remove(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to clear token")
	}
	if current := c.navigator.Location(); !isSignInPath(current) {
		log.Info().Str("from", current).Str("to", LoginPath).Msg("Session rejected, redirecting to login")
		c.navigator.Navigate(LoginPath)
	}
}

func (c *Client) observe(ctx context.Context, a Attempt) {
	if c.hooks.OnAttempt != nil {
		c.hooks.OnAttempt(ctx, a)
	}
}
