package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/benedict-erwin/store-console/config"
	"github.com/benedict-erwin/store-console/internal/services/store"
	"github.com/benedict-erwin/store-console/pkg/apiclient"
	"github.com/benedict-erwin/store-console/pkg/baseurl"
	"github.com/benedict-erwin/store-console/pkg/redis"
	"github.com/benedict-erwin/store-console/pkg/token"
)

// session is everything a command needs to talk to the store API
type session struct {
	cfg    *config.Config
	tokens token.Store
	client *apiclient.Client
	svc    *store.Service
}

// openSession wires the token store and API client from configuration
func openSession(hooks apiclient.Hooks) (*session, error) {
	cfg := config.Get()

	tokens, err := token.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	base := baseurl.Resolve(baseurl.Options{
		Override:   cfg.API.URL,
		Default:    config.DefaultAPIURL,
		PageOrigin: cfg.App.Origin,
	})
	client, err := apiclient.New(apiclient.Config{
		BaseURL:    base,
		Store:      tokens,
		Navigator:  apiclient.NewPathNavigator("", promptLogin),
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Hooks:      hooks,
		UserAgent:  cfg.API.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, tokens: tokens, client: client, svc: store.New(client, cfg.API.POURL)}, nil
}

// Close releases the shared Redis client when the redis token driver opened one
func (s *session) Close() error {
	return redis.Close()
}

// promptLogin is the CLI's answer to the login redirect
func promptLogin(string) {
	fmt.Fprintln(os.Stderr, "Session expired or rejected. Run `store-console login <token>` to sign in again.")
}

// withSession opens a session, runs fn with an interrupt-aware context and closes it
func withSession(fn func(ctx context.Context, s *session) error) error {
	s, err := openSession(apiclient.Hooks{})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return fn(ctx, s)
}
