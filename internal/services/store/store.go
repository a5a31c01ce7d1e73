// Package store wraps every store API endpoint the console uses in a typed call.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/benedict-erwin/store-console/pkg/apiclient"
	"github.com/benedict-erwin/store-console/pkg/envelope"
)

// Record is an API object the console shows without a dedicated type
type Record = map[string]any

// ErrUnknownScope is returned for a list scope the endpoint does not have
var ErrUnknownScope = errors.New("unknown scope")

// File is a downloaded export
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Service issues store API calls through one apiclient.Client
type Service struct {
	client *apiclient.Client
	poBase string
}

// New returns a Service. poBase is the purchase order service base URL.
func New(client *apiclient.Client, poBase string) *Service {
	return &Service{client: client, poBase: poBase}
}

// Client returns the underlying API client
func (s *Service) Client() *apiclient.Client {
	return s.client
}

// WithClient returns a Service bound to another client, e.g. one carrying a request's token
func (s *Service) WithClient(client *apiclient.Client) *Service {
	return &Service{client: client, poBase: s.poBase}
}

func (s *Service) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	body, _, err := s.client.Download(ctx, endpoint, apiclient.Options{Query: query})
	return body, err
}

func (s *Service) send(ctx context.Context, method, endpoint string, payload any) (Record, error) {
	body, _, err := s.client.Download(ctx, endpoint, apiclient.Options{Method: method, Body: payload})
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Record{}, nil
	}
	var out Record
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return out, nil
}

func (s *Service) records(ctx context.Context, endpoint string, query url.Values) ([]Record, error) {
	body, err := s.get(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	return envelope.Rows[Record](body)
}

func (s *Service) object(ctx context.Context, endpoint string) (Record, error) {
	body, err := s.get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return envelope.Object[Record](body)
}

func (s *Service) download(ctx context.Context, endpoint, base, name string) (*File, error) {
	body, contentType, err := s.client.Download(ctx, endpoint, apiclient.Options{BaseURL: base})
	if err != nil {
		return nil, err
	}
	return &File{Name: name, ContentType: contentType, Content: body}, nil
}
