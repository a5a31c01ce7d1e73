package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/benedict-erwin/store-console/internal/entities/dashboard"
	"github.com/benedict-erwin/store-console/internal/entities/gatepass"
	"github.com/benedict-erwin/store-console/pkg/logger"
)

// ErrNoDashboardData is returned when the dashboard endpoint answers without success and data
var ErrNoDashboardData = errors.New("no dashboard data")

// Dashboard fetches the store indent dashboard
func (s *Service) Dashboard(ctx context.Context) (dashboard.Summary, error) {
	body, err := s.get(ctx, "/store-indent/dashboard", nil)
	if err != nil {
		return dashboard.Summary{}, err
	}
	var res struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to decode dashboard: %w", err)
	}
	if !res.Success || res.Data == nil {
		return dashboard.Summary{}, ErrNoDashboardData
	}
	return dashboard.MapToSummary(res.Data), nil
}

// DashboardView loads the summary and gate pass counts concurrently.
// Gate pass failures fall back to zero counts; a summary failure fails the view.
func (s *Service) DashboardView(ctx context.Context) (dashboard.View, error) {
	type countsResult struct {
		counts gatepass.Counts
		err    error
	}
	ch := make(chan countsResult, 1)
	go func() {
		c, err := s.GatePassCounts(ctx)
		ch <- countsResult{c, err}
	}()

	summary, err := s.Dashboard(ctx)
	counts := <-ch
	if err != nil {
		return dashboard.View{}, err
	}
	if counts.err != nil {
		logger.WithScope("dashboard").Warn().Err(counts.err).Msg("Failed to load repair gate pass counts")
		counts.counts = gatepass.Counts{}
	}
	return dashboard.NewView(summary, counts.counts), nil
}
