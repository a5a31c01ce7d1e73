package store

import (
	"context"

	"github.com/benedict-erwin/store-console/internal/entities/gatepass"
	"github.com/benedict-erwin/store-console/pkg/envelope"
)

// GatePasses lists repair gate passes for pending, received or history
func (s *Service) GatePasses(ctx context.Context, scope string) ([]Record, error) {
	switch scope {
	case gatepass.ScopePending, gatepass.ScopeReceived, gatepass.ScopeHistory:
		return s.records(ctx, "/repair-gate-pass/"+scope, nil)
	default:
		return nil, unknownScope(scope)
	}
}

// GatePassCounts fetches the pending and history totals
func (s *Service) GatePassCounts(ctx context.Context) (gatepass.Counts, error) {
	body, err := s.get(ctx, "/repair-gate-pass/counts", nil)
	if err != nil {
		return gatepass.Counts{}, err
	}
	return envelope.Object[gatepass.Counts](body)
}
