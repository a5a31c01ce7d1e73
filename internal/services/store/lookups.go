package store

import (
	"context"
	"net/http"
	"net/url"

	"github.com/benedict-erwin/store-console/internal/entities/stock"
)

// Cost location groups served under /cost-location/<group>
const (
	CostGroupRP = "rp"
	CostGroupPM = "pm"
	CostGroupCO = "co"
)

// Items lists the item master
func (s *Service) Items(ctx context.Context) ([]Record, error) {
	return s.records(ctx, "/items", nil)
}

// UOM lists units of measure
func (s *Service) UOM(ctx context.Context) ([]Record, error) {
	return s.records(ctx, "/uom", nil)
}

// CostLocations lists cost locations, optionally for one division
func (s *Service) CostLocations(ctx context.Context, divCode string) ([]Record, error) {
	var q url.Values
	if divCode != "" {
		q = url.Values{"divCode": []string{divCode}}
	}
	return s.records(ctx, "/cost-location", q)
}

// CostLocationGroup lists the rp, pm or co cost locations
func (s *Service) CostLocationGroup(ctx context.Context, group string) ([]Record, error) {
	switch group {
	case CostGroupRP, CostGroupPM, CostGroupCO:
		return s.records(ctx, "/cost-location/"+group, nil)
	default:
		return nil, unknownScope(group)
	}
}

// Stock fetches the stock report for a YYYY-MM-DD date range
func (s *Service) Stock(ctx context.Context, q stock.Query) ([]stock.Row, error) {
	from, to, err := q.BackendDates()
	if err != nil {
		return nil, err
	}
	recs, err := s.records(ctx, "/stock", url.Values{"fromDate": []string{from}, "toDate": []string{to}})
	if err != nil {
		return nil, err
	}
	return stock.MapToRows(recs), nil
}

// VendorRates lists pending or history vendor rate updates
func (s *Service) VendorRates(ctx context.Context, scope string) ([]Record, error) {
	if scope != "pending" && scope != "history" {
		return nil, unknownScope(scope)
	}
	return s.records(ctx, "/vendor-rate-update/"+scope, nil)
}

// UpdateVendorRate submits a vendor rate update
func (s *Service) UpdateVendorRate(ctx context.Context, payload any) (Record, error) {
	return s.send(ctx, http.MethodPost, "/vendor-rate-update", payload)
}

// ThreePartyApprovals lists pending or history three party approvals
func (s *Service) ThreePartyApprovals(ctx context.Context, scope string) ([]Record, error) {
	if scope != "pending" && scope != "history" {
		return nil, unknownScope(scope)
	}
	return s.records(ctx, "/three-party-approval/"+scope, nil)
}

// ApproveThreeParty submits a three party approval
func (s *Service) ApproveThreeParty(ctx context.Context, payload any) (Record, error) {
	return s.send(ctx, http.MethodPost, "/three-party-approval/approve", payload)
}

// User fetches a user by employee id
func (s *Service) User(ctx context.Context, employeeID string) (Record, error) {
	return s.object(ctx, "/user/"+url.PathEscape(employeeID))
}

// Me fetches the signed-in user
func (s *Service) Me(ctx context.Context) (Record, error) {
	return s.object(ctx, "/user/me")
}
