package store

import (
	"context"
	"fmt"

	"github.com/benedict-erwin/store-console/internal/entities/purchaseorders"
	"github.com/benedict-erwin/store-console/pkg/apiclient"
	"github.com/benedict-erwin/store-console/pkg/envelope"
)

// PurchaseOrders lists pending or history purchase orders from the PO service
func (s *Service) PurchaseOrders(ctx context.Context, scope string) ([]purchaseorders.Row, error) {
	if _, ok := purchaseorders.DownloadNames[scope]; !ok {
		return nil, unknownScope(scope)
	}
	body, _, err := s.client.Download(ctx, "/"+scope, apiclient.Options{BaseURL: s.poBase})
	if err != nil {
		return nil, err
	}
	recs, err := envelope.Rows[Record](body)
	if err != nil {
		return nil, err
	}
	return purchaseorders.MapToRows(recs), nil
}

// DownloadPurchaseOrders fetches the spreadsheet export of pending or history purchase orders
func (s *Service) DownloadPurchaseOrders(ctx context.Context, scope string) (*File, error) {
	name, ok := purchaseorders.DownloadNames[scope]
	if !ok {
		return nil, unknownScope(scope)
	}
	return s.download(ctx, "/"+scope+"/download", s.poBase, name)
}

func unknownScope(scope string) error {
	return fmt.Errorf("%w: %q", ErrUnknownScope, scope)
}
