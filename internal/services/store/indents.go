package store

import (
	"context"
	"net/http"
	"net/url"

	"github.com/benedict-erwin/store-console/internal/entities/indents"
)

// CreateStoreIndent submits a new store indent
func (s *Service) CreateStoreIndent(ctx context.Context, req indents.CreateRequest) (Record, error) {
	return s.send(ctx, http.MethodPost, "/store-indent", req)
}

// PendingStoreIndents lists store indents awaiting approval
func (s *Service) PendingStoreIndents(ctx context.Context) ([]indents.Row, error) {
	return s.indentRows(ctx, "/store-indent/pending", nil)
}

// HistoryStoreIndents lists processed store indents
func (s *Service) HistoryStoreIndents(ctx context.Context) ([]indents.Row, error) {
	return s.indentRows(ctx, "/store-indent/history", nil)
}

// ApproveStoreIndent approves or rejects a pending store indent
func (s *Service) ApproveStoreIndent(ctx context.Context, req indents.Approval) (Record, error) {
	return s.send(ctx, http.MethodPut, "/store-indent/approve", req)
}

// DownloadStoreIndents fetches the spreadsheet export of pending or history indents
func (s *Service) DownloadStoreIndents(ctx context.Context, scope string) (*File, error) {
	switch scope {
	case indents.ScopePending, indents.ScopeHistory:
		return s.download(ctx, "/store-indent/"+scope+"/download", "", scope+"-indents.xlsx")
	default:
		return nil, unknownScope(scope)
	}
}

// Indents lists /indent
func (s *Service) Indents(ctx context.Context) ([]indents.Row, error) {
	return s.indentRows(ctx, "/indent", nil)
}

// AllIndents lists every indent
func (s *Service) AllIndents(ctx context.Context) ([]indents.Row, error) {
	return s.indentRows(ctx, "/indent/all", nil)
}

// IndentsByScope dispatches all, pending and history to their endpoints
func (s *Service) IndentsByScope(ctx context.Context, scope string) ([]indents.Row, error) {
	switch scope {
	case indents.ScopeAll:
		return s.AllIndents(ctx)
	case indents.ScopePending:
		return s.PendingStoreIndents(ctx)
	case indents.ScopeHistory:
		return s.HistoryStoreIndents(ctx)
	default:
		return nil, unknownScope(scope)
	}
}

// Indent fetches one indent by request number
func (s *Service) Indent(ctx context.Context, requestNumber string) (indents.Row, error) {
	rec, err := s.object(ctx, "/indent/"+url.PathEscape(requestNumber))
	if err != nil {
		return indents.Row{}, err
	}
	return indents.MapToRow(rec), nil
}

// SubmitIndent posts an indent form as-is
func (s *Service) SubmitIndent(ctx context.Context, payload any) (Record, error) {
	return s.send(ctx, http.MethodPost, "/indent", payload)
}

// UpdateIndentStatus changes the status of one indent
func (s *Service) UpdateIndentStatus(ctx context.Context, requestNumber string, update indents.StatusUpdate) (Record, error) {
	return s.send(ctx, http.MethodPut, "/indent/"+url.PathEscape(requestNumber)+"/status", update)
}

// FilterIndents lists indents matching the given query parameters
func (s *Service) FilterIndents(ctx context.Context, params url.Values) ([]indents.Row, error) {
	return s.indentRows(ctx, "/indent/filter", params)
}

// IndentsByStatus lists indents of one status type
func (s *Service) IndentsByStatus(ctx context.Context, statusType string) ([]indents.Row, error) {
	return s.indentRows(ctx, "/indent/status/"+url.PathEscape(statusType), nil)
}

func (s *Service) indentRows(ctx context.Context, endpoint string, query url.Values) ([]indents.Row, error) {
	recs, err := s.records(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	return indents.MapToRows(recs), nil
}
