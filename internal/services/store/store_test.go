package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/store-console/internal/entities/indents"
	"github.com/benedict-erwin/store-console/internal/entities/stock"
	"github.com/benedict-erwin/store-console/pkg/apiclient"
	"github.com/benedict-erwin/store-console/pkg/token"
)

type call struct {
	Method string
	URI    string
	Body   map[string]any
}

type fakeAPI struct {
	mu     sync.Mutex
	calls  []call
	routes map[string]string
	status map[string]int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := call{Method: r.Method, URI: r.URL.RequestURI()}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &c.Body)
	}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	if code, ok := f.status[r.URL.Path]; ok {
		w.WriteHeader(code)
		w.Write([]byte(`{"message":"boom"}`))
		return
	}
	body, ok := f.routes[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte(body))
}

func (f *fakeAPI) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newService(t *testing.T, routes map[string]string) (*Service, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{routes: routes, status: map[string]int{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL + "/api", Store: token.NewMemoryStore("a.b.c")})
	require.NoError(t, err)
	return New(client, srv.URL+"/api/po"), api
}

func TestIndentsByScope(t *testing.T) {
	svc, api := newService(t, map[string]string{
		"/api/indent/all":           `{"success":true,"data":[{"request_number":"SI-1","request_qty":"2"}]}`,
		"/api/store-indent/pending": `[{"requestNumber":"SI-2"}]`,
		"/api/store-indent/history": `{"data":{"data":[{"requestNumber":"SI-3"}]}}`,
	})
	ctx := context.Background()

	rows, err := svc.IndentsByScope(ctx, indents.ScopeAll)
	require.NoError(t, err)
	require.Equal(t, []indents.Row{{RequestNumber: "SI-1", RequestQty: 2}}, rows)
	require.Equal(t, "/api/indent/all", api.last().URI)

	rows, err = svc.IndentsByScope(ctx, indents.ScopePending)
	require.NoError(t, err)
	require.Equal(t, "SI-2", rows[0].RequestNumber)

	rows, err = svc.IndentsByScope(ctx, indents.ScopeHistory)
	require.NoError(t, err)
	require.Equal(t, "SI-3", rows[0].RequestNumber)

	_, err = svc.IndentsByScope(ctx, "archived")
	require.ErrorIs(t, err, ErrUnknownScope)
}

func TestIndentEndpoints(t *testing.T) {
	svc, api := newService(t, map[string]string{
		"/api/indent":                 `[]`,
		"/api/indent/SI 9":            `{"success":true,"data":{"request_number":"SI 9","status":"OPEN"}}`,
		"/api/indent/SI-1/status":     `{"success":true}`,
		"/api/indent/filter":          `[]`,
		"/api/indent/status/approved": `[]`,
		"/api/store-indent":           `{"success":true,"data":{"request_number":"SI-5"}}`,
		"/api/store-indent/approve":   ``,
	})
	ctx := context.Background()

	_, err := svc.Indents(ctx)
	require.NoError(t, err)
	require.Equal(t, call{Method: http.MethodGet, URI: "/api/indent"}, api.last())

	row, err := svc.Indent(ctx, "SI 9")
	require.NoError(t, err)
	require.Equal(t, "OPEN", row.Status)
	require.Equal(t, "/api/indent/SI%209", api.last().URI)

	_, err = svc.UpdateIndentStatus(ctx, "SI-1", indents.StatusUpdate{Status: "CLOSED"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, api.last().Method)
	require.Equal(t, "CLOSED", api.last().Body["status"])

	_, err = svc.FilterIndents(ctx, url.Values{"department": []string{"Stores"}})
	require.NoError(t, err)
	require.Equal(t, "/api/indent/filter?department=Stores", api.last().URI)

	_, err = svc.IndentsByStatus(ctx, "approved")
	require.NoError(t, err)

	res, err := svc.CreateStoreIndent(ctx, indents.CreateRequest{RequesterName: "Asha", Department: "Stores"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, api.last().Method)
	require.Equal(t, "Asha", api.last().Body["requester_name"])
	require.Equal(t, true, res["success"])

	res, err = svc.ApproveStoreIndent(ctx, indents.Approval{RequestNumber: "SI-5", Status: "APPROVED"})
	require.NoError(t, err)
	require.Empty(t, res)
	require.Equal(t, http.MethodPut, api.last().Method)
}

func TestSubmitIndentPassesPayloadThrough(t *testing.T) {
	svc, api := newService(t, map[string]string{"/api/indent": `{"ok":1}`})
	_, err := svc.SubmitIndent(context.Background(), map[string]any{"formType": "Repair"})
	require.NoError(t, err)
	require.Equal(t, "Repair", api.last().Body["formType"])
}

func TestDashboardView(t *testing.T) {
	svc, _ := newService(t, map[string]string{
		"/api/store-indent/dashboard":  `{"success":true,"data":{"totalIndents":4,"totalPurchaseOrders":2,"topVendors":[{"vendorName":"Acme","uniquePoCount":3,"totalItems":7}]}}`,
		"/api/repair-gate-pass/counts": `{"success":true,"data":{"pending":3,"history":11}}`,
	})

	view, err := svc.DashboardView(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, view.TotalIndents)
	require.Equal(t, 50, view.PurchaseRate)
	require.Equal(t, "Acme", view.TopVendors[0].VendorName)
	require.Equal(t, 3, view.GatePass.Pending)
	require.Equal(t, 11, view.GatePass.History)
	require.Equal(t, 79, view.GatePassRate)
}

func TestDashboardAcceptsNumericStrings(t *testing.T) {
	svc, _ := newService(t, map[string]string{
		"/api/store-indent/dashboard": `{"success":true,"data":{
			"totalIndents":"12","totalPurchaseOrders":"3",
			"totalPurchasedQuantity":"40.5","totalIssuedQuantity":10.125,
			"topPurchasedItems":[{"itemName":"Bearing","orderCount":"2","totalOrderQty":"7.5"}]
		}}`,
		"/api/repair-gate-pass/counts": `{"success":true,"data":{"pending":0,"history":0}}`,
	})

	view, err := svc.DashboardView(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, view.TotalIndents)
	require.Equal(t, 25, view.PurchaseRate)
	require.Equal(t, 40.5, view.TotalPurchasedQuantity)
	require.Equal(t, 25, view.IssueRate)
	require.Equal(t, 2, view.TopPurchasedItems[0].OrderCount)
	require.Equal(t, 7.5, view.TopPurchasedItems[0].TotalOrderQty)
	require.Zero(t, view.GatePassRate)
}

func TestDashboardViewToleratesGatePassFailure(t *testing.T) {
	svc, api := newService(t, map[string]string{
		"/api/store-indent/dashboard": `{"success":true,"data":{"totalIndents":1}}`,
	})
	api.status["/api/repair-gate-pass/counts"] = http.StatusInternalServerError

	view, err := svc.DashboardView(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, view.TotalIndents)
	require.Zero(t, view.GatePass.Pending)
}

func TestDashboardWithoutSuccess(t *testing.T) {
	svc, _ := newService(t, map[string]string{
		"/api/store-indent/dashboard":  `{"success":false,"data":null}`,
		"/api/repair-gate-pass/counts": `{"pending":1,"history":2}`,
	})
	_, err := svc.DashboardView(context.Background())
	require.ErrorIs(t, err, ErrNoDashboardData)
}

func TestGatePasses(t *testing.T) {
	svc, api := newService(t, map[string]string{
		"/api/repair-gate-pass/received": `{"data":[{"id":1},{"id":2}]}`,
	})
	recs, err := svc.GatePasses(context.Background(), "received")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "/api/repair-gate-pass/received", api.last().URI)

	_, err = svc.GatePasses(context.Background(), "lost")
	require.ErrorIs(t, err, ErrUnknownScope)
}

func TestPurchaseOrdersUsePOBase(t *testing.T) {
	svc, api := newService(t, map[string]string{
		"/api/po/pending":          `{"data":[{"VRNO":"PO-1","QTYORDER":10,"QTYEXECUTE":3}]}`,
		"/api/po/history/download": "xlsx-bytes",
	})
	ctx := context.Background()

	rows, err := svc.PurchaseOrders(ctx, "pending")
	require.NoError(t, err)
	require.Equal(t, 7.0, rows[0].BalanceQty)
	require.Equal(t, "/api/po/pending", api.last().URI)

	file, err := svc.DownloadPurchaseOrders(ctx, "history")
	require.NoError(t, err)
	require.Equal(t, "received-purchase-orders.xlsx", file.Name)
	require.Equal(t, []byte("xlsx-bytes"), file.Content)

	_, err = svc.PurchaseOrders(ctx, "all")
	require.ErrorIs(t, err, ErrUnknownScope)
}

func TestPurchaseOrdersDoNotFallBack(t *testing.T) {
	svc, api := newService(t, map[string]string{})
	_, err := svc.PurchaseOrders(context.Background(), "history")

	var apiErr *apiclient.Error
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.NotFound())
	require.Len(t, api.calls, 1)
}

func TestDownloadStoreIndents(t *testing.T) {
	svc, api := newService(t, map[string]string{"/api/store-indent/pending/download": "bin"})
	file, err := svc.DownloadStoreIndents(context.Background(), indents.ScopePending)
	require.NoError(t, err)
	require.Equal(t, "pending-indents.xlsx", file.Name)
	require.Equal(t, "/api/store-indent/pending/download", api.last().URI)

	_, err = svc.DownloadStoreIndents(context.Background(), indents.ScopeAll)
	require.ErrorIs(t, err, ErrUnknownScope)
}

func TestStockSendsBackendDates(t *testing.T) {
	svc, api := newService(t, map[string]string{
		"/api/stock": `{"success":true,"data":[{"COL1":"1201","COL2":"Bearing","COL3":"NOS","COL4":"5","COL5":"2"}]}`,
	})
	rows, err := svc.Stock(context.Background(), stock.Query{From: "2025-01-01", To: "2025-01-31"})
	require.NoError(t, err)
	require.Equal(t, []stock.Row{{ItemCode: "1201", ItemName: "Bearing", UOM: "NOS", OpeningQty: 5, ClosingQty: 2}}, rows)
	require.Equal(t, "/api/stock?fromDate=01-01-2025&toDate=31-01-2025", api.last().URI)

	_, err = svc.Stock(context.Background(), stock.Query{From: "2025-01-01"})
	require.ErrorIs(t, err, stock.ErrDateRange)
}

func TestLookups(t *testing.T) {
	svc, api := newService(t, map[string]string{
		"/api/items":                        `[{"code":"A"}]`,
		"/api/uom":                          `[]`,
		"/api/cost-location":                `[]`,
		"/api/cost-location/pm":             `[]`,
		"/api/vendor-rate-update/pending":   `[]`,
		"/api/vendor-rate-update":           `{"success":true}`,
		"/api/three-party-approval/history": `[]`,
		"/api/three-party-approval/approve": `{"success":true}`,
		"/api/user/E42":                     `{"data":{"name":"Asha"}}`,
		"/api/user/me":                      `{"name":"Ravi"}`,
	})
	ctx := context.Background()

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, "A", items[0]["code"])

	_, err = svc.UOM(ctx)
	require.NoError(t, err)

	_, err = svc.CostLocations(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "/api/cost-location", api.last().URI)
	_, err = svc.CostLocations(ctx, "D1")
	require.NoError(t, err)
	require.Equal(t, "/api/cost-location?divCode=D1", api.last().URI)

	_, err = svc.CostLocationGroup(ctx, CostGroupPM)
	require.NoError(t, err)
	_, err = svc.CostLocationGroup(ctx, "xx")
	require.ErrorIs(t, err, ErrUnknownScope)

	_, err = svc.VendorRates(ctx, "pending")
	require.NoError(t, err)
	_, err = svc.UpdateVendorRate(ctx, map[string]any{"rate": 10})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, api.last().Method)

	_, err = svc.ThreePartyApprovals(ctx, "history")
	require.NoError(t, err)
	_, err = svc.ApproveThreeParty(ctx, map[string]any{"id": 1})
	require.NoError(t, err)
	require.Equal(t, "/api/three-party-approval/approve", api.last().URI)

	user, err := svc.User(ctx, "E42")
	require.NoError(t, err)
	require.Equal(t, "Asha", user["name"])

	me, err := svc.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ravi", me["name"])
}

func TestUnauthorizedPropagates(t *testing.T) {
	svc, api := newService(t, map[string]string{})
	api.status["/api/user/me"] = http.StatusUnauthorized

	_, err := svc.Me(context.Background())
	require.True(t, apiclient.IsUnauthorized(err))

	_, ok, _ := svc.Client().Store().Get(context.Background())
	require.False(t, ok)
}
