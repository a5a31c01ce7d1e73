package server_test

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/store-console/http/v1/handler"
	_ "github.com/benedict-erwin/store-console/http/v1/route"
	"github.com/benedict-erwin/store-console/internal/constants"
	"github.com/benedict-erwin/store-console/internal/services/health"
	"github.com/benedict-erwin/store-console/internal/services/store"
	"github.com/benedict-erwin/store-console/pkg/apiclient"
	"github.com/benedict-erwin/store-console/pkg/metrics"
	"github.com/benedict-erwin/store-console/pkg/response"
	"github.com/benedict-erwin/store-console/pkg/token"
	"github.com/benedict-erwin/store-console/server"
)

// valid until 2100
var bearer = "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"E42","exp":4102444800}`)) + ".sig"

type upstream struct {
	mu       sync.Mutex
	auth     []string
	routes   map[string]string
	rejected map[string]bool
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.auth = append(u.auth, r.Header.Get("Authorization"))
	u.mu.Unlock()

	if u.rejected[r.URL.Path] {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"jwt expired"}`))
		return
	}
	body, ok := u.routes[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte(body))
}

type fixture struct {
	srv      *httptest.Server
	upstream *upstream
	store    token.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	up := &upstream{routes: map[string]string{
		"/api/user/me":    `{"success":true,"data":{"name":"Asha","employeeId":"E42"}}`,
		"/api/indent/all": `{"success":true,"data":[
			{"request_number":"SI-1","product_name":"Bearing 6204","request_qty":2},
			{"request_number":"SI-2","product_name":"V Belt","request_qty":1},
			{"request_number":"SI-3","product_name":"bearing housing","request_qty":"5"}
		]}`,
		"/api/stock":                   `{"data":[{"COL1":"1201","COL2":"Bearing","COL3":"NOS","COL4":"3","COL5":"0"}]}`,
		"/api/store-indent/dashboard":  `{"success":true,"data":{"totalIndents":2,"totalPurchaseOrders":1}}`,
		"/api/repair-gate-pass/counts": `{"success":true,"data":{"pending":4,"history":6}}`,
		"/api/po/pending":              `[{"VRNO":"PO-9","QTYORDER":5,"QTYEXECUTE":1}]`,
	}, rejected: map[string]bool{}}
	upSrv := httptest.NewServer(up)
	t.Cleanup(upSrv.Close)

	reg := prometheus.NewRegistry()
	serverStore := token.NewMemoryStore("server-own-token")
	client, err := apiclient.New(apiclient.Config{
		BaseURL: upSrv.URL + "/api",
		Store:   serverStore,
		Hooks:   metrics.NewCollector(reg).Hooks(),
	})
	require.NoError(t, err)

	e := server.New(handler.Dependencies{
		Store: store.New(client, upSrv.URL+"/api/po"),
		Health: health.NewChecker("test", map[string]health.Probe{
			"store_api": health.UpstreamProbe(upSrv.Client(), upSrv.URL+"/api"),
		}),
		PageSize: 2,
	}, reg)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, upstream: up, store: serverStore}
}

func (f *fixture) get(t *testing.T, path string, authed bool) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, f.srv.URL+path, nil)
	require.NoError(t, err)
	if authed {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func envelope(t *testing.T, body []byte) response.Response {
	t.Helper()
	var r response.Response
	require.NoError(t, json.Unmarshal(body, &r))
	return r
}

func TestHealthRoutesArePublic(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/v1/health/live", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, envelope(t, body).Success)

	resp, _ = f.get(t, "/v1/health/ready", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMeForwardsCallerToken(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/v1/me", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, map[string]any{"name": "Asha", "employeeId": "E42"}, envelope(t, body).Data)
	require.Equal(t, []string{"Bearer " + bearer}, f.upstream.auth)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/v1/me", false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	r := envelope(t, body)
	require.Equal(t, constants.CodeMissingAuth, r.Code)
	require.Equal(t, map[string]any{"redirect": "/login"}, r.Data)
	require.Empty(t, f.upstream.auth)
}

func TestUpstream401RedirectsAndKeepsServerToken(t *testing.T) {
	f := newFixture(t)
	f.upstream.rejected["/api/user/me"] = true

	resp, body := f.get(t, "/v1/me", true)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	r := envelope(t, body)
	require.Equal(t, constants.CodeSessionRejected, r.Code)
	require.Equal(t, map[string]any{"redirect": "/login"}, r.Data)

	// a 401 never falls back to the stripped base
	require.Len(t, f.upstream.auth, 1)

	tok, ok, err := f.store.Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "server-own-token", tok)
}

func TestListIndentsFiltersAndPaginates(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/v1/indents/all?q=BEARING&page=1", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := envelope(t, body).Data.(map[string]any)
	require.EqualValues(t, 2, data["total"])
	require.EqualValues(t, 1, data["total_pages"])
	require.EqualValues(t, 1, data["start"])
	require.EqualValues(t, 2, data["end"])

	resp, body = f.get(t, "/v1/indents/all?page=9", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = envelope(t, body).Data.(map[string]any)
	require.EqualValues(t, 2, data["page"])
	require.Len(t, data["rows"], 1)
}

func TestListIndentsRejectsBadParams(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/v1/indents/all?size=0&page=-1", true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, constants.CodeValidationFailed, envelope(t, body).Code)

	resp, body = f.get(t, "/v1/indents/archived", true)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, constants.CodeUnknownScope, envelope(t, body).Code)
}

func TestExportIndentsCSV(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/v1/indents/all/export?q=belt", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Disposition"), `filename="all-indents-`)

	lines := strings.Split(string(body), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "Request Number,Timestamp"))
	require.True(t, strings.HasPrefix(lines[1], `"SI-2",""`))
}

func TestStock(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/v1/stock?from=2025-01-01", true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, constants.CodeMissingParameter, envelope(t, body).Code)

	resp, body = f.get(t, "/v1/stock?from=2025-01-01&to=2025-01-31", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := envelope(t, body).Data.(map[string]any)["rows"].([]any)
	require.Equal(t, "1201", rows[0].(map[string]any)["item_code"])
}

func TestDashboardAndPurchaseOrders(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/v1/dashboard", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope(t, body).Data.(map[string]any)
	require.EqualValues(t, 50, data["purchaseRate"])
	require.EqualValues(t, 4, data["gatePass"].(map[string]any)["pending"])
	require.EqualValues(t, 60, data["gatePassRate"])

	resp, body = f.get(t, "/v1/gate-pass/counts", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.EqualValues(t, 6, envelope(t, body).Data.(map[string]any)["history"])

	resp, body = f.get(t, "/v1/purchase-orders/pending", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := envelope(t, body).Data.(map[string]any)["rows"].([]any)
	require.EqualValues(t, 4, rows[0].(map[string]any)["BALANCE_QTY"])

	resp, body = f.get(t, "/v1/purchase-orders/history", true)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, constants.CodeResourceNotFound, envelope(t, body).Code)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/v1/nothing", false)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, constants.CodeEndpointNotFound, envelope(t, body).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.get(t, "/v1/me", true)

	resp, body := f.get(t, "/metrics", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "store_console_api_attempts_total")
}
