package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/isogrid/isogrid/pkg/axisstore"
	"github.com/isogrid/isogrid/pkg/axistree"
	"github.com/isogrid/isogrid/pkg/layout"
	"github.com/isogrid/isogrid/pkg/pafv"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testFacets() []pafv.FacetRow {
	return []pafv.FacetRow{
		{ID: "f-cat", Name: "category", Axis: "category", Enabled: true, SortOrder: 1},
		{ID: "f-time", Name: "created_at", Axis: "time", Enabled: true, SortOrder: 2},
		{ID: "f-loc", Name: "location", Axis: "location", Enabled: false, SortOrder: 3},
	}
}

func newTestServer(t *testing.T) (*Server, *axisstore.MemoryStore) {
	t.Helper()
	store := axisstore.NewMemoryStore(testFacets())
	svc := pafv.NewService(context.Background(), store, nil, pafv.ServiceConfig{}, quietLogger())
	t.Cleanup(svc.Destroy)
	runner := layout.NewRunner(nil, nil, quietLogger())
	return NewServer(runner, svc, store, quietLogger()), store
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request ID header")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied" {
		t.Errorf("request ID = %q, want client-supplied", got)
	}
}

func TestListAxes(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/axes/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp axesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Axes) != 3 {
		t.Errorf("axes = %d, want 3", len(resp.Axes))
	}
	if resp.Mapping.X != nil || resp.Mapping.Y != nil {
		t.Error("expected empty initial mapping")
	}
}

func TestAssignAndMapping(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/axes/assign",
		assignRequest{Slot: "x", FacetID: "f-cat"})
	if rec.Code != http.StatusOK {
		t.Fatalf("assign status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/mapping", nil)
	var m pafv.Mapping
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode mapping: %v", err)
	}
	if m.X == nil || m.X.Facet != "category" {
		t.Errorf("mapping.X = %+v, want facet category", m.X)
	}
}

func TestAssignUnknownAxisIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/axes/assign",
		assignRequest{Slot: "x", FacetID: "nope"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Code != "AXIS_NOT_FOUND" {
		t.Errorf("error code = %q, want AXIS_NOT_FOUND", resp.Error.Code)
	}
}

func TestAssignInvalidSlotIs400(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/axes/assign",
		assignRequest{Slot: "w", FacetID: "f-cat"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestSwapAndClear(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	doJSON(t, router, http.MethodPost, "/api/axes/assign", assignRequest{Slot: "x", FacetID: "f-cat"})
	doJSON(t, router, http.MethodPost, "/api/axes/assign", assignRequest{Slot: "y", FacetID: "f-time"})

	rec := doJSON(t, router, http.MethodPost, "/api/axes/swap", swapRequest{SlotA: "x", SlotB: "y"})
	if rec.Code != http.StatusOK {
		t.Fatalf("swap status = %d: %s", rec.Code, rec.Body.String())
	}
	var m pafv.Mapping
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.X == nil || m.X.Facet != "created_at" || m.Y == nil || m.Y.Facet != "category" {
		t.Errorf("after swap: X=%+v Y=%+v", m.X, m.Y)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/axes/clear", clearRequest{Slot: "x"})
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d: %s", rec.Code, rec.Body.String())
	}
	m = pafv.Mapping{}
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.X != nil {
		t.Errorf("mapping.X = %+v after clear, want nil", m.X)
	}
}

func TestViewStateRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	state := pafv.ViewState{
		Mapping: pafv.Mapping{
			X: &pafv.Assignment{LatchDimension: "category", Facet: "category", Label: "Category"},
		},
	}
	rec := doJSON(t, router, http.MethodPut, "/api/views/c1/grid/", state)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/views/c1/grid/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d: %s", rec.Code, rec.Body.String())
	}
	var got pafv.ViewState
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CanvasID != "c1" || got.ViewName != "grid" {
		t.Errorf("key = %s/%s, want c1/grid", got.CanvasID, got.ViewName)
	}
	if got.Mapping.X == nil || got.Mapping.X.Facet != "category" {
		t.Errorf("mapping.X = %+v", got.Mapping.X)
	}
}

func TestViewStateMissingIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/views/c1/nothing/", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestLayoutEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := layoutRequest{
		RowTree: &axistree.Node{ID: "root", Children: []*axistree.Node{
			{ID: "g1", Children: []*axistree.Node{{ID: "a"}, {ID: "b"}}},
			{ID: "c"},
		}},
		ColTree: &axistree.Node{ID: "root", Children: []*axistree.Node{
			{ID: "q1"}, {ID: "q2"},
		}},
	}
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/layout", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TreeHash == "" {
		t.Error("expected a tree hash")
	}
	if resp.Stats.Cells != 6 {
		t.Errorf("cells = %d, want 6", resp.Stats.Cells)
	}
	art, ok := resp.Artifacts[layout.FormatJSON]
	if !ok {
		t.Fatal("expected a json artifact")
	}
	if !strings.Contains(art.Body, "\"cells\"") {
		t.Error("json artifact does not look like a grid document")
	}
}

func TestLayoutRejectsMissingTrees(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/layout", layoutRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestLayoutRejectsBadBody(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/layout", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestNilServicesAnswer503(t *testing.T) {
	srv := NewServer(layout.NewRunner(nil, nil, quietLogger()), nil, nil, quietLogger())
	router := srv.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/axes/", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("axes status = %d, want 503", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/views/c1/grid/", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("views status = %d, want 503", rec.Code)
	}
}
