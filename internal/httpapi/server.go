// Package httpapi exposes the grid pipeline and axis services over HTTP.
//
// The API is a thin JSON layer: the handlers validate input, call into
// pkg/layout and pkg/pafv, and translate structured errors to status codes.
// All state lives in the injected services.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/isogrid/isogrid/pkg/layout"
	"github.com/isogrid/isogrid/pkg/pafv"
)

// Server bundles the services the API exposes.
type Server struct {
	runner *layout.Runner
	svc    *pafv.Service
	views  pafv.ViewStore
	logger *log.Logger
}

// NewServer creates an API server. The view store may be nil, in which case
// the view-state endpoints answer 503.
func NewServer(runner *layout.Runner, svc *pafv.Service, views pafv.ViewStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		svc:    svc,
		views:  views,
		logger: logger,
	}
}

// Router builds the HTTP route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)

		r.Route("/axes", func(r chi.Router) {
			r.Get("/", s.handleListAxes)
			r.Post("/assign", s.handleAssign)
			r.Post("/swap", s.handleSwap)
			r.Post("/clear", s.handleClear)
		})

		r.Get("/mapping", s.handleGetMapping)

		r.Route("/views/{canvasID}/{viewName}", func(r chi.Router) {
			r.Get("/", s.handleGetView)
			r.Put("/", s.handlePutView)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLayout runs the tree → grid → render pipeline. The request body is
// a layout.Options document; trees are referenced by path or inlined.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}

	opts := req.Options
	opts.RowTree = req.RowTree
	opts.ColTree = req.ColTree
	opts.Logger = s.logger

	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeBadRequest(w, "invalid layout options: %v", err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		TreeHash: result.TreeHash,
		Grid:     result.Grid,
		Stats: layoutStats{
			RowNodes: result.Stats.RowNodeCount,
			ColNodes: result.Stats.ColNodeCount,
			Cells:    result.Stats.CellCount,
			GridHit:  result.CacheInfo.GridHit,
		},
		Artifacts: artifactsByFormat(result.Artifacts),
	})
}

func (s *Server) handleListAxes(w http.ResponseWriter, r *http.Request) {
	if s.svc == nil {
		writeServiceUnavailable(w, "axis service not configured")
		return
	}
	writeJSON(w, http.StatusOK, axesResponse{
		Axes:    s.svc.AvailableAxes(),
		Mapping: s.svc.Mapping(),
	})
}

func (s *Server) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	if s.svc == nil {
		writeServiceUnavailable(w, "axis service not configured")
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Mapping())
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	if s.svc == nil {
		writeServiceUnavailable(w, "axis service not configured")
		return
	}
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	slot, ok := parseSlot(req.Slot)
	if !ok {
		writeBadRequest(w, "invalid slot: %q", req.Slot)
		return
	}
	if err := s.svc.AssignAxis(slot, req.FacetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Mapping())
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	if s.svc == nil {
		writeServiceUnavailable(w, "axis service not configured")
		return
	}
	var req swapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	slotA, okA := parseSlot(req.SlotA)
	slotB, okB := parseSlot(req.SlotB)
	if !okA || !okB {
		writeBadRequest(w, "invalid slots: %q, %q", req.SlotA, req.SlotB)
		return
	}
	if err := s.svc.SwapAxes(slotA, slotB); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Mapping())
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if s.svc == nil {
		writeServiceUnavailable(w, "axis service not configured")
		return
	}
	var req clearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	slot, ok := parseSlot(req.Slot)
	if !ok {
		writeBadRequest(w, "invalid slot: %q", req.Slot)
		return
	}
	if err := s.svc.ClearAxis(slot); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Mapping())
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	if s.views == nil {
		writeServiceUnavailable(w, "view store not configured")
		return
	}
	canvasID := chi.URLParam(r, "canvasID")
	viewName := chi.URLParam(r, "viewName")

	state, err := s.views.GetViewState(r.Context(), canvasID, viewName)
	if err != nil {
		writeError(w, err)
		return
	}
	if state == nil {
		writeNotFound(w, "no state for view %s/%s", canvasID, viewName)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePutView(w http.ResponseWriter, r *http.Request) {
	if s.views == nil {
		writeServiceUnavailable(w, "view store not configured")
		return
	}
	var state pafv.ViewState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	// The URL is authoritative for the key.
	state.CanvasID = chi.URLParam(r, "canvasID")
	state.ViewName = chi.URLParam(r, "viewName")

	if err := s.views.UpsertViewState(r.Context(), state); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func parseSlot(s string) (pafv.Slot, bool) {
	switch pafv.Slot(s) {
	case pafv.SlotX, pafv.SlotY, pafv.SlotZ:
		return pafv.Slot(s), true
	}
	return "", false
}
