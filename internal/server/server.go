// Package server exposes a loaded scenario over a small local HTTP API:
// the catalog, its validation report, on-demand solves, and the built-in
// benchmark scenarios.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/sa-ameen/mcboms-optimization/pkg/benchmark"
	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
	"github.com/sa-ameen/mcboms-optimization/pkg/report"
	"github.com/sa-ameen/mcboms-optimization/pkg/scenario"
	"github.com/sa-ameen/mcboms-optimization/pkg/solver"
	"github.com/sa-ameen/mcboms-optimization/pkg/validation"
)

// Server serves one loaded scenario and its catalog.
type Server struct {
	scn          *scenario.Scenario
	sites        []catalog.Site
	alternatives []catalog.Alternative
	port         int
}

// New loads the scenario's catalog and returns a server for it.
func New(scn *scenario.Scenario, port int) (*Server, error) {
	sites, alts, err := scn.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return &Server{scn: scn, sites: sites, alternatives: alts, port: port}, nil
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("mcboms server starting on http://localhost%s", addr)
	log.Printf("Scenario: %s (%d sites, %d alternatives)",
		s.scn.Name, len(s.sites), len(s.alternatives))

	return http.ListenAndServe(addr, s.Handler())
}

// Handler builds the API routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("POST /api/solve", s.handleSolve)
	mux.HandleFunc("GET /api/benchmark/50m", s.handleBenchmark(benchmark.BudgetHigh))
	mux.HandleFunc("GET /api/benchmark/10m", s.handleBenchmark(benchmark.BudgetLow))

	return mux
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"scenario":     s.scn.Name,
		"sites":        s.sites,
		"alternatives": s.alternatives,
	})
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, validation.ValidateCatalog(s.sites, s.alternatives))
}

// solveRequest carries per-request overrides of the scenario's solve
// parameters.
type solveRequest struct {
	Budget  *float64 `json:"budget,omitempty"`
	Workers *int     `json:"workers,omitempty"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("parsing request body: %w", err))
			return
		}
	}

	cfg := s.scn.SolverConfig()
	if req.Budget != nil {
		cfg.Budget = *req.Budget
	}
	if req.Workers != nil {
		cfg.Workers = *req.Workers
	}

	res, err := s.solve(cfg, s.scn.Constraints(), s.alternatives)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBenchmark(budget float64) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		cfg := solver.NewConfig(budget)
		cfg.DiscountRate = benchmark.DiscountRate

		e := solver.New(cfg)
		if err := e.Build(benchmark.Alternatives()); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		sol, err := e.Solve()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		res, err := report.Assemble(benchmark.Alternatives(), sol, budget)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) solve(cfg solver.Config, constraints []solver.Constraint, alts []catalog.Alternative) (*report.OptimizationResult, error) {
	e := solver.New(cfg)
	for _, c := range constraints {
		e.AddConstraint(c)
	}
	if limits := s.scn.CategoryLimits; len(limits) > 0 && len(s.sites) > 0 {
		e.AddConstraint(solver.NewCategoryBudget(alts, s.categoryOf, limits))
	}
	if err := e.Build(alts); err != nil {
		return nil, err
	}
	sol, err := e.Solve()
	if err != nil {
		return nil, err
	}
	return report.Assemble(alts, sol, cfg.Budget)
}

func (s *Server) categoryOf(siteID int) string {
	for _, site := range s.sites {
		if site.SiteID == siteID {
			return site.AreaType
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
