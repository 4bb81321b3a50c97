package server

import (
	"net/http"
	"strconv"

	"github.com/bobmcallan/council/internal/common"
	"github.com/bobmcallan/council/internal/models"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/verdicts", s.handleVerdictList)
	mux.HandleFunc("/api/verdicts/", s.handleVerdictGet)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// analyzeRequest is the POST /api/analyze payload.
type analyzeRequest struct {
	Ticker        string `json:"ticker"`
	Style         string `json:"style"`
	RiskTolerance string `json:"risk_tolerance"`
}

// handleAnalyze runs the full debate for one ticker and persists the case.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req analyzeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	profile := models.Profile{
		Style:         models.Style(req.Style),
		RiskTolerance: models.RiskTolerance(req.RiskTolerance),
	}
	if profile.Style == "" {
		profile.Style = models.StyleTrader
	}
	if profile.RiskTolerance == "" {
		profile.RiskTolerance = models.RiskModerate
	}

	c, err := s.app.AnalyzeAndStore(r.Context(), req.Ticker, profile)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, c)
}

// handleVerdictList handles GET /api/verdicts?ticker=X&limit=N.
func (s *Server) handleVerdictList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := r.URL.Query().Get("ticker")
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	cases, err := s.app.Storage.VerdictStore().ListCases(r.Context(), ticker, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list cases: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, cases)
}

// handleVerdictGet handles GET /api/verdicts/{id}.
func (s *Server) handleVerdictGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := PathParam(r.URL.Path, "/api/verdicts/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "case ID is required")
		return
	}

	c, err := s.app.Storage.VerdictStore().GetCase(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, c)
}
