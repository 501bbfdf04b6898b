// Package chi exposes the ranking services over HTTP.
package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/purpose"
	"github.com/vasupatel610/retailrank/internal/domain/search/query"
	"github.com/vasupatel610/retailrank/internal/lexical"
	"github.com/vasupatel610/retailrank/internal/usecase/heuristic"
	"github.com/vasupatel610/retailrank/internal/usecase/recommend"
	searchuc "github.com/vasupatel610/retailrank/internal/usecase/search"
	"github.com/vasupatel610/retailrank/internal/version"
)

// CatalogReader reports catalog size for health checks.
type CatalogReader interface {
	Len() int
}

// Limits carries the configured search bounds. Zero fields fall back to the
// query package defaults.
type Limits struct {
	DefaultTopK int
	MaxTopK     int
}

// Server wires the ranking services into HTTP handlers.
type Server struct {
	search        *searchuc.Service
	recommend     *recommend.Service
	heuristic     *heuristic.Service
	catalog       CatalogReader
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	rec *recommend.Service,
	heur *heuristic.Service,
	catalog CatalogReader,
	limits Limits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		recommend: rec,
		heuristic: heur,
		catalog:   catalog,
		limits:    limits,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, CodeItemNotFound),
		sentinelHandler(domain.ErrInvalidWeights, http.StatusBadRequest, CodeInvalidWeights),
		sentinelHandler(domain.ErrProviderUnavailable, http.StatusBadGateway, CodeProviderError),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadGateway, CodeProviderError),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/v1/search", s.Search)
	r.Post("/api/v1/recommend", s.Recommend)
	r.Post("/api/v1/recommend/outfit", s.RecommendOutfit)
	r.Post("/api/v1/recommend/occasion", s.RecommendOccasion)
	r.Post("/api/v1/recommend/brand", s.RecommendSameBrand)
	r.Post("/api/v1/recommend/budget", s.RecommendInBudget)
	r.Post("/api/v1/recommend/heuristic", s.HeuristicRecommend)
	r.Post("/api/v1/recommend/heuristic/custom", s.HeuristicRecommendCustom)
	r.Post("/api/v1/recommend/analyze", s.AnalyzeRecommendations)
	r.Get("/healthz", s.Health)
	r.Get("/metrics", s.Metrics)
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := query.New(req.Query, query.Params{
		TopK:                    req.TopK,
		SemanticWeight:          req.SemanticWeight,
		LexicalWeight:           req.LexicalWeight,
		Method:                  lexical.Method(req.Method),
		DisableFacets:           req.UseFacets != nil && !*req.UseFacets,
		MinScore:                req.MinScore,
		DisableEarlyTermination: req.EarlyTermination != nil && !*req.EarlyTermination,
		Adaptive:                req.Adaptive,
		DefaultTopK:             s.limits.DefaultTopK,
		MaxTopK:                 s.limits.MaxTopK,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := SearchResponse{Results: make([]SearchResultDTO, len(results)), Count: len(results)}
	for i := range results {
		resp.Results[i] = searchResultToDTO(&results[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Recommend handles POST /api/v1/recommend.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "product_id is required")
		return
	}

	p, err := purpose.Parse(req.Purpose)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	opts := recommend.Options{
		TopK:     req.TopK,
		Purpose:  p,
		MinScore: req.MinScore,
		Weights:  req.Weights,
		Context:  recommend.Context{Occasion: domain.NewAttr(req.Occasion)},
	}
	if req.Budget != nil {
		if req.Budget.Min > req.Budget.Max {
			writeError(w, http.StatusBadRequest, CodeValidationFailed, "budget.min exceeds budget.max")
			return
		}
		opts.Context.Budget = &recommend.Range{Min: req.Budget.Min, Max: req.Budget.Max}
	}

	recs, err := s.recommend.Recommend(req.ProductID, opts)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := RecommendResponse{Results: make([]RecommendationDTO, len(recs)), Count: len(recs)}
	for i := range recs {
		resp.Results[i] = recommendationToDTO(&recs[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// RecommendOutfit handles POST /api/v1/recommend/outfit.
func (s *Server) RecommendOutfit(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePurposeRequest(w, r)
	if !ok {
		return
	}
	s.writeRecommendations(w, func() ([]recommend.Recommendation, error) {
		return s.recommend.Outfit(req.ProductID, req.TopK)
	})
}

// RecommendOccasion handles POST /api/v1/recommend/occasion.
func (s *Server) RecommendOccasion(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePurposeRequest(w, r)
	if !ok {
		return
	}
	if req.Occasion == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "occasion is required")
		return
	}
	s.writeRecommendations(w, func() ([]recommend.Recommendation, error) {
		return s.recommend.ForOccasion(req.ProductID, req.Occasion, req.TopK)
	})
}

// RecommendSameBrand handles POST /api/v1/recommend/brand.
func (s *Server) RecommendSameBrand(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePurposeRequest(w, r)
	if !ok {
		return
	}
	s.writeRecommendations(w, func() ([]recommend.Recommendation, error) {
		return s.recommend.SameBrand(req.ProductID, req.TopK)
	})
}

// RecommendInBudget handles POST /api/v1/recommend/budget.
func (s *Server) RecommendInBudget(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodePurposeRequest(w, r)
	if !ok {
		return
	}
	if req.Budget == nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "budget is required")
		return
	}
	if req.Budget.Min > req.Budget.Max {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "budget.min exceeds budget.max")
		return
	}
	budget := recommend.Range{Min: req.Budget.Min, Max: req.Budget.Max}
	s.writeRecommendations(w, func() ([]recommend.Recommendation, error) {
		return s.recommend.InBudget(req.ProductID, budget, req.TopK)
	})
}

func (s *Server) decodePurposeRequest(w http.ResponseWriter, r *http.Request) (PurposeRequest, bool) {
	var req PurposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return PurposeRequest{}, false
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "product_id is required")
		return PurposeRequest{}, false
	}
	return req, true
}

func (s *Server) writeRecommendations(w http.ResponseWriter, run func() ([]recommend.Recommendation, error)) {
	recs, err := run()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	resp := RecommendResponse{Results: make([]RecommendationDTO, len(recs)), Count: len(recs)}
	for i := range recs {
		resp.Results[i] = recommendationToDTO(&recs[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// HeuristicRecommend handles POST /api/v1/recommend/heuristic.
func (s *Server) HeuristicRecommend(w http.ResponseWriter, r *http.Request) {
	var req HeuristicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.serveHeuristic(w, req, nil)
}

// HeuristicRecommendCustom handles POST /api/v1/recommend/heuristic/custom.
func (s *Server) HeuristicRecommendCustom(w http.ResponseWriter, r *http.Request) {
	var req HeuristicCustomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.serveHeuristic(w, req.HeuristicRequest, &req.Weights)
}

func (s *Server) serveHeuristic(w http.ResponseWriter, req HeuristicRequest, weights *heuristic.Weights) {
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "product_id is required")
		return
	}

	opts := heuristic.Options{
		TopK:     req.TopK,
		MinScore: req.MinScore,
		Weights:  weights,
	}
	if req.Set1Count > 0 || req.Set2Count > 0 || req.Set3Count > 0 {
		opts.Counts = &heuristic.Counts{Tier1: req.Set1Count, Tier2: req.Set2Count, Tier3: req.Set3Count}
	}

	res, err := s.heuristic.Recommend(req.ProductID, opts)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := HeuristicResponse{
		Results:  make([]HeuristicResultDTO, len(res.Recommendations)),
		Metadata: res.Metadata,
	}
	for i := range res.Recommendations {
		resp.Results[i] = heuristicResultToDTO(&res.Recommendations[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// AnalyzeRecommendations handles POST /api/v1/recommend/analyze.
func (s *Server) AnalyzeRecommendations(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "product_id is required")
		return
	}

	analysis, err := s.heuristic.Analyze(req.ProductID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Items:   s.catalog.Len(),
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
