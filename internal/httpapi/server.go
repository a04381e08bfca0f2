// Package httpapi serves address validation and transaction summaries over JSON HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goodnatureofminers/multichain-client/internal/summarizer"
	"github.com/goodnatureofminers/multichain-client/internal/telemetry"
	"github.com/goodnatureofminers/multichain-client/pkg/address"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const (
	defaultMaxBatch = 100
	maxBodyBytes    = 4 << 20
)

type Options struct {
	MaxBatch int
}

type Server struct {
	summarizer Summarizer
	metrics    Metrics
	logger     *zap.Logger
	validate   *validator.Validate
	maxBatch   int
}

func NewServer(s Summarizer, metrics Metrics, logger *zap.Logger, opts Options) *Server {
	if opts.MaxBatch <= 0 {
		opts.MaxBatch = defaultMaxBatch
	}
	return &Server{
		summarizer: s,
		metrics:    metrics,
		logger:     logger.Named("httpapi"),
		validate:   validator.New(),
		maxBatch:   opts.MaxBatch,
	}
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.route(mux, "GET /healthz", s.handleHealth)
	s.route(mux, "GET /v1/addresses/{chain}/{address}", s.handleAddress)
	s.route(mux, "POST /v1/summaries", s.handleSummary)
	s.route(mux, "POST /v1/summaries/batch", s.handleSummaryBatch)
	mux.Handle("GET /metrics", promhttp.Handler())
	return cors.Default().Handler(mux)
}

func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, telemetry.Middleware(pattern, s.observe(pattern, h)))
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) observe(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		h(sw, r)
		s.metrics.Observe(route, sw.code, started)
	}
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type addressResponse struct {
	Chain            chain.Chain  `json:"chain"`
	Address          string       `json:"address"`
	Valid            bool         `json:"valid"`
	Type             address.Type `json:"type"`
	Mainnet          bool         `json:"mainnet"`
	StandardizedHash string       `json:"standardizedHash,omitempty"`
}

func (s *Server) handleAddress(w http.ResponseWriter, r *http.Request) {
	c, err := chain.Parse(r.PathValue("chain"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	addr, err := address.New(c, r.PathValue("address"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := addressResponse{
		Chain:   c,
		Address: addr.Text(),
		Valid:   addr.IsValid(),
		Type:    addr.Type(),
		Mainnet: addr.IsMainnet(),
	}
	if hash, err := addr.StandardizedHash(); err == nil {
		resp.StandardizedHash = hash.Hex()
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req summarizer.Request
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.normalize(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.summarizer.Summarize(r.Context(), req)
	if err != nil {
		s.logger.Warn("summarize failed", zap.String("chain", string(req.Chain)), zap.Error(err))
		respondError(w, http.StatusBadGateway, "summarize failed")
		return
	}
	status := http.StatusOK
	if result.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, result)
}

type batchRequest struct {
	Requests []summarizer.Request `json:"requests"`
}

type batchResponse struct {
	Results []summarizer.Result `json:"results"`
}

func (s *Server) handleSummaryBatch(w http.ResponseWriter, r *http.Request) {
	var body batchRequest
	if err := decodeBody(w, r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(body.Requests) == 0 || len(body.Requests) > s.maxBatch {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("batch must hold 1 to %d requests", s.maxBatch))
		return
	}
	for i := range body.Requests {
		if err := s.normalize(&body.Requests[i]); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("request %d: %v", i, err))
			return
		}
	}

	results, err := s.summarizer.SummarizeBatch(r.Context(), body.Requests)
	if err != nil {
		s.logger.Warn("summarize batch failed", zap.Int("requests", len(body.Requests)), zap.Error(err))
		respondError(w, http.StatusBadGateway, "summarize failed")
		return
	}
	respondJSON(w, http.StatusOK, batchResponse{Results: results})
}

// normalize canonicalizes chain and network aliases and validates the request.
func (s *Server) normalize(req *summarizer.Request) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}
	c, err := chain.Parse(string(req.Chain))
	if err != nil {
		return err
	}
	network, err := chain.ParseNetwork(string(req.Network))
	if err != nil {
		return err
	}
	req.Chain, req.Network = c, network
	return nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
