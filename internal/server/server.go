// Package server is the HTTP boundary. Errors never surface as HTTP
// statuses or diagnostics: missing request fields collapse to the
// sentinel body "-100" and every downstream failure to "-200".
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"raydium-farm-server/internal/domain"
	"raydium-farm-server/internal/liquidity"
	"raydium-farm-server/internal/logger"
	"raydium-farm-server/internal/resolver"
	"raydium-farm-server/internal/status"
)

// Sentinel response bodies.
const (
	sentinelMissingField = "-100"
	sentinelFailure      = "-200"
)

var serverLogger = logger.GetForComponent("http_server")

// StatusService is the /getStatus backend.
type StatusService interface {
	Status(ctx context.Context, pair, wallet string, includePool, includeFarm bool) (*domain.StatusReport, error)
}

// Submitter is the /addLiquidity backend.
type Submitter interface {
	AddLiquidity(ctx context.Context, req liquidity.Request) (*liquidity.Result, error)
}

// Server routes the two endpoints to their backends.
type Server struct {
	router    *mux.Router
	status    StatusService
	market    status.MarketData
	submitter Submitter
}

// New creates a Server and registers its routes.
func New(statusSvc StatusService, market status.MarketData, submitter Submitter) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		status:    statusSvc,
		market:    market,
		submitter: submitter,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.HandleFunc("/getStatus", s.handleGetStatus).Methods(http.MethodPost)
	s.router.HandleFunc("/addLiquidity", s.handleAddLiquidity).Methods(http.MethodPost)
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("0"))
}

// statusRequest is the /getStatus body. Pool and Farm are "1"/other
// toggles for the optional response sections.
type statusRequest struct {
	Wallet string `json:"wallet"`
	Pair   string `json:"pair"`
	Method string `json:"method"`
	Pool   string `json:"pool"`
	Farm   string `json:"farm"`
}

func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Write([]byte(sentinelMissingField))
		return
	}

	if req.Wallet == "" || req.Pair == "" || req.Method == "" || req.Pool == "" || req.Farm == "" {
		w.Write([]byte(sentinelMissingField))
		return
	}

	report, err := s.status.Status(r.Context(), req.Pair, req.Wallet, req.Pool == "1", req.Farm == "1")
	if err != nil {
		serverLogger.Error().Err(err).Str("pair", req.Pair).Msg("status request failed")
		w.Write([]byte(sentinelFailure))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		serverLogger.Error().Err(err).Msg("encode status report")
	}
}

// addLiquidityRequest is the /addLiquidity body. All fields arrive as
// strings; IsBase is a "1"/other toggle.
type addLiquidityRequest struct {
	PrivateKey  string `json:"privateKey"`
	Pair        string `json:"pair"`
	IsBase      string `json:"isBase"`
	Amount      string `json:"amount"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
}

func (s *Server) handleAddLiquidity(w http.ResponseWriter, r *http.Request) {
	var req addLiquidityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Write([]byte(sentinelMissingField))
		return
	}

	if req.PrivateKey == "" || req.Pair == "" || req.IsBase == "" ||
		req.Amount == "" || req.Numerator == "" || req.Denominator == "" {
		w.Write([]byte(sentinelMissingField))
		return
	}

	result, err := s.addLiquidity(r.Context(), req)
	if err != nil {
		serverLogger.Error().Err(err).Str("pair", req.Pair).Msg("add liquidity failed")
		w.Write([]byte(sentinelFailure))
		return
	}

	// Success sends no body; the broadcast outcome is only logged.
	serverLogger.Info().
		Strs("txids", result.TxIDs).
		Str("otherAmount", result.OtherAmount.String()).
		Msg("liquidity submission accepted")
}

func (s *Server) addLiquidity(ctx context.Context, req addLiquidityRequest) (*liquidity.Result, error) {
	wallet, err := liquidity.ParseSecretKey(req.PrivateKey)
	if err != nil {
		return nil, err
	}

	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil {
		return nil, err
	}
	numerator, err := strconv.ParseInt(req.Numerator, 10, 64)
	if err != nil {
		return nil, err
	}
	denominator, err := strconv.ParseInt(req.Denominator, 10, 64)
	if err != nil {
		return nil, err
	}

	snap, err := s.market.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	poolRes, err := resolver.ResolvePool(snap, req.Pair)
	if err != nil {
		return nil, err
	}

	return s.submitter.AddLiquidity(ctx, liquidity.Request{
		Pool:                poolRes,
		Wallet:              wallet,
		BaseSide:            req.IsBase == "1",
		Amount:              amount,
		SlippageNumerator:   numerator,
		SlippageDenominator: denominator,
	})
}
