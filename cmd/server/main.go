// Package main runs the farm status server: two POST endpoints backed by
// the Raydium market-data API and a Solana RPC node.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"raydium-farm-server/internal/liquidity"
	"raydium-farm-server/internal/logger"
	"raydium-farm-server/internal/raydium"
	"raydium-farm-server/internal/server"
	"raydium-farm-server/internal/solana"
	"raydium-farm-server/internal/status"
)

func main() {
	// Load .env file if exists; system env vars win.
	_ = godotenv.Load()

	port := flag.String("port", envOr("APP_PORT", "5000"), "HTTP listen port")
	rpcEndpoint := flag.String("rpc-endpoint", envOr("SOLANA_RPC_ENDPOINT", "https://api.mainnet-beta.solana.com"), "Solana RPC HTTP endpoint")
	apiEndpoint := flag.String("api-endpoint", envOr("RAYDIUM_API_ENDPOINT", raydium.DefaultEndpoint), "Raydium market-data API endpoint")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	prettyLog := flag.Bool("pretty-log", false, "Human-readable console logging")

	flag.Parse()

	logger.Initialize(*logLevel, *prettyLog)
	log := logger.GetForComponent("main")

	rpc := solana.NewHTTPClient(*rpcEndpoint)
	market := raydium.NewClient(*apiEndpoint)
	statusSvc := status.NewService(market, rpc)
	submitter := liquidity.NewSubmitter(rpc)

	srv := &http.Server{
		Addr:    ":" + *port,
		Handler: server.New(statusSvc, market, submitter).Handler(),
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", *port).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
