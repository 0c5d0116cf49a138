package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ahmeed2051/onilne-mono-tracking/internal/config"
	"github.com/ahmeed2051/onilne-mono-tracking/internal/services/ledger"
)

// NewServer creates a configured *http.Server for the ledger API.
func NewServer(cfg config.ServerConfig, store *ledger.Store, metricsEnabled bool) *http.Server {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(store, metricsEnabled),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
