package controllers

import (
	"encoding/json"
	"net/http"
)

// HealthController serves the liveness and database diagnostics endpoints.
type HealthController struct {
	wallets WalletStore
	agent   Generator
	// databaseURL is already redacted; the full connection string never
	// enters this struct.
	databaseURL string
}

func NewHealthController(wallets WalletStore, generator Generator, redactedDatabaseURL string) *HealthController {
	return &HealthController{wallets: wallets, agent: generator, databaseURL: redactedDatabaseURL}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var walletAddress *string
	if addr := h.agent.GetWalletAddress(); addr != "" {
		walletAddress = &addr
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":        "ok",
		"agentReady":    h.agent.IsReady(),
		"walletAddress": walletAddress,
	})
}

func (h *HealthController) Debug(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	count, err := h.wallets.Count(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "error",
			"message": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}

	agentStatus := "initializing"
	if h.agent.IsReady() {
		agentStatus = "ready"
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "ok",
		"message":     "Database connection successful",
		"walletCount": count,
		"agentStatus": agentStatus,
		"databaseUrl": h.databaseURL,
	})
}
