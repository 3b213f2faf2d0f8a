package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	hc := NewHealthController(newFakeWallets(), &fakeAgent{ready: true, wallet: "0xAgent"}, "postgres://host/db")
	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	hc.HealthCheck(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %v", rr.Header().Get("Content-Type"))
	}

	var body struct {
		Status        string  `json:"status"`
		AgentReady    bool    `json:"agentReady"`
		WalletAddress *string `json:"walletAddress"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || !body.AgentReady {
		t.Errorf("unexpected body %+v", body)
	}
	if body.WalletAddress == nil || *body.WalletAddress != "0xAgent" {
		t.Errorf("unexpected wallet address %v", body.WalletAddress)
	}
}

func TestDebugReportsWalletCount(t *testing.T) {
	wallets := newFakeWallets()
	wallets.GetOrCreate(httptest.NewRequest("GET", "/", nil).Context(), "0xA")
	hc := NewHealthController(wallets, &fakeAgent{}, "postgres://host/db")

	rr := httptest.NewRecorder()
	hc.Debug(rr, httptest.NewRequest("GET", "/debug", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Status      string `json:"status"`
		WalletCount int64  `json:"walletCount"`
		AgentStatus string `json:"agentStatus"`
		DatabaseURL string `json:"databaseUrl"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.WalletCount != 1 {
		t.Errorf("unexpected body %+v", body)
	}
	if body.AgentStatus != "initializing" {
		t.Errorf("agent without profile should be initializing, got %q", body.AgentStatus)
	}
	if body.DatabaseURL != "postgres://host/db" {
		t.Errorf("unexpected database url %q", body.DatabaseURL)
	}
}

func TestAgentStatus(t *testing.T) {
	ctrl := NewAgentController(&fakeAgent{ready: true, wallet: "0xAgent"}, "MAINNET")
	status := ctrl.Status()
	if status.Status != "ok" || !status.AgentReady || status.Network != "MAINNET" {
		t.Errorf("unexpected status %+v", status)
	}
	if status.WalletAddress == nil || *status.WalletAddress != "0xAgent" {
		t.Errorf("unexpected wallet address %v", status.WalletAddress)
	}

	// Unset wallet address serializes as null, not "".
	status = NewAgentController(&fakeAgent{}, "MAINNET").Status()
	if status.WalletAddress != nil {
		t.Errorf("expected nil wallet address, got %v", status.WalletAddress)
	}
}
