package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agentw/agentw/controllers"
	"agentw/agentw/services/agent"
	"agentw/agentw/sources/psql/models"
	"agentw/agentw/types"
)

type stubStore struct {
	sessions map[string]*models.ChatSession
	records  []models.ChatMessage
	seq      int
}

func newStubStore() *stubStore {
	return &stubStore{sessions: make(map[string]*models.ChatSession)}
}

func (s *stubStore) GetOrCreate(_ context.Context, userAddress string) (*models.Wallet, error) {
	return &models.Wallet{ID: 1, UserAddress: userAddress}, nil
}

func (s *stubStore) Count(_ context.Context) (int64, error) { return 1, nil }

func (s *stubStore) GetByID(_ context.Context, id string) (*models.ChatSession, error) {
	return s.sessions[id], nil
}

func (s *stubStore) Create(_ context.Context, userAddress, title string) (*models.ChatSession, error) {
	s.seq++
	session := &models.ChatSession{
		ID:          fmt.Sprintf("session-%d", s.seq),
		UserAddress: userAddress,
		Title:       title,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.sessions[session.ID] = session
	return session, nil
}

func (s *stubStore) Touch(_ context.Context, id string) error { return nil }

func (s *stubStore) ListByUser(_ context.Context, userAddress string) ([]models.ChatSession, error) {
	var out []models.ChatSession
	for _, session := range s.sessions {
		if session.UserAddress == userAddress {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (s *stubStore) SaveMessage(_ context.Context, userAddress, sessionID, role, message, response string) (*models.ChatMessage, error) {
	s.seq++
	record := models.ChatMessage{
		ID:          fmt.Sprintf("msg-%d", s.seq),
		UserAddress: userAddress,
		SessionID:   sessionID,
		Role:        role,
		Message:     message,
		Response:    response,
		CreatedAt:   time.Now(),
	}
	s.records = append(s.records, record)
	return &record, nil
}

func (s *stubStore) HistoryBySession(_ context.Context, sessionID string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, r := range s.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStore) HistoryByUser(_ context.Context, userAddress, sessionID string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, r := range s.records {
		if r.UserAddress != userAddress {
			continue
		}
		if sessionID != "" && r.SessionID != sessionID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type stubAgent struct {
	response string
}

func (a *stubAgent) IsReady() bool { return true }

func (a *stubAgent) GetWalletAddress() string { return "0xAgent" }

func (a *stubAgent) GenerateResponse(_ context.Context, _ []agent.Message) (io.ReadCloser, error) {
	if a.response == "" {
		return nil, nil
	}
	return io.NopCloser(strings.NewReader(a.response)), nil
}

func newTestRouter(store *stubStore, response string) http.Handler {
	ctrl := controllers.NewChatController(store, store, store, &stubAgent{response: response}, 0)
	return ChatRoutes(ctrl)
}

func TestSessionsRequiresUserAddress(t *testing.T) {
	r := newTestRouter(newStubStore(), "ok")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/sessions", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "User address is required") {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

func TestHistoryRequiresUserAddress(t *testing.T) {
	r := newTestRouter(newStubStore(), "ok")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "User address is required") {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

func TestPostChatValidation(t *testing.T) {
	r := newTestRouter(newStubStore(), "ok")
	for _, payload := range []string{
		`{}`,
		`{"userAddress":"0xA"}`,
		`{"message":"hello"}`,
		`not json`,
	} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", strings.NewReader(payload))
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("payload %q: expected 400, got %d", payload, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Missing required fields: userAddress and message are required") {
			t.Errorf("payload %q: unexpected body %q", payload, rr.Body.String())
		}
	}
}

func TestPostChatHappyPath(t *testing.T) {
	store := newStubStore()
	r := newTestRouter(store, "Hi! Transaction hash: **0xabc123**")

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"userAddress":"0xA","message":"hello"}`))
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp types.ChatResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.SessionID == "" {
		t.Error("expected a session id in the response")
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Type != "assistant" {
		t.Fatalf("unexpected messages %+v", resp.Messages)
	}
	meta := resp.Messages[0].Metadata
	if meta.TransactionHash == nil || *meta.TransactionHash != "0xabc123" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if len(store.records) != 2 {
		t.Errorf("expected two persisted rows, got %d", len(store.records))
	}
}

func TestGetHistoryReturnsAscendingRecords(t *testing.T) {
	store := newStubStore()
	ctx := context.Background()
	session, _ := store.Create(ctx, "0xA", "t")
	store.SaveMessage(ctx, "0xA", session.ID, "user", "hi", "")
	store.SaveMessage(ctx, "0xA", session.ID, "assistant", "hey", "hey")
	r := newTestRouter(store, "ok")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/?userAddress=0xA&sessionId="+session.ID, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var records []models.ChatMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].Message != "hi" || records[1].Message != "hey" {
		t.Errorf("unexpected records %+v", records)
	}
}

func TestListSessions(t *testing.T) {
	store := newStubStore()
	store.Create(context.Background(), "0xA", "first chat")
	r := newTestRouter(store, "ok")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/sessions?userAddress=0xA", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var sessions []models.ChatSession
	if err := json.Unmarshal(rr.Body.Bytes(), &sessions); err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].Title != "first chat" {
		t.Errorf("unexpected sessions %+v", sessions)
	}
}
