// agentw/routes/chat.go
package routes

import (
	"encoding/json"
	"net/http"

	"agentw/agentw/controllers"
	"agentw/agentw/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
)

func ChatRoutes(ctrl *controllers.ChatController) chi.Router {
	r := chi.NewRouter()

	// GET /api/chat/sessions : list a user's sessions, newest activity first
	r.Get("/sessions", func(w http.ResponseWriter, r *http.Request) {
		userAddress := r.URL.Query().Get("userAddress")
		if userAddress == "" {
			writeError(w, http.StatusBadRequest, "User address is required")
			return
		}
		sessions, err := ctrl.ListSessions(r.Context(), userAddress)
		if err != nil {
			writeUpstreamError(w, "Failed to fetch chat sessions", err)
			return
		}
		writeJSON(w, http.StatusOK, sessions)
	})

	// GET /api/chat : chat history, ascending, optionally one session
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		userAddress := r.URL.Query().Get("userAddress")
		if userAddress == "" {
			writeError(w, http.StatusBadRequest, "User address is required")
			return
		}
		history, err := ctrl.GetHistory(r.Context(), userAddress, r.URL.Query().Get("sessionId"))
		if err != nil {
			writeUpstreamError(w, "Failed to fetch chat history", err)
			return
		}
		writeJSON(w, http.StatusOK, history)
	})

	// POST /api/chat : one full turn, response buffered before reply
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Missing required fields: userAddress and message are required")
			return
		}
		if req.UserAddress == "" || req.Message == "" {
			writeError(w, http.StatusBadRequest, "Missing required fields: userAddress and message are required")
			return
		}
		resp, err := ctrl.Chat(r.Context(), req)
		if err != nil {
			writeUpstreamError(w, "Failed to process message", err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	// WS /api/chat/ws : same turn pipeline, chunks forwarded as they decode
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var req types.ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}
		if req.UserAddress == "" || req.Message == "" {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"Missing required fields: userAddress and message are required"}`))
			conn.Close(websocket.StatusPolicyViolation, "missing fields")
			return
		}

		sessionID, ch, errCh := ctrl.ChatStream(ctx, req)
		if sessionID != "" {
			frame, _ := json.Marshal(map[string]string{"sessionId": sessionID})
			if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
				return
			}
		}

		go func() {
			if err := <-errCh; err != nil {
				conn.Write(ctx, websocket.MessageText, []byte(`{"error":"`+err.Error()+`"}`))
				conn.Close(websocket.StatusInternalError, "stream error")
			}
		}()

		for chunk := range ch {
			if err := conn.Write(ctx, websocket.MessageText, []byte(chunk)); err != nil {
				return
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})

	return r
}
