// agentw/controllers/chat.go
package controllers

import (
	"context"
	"io"
	"strings"

	"agentw/agentw/services/agent"
	"agentw/agentw/sources/psql/models"
	"agentw/agentw/types"
	"agentw/agentw/utils/logging"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"

	sessionTitleLimit = 30

	// FallbackResponse is persisted verbatim when the agent returns no body.
	FallbackResponse = "The agent could not generate a response at this time."
)

type ChatController struct {
	wallets  WalletStore
	sessions SessionStore
	messages MessageStore
	agent    Generator
	// maxTurns caps how many prior records enter the context; 0 = no limit.
	maxTurns int
}

func NewChatController(wallets WalletStore, sessions SessionStore, messages MessageStore, generator Generator, maxTurns int) *ChatController {
	return &ChatController{
		wallets:  wallets,
		sessions: sessions,
		messages: messages,
		agent:    generator,
		maxTurns: maxTurns,
	}
}

// Chat runs one full turn: wallet, session, context, agent stream, marker
// scan, persistence. The whole response is buffered before anything is
// written back, so a failed agent call after session creation leaves an
// orphan session with zero turns.
func (c *ChatController) Chat(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
	defer logging.LogDuration(ctx, "chat_turn")()

	if _, err := c.wallets.GetOrCreate(ctx, req.UserAddress); err != nil {
		return nil, err
	}

	sessionID, err := c.resolveSession(ctx, req.SessionID, req.UserAddress, req.Message)
	if err != nil {
		return nil, err
	}

	contextMsgs, err := c.buildContext(ctx, sessionID, req.Role, req.Message)
	if err != nil {
		return nil, err
	}

	body, err := c.agent.GenerateResponse(ctx, contextMsgs)
	if err != nil {
		return nil, err
	}
	responseText, err := readResponse(body)
	if err != nil {
		return nil, err
	}

	if _, err := c.messages.SaveMessage(ctx, req.UserAddress, sessionID, roleUser, req.Message, ""); err != nil {
		return nil, err
	}
	assistantMsg, err := c.messages.SaveMessage(ctx, req.UserAddress, sessionID, roleAssistant, responseText, responseText)
	if err != nil {
		return nil, err
	}

	return &types.ChatResponse{
		Messages: []types.ResponseMessage{
			{
				ID:       assistantMsg.ID,
				Text:     responseText,
				Type:     roleAssistant,
				Metadata: agent.ExtractMetadata(responseText),
			},
		},
		SessionID: sessionID,
	}, nil
}

// ChatStream is the websocket variant: identical pipeline, but decoded
// chunks are forwarded as they arrive. Persistence happens once the stream
// ends, exactly as in Chat.
func (c *ChatController) ChatStream(ctx context.Context, req types.ChatRequest) (string, <-chan string, <-chan error) {
	ch := make(chan string)
	errCh := make(chan error, 1)

	fail := func(err error) (string, <-chan string, <-chan error) {
		errCh <- err
		close(ch)
		close(errCh)
		return "", ch, errCh
	}

	if _, err := c.wallets.GetOrCreate(ctx, req.UserAddress); err != nil {
		return fail(err)
	}
	sessionID, err := c.resolveSession(ctx, req.SessionID, req.UserAddress, req.Message)
	if err != nil {
		return fail(err)
	}
	contextMsgs, err := c.buildContext(ctx, sessionID, req.Role, req.Message)
	if err != nil {
		return fail(err)
	}
	body, err := c.agent.GenerateResponse(ctx, contextMsgs)
	if err != nil {
		return fail(err)
	}

	go func() {
		defer close(ch)
		defer close(errCh)

		var full strings.Builder
		if body == nil {
			full.WriteString(FallbackResponse)
			select {
			case ch <- FallbackResponse:
			case <-ctx.Done():
				return
			}
		} else {
			defer body.Close()
			var dec agent.Decoder
			buf := make([]byte, 4096)
			for {
				n, rerr := body.Read(buf)
				if n > 0 {
					if piece := dec.Decode(buf[:n]); piece != "" {
						full.WriteString(piece)
						select {
						case ch <- piece:
						case <-ctx.Done():
							return
						}
					}
				}
				if rerr == io.EOF {
					break
				}
				if rerr != nil {
					errCh <- rerr
					return
				}
			}
			if tail := dec.Flush(); tail != "" {
				full.WriteString(tail)
				select {
				case ch <- tail:
				case <-ctx.Done():
					return
				}
			}
		}

		text := full.String()
		if _, err := c.messages.SaveMessage(ctx, req.UserAddress, sessionID, roleUser, req.Message, ""); err != nil {
			errCh <- err
			return
		}
		if _, err := c.messages.SaveMessage(ctx, req.UserAddress, sessionID, roleAssistant, text, text); err != nil {
			errCh <- err
		}
	}()

	return sessionID, ch, errCh
}

func (c *ChatController) ListSessions(ctx context.Context, userAddress string) ([]models.ChatSession, error) {
	if _, err := c.wallets.GetOrCreate(ctx, userAddress); err != nil {
		return nil, err
	}
	sessions, err := c.sessions.ListByUser(ctx, userAddress)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []models.ChatSession{}
	}
	return sessions, nil
}

func (c *ChatController) GetHistory(ctx context.Context, userAddress, sessionID string) ([]models.ChatMessage, error) {
	if _, err := c.wallets.GetOrCreate(ctx, userAddress); err != nil {
		return nil, err
	}
	history, err := c.messages.HistoryByUser(ctx, userAddress, sessionID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []models.ChatMessage{}
	}
	return history, nil
}

// resolveSession validates a supplied session id, refreshing its activity
// timestamp when it resolves. A missing or stale id yields a fresh session
// titled from the first message. Ownership is not cross-checked: any
// resolvable id is accepted regardless of which wallet supplied it.
func (c *ChatController) resolveSession(ctx context.Context, sessionID, userAddress, firstMessage string) (string, error) {
	if sessionID != "" {
		existing, err := c.sessions.GetByID(ctx, sessionID)
		if err != nil {
			return "", err
		}
		if existing != nil {
			if err := c.sessions.Touch(ctx, sessionID); err != nil {
				return "", err
			}
			return sessionID, nil
		}
	}
	session, err := c.sessions.Create(ctx, userAddress, deriveTitle(firstMessage))
	if err != nil {
		return "", err
	}
	return session.ID, nil
}

func deriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= sessionTitleLimit {
		return message
	}
	return string(runes[:sessionTitleLimit]) + "..."
}

// buildContext loads the session's records ascending and tags each with a
// role, then appends the incoming turn. No deduplication or summarization;
// the only shaping is the optional window cap.
func (c *ChatController) buildContext(ctx context.Context, sessionID, role, message string) ([]agent.Message, error) {
	history, err := c.messages.HistoryBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.maxTurns > 0 && len(history) > c.maxTurns {
		history = history[len(history)-c.maxTurns:]
	}

	msgs := make([]agent.Message, 0, len(history)+1)
	for _, record := range history {
		msgs = append(msgs, agent.Message{Role: inferRole(record), Content: record.Message})
	}
	if role == "" {
		role = roleUser
	}
	msgs = append(msgs, agent.Message{Role: role, Content: message})
	return msgs, nil
}

// inferRole prefers the stored role column. Rows written before the column
// existed fall back to the message/response equality heuristic, which
// misreads a user message that exactly echoes the assistant's previous
// reply. Known limitation of the legacy encoding, kept for those rows only.
func inferRole(record models.ChatMessage) string {
	if record.Role != "" {
		return record.Role
	}
	if record.Message == record.Response {
		return roleAssistant
	}
	return roleUser
}

// readResponse drains the agent's stream through the stateful decoder. A
// nil body is the no-response case and yields the fallback text.
func readResponse(body io.ReadCloser) (string, error) {
	if body == nil {
		return FallbackResponse, nil
	}
	defer body.Close()

	var sb strings.Builder
	var dec agent.Decoder
	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			sb.WriteString(dec.Decode(buf[:n]))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	sb.WriteString(dec.Flush())
	return sb.String(), nil
}
