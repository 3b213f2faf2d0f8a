// agentw/types/chat.go
package types

type ChatRequest struct {
	UserAddress string `json:"userAddress"`
	Message     string `json:"message"`
	Role        string `json:"role,omitempty"`
	SessionID   string `json:"sessionId,omitempty"`
}

// MessageMetadata carries the structured signals scanned out of the model's
// free-form text. The pointer fields serialize as null when absent.
type MessageMetadata struct {
	TransactionHash *string `json:"transactionHash"`
	PositionID      *string `json:"positionId"`
	HasError        bool    `json:"hasError"`
	ToolsUsed       bool    `json:"toolsUsed"`
}

type ResponseMessage struct {
	ID       string          `json:"id"`
	Text     string          `json:"text"`
	Type     string          `json:"type"`
	Metadata MessageMetadata `json:"metadata"`
}

type ChatResponse struct {
	Messages  []ResponseMessage `json:"messages"`
	SessionID string            `json:"sessionId"`
}

type AgentStatus struct {
	Status        string  `json:"status"`
	AgentReady    bool    `json:"agentReady"`
	WalletAddress *string `json:"walletAddress"`
	Network       string  `json:"network"`
}
