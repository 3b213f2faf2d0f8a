package controllers

import "agentw/agentw/types"

type AgentController struct {
	agent   Generator
	network string
}

func NewAgentController(generator Generator, network string) *AgentController {
	return &AgentController{agent: generator, network: network}
}

func (c *AgentController) Status() types.AgentStatus {
	var walletAddress *string
	if addr := c.agent.GetWalletAddress(); addr != "" {
		walletAddress = &addr
	}
	return types.AgentStatus{
		Status:        "ok",
		AgentReady:    c.agent.IsReady(),
		WalletAddress: walletAddress,
		Network:       c.network,
	}
}
