package agent

import (
	"regexp"
	"strings"

	"agentw/agentw/types"
)

// Marker syntax the agent embeds in its prose. The scans are independent;
// any subset can match.
var (
	txHashPattern     = regexp.MustCompile(`Transaction hash: \*\*([0-9a-fx]+)\*\*`)
	positionIDPattern = regexp.MustCompile(`Position ID: \*\*(\d+)\*\*`)
)

var errorIndicators = []string{"error", "failed", "cannot"}

func ExtractMetadata(text string) types.MessageMetadata {
	var meta types.MessageMetadata

	if m := txHashPattern.FindStringSubmatch(text); m != nil {
		meta.TransactionHash = &m[1]
	}
	if m := positionIDPattern.FindStringSubmatch(text); m != nil {
		meta.PositionID = &m[1]
	}

	lower := strings.ToLower(text)
	for _, indicator := range errorIndicators {
		if strings.Contains(lower, indicator) {
			meta.HasError = true
			break
		}
	}

	meta.ToolsUsed = strings.Contains(text, "**Tool:")
	return meta
}
