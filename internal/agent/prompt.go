package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// systemPrompt builds the agent's standing instructions, embedding a rendered
// catalog of the tools the model may call.
func systemPrompt(agentID string, tools []openai.Tool) string {
	var sb strings.Builder

	sb.WriteString("You are `" + agentID + "`, responsible for cloning a GitHub repository and checking out the branch for a specific pull request. Follow these steps for every message:\n\n")
	sb.WriteString("1. When a mention is received, record the `threadId` and `senderId` from the message.\n")
	sb.WriteString("2. Check if the message asks to check out a pull request with a given repository name and PR number.\n")
	sb.WriteString("3. Extract the repository (owner/repo) and the PR number from the message.\n")
	sb.WriteString("4. Call `" + CheckoutToolName + "` with the extracted repository and PR number.\n")
	sb.WriteString("5. If the call succeeds, use `send_message` to tell the sender the PR was checked out, including the local path.\n")
	sb.WriteString("6. If the call fails, use `send_message` to send the error message to the sender.\n")
	sb.WriteString("7. If the message format is invalid or incomplete, skip it silently and do not call any tool.\n")
	sb.WriteString("8. Do not create threads; always reply on the `threadId` from the mention.\n\n")
	sb.WriteString("Tools:\n")
	sb.WriteString(toolCatalog(tools))

	return sb.String()
}

// toolCatalog renders one "Tool: name, Schema: {...}" line per tool.
func toolCatalog(tools []openai.Tool) string {
	lines := make([]string, 0, len(tools))
	for _, tool := range tools {
		schema, err := json.Marshal(tool.Function.Parameters)
		if err != nil {
			schema = []byte("{}")
		}
		lines = append(lines, fmt.Sprintf("Tool: %s, Schema: %s", tool.Function.Name, schema))
	}
	return strings.Join(lines, "\n")
}
