package agent

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sashabaranov/go-openai"
)

// CheckoutToolName is the local tool the model calls to clone a repository
// and check out a pull request branch.
const CheckoutToolName = "checkout_github_pr"

// CheckoutArgs are the arguments of the checkout_github_pr tool.
type CheckoutArgs struct {
	RepoFullName string `json:"repo_full_name" jsonschema:"description=GitHub repository in the format owner/repo"`
	PRNumber     int    `json:"pr_number" jsonschema:"description=Pull request number"`
}

// checkoutToolDefinition builds the OpenAI tool definition for the local
// checkout tool, with its parameter schema reflected from CheckoutArgs.
func checkoutToolDefinition() (openai.Tool, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema, err := json.Marshal(reflector.Reflect(&CheckoutArgs{}))
	if err != nil {
		return openai.Tool{}, fmt.Errorf("failed to marshal checkout tool schema: %w", err)
	}

	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        CheckoutToolName,
			Description: "Clone a GitHub repository and check out the branch associated with a specific pull request. Returns the absolute path to the local checkout.",
			Parameters:  json.RawMessage(schema),
		},
	}, nil
}

// coralToolDefinitions converts the Coral coordination tools to OpenAI tool
// definitions. wait_for_mentions is excluded, the runner drives it directly.
func coralToolDefinitions(tools []mcp.Tool) []openai.Tool {
	var defs []openai.Tool
	for _, tool := range tools {
		if tool.Name == "wait_for_mentions" {
			continue
		}
		defs = append(defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.InputSchema,
			},
		})
	}
	return defs
}
