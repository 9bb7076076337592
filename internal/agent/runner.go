package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/coralkit/gitclone-agent/pkg/types"
)

// defaultMaxIterations bounds the tool-call conversation for one mention.
const defaultMaxIterations = 8

// CheckoutService performs the actual clone-and-checkout work.
type CheckoutService interface {
	CheckoutPullRequest(ctx context.Context, req types.CheckoutRequest) (*types.CheckoutResult, error)
}

// CoralSession is the slice of the Coral client the runner needs.
type CoralSession interface {
	Tools() []mcp.Tool
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

// chatCompleter is the slice of the OpenAI client the runner needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Runner drives the model over each incoming mention, executing the tool
// calls it requests until it produces a final answer.
type Runner struct {
	llm           chatCompleter
	model         string
	agentID       string
	coral         CoralSession
	checkout      CheckoutService
	logger        *zap.Logger
	maxIterations int
}

// NewRunner creates a new agent runner.
func NewRunner(llm *openai.Client, model, agentID string, coral CoralSession, checkout CheckoutService, logger *zap.Logger) *Runner {
	return &Runner{
		llm:           llm,
		model:         model,
		agentID:       agentID,
		coral:         coral,
		checkout:      checkout,
		logger:        logger,
		maxIterations: defaultMaxIterations,
	}
}

// Start consumes mentions until the context is cancelled. A failed mention is
// logged and the loop continues with the next one.
func (r *Runner) Start(ctx context.Context, mentions <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload := <-mentions:
			if err := r.HandleMention(ctx, payload); err != nil {
				r.logger.Error("failed to handle mention", zap.Error(err))
			}
		}
	}
}

// HandleMention runs one tool-call conversation for a mention payload.
func (r *Runner) HandleMention(ctx context.Context, payload string) error {
	toolset, err := r.toolset()
	if err != nil {
		return err
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(r.agentID, toolset)},
		{Role: openai.ChatMessageRoleUser, Content: payload},
	}

	for i := 0; i < r.maxIterations; i++ {
		resp, err := r.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    r.model,
			Messages: messages,
			Tools:    toolset,
		})
		if err != nil {
			return fmt.Errorf("failed to create chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no response from model")
		}

		msg := resp.Choices[0].Message
		messages = append(messages, msg)

		if len(msg.ToolCalls) == 0 {
			r.logger.Info("mention handled", zap.Int("turns", i+1))
			return nil
		}

		for _, call := range msg.ToolCalls {
			output := r.executeToolCall(ctx, call)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    output,
				Name:       call.Function.Name,
				ToolCallID: call.ID,
			})
		}
	}

	return fmt.Errorf("mention not resolved within %d turns", r.maxIterations)
}

// executeToolCall dispatches one tool call. Failures are reported as tool
// output so the model can relay them to the sender.
func (r *Runner) executeToolCall(ctx context.Context, call openai.ToolCall) string {
	r.logger.Info("executing tool call",
		zap.String("tool", call.Function.Name),
		zap.String("arguments", call.Function.Arguments),
	)

	if call.Function.Name == CheckoutToolName {
		return r.executeCheckout(ctx, call.Function.Arguments)
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return fmt.Sprintf("Error: invalid arguments for %s: %v", call.Function.Name, err)
	}

	output, err := r.coral.CallTool(ctx, call.Function.Name, args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return output
}

func (r *Runner) executeCheckout(ctx context.Context, rawArgs string) string {
	var args CheckoutArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return fmt.Sprintf("Error: invalid checkout arguments: %v", err)
	}

	repo, err := types.ParseRepositoryRef(args.RepoFullName)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if args.PRNumber <= 0 {
		return fmt.Sprintf("Error: invalid pull request number %d", args.PRNumber)
	}

	result, err := r.checkout.CheckoutPullRequest(ctx, types.CheckoutRequest{
		Repository: repo,
		PRNumber:   args.PRNumber,
	})
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	return fmt.Sprintf("Checked out pull request #%d of %s at %s (branch %s, head %s)",
		args.PRNumber, repo.FullName(), result.RepoPath, result.Branch, result.HeadSHA)
}

// toolset is the full tool surface offered to the model.
func (r *Runner) toolset() ([]openai.Tool, error) {
	checkoutTool, err := checkoutToolDefinition()
	if err != nil {
		return nil, err
	}
	return append([]openai.Tool{checkoutTool}, coralToolDefinitions(r.coral.Tools())...), nil
}
