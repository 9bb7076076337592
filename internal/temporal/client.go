package temporal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/coralkit/gitclone-agent/internal/temporal/workflows"
	"github.com/coralkit/gitclone-agent/pkg/types"
)

// Client wraps Temporal client functionality for checkout workflows.
type Client struct {
	temporalClient client.Client
	logger         *zap.Logger
	taskQueue      string
}

// NewClient creates a new Temporal client.
func NewClient(address, namespace, taskQueue string, logger *zap.Logger) (*Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  address,
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create temporal client: %w", err)
	}

	return &Client{
		temporalClient: c,
		logger:         logger,
		taskQueue:      taskQueue,
	}, nil
}

// StartCheckout starts a checkout workflow and returns its workflow ID
// without waiting for the result.
func (c *Client) StartCheckout(ctx context.Context, req types.CheckoutRequest) (string, error) {
	run, err := c.startWorkflow(ctx, req)
	if err != nil {
		return "", err
	}
	return run.GetID(), nil
}

// CheckoutPullRequest starts a checkout workflow and waits for the result.
// This is the synchronous path used by the agent's checkout tool.
func (c *Client) CheckoutPullRequest(ctx context.Context, req types.CheckoutRequest) (*types.CheckoutResult, error) {
	run, err := c.startWorkflow(ctx, req)
	if err != nil {
		return nil, err
	}

	var result types.CheckoutResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("checkout workflow failed: %w", err)
	}
	return &result, nil
}

func (c *Client) startWorkflow(ctx context.Context, req types.CheckoutRequest) (client.WorkflowRun, error) {
	workflowID := fmt.Sprintf("checkout-%s-%s-pr%d-%s",
		req.Repository.Owner, req.Repository.Name, req.PRNumber, uuid.NewString()[:8])

	workflowOptions := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: c.taskQueue,
	}

	input := workflows.CheckoutWorkflowInput{Request: req}

	run, err := c.temporalClient.ExecuteWorkflow(ctx, workflowOptions, workflows.CheckoutWorkflow, input)
	if err != nil {
		return nil, fmt.Errorf("failed to start checkout workflow: %w", err)
	}

	c.logger.Info("started checkout workflow",
		zap.String("workflow_id", run.GetID()),
		zap.String("run_id", run.GetRunID()),
		zap.String("repository", req.Repository.FullName()),
		zap.Int("pr_number", req.PRNumber),
	)

	return run, nil
}

// GetCheckoutStatus returns the execution status of a checkout workflow.
func (c *Client) GetCheckoutStatus(ctx context.Context, workflowID string) (string, error) {
	resp, err := c.temporalClient.DescribeWorkflowExecution(ctx, workflowID, "")
	if err != nil {
		return "", fmt.Errorf("failed to describe workflow: %w", err)
	}

	status := resp.GetWorkflowExecutionInfo().GetStatus()
	if status == enumspb.WORKFLOW_EXECUTION_STATUS_UNSPECIFIED {
		return "unknown", nil
	}
	return status.String(), nil
}

// CancelCheckout cancels a running checkout workflow.
func (c *Client) CancelCheckout(ctx context.Context, workflowID string) error {
	return c.temporalClient.CancelWorkflow(ctx, workflowID, "")
}

// Close closes the Temporal client.
func (c *Client) Close() {
	c.temporalClient.Close()
}
