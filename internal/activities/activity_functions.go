package activities

import (
	"context"

	"github.com/coralkit/gitclone-agent/pkg/types"
)

// Activity functions registered with the Temporal worker. These are wrapper
// functions that call the actual activity implementations bound at startup.

var checkoutActivities *CheckoutActivities

// SetCheckoutActivities sets the checkout activities implementation.
func SetCheckoutActivities(ca *CheckoutActivities) {
	checkoutActivities = ca
}

// ValidatePullRequestActivity is the activity function for validating pull requests.
func ValidatePullRequestActivity(ctx context.Context, req types.CheckoutRequest) (ValidationResult, error) {
	if checkoutActivities == nil {
		return ValidationResult{Success: false, Message: "checkout activities not initialized"}, nil
	}
	return checkoutActivities.ValidatePullRequestActivity(ctx, req)
}

// CheckoutPullRequestActivity is the activity function for checking out pull requests.
func CheckoutPullRequestActivity(ctx context.Context, req types.CheckoutRequest) (CheckoutOperationResult, error) {
	if checkoutActivities == nil {
		return CheckoutOperationResult{Success: false, Message: "checkout activities not initialized"}, nil
	}
	return checkoutActivities.CheckoutPullRequestActivity(ctx, req)
}
