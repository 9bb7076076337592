package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/coralkit/gitclone-agent/pkg/types"
)

// CheckoutStarter starts and manages checkout workflows.
type CheckoutStarter interface {
	StartCheckout(ctx context.Context, req types.CheckoutRequest) (string, error)
	GetCheckoutStatus(ctx context.Context, workflowID string) (string, error)
	CancelCheckout(ctx context.Context, workflowID string) error
}

// Handler handles REST API requests.
type Handler struct {
	starter CheckoutStarter
	logger  *zap.Logger
}

// NewHandler creates a new REST handler.
func NewHandler(starter CheckoutStarter, logger *zap.Logger) *Handler {
	return &Handler{
		starter: starter,
		logger:  logger,
	}
}

// StartCheckoutRequest represents a request to check out a pull request.
type StartCheckoutRequest struct {
	Repository string `json:"repository"`
	PRNumber   int    `json:"pr_number"`
}

// StartCheckoutResponse represents the response from starting a checkout.
type StartCheckoutResponse struct {
	WorkflowID string `json:"workflow_id"`
	Status     string `json:"status"`
}

// CheckoutStatusResponse represents the checkout workflow status.
type CheckoutStatusResponse struct {
	WorkflowID string `json:"workflow_id"`
	Status     string `json:"status"`
}

// StartCheckout handles POST /checkouts
func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var req StartCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	repo, err := types.ParseRepositoryRef(req.Repository)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PRNumber <= 0 {
		http.Error(w, "pr_number must be positive", http.StatusBadRequest)
		return
	}

	workflowID, err := h.starter.StartCheckout(r.Context(), types.CheckoutRequest{
		Repository: repo,
		PRNumber:   req.PRNumber,
	})
	if err != nil {
		h.logger.Error("failed to start checkout", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := StartCheckoutResponse{
		WorkflowID: workflowID,
		Status:     "started",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetCheckoutStatus handles GET /checkouts/{id}
func (h *Handler) GetCheckoutStatus(w http.ResponseWriter, r *http.Request) {
	workflowID := chi.URLParam(r, "id")

	status, err := h.starter.GetCheckoutStatus(r.Context(), workflowID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	resp := CheckoutStatusResponse{
		WorkflowID: workflowID,
		Status:     status,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// CancelCheckout handles DELETE /checkouts/{id}
func (h *Handler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	workflowID := chi.URLParam(r, "id")

	if err := h.starter.CancelCheckout(r.Context(), workflowID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"success": true}`))
}

// RegisterRoutes registers REST API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/checkouts", h.StartCheckout)
	r.Get("/checkouts/{id}", h.GetCheckoutStatus)
	r.Delete("/checkouts/{id}", h.CancelCheckout)
}
