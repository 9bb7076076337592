package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coralkit/gitclone-agent/pkg/types"
)

type fakeStarter struct {
	startErr  error
	status    string
	statusErr error
	cancelErr error

	gotReq      types.CheckoutRequest
	cancelledID string
}

func (f *fakeStarter) StartCheckout(_ context.Context, req types.CheckoutRequest) (string, error) {
	f.gotReq = req
	if f.startErr != nil {
		return "", f.startErr
	}
	return "checkout-octocat-hello-world-pr7-abcd1234", nil
}

func (f *fakeStarter) GetCheckoutStatus(_ context.Context, workflowID string) (string, error) {
	return f.status, f.statusErr
}

func (f *fakeStarter) CancelCheckout(_ context.Context, workflowID string) error {
	f.cancelledID = workflowID
	return f.cancelErr
}

func newTestRouter(starter *fakeStarter) chi.Router {
	h := NewHandler(starter, zap.NewNop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestStartCheckout(t *testing.T) {
	starter := &fakeStarter{}
	router := newTestRouter(starter)

	body := `{"repository":"octocat/hello-world","pr_number":7}`
	req := httptest.NewRequest(http.MethodPost, "/checkouts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StartCheckoutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "started", resp.Status)
	assert.NotEmpty(t, resp.WorkflowID)

	assert.Equal(t, "octocat", starter.gotReq.Repository.Owner)
	assert.Equal(t, "hello-world", starter.gotReq.Repository.Name)
	assert.Equal(t, 7, starter.gotReq.PRNumber)
}

func TestStartCheckoutBadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "bad repository name", body: `{"repository":"nope","pr_number":7}`},
		{name: "missing pr number", body: `{"repository":"octocat/hello-world"}`},
		{name: "negative pr number", body: `{"repository":"octocat/hello-world","pr_number":-2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeStarter{})
			req := httptest.NewRequest(http.MethodPost, "/checkouts", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestStartCheckoutInternalError(t *testing.T) {
	starter := &fakeStarter{startErr: fmt.Errorf("temporal unavailable")}
	router := newTestRouter(starter)

	body := `{"repository":"octocat/hello-world","pr_number":7}`
	req := httptest.NewRequest(http.MethodPost, "/checkouts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetCheckoutStatus(t *testing.T) {
	starter := &fakeStarter{status: "Running"}
	router := newTestRouter(starter)

	req := httptest.NewRequest(http.MethodGet, "/checkouts/checkout-octocat-hello-world-pr7-abcd1234", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckoutStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Running", resp.Status)
	assert.Equal(t, "checkout-octocat-hello-world-pr7-abcd1234", resp.WorkflowID)
}

func TestGetCheckoutStatusNotFound(t *testing.T) {
	starter := &fakeStarter{statusErr: fmt.Errorf("workflow not found")}
	router := newTestRouter(starter)

	req := httptest.NewRequest(http.MethodGet, "/checkouts/unknown-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelCheckout(t *testing.T) {
	starter := &fakeStarter{}
	router := newTestRouter(starter)

	req := httptest.NewRequest(http.MethodDelete, "/checkouts/some-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "some-id", starter.cancelledID)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
}
