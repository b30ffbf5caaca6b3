package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ml-explorer/internal/mercadolivre"
)

// QuotaHandler reports the outbound catalog call budget.
type QuotaHandler struct {
	rl *mercadolivre.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler. rl may be nil when rate
// limiting is disabled.
func NewQuotaHandler(rl *mercadolivre.RateLimiter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		Budget    int64      `json:"budget"             example:"5000"                 doc:"Configured calls per window, 0 when unlimited"`
		Used      int64      `json:"used"               example:"142"                  doc:"Calls made in the current window"`
		Remaining int64      `json:"remaining"          example:"4858"                 doc:"Calls left in the current window, -1 when unlimited"`
		ResetAt   *time.Time `json:"reset_at,omitempty" example:"2026-06-16T14:30:00Z" doc:"When the current window ends"`
	}
}

// GetQuota returns the current call budget status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	if h.rl == nil {
		resp.Body.Remaining = -1
		return resp, nil
	}

	resetAt := h.rl.ResetAt()
	resp.Body.Budget = h.rl.Budget()
	resp.Body.Used = h.rl.Used()
	resp.Body.Remaining = h.rl.Remaining()
	resp.Body.ResetAt = &resetAt
	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get marketplace call quota",
		Description: "Returns the outbound catalog call usage, remaining budget and window reset time.",
		Tags:        []string{"catalog"},
	}, h.GetQuota)
}
