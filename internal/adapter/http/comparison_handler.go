package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/simaogato/yieldcompare-backend/internal/domain"
	"github.com/simaogato/yieldcompare-backend/internal/usecase/report"
)

// Comparer is the part of the comparison service the handler needs
type Comparer interface {
	Compare(ctx context.Context, input domain.CalculationInput) (*domain.Comparison, error)
	Options() domain.FormOptions
}

type compareRequest struct {
	TreasuryYieldPct *float64 `json:"treasury_yield_pct"`
	CDYieldPct       *float64 `json:"cd_yield_pct"`
	FederalBracket   string   `json:"federal_bracket"`
	State            string   `json:"state"`
	IncomeBracket    string   `json:"income_bracket"`
}

type compareResponse struct {
	ID                  string            `json:"id"`
	AfterTaxTreasuryPct float64           `json:"after_tax_treasury_pct"`
	AfterTaxCDPct       float64           `json:"after_tax_cd_pct"`
	CDPremiumPct        float64           `json:"cd_premium_pct"`
	Recommendation      string            `json:"recommendation"`
	RecommendationLabel string            `json:"recommendation_label"`
	Display             map[string]string `json:"display"`
	ComputedAt          time.Time         `json:"computed_at"`
}

type optionsResponse struct {
	FederalBrackets []string `json:"federal_brackets"`
	States          []string `json:"states"`
	IncomeBrackets  []string `json:"income_brackets"`
	YieldMinPct     float64  `json:"yield_min_pct"`
	YieldMaxPct     float64  `json:"yield_max_pct"`
	YieldStepPct    float64  `json:"yield_step_pct"`
}

type ComparisonHandler struct {
	service Comparer
	logger  *zap.Logger
}

func NewComparisonHandler(service Comparer, logger *zap.Logger) *ComparisonHandler {
	return &ComparisonHandler{service: service, logger: logger}
}

// Compare handles POST /compare
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var req compareRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.logger.Debug("invalid compare request body", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.TreasuryYieldPct == nil || req.CDYieldPct == nil {
		http.Error(w, "treasury_yield_pct and cd_yield_pct are required", http.StatusBadRequest)
		return
	}

	cmp, err := h.service.Compare(r.Context(), domain.CalculationInput{
		TreasuryYieldPct: *req.TreasuryYieldPct,
		CDYieldPct:       *req.CDYieldPct,
		FederalBracket:   req.FederalBracket,
		State:            req.State,
		IncomeBracket:    domain.IncomeBracket(req.IncomeBracket),
	})
	if err != nil {
		if errors.Is(err, domain.ErrYieldOutOfRange) || errors.Is(err, domain.ErrUnknownCategory) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("comparison failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Debug("comparison computed",
		zap.String("id", cmp.ID.String()),
		zap.String("recommendation", string(cmp.Result.Recommendation)))

	result := cmp.Result
	h.writeJSON(w, compareResponse{
		ID:                  cmp.ID.String(),
		AfterTaxTreasuryPct: result.AfterTaxTreasuryPct,
		AfterTaxCDPct:       result.AfterTaxCDPct,
		CDPremiumPct:        result.CDPremiumPct,
		Recommendation:      string(result.Recommendation),
		RecommendationLabel: result.Recommendation.Label(),
		Display: map[string]string{
			"after_tax_treasury_pct": report.Fixed2(result.AfterTaxTreasuryPct),
			"after_tax_cd_pct":       report.Fixed2(result.AfterTaxCDPct),
			"cd_premium_pct":         report.Fixed2(result.CDPremiumPct),
		},
		ComputedAt: cmp.ComputedAt.UTC(),
	})
}

// Options handles GET /options
func (h *ComparisonHandler) Options(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	options := h.service.Options()
	incomeBrackets := make([]string, 0, len(options.IncomeBrackets))
	for _, b := range options.IncomeBrackets {
		incomeBrackets = append(incomeBrackets, string(b))
	}

	h.writeJSON(w, optionsResponse{
		FederalBrackets: options.FederalBrackets,
		States:          options.States,
		IncomeBrackets:  incomeBrackets,
		YieldMinPct:     domain.MinYieldPct,
		YieldMaxPct:     domain.MaxYieldPct,
		YieldStepPct:    domain.YieldStepPct,
	})
}

func (h *ComparisonHandler) writeJSON(w http.ResponseWriter, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}

// NewRouter wires the comparison endpoints behind the rate limiter
func NewRouter(handler *ComparisonHandler, limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/compare", RateLimitMiddleware(limiter, http.HandlerFunc(handler.Compare)))
	mux.Handle("/options", RateLimitMiddleware(limiter, http.HandlerFunc(handler.Options)))
	return mux
}
