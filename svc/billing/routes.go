package billing

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oficinaplus/entitlements/pkg/guard"
	"github.com/oficinaplus/entitlements/pkg/plan"
	"github.com/oficinaplus/entitlements/pkg/subscription"
)

// statusResponse is the JSON view of a resolved status, consumed by the
// UI for countdowns and progress bars ("3 dias restantes").
type statusResponse struct {
	HasSubscription bool   `json:"has_subscription"`
	IsTrialActive   bool   `json:"is_trial_active"`
	IsPaidActive    bool   `json:"is_paid_active"`
	EffectiveTier   string `json:"effective_tier,omitempty"`
	DaysRemaining   int    `json:"days_remaining"`
}

// Routes returns the engine's HTTP surface. The host application mounts
// it under its authenticated router; the account must already be in the
// request context via guard.SetAccountToContext.
func (s *Service) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/subscription/status", s.handleStatus)
	return r
}

// RequireSubscription protects routes that need any active entitlement.
func (s *Service) RequireSubscription() func(http.Handler) http.Handler {
	return s.guard.Middleware(s.urls)
}

// RequireTier protects routes that need at least the given tier.
func (s *Service) RequireTier(t plan.Tier) func(http.Handler) http.Handler {
	return s.guard.Middleware(s.urls, guard.WithRequiredTier(t))
}

// RequireFeature protects routes that need a specific feature.
func (s *Service) RequireFeature(f plan.Feature) func(http.Handler) http.Handler {
	return s.guard.Middleware(s.urls, guard.WithRequiredFeature(f))
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	account, ok := guard.GetAccountFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	record, err := s.store.Get(r.Context(), account.ID)
	if err != nil && !errors.Is(err, subscription.ErrNotFound) {
		s.log.Error("failed to load subscription record", "account_id", account.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	status, err := s.resolver.Resolve(record, time.Now().UTC())
	if err != nil {
		// Catalog miss means misconfiguration, never valid data.
		s.log.Error("failed to resolve subscription status", "account_id", account.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		HasSubscription: status.HasSubscription,
		IsTrialActive:   status.IsTrialActive,
		IsPaidActive:    status.IsPaidActive,
		EffectiveTier:   string(status.EffectiveTier),
		DaysRemaining:   status.DaysRemaining,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
