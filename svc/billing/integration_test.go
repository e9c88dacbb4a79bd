package billing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficinaplus/entitlements/pkg/entitlement"
	"github.com/oficinaplus/entitlements/pkg/guard"
	"github.com/oficinaplus/entitlements/pkg/plan"
	"github.com/oficinaplus/entitlements/pkg/subscription"
	"github.com/oficinaplus/entitlements/svc/billing"
)

func newService(t *testing.T) *billing.Service {
	t.Helper()
	svc, err := billing.New(billing.Config{
		Environment: "development",
		TrialDays:   7,
		LoginURL:    "/login",
		ExpiredURL:  "/assinatura/expirada",
		UpgradeURL:  "/assinatura/planos",
	})
	require.NoError(t, err)
	return svc
}

func TestService_TrialToConversionFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	accountID := uuid.New()
	account := &guard.Account{ID: accountID, Role: entitlement.RoleRegular}

	// Before any subscription the guard sends the account to the
	// expired screen: authenticated but unsubscribed.
	outcome, err := svc.Guard().Check(ctx, account, now)
	require.NoError(t, err)
	assert.Equal(t, guard.OutcomeRedirectToExpired, outcome.Kind)

	// Start a premium trial.
	record, err := svc.Lifecycle().StartTrial(ctx, accountID, plan.TierPremium, now)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusTrialing, record.Status)

	status, err := svc.Resolver().Resolve(record, now)
	require.NoError(t, err)
	assert.True(t, status.IsTrialActive)
	assert.Equal(t, plan.TierPremium, status.EffectiveTier)
	assert.Equal(t, 7, status.DaysRemaining)

	outcome, err = svc.Guard().Check(ctx, account, now, guard.WithRequiredTier(plan.TierPremium))
	require.NoError(t, err)
	assert.Equal(t, guard.OutcomeAllow, outcome.Kind)

	// A second trial attempt is rejected for the lifetime of the account.
	_, err = svc.Lifecycle().StartTrial(ctx, accountID, plan.TierEssencial, now.AddDate(0, 1, 0))
	assert.ErrorIs(t, err, subscription.ErrTrialAlreadyUsed)

	// Trial elapses without conversion: guard now denies.
	afterTrial := now.AddDate(0, 0, 8)
	outcome, err = svc.Guard().Check(ctx, account, afterTrial)
	require.NoError(t, err)
	assert.Equal(t, guard.OutcomeRedirectToExpired, outcome.Kind)

	// Convert to the annual paid plan.
	record, err = svc.Lifecycle().Convert(ctx, record, plan.PremiumAnual, afterTrial)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, record.Status)
	require.NotNil(t, record.EndsAt)
	assert.Equal(t, afterTrial.AddDate(1, 0, 0), *record.EndsAt)
	assert.Nil(t, record.TrialEndsAt)

	outcome, err = svc.Guard().Check(ctx, account, afterTrial.AddDate(0, 6, 0))
	require.NoError(t, err)
	assert.Equal(t, guard.OutcomeAllow, outcome.Kind)

	// Cancel: access continues until the paid year ends, then stops.
	cancelledAt := afterTrial.AddDate(0, 7, 0)
	record, err = svc.Lifecycle().Cancel(ctx, record, cancelledAt)
	require.NoError(t, err)

	outcome, err = svc.Guard().Check(ctx, account, cancelledAt.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, guard.OutcomeAllow, outcome.Kind, "cancelled account keeps access inside the paid period")

	outcome, err = svc.Guard().Check(ctx, account, afterTrial.AddDate(1, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, guard.OutcomeRedirectToExpired, outcome.Kind, "access stops once the paid period elapses")
}

func TestService_StatusEndpoint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newService(t)
	accountID := uuid.New()
	account := &guard.Account{ID: accountID, Role: entitlement.RoleRegular}

	now := time.Now().UTC()
	_, err := svc.Lifecycle().StartTrial(ctx, accountID, plan.TierEssencial, now)
	require.NoError(t, err)

	t.Run("returns resolved status for the account", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/subscription/status", nil)
		req = req.WithContext(guard.SetAccountToContext(req.Context(), account))
		rec := httptest.NewRecorder()

		svc.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, true, body["has_subscription"])
		assert.Equal(t, true, body["is_trial_active"])
		assert.Equal(t, false, body["is_paid_active"])
		assert.Equal(t, "essencial", body["effective_tier"])
		assert.Equal(t, float64(7), body["days_remaining"])
	})

	t.Run("unauthenticated gets 401", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/subscription/status", nil)
		rec := httptest.NewRecorder()

		svc.Routes().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestService_RouteProtection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newService(t)

	subscriber := &guard.Account{ID: uuid.New(), Role: entitlement.RoleRegular}
	_, err := svc.Lifecycle().StartTrial(ctx, subscriber.ID, plan.TierEssencial, time.Now().UTC())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.With(svc.RequireSubscription()).Get("/clientes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.With(svc.RequireTier(plan.TierPremium)).Get("/relatorios", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.With(svc.RequireFeature(plan.FeatureInventory)).Get("/estoque", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	get := func(t *testing.T, path string, account *guard.Account) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if account != nil {
			req = req.WithContext(guard.SetAccountToContext(req.Context(), account))
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("subscriber reaches base routes", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/clientes", subscriber)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("essencial trial blocked from premium routes", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/relatorios", subscriber)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/assinatura/planos?tier=premium", rec.Header().Get("Location"))

		rec = get(t, "/estoque", subscriber)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/assinatura/planos", rec.Header().Get("Location"))
	})

	t.Run("anonymous sent to login", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/clientes", nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("admin passes everything", func(t *testing.T) {
		t.Parallel()
		admin := &guard.Account{ID: uuid.New(), Role: entitlement.RoleAdmin}
		for _, path := range []string{"/clientes", "/relatorios", "/estoque"} {
			rec := get(t, path, admin)
			assert.Equal(t, http.StatusOK, rec.Code, path)
		}
	})
}

func TestService_PlansFile(t *testing.T) {
	t.Parallel()

	t.Run("invalid plans file aborts startup", func(t *testing.T) {
		t.Parallel()
		_, err := billing.New(billing.Config{PlansFile: "/nonexistent/plans.yaml"})
		assert.ErrorIs(t, err, plan.ErrInvalidCatalog)
	})
}
