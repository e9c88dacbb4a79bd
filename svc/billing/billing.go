package billing

import (
	"log/slog"

	"github.com/oficinaplus/entitlements/pkg/entitlement"
	"github.com/oficinaplus/entitlements/pkg/guard"
	"github.com/oficinaplus/entitlements/pkg/logger"
	"github.com/oficinaplus/entitlements/pkg/plan"
	"github.com/oficinaplus/entitlements/pkg/subscription"
)

// Config holds the engine's environment-driven settings.
// Load it with pkg/config.Load.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	TrialDays   int    `env:"BILLING_TRIAL_DAYS" envDefault:"7"`
	PlansFile   string `env:"BILLING_PLANS_FILE"`
	LoginURL    string `env:"BILLING_LOGIN_URL" envDefault:"/login"`
	ExpiredURL  string `env:"BILLING_EXPIRED_URL" envDefault:"/assinatura/expirada"`
	UpgradeURL  string `env:"BILLING_UPGRADE_URL" envDefault:"/assinatura/planos"`
}

// Service assembles the entitlement engine for the host application:
// plan catalog, subscription store, status resolver, trial lifecycle,
// entitlement evaluator, and access guard.
type Service struct {
	catalog   *plan.Catalog
	store     subscription.Store
	resolver  *subscription.Resolver
	lifecycle *subscription.Lifecycle
	evaluator *entitlement.Evaluator
	guard     *guard.Guard
	urls      guard.RedirectURLs
	log       *slog.Logger
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithStore replaces the default in-memory store, e.g. with one backed
// by the application database.
func WithStore(store subscription.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger replaces the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New builds a Service from cfg. The plan catalog comes from
// cfg.PlansFile when set, otherwise the builtin table; a catalog that
// fails validation aborts startup since every later decision would be
// wrong.
func New(cfg Config, opts ...Option) (*Service, error) {
	s := &Service{
		store: subscription.NewMemoryStore(),
		urls: guard.RedirectURLs{
			Login:   cfg.LoginURL,
			Expired: cfg.ExpiredURL,
			Upgrade: cfg.UpgradeURL,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		if cfg.Environment == "production" {
			s.log = logger.New(logger.WithProduction("billing"))
		} else {
			s.log = logger.New(logger.WithDevelopment("billing"))
		}
	}

	catalog := plan.Builtin()
	if cfg.PlansFile != "" {
		loaded, err := plan.LoadFile(cfg.PlansFile)
		if err != nil {
			s.log.Error("failed to load plan catalog", "file", cfg.PlansFile, "error", err)
			return nil, err
		}
		catalog = loaded
	}
	s.catalog = catalog

	s.resolver = subscription.NewResolver(catalog)
	s.lifecycle = subscription.NewLifecycle(s.store, catalog,
		subscription.WithTrialLength(cfg.TrialDays))
	s.evaluator = entitlement.NewEvaluator(catalog)
	s.guard = guard.New(s.store, s.resolver, s.evaluator)

	return s, nil
}

// Catalog returns the plan catalog.
func (s *Service) Catalog() *plan.Catalog { return s.catalog }

// Store returns the subscription store.
func (s *Service) Store() subscription.Store { return s.store }

// Resolver returns the status resolver.
func (s *Service) Resolver() *subscription.Resolver { return s.resolver }

// Lifecycle returns the trial lifecycle.
func (s *Service) Lifecycle() *subscription.Lifecycle { return s.lifecycle }

// Evaluator returns the entitlement evaluator.
func (s *Service) Evaluator() *entitlement.Evaluator { return s.evaluator }

// Guard returns the access guard.
func (s *Service) Guard() *guard.Guard { return s.guard }
