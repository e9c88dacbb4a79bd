package guard

import (
	"net/http"
	"net/url"
	"time"
)

// RedirectURLs configures where the middleware sends denied requests.
type RedirectURLs struct {
	Login   string
	Expired string
	Upgrade string
}

// Middleware wraps an http.Handler with a guard check. The account is
// taken from the request context (see SetAccountToContext); the current
// time is read once here, at the process boundary, and threaded through
// the engine explicitly.
//
// Denied requests get a 303 redirect to the configured URL. Upgrade
// redirects carry the required tier as a query parameter so the pricing
// page can preselect the right plan. Engine failures yield a 500; they
// indicate misconfiguration, not a user problem.
func (g *Guard) Middleware(urls RedirectURLs, opts ...CheckOption) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, _ := GetAccountFromContext(r.Context())

			outcome, err := g.Check(r.Context(), account, time.Now().UTC(), opts...)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			switch outcome.Kind {
			case OutcomeAllow:
				next.ServeHTTP(w, r)
			case OutcomeRedirectToLogin:
				http.Redirect(w, r, urls.Login, http.StatusSeeOther)
			case OutcomeRedirectToExpired:
				http.Redirect(w, r, urls.Expired, http.StatusSeeOther)
			case OutcomeRedirectToUpgrade:
				http.Redirect(w, r, upgradeURL(urls.Upgrade, outcome), http.StatusSeeOther)
			default:
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			}
		})
	}
}

func upgradeURL(base string, outcome Outcome) string {
	if outcome.RequiredTier == "" {
		return base
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("tier", string(outcome.RequiredTier))
	u.RawQuery = q.Encode()
	return u.String()
}
