package middleware

import (
	"net/http"
	"strings"
)

// Decision is the route guard outcome for a single request.
type Decision int

const (
	DecisionPass Decision = iota
	DecisionRedirectLogin
	DecisionRedirectDashboard
)

// Config carries everything the guard needs. It is evaluated per request and
// holds no state of its own.
type Config struct {
	CookieName string

	Locales       []string
	DefaultLocale string

	AuthPrefixes  []string
	LoginPath     string
	DashboardPath string

	SkipPrefixes []string

	// OnDecision, when set, observes every evaluated decision. Used by the
	// hosting layer for metrics.
	OnDecision func(Decision)
}

func Guard(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			if skip(cfg, path) {
				next.ServeHTTP(w, r)
				return
			}

			locale, canonical, localized := splitLocale(cfg, path)

			marker := false
			if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				marker = true
			}

			decision := Decide(cfg, canonical, marker)
			if cfg.OnDecision != nil {
				cfg.OnDecision(decision)
			}

			switch decision {
			case DecisionRedirectDashboard:
				http.Redirect(w, r, "/"+locale+cfg.DashboardPath, http.StatusTemporaryRedirect)
			case DecisionRedirectLogin:
				http.Redirect(w, r, "/"+locale+cfg.LoginPath, http.StatusTemporaryRedirect)
			default:
				if !localized {
					// Let the locale redirect stand: same path under the
					// default locale.
					http.Redirect(w, r, "/"+locale+canonical, http.StatusTemporaryRedirect)
					return
				}
				next.ServeHTTP(w, r)
			}
		})
	}
}

// Decide evaluates the guard state machine on a locale-stripped canonical
// path. The auth-section prefix check takes priority over the root-redirect
// check; only the first matching rule applies.
func Decide(cfg Config, canonical string, marker bool) Decision {
	for _, prefix := range cfg.AuthPrefixes {
		if strings.HasPrefix(canonical, prefix) {
			if marker {
				return DecisionRedirectDashboard
			}
			return DecisionPass
		}
	}

	if !marker {
		return DecisionRedirectLogin
	}
	if canonical == "/" {
		return DecisionRedirectDashboard
	}
	return DecisionPass
}

func skip(cfg Config, path string) bool {
	for _, prefix := range cfg.SkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return strings.Contains(path, ".")
}

// splitLocale resolves the locale segment. When the first segment is a
// supported locale, the canonical path is the remainder. Otherwise the
// request is evaluated against the default-locale target the i18n layer
// would redirect to, and localized reports false so the pass-through case
// issues that redirect.
func splitLocale(cfg Config, path string) (locale, canonical string, localized bool) {
	trimmed := strings.TrimPrefix(path, "/")
	first, rest, _ := strings.Cut(trimmed, "/")

	for _, l := range cfg.Locales {
		if first == l {
			return l, "/" + rest, true
		}
	}
	return cfg.DefaultLocale, path, false
}
