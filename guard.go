package client

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
)

// RouteGuard gates a routed subtree on session state. While the
// session is still loading no navigation decision is made; once
// settled, anonymous requests are redirected to the login entry point
// (the redirect replaces the attempted navigation, it is never left
// in history) and authenticated requests pass through unchanged.
func RouteGuard(manager *SessionManager, cfg Config, logger Logger) router.MiddlewareFunc {
	if logger == nil {
		logger = defLogger{}
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if manager.Loading() {
				return ctx.Status(http.StatusServiceUnavailable).
					SendString("Authenticating, stand by.")
			}

			if !manager.IsAuthenticated() {
				logger.Info("Unauthenticated navigation, redirecting to login", "path", ctx.OriginalURL())
				SetRedirect(ctx, cfg)

				statusCode := http.StatusSeeOther
				if ctx.Method() == string(router.GET) {
					statusCode = http.StatusFound
				}
				return ctx.Redirect(cfg.GetLoginRoute(), statusCode)
			}

			return next(ctx)
		}
	}
}

// RequireAuthority gates a subtree on a single permission name. This
// is UX gating only; the server enforces the real decision.
func RequireAuthority(manager *SessionManager, name string) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if !manager.HasAuthority(name) {
				return ctx.Status(http.StatusForbidden).SendString("insufficient permissions")
			}
			return next(ctx)
		}
	}
}

// SetRedirect remembers the rejected route so a successful login can
// resume the navigation the guard discarded.
func SetRedirect(ctx router.Context, cfg Config) {
	ctx.Cookie(&router.Cookie{
		Name:     cfg.GetRejectedRouteKey(),
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: "Lax",
	})
}

// GetRedirect consumes the rejected-route cookie, falling back to the
// configured default landing route.
func GetRedirect(ctx router.Context, cfg Config) string {
	rejectedRoute := cfg.GetRejectedRouteKey()

	r := ctx.Cookies(rejectedRoute)
	if r == "" {
		r = cfg.GetRejectedRouteDefault()
	}

	ctx.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: "Lax",
	})

	return r
}
