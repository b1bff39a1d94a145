package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/metinatakli/moviemate/api"
	"go.opentelemetry.io/otel/trace"
)

// accessClaims are the claims of a bearer token issued by the identity
// service. The subject is the account id.
type accessClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// logRequest stores a logger carrying the request id and trace id in the
// request context.
func (app *Application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With(
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"uri", r.URL.RequestURI(),
		)

		if spanCtx := trace.SpanContextFromContext(r.Context()); spanCtx.HasTraceID() {
			logger = logger.With("trace_id", spanCtx.TraceID().String())
		}

		next.ServeHTTP(w, app.contextSetLogger(r, logger))
	})
}

// authorize applies the security requirement the router stored in the
// request context: adminAuth needs an admin token, bearerAuth any valid
// token, and operations without one stay public.
func (app *Application) authorize(next http.Handler) http.Handler {
	authenticated := app.requireAuthentication(next)
	admin := app.requireAuthentication(app.requireAdmin(next))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Context().Value(api.AdminAuthScopes) != nil:
			admin.ServeHTTP(w, r)
		case r.Context().Value(api.BearerAuthScopes) != nil:
			authenticated.ServeHTTP(w, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		p, err := app.parseAccessToken(token)
		if err != nil {
			app.contextGetLogger(r).Warn("rejected access token", "error", err)
			app.unauthorizedAccessResponse(w, r)
			return
		}

		r = app.contextSetPrincipal(r, p)
		r = app.contextSetLogger(r, app.contextGetLogger(r).With("account_id", p.accountId))

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.contextGetPrincipal(r).admin {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) parseAccessToken(raw string) (principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if app.config.JWT.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(app.config.JWT.Issuer))
	}

	var claims accessClaims

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return []byte(app.config.JWT.Secret), nil
	}, opts...)
	if err != nil {
		return principal{}, err
	}

	accountId, err := strconv.Atoi(claims.Subject)
	if err != nil || accountId < 1 {
		return principal{}, errors.New("token subject is not an account id")
	}

	return principal{accountId: accountId, admin: claims.Admin}, nil
}
