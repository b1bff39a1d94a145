package app

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

const (
	loggerContextKey  = contextKey("logger")
	accountContextKey = contextKey("account")
)

// principal is the caller identified by the access token.
type principal struct {
	accountId int
	admin     bool
}

func (app *Application) contextSetLogger(r *http.Request, logger *slog.Logger) *http.Request {
	ctx := context.WithValue(r.Context(), loggerContextKey, logger)
	return r.WithContext(ctx)
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}

func (app *Application) contextSetPrincipal(r *http.Request, p principal) *http.Request {
	ctx := context.WithValue(r.Context(), accountContextKey, p)
	return r.WithContext(ctx)
}

func (app *Application) contextGetPrincipal(r *http.Request) principal {
	p, ok := r.Context().Value(accountContextKey).(principal)
	if !ok {
		panic("missing account from context")
	}

	return p
}

func (app *Application) contextGetAccountId(r *http.Request) int {
	return app.contextGetPrincipal(r).accountId
}
