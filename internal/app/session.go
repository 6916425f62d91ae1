package app

import (
	"context"
	"net/http"
)

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
	// SessionKeyFlash holds a one-shot message shown on the next checkout page.
	SessionKeyFlash = sessionKey("flash")
)

func (s sessionKey) String() string {
	return string(s)
}

// contextGetUserId reads the id stored by requireAuthentication. Calling it
// from an unauthenticated route is a programming error.
func (app *Application) contextGetUserId(r *http.Request) int {
	userId, ok := r.Context().Value(SessionKeyUserId).(int)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}

// optionalUserId returns the id of the logged in user, or zero for an
// anonymous caller.
func (app *Application) optionalUserId(r *http.Request) int {
	return app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
}

func (app *Application) putFlash(ctx context.Context, message string) {
	if message == "" {
		return
	}
	app.sessionManager.Put(ctx, SessionKeyFlash.String(), message)
}

// popFlash returns the pending flash message, if any, and clears it.
func (app *Application) popFlash(ctx context.Context) (string, bool) {
	message := app.sessionManager.PopString(ctx, SessionKeyFlash.String())
	return message, message != ""
}
