package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// asUser stores a logged-in user in the request context, mimicking what
// SessionMiddleware does for real requests.
func asUser(req *http.Request, user services.User) *http.Request {
	ctx := context.WithValue(req.Context(), CurrentUserKey, user)
	return req.WithContext(ctx)
}
