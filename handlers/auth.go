package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
	"solarquote/templates"
)

type contextKey string

const CurrentUserKey contextKey = "currentUser"

const sessionCookie = "sq_session"

// CurrentUser extracts the logged-in user from the request context.
// The second return is false for unauthenticated requests.
func CurrentUser(r *http.Request) (services.User, bool) {
	if val, ok := r.Context().Value(CurrentUserKey).(services.User); ok {
		return val, true
	}
	return services.User{}, false
}

func userFromRecord(rec *core.Record) services.User {
	return services.User{
		ID:       rec.Id,
		Name:     rec.GetString("name"),
		Username: rec.GetString("username"),
		Password: rec.GetString("password"),
		Role:     rec.GetString("role"),
	}
}

// SessionMiddleware resolves the session cookie to a user record and
// stores it in the request context. Requests without a valid session
// are redirected to the login page; /login itself passes through.
func SessionMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cookie, err := e.Request.Cookie(sessionCookie)
		if err == nil && cookie.Value != "" {
			rec, err := app.FindRecordById(services.UsersCollection, cookie.Value)
			if err == nil {
				ctx := context.WithValue(e.Request.Context(), CurrentUserKey, userFromRecord(rec))
				e.Request = e.Request.WithContext(ctx)
				return e.Next()
			}
			log.Printf("auth: session user %s not found, clearing cookie", cookie.Value)
			http.SetCookie(e.Response, &http.Cookie{
				Name:   sessionCookie,
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})
		}

		if strings.HasPrefix(e.Request.URL.Path, "/login") {
			return e.Next()
		}
		return e.Redirect(http.StatusFound, "/login")
	}
}

// HandleLoginPage renders the login form. Logged-in users are sent to
// the dashboard.
func HandleLoginPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if _, ok := CurrentUser(e.Request); ok {
			return e.Redirect(http.StatusFound, "/")
		}
		return templates.LoginPage("").Render(e.Request.Context(), e.Response)
	}
}

// HandleLogin checks the submitted credentials against the users
// collection and starts a session on success.
func HandleLogin(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		username := strings.TrimSpace(e.Request.FormValue("username"))
		password := e.Request.FormValue("password")

		rec, err := app.FindFirstRecordByData(services.UsersCollection, "username", username)
		if err != nil || rec.GetString("password") != password {
			return templates.LoginPage("Invalid username or password").Render(e.Request.Context(), e.Response)
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     sessionCookie,
			Value:    rec.Id,
			Path:     "/",
			MaxAge:   7 * 24 * 60 * 60,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return e.Redirect(http.StatusFound, "/")
	}
}

// HandleLogout clears the session and returns to the login page.
func HandleLogout(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		http.SetCookie(e.Response, &http.Cookie{
			Name:   sessionCookie,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		return e.Redirect(http.StatusFound, "/login")
	}
}
