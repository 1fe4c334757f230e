package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"solarquote/services"
	"solarquote/testhelpers"
)

func TestCurrentUser_FromContext(t *testing.T) {
	expected := services.User{ID: "u1", Name: "Test User", Role: services.RoleTL}
	req := asUser(httptest.NewRequest(http.MethodGet, "/", nil), expected)

	got, ok := CurrentUser(req)
	if !ok {
		t.Fatal("expected user in context")
	}
	if got.ID != "u1" || got.Role != services.RoleTL {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestCurrentUser_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := CurrentUser(req); ok {
		t.Error("expected no user for bare request")
	}
}

func TestHandleLogin_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	u := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", "admin")

	form := url.Values{"username": {"admin"}, "password": {"admin123"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleLogin(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect location = %q", loc)
	}

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sq_session" {
			session = c
		}
	}
	if session == nil {
		t.Fatal("session cookie not set")
	}
	if session.Value != u.ID {
		t.Errorf("session value = %q, want user id %q", session.Value, u.ID)
	}
	if !session.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", "admin")

	form := url.Values{"username": {"admin"}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleLogin(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected login form re-render, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Invalid username or password")

	for _, c := range rec.Result().Cookies() {
		if c.Name == "sq_session" && c.Value != "" {
			t.Error("session cookie must not be set on failed login")
		}
	}
}

func TestHandleLogin_UnknownUser(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{"username": {"ghost"}, "password": {"x"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleLogin(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Invalid username or password")
}

func TestHandleLogout_ClearsSession(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()

	if err := HandleLogout(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q", loc)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sq_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie was not cleared")
	}
}
