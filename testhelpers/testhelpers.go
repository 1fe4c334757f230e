// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/collections"
	"solarquote/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// SeedDefaults runs the startup seed so tests start from the stock
// settings and login accounts.
func SeedDefaults(t *testing.T, app *pocketbase.PocketBase) {
	t.Helper()

	if err := collections.Seed(app); err != nil {
		t.Fatalf("failed to seed defaults: %v", err)
	}
}

// CreateTestQuotation persists a quotation snapshot and returns it.
func CreateTestQuotation(t *testing.T, app *pocketbase.PocketBase, q services.Quotation) services.Quotation {
	t.Helper()

	if err := services.SaveQuotation(app, q); err != nil {
		t.Fatalf("failed to save test quotation: %v", err)
	}
	return q
}

// CreateTestUser persists a login account and returns it with the
// record id filled in.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, name, username, password, role string) services.User {
	t.Helper()

	u := services.User{Name: name, Username: username, Password: password, Role: role}
	id, err := services.SaveUser(app, u)
	if err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}
	u.ID = id
	return u
}

// CreateTestSettings writes a settings singleton from the given state.
func CreateTestSettings(t *testing.T, app *pocketbase.PocketBase, state *services.AppState) {
	t.Helper()

	if err := services.SaveSettings(app, state); err != nil {
		t.Fatalf("failed to save test settings: %v", err)
	}
}

// FindRecord looks up a record or fails the test.
func FindRecord(t *testing.T, app *pocketbase.PocketBase, collection, field, value string) *core.Record {
	t.Helper()

	rec, err := app.FindFirstRecordByData(collection, field, value)
	if err != nil {
		t.Fatalf("failed to find %s record with %s=%s: %v", collection, field, value, err)
	}
	return rec
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML to not contain %q, but it was found", frag)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
