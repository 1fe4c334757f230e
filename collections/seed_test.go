package collections_test

import (
	"testing"

	"solarquote/collections"
	"solarquote/services"
	"solarquote/testhelpers"
)

func TestSeed_CreatesDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	rec, err := app.FindFirstRecordByData(services.SettingsCollection, "singleton_key", services.SettingsSingletonKey)
	if err != nil {
		t.Fatalf("settings singleton not created: %v", err)
	}

	var company services.CompanyConfig
	if err := rec.UnmarshalJSONField("company", &company); err != nil {
		t.Fatalf("company field did not decode: %v", err)
	}
	if company.Name == "" {
		t.Error("seeded company profile is empty")
	}

	var terms []services.Term
	if err := rec.UnmarshalJSONField("terms", &terms); err != nil || len(terms) == 0 {
		t.Errorf("expected seeded terms, got %d (err %v)", len(terms), err)
	}

	users, err := app.FindAllRecords(services.UsersCollection)
	if err != nil {
		t.Fatalf("query users error: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 default accounts, got %d", len(users))
	}

	admin, err := app.FindFirstRecordByData(services.UsersCollection, "username", "admin")
	if err != nil {
		t.Fatalf("admin account not seeded: %v", err)
	}
	if admin.GetString("role") != services.RoleAdmin {
		t.Errorf("admin role = %q", admin.GetString("role"))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	settings, _ := app.FindAllRecords(services.SettingsCollection)
	if len(settings) != 1 {
		t.Errorf("expected 1 settings record after reseed, got %d", len(settings))
	}
	users, _ := app.FindAllRecords(services.UsersCollection)
	if len(users) != 3 {
		t.Errorf("expected 3 users after reseed, got %d", len(users))
	}
}

func TestSeed_SkipsWhenUsersExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUser(t, app, "Pre-existing", "keeper", "pw", services.RoleAdmin)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	users, _ := app.FindAllRecords(services.UsersCollection)
	if len(users) != 1 {
		t.Errorf("expected only the pre-existing account, got %d", len(users))
	}
	if users[0].GetString("username") != "keeper" {
		t.Errorf("unexpected username %q", users[0].GetString("username"))
	}
}
