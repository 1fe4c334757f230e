package collections_test

import (
	"testing"

	"solarquote/collections"
	"solarquote/services"
	"solarquote/testhelpers"
)

func TestMigrateLegacySettings_NoRecord(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.MigrateLegacySettings(app); err != nil {
		t.Fatalf("MigrateLegacySettings() on empty store error: %v", err)
	}
}

func TestMigrateLegacySettings_StringDescriptions(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	rec := newRecord(t, app, services.SettingsCollection)
	rec.Set("singleton_key", services.SettingsSingletonKey)
	rec.Set("product_descriptions", []string{"3KW ON-GRID SOLAR POWER PLANT", "5KW ON-GRID SOLAR POWER PLANT"})
	if err := app.Save(rec); err != nil {
		t.Fatalf("failed to write legacy record: %v", err)
	}

	if err := collections.MigrateLegacySettings(app); err != nil {
		t.Fatalf("MigrateLegacySettings() error: %v", err)
	}

	migrated, err := app.FindFirstRecordByData(services.SettingsCollection, "singleton_key", services.SettingsSingletonKey)
	if err != nil {
		t.Fatalf("settings record missing after migration: %v", err)
	}

	var descs []services.ProductDescription
	if err := migrated.UnmarshalJSONField("product_descriptions", &descs); err != nil {
		t.Fatalf("migrated field did not decode as structured form: %v", err)
	}
	if len(descs) != 2 {
		t.Fatalf("expected 2 descriptions, got %d", len(descs))
	}
	if descs[0].ID != "legacy-0" || descs[1].ID != "legacy-1" {
		t.Errorf("expected synthetic legacy ids, got %q %q", descs[0].ID, descs[1].ID)
	}
	if descs[1].Name != "5KW ON-GRID SOLAR POWER PLANT" {
		t.Errorf("name not preserved: %q", descs[1].Name)
	}
}

func TestMigrateLegacySettings_EmbeddedUsers(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// One of the embedded accounts already exists as a record.
	testhelpers.CreateTestUser(t, app, "Existing Admin", "admin", "already-set", services.RoleAdmin)

	rec := newRecord(t, app, services.SettingsCollection)
	rec.Set("singleton_key", services.SettingsSingletonKey)
	rec.Set("users", []services.User{
		{Name: "Administrator", Username: "admin", Password: "admin123", Role: services.RoleAdmin},
		{Name: "Sales One", Username: "sales1", Password: "sales123", Role: services.RoleUser},
	})
	if err := app.Save(rec); err != nil {
		t.Fatalf("failed to write legacy record: %v", err)
	}

	if err := collections.MigrateLegacySettings(app); err != nil {
		t.Fatalf("MigrateLegacySettings() error: %v", err)
	}

	users, err := app.FindAllRecords(services.UsersCollection)
	if err != nil {
		t.Fatalf("query users error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 accounts after migration, got %d", len(users))
	}

	// The existing record wins over the embedded copy.
	admin, _ := app.FindFirstRecordByData(services.UsersCollection, "username", "admin")
	if admin.GetString("password") != "already-set" {
		t.Errorf("existing admin account was overwritten")
	}

	sales, err := app.FindFirstRecordByData(services.UsersCollection, "username", "sales1")
	if err != nil {
		t.Fatalf("embedded account not moved: %v", err)
	}
	if sales.GetString("role") != services.RoleUser {
		t.Errorf("sales role = %q", sales.GetString("role"))
	}

	// The embedded field is cleared so the migration never re-runs.
	migrated, _ := app.FindFirstRecordByData(services.SettingsCollection, "singleton_key", services.SettingsSingletonKey)
	var leftover []services.User
	if err := migrated.UnmarshalJSONField("users", &leftover); err == nil && len(leftover) > 0 {
		t.Errorf("embedded users field still holds %d entries", len(leftover))
	}
}
