package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
)

// MigrateLegacySettings normalizes old settings payloads at startup.
// Two legacy shapes exist: product_descriptions stored as a plain
// string array, and login accounts embedded in the settings record
// instead of the app_users collection. Safe to call on every startup --
// returns early if nothing to migrate.
func MigrateLegacySettings(app *pocketbase.PocketBase) error {
	rec, err := app.FindFirstRecordByData(services.SettingsCollection, "singleton_key", services.SettingsSingletonKey)
	if err != nil {
		return nil // nothing stored yet
	}

	changed := false

	var rawDescs json.RawMessage
	if err := rec.UnmarshalJSONField("product_descriptions", &rawDescs); err == nil && len(rawDescs) > 0 {
		var names []string
		if json.Unmarshal(rawDescs, &names) == nil && len(names) > 0 {
			log.Printf("migrate: converting %d legacy product description string(s) to structured form ...", len(names))
			rec.Set("product_descriptions", services.NormalizeProductDescriptions(rawDescs))
			changed = true
		}
	}

	var embedded []services.User
	if err := rec.UnmarshalJSONField("users", &embedded); err == nil && len(embedded) > 0 {
		if err := migrateEmbeddedUsers(app, embedded); err != nil {
			return err
		}
		rec.Set("users", nil)
		changed = true
	}

	if !changed {
		return nil
	}
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("migrate: save settings: %w", err)
	}
	log.Println("migrate: legacy settings migration complete.")
	return nil
}

// migrateEmbeddedUsers moves login accounts out of the settings record
// into app_users rows, skipping usernames that already exist there.
func migrateEmbeddedUsers(app *pocketbase.PocketBase, embedded []services.User) error {
	col, err := app.FindCollectionByNameOrId(services.UsersCollection)
	if err != nil {
		return fmt.Errorf("migrate: could not find users collection: %w", err)
	}

	log.Printf("migrate: moving %d embedded user account(s) to app_users ...", len(embedded))

	for _, u := range embedded {
		if _, err := app.FindFirstRecordByData(services.UsersCollection, "username", u.Username); err == nil {
			continue
		}
		r := core.NewRecord(col)
		r.Set("name", u.Name)
		r.Set("username", u.Username)
		r.Set("password", u.Password)
		r.Set("role", u.Role)
		if err := app.Save(r); err != nil {
			log.Printf("migrate: failed to move user %q: %v", u.Username, err)
			continue
		}
	}
	return nil
}
