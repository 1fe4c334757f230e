package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
)

// Seed inserts the default global settings and the bootstrap login
// accounts. It is safe to call on every startup: the settings record is
// only created when the singleton row is missing, and users only when
// the accounts collection is empty.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedSettings(app); err != nil {
		return err
	}
	return seedUsers(app)
}

func seedSettings(app *pocketbase.PocketBase) error {
	if _, err := app.FindFirstRecordByData(services.SettingsCollection, "singleton_key", services.SettingsSingletonKey); err == nil {
		return nil // already seeded
	}

	col, err := app.FindCollectionByNameOrId(services.SettingsCollection)
	if err != nil {
		return fmt.Errorf("seed: could not find settings collection: %w", err)
	}

	log.Println("seed: settings singleton is missing – inserting defaults …")

	r := core.NewRecord(col)
	r.Set("singleton_key", services.SettingsSingletonKey)
	r.Set("company", services.DefaultCompany())
	r.Set("bank", services.DefaultBank())
	r.Set("pricing", services.DefaultProductPricing())
	r.Set("warranty", services.DefaultWarranty())
	r.Set("terms", services.DefaultTerms())
	r.Set("bom_templates", services.DefaultBOMTemplates())
	r.Set("product_descriptions", services.DefaultProductDescriptions())

	if err := app.Save(r); err != nil {
		return fmt.Errorf("seed: save settings: %w", err)
	}
	return nil
}

func seedUsers(app *pocketbase.PocketBase) error {
	existing, err := app.FindAllRecords(services.UsersCollection)
	if err != nil {
		return fmt.Errorf("seed: could not query users: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	col, err := app.FindCollectionByNameOrId(services.UsersCollection)
	if err != nil {
		return fmt.Errorf("seed: could not find users collection: %w", err)
	}

	log.Println("seed: users collection is empty – inserting default accounts …")

	for _, u := range services.DefaultUsers() {
		r := core.NewRecord(col)
		r.Set("name", u.Name)
		r.Set("username", u.Username)
		r.Set("password", u.Password)
		r.Set("role", u.Role)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save user %q: %w", u.Username, err)
		}
	}
	return nil
}
