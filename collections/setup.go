package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the settings, quotations and
// app_users collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "singleton_key", Required: true})
		c.Fields.Add(&core.JSONField{Name: "company"})
		c.Fields.Add(&core.JSONField{Name: "bank"})
		c.Fields.Add(&core.JSONField{Name: "pricing"})
		c.Fields.Add(&core.JSONField{Name: "warranty"})
		c.Fields.Add(&core.JSONField{Name: "terms"})
		c.Fields.Add(&core.JSONField{Name: "bom_templates"})
		c.Fields.Add(&core.JSONField{Name: "product_descriptions"})
		c.Fields.Add(&core.JSONField{Name: "users"})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_settings_singleton_key", true, "singleton_key", "")
	})

	ensureCollection(app, "quotations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "customer_name"})
		c.Fields.Add(&core.TextField{Name: "created_by"})
		c.Fields.Add(&core.JSONField{Name: "data"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		// The unique index makes concurrent saves of the same freshly
		// issued quote number fail loudly instead of silently forking.
		c.AddIndex("idx_quotations_quote_number", true, "quote_number", "")
	})

	ensureCollection(app, "app_users", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "username", Required: true})
		c.Fields.Add(&core.TextField{Name: "password", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "role",
			Required:  true,
			Values:    []string{"admin", "TL", "user"},
			MaxSelect: 1,
		})
		c.AddIndex("idx_app_users_username", true, "username", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
