package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/collections"
	"solarquote/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateLegacySettings(app); err != nil {
			log.Printf("Warning: legacy settings migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Resolve the session user globally
		se.Router.BindFunc(handlers.SessionMiddleware(app))

		// ── Auth ─────────────────────────────────────────────────
		se.Router.GET("/login", handlers.HandleLoginPage(app))
		se.Router.POST("/login", handlers.HandleLogin(app))
		se.Router.POST("/logout", handlers.HandleLogout(app))

		// ── Dashboard ────────────────────────────────────────────
		se.Router.GET("/", handlers.HandleDashboard(app))

		// ── Quotation CRUD ───────────────────────────────────────
		// Quote numbers contain slashes, so ids travel as ?id=
		// query parameters instead of path segments.
		se.Router.GET("/quotations/new", handlers.HandleQuotationNew(app))
		se.Router.GET("/quotations/edit", handlers.HandleQuotationEdit(app))
		se.Router.POST("/quotations/save", handlers.HandleQuotationSave(app))
		se.Router.DELETE("/quotations", handlers.HandleQuotationDelete(app))

		// ── Document & exports ───────────────────────────────────
		se.Router.GET("/quotations/document", handlers.HandleDocumentView(app))
		se.Router.GET("/quotations/export/pdf", handlers.HandleExportPDF(app))
		se.Router.GET("/quotations/export/excel", handlers.HandleExportExcel(app))
		se.Router.GET("/reports/master", handlers.HandleMasterReport(app))

		// ── Settings ─────────────────────────────────────────────
		se.Router.GET("/settings", handlers.HandleSettings(app))
		se.Router.POST("/settings/company", handlers.HandleSettingsCompany(app))
		se.Router.POST("/settings/bank", handlers.HandleSettingsBank(app))
		se.Router.POST("/settings/warranty", handlers.HandleSettingsWarranty(app))
		se.Router.POST("/settings/pricing", handlers.HandleSettingsPricing(app))
		se.Router.POST("/settings/terms", handlers.HandleSettingsTerms(app))
		se.Router.POST("/settings/bom-template", handlers.HandleSettingsBOMTemplate(app))
		se.Router.POST("/settings/descriptions", handlers.HandleSettingsDescriptions(app))
		se.Router.POST("/settings/users", handlers.HandleSettingsUsers(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
