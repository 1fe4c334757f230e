package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
	"solarquote/templates"
)

func parseFloatField(e *core.RequestEvent, name string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(e.Request.FormValue(name)), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseQuotationForm rebuilds a quotation from the editor form. BOM rows
// arrive as parallel arrays, one value per row per field.
func parseQuotationForm(e *core.RequestEvent) services.Quotation {
	q := services.Quotation{
		ID:                strings.TrimSpace(e.Request.FormValue("id")),
		Date:              strings.TrimSpace(e.Request.FormValue("date")),
		CustomerName:      strings.TrimSpace(e.Request.FormValue("customerName")),
		DiscomNumber:      strings.TrimSpace(e.Request.FormValue("discomNumber")),
		Address:           strings.TrimSpace(e.Request.FormValue("address")),
		Mobile:            strings.TrimSpace(e.Request.FormValue("mobile")),
		Email:             strings.TrimSpace(e.Request.FormValue("email")),
		Location:          strings.TrimSpace(e.Request.FormValue("location")),
		SystemDescription: strings.TrimSpace(e.Request.FormValue("systemDescription")),
	}

	q.Pricing = services.PricingConfig{
		OnGridSystemCost:        parseFloatField(e, "onGridSystemCost"),
		SubsidyAmount:           parseFloatField(e, "subsidyAmount"),
		KSEBCharges:             parseFloatField(e, "ksebCharges"),
		AdditionalMaterialCost:  parseFloatField(e, "additionalMaterialCost"),
		CustomizedStructureCost: parseFloatField(e, "customizedStructureCost"),
	}
	q.Pricing.RooftopPlantCost = q.Pricing.OnGridSystemCost

	form := e.Request.Form
	ids := form["bom_id"]
	products := form["bom_product"]
	uoms := form["bom_uom"]
	quantities := form["bom_quantity"]
	specs := form["bom_specification"]
	makes := form["bom_make"]

	valueAt := func(values []string, i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	for i := range ids {
		id := valueAt(ids, i)
		if id == "" {
			id = uuid.NewString()
		}
		q.BOM = append(q.BOM, services.BOMItem{
			ID:            id,
			Product:       valueAt(products, i),
			UOM:           valueAt(uoms, i),
			Quantity:      valueAt(quantities, i),
			Specification: valueAt(specs, i),
			Make:          valueAt(makes, i),
		})
	}

	return q
}

func renderQuotationForm(e *core.RequestEvent, state *services.AppState, user services.User, q services.Quotation, isNew bool, warning string) error {
	data := templates.QuotationFormData{
		Quotation:    q,
		IsNew:        isNew,
		Descriptions: state.ProductDescriptions,
		Pricing:      state.ProductPricing,
		BOMTemplates: state.BOMTemplates,
		Warning:      warning,
		UserName:     user.Name,
		IsAdmin:      user.IsAdmin(),
	}
	return templates.QuotationFormPage(data).Render(e.Request.Context(), e.Response)
}

// HandleQuotationNew renders the editor with a fresh quotation. The id
// shown is a preview; the final id is assigned on save.
func HandleQuotationNew(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, _ := CurrentUser(e.Request)

		state, err := services.LoadAllState(app)
		if err != nil {
			log.Printf("quotation_new: failed to load state: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotations: "+err.Error())
		}

		q := services.Quotation{
			ID:   services.GenerateQuoteID(state.NextID, time.Now()),
			Date: time.Now().Format("2006-01-02"),
		}
		return renderQuotationForm(e, state, user, q, true, "")
	}
}

// HandleQuotationEdit renders the editor for an existing quotation.
func HandleQuotationEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, _ := CurrentUser(e.Request)
		id := e.Request.URL.Query().Get("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing quotation id")
		}

		state, err := services.LoadAllState(app)
		if err != nil {
			log.Printf("quotation_edit: failed to load state: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotations: "+err.Error())
		}

		q, ok := findQuotation(state, id)
		if !ok {
			return e.String(http.StatusNotFound, "Quotation not found")
		}
		if !user.CanModify(q) {
			SetToast(e, "error", "You can only edit your own quotations")
			return e.Redirect(http.StatusFound, "/")
		}
		return renderQuotationForm(e, state, user, q, false, "")
	}
}

func findQuotation(state *services.AppState, id string) (services.Quotation, bool) {
	for _, q := range state.Quotations {
		if q.ID == id {
			return q, true
		}
	}
	return services.Quotation{}, false
}

// HandleQuotationSave handles every editor form post. Buttons carry an
// "action" value: save persists, the rest mutate the in-flight form and
// re-render without saving.
func HandleQuotationSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, _ := CurrentUser(e.Request)

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		state, err := services.LoadAllState(app)
		if err != nil {
			log.Printf("quotation_save: failed to load state: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotations: "+err.Error())
		}

		q := parseQuotationForm(e)
		isNew := e.Request.FormValue("new") == "1"
		action := e.Request.FormValue("action")

		switch {
		case action == "add_item":
			q.BOM = append(q.BOM, services.BOMItem{ID: uuid.NewString()})
			return renderQuotationForm(e, state, user, q, isNew, "")

		case strings.HasPrefix(action, "remove_item:"):
			i, err := strconv.Atoi(strings.TrimPrefix(action, "remove_item:"))
			if err == nil && i >= 0 && i < len(q.BOM) {
				q.BOM = append(q.BOM[:i], q.BOM[i+1:]...)
			}
			return renderQuotationForm(e, state, user, q, isNew, "")

		case action == "apply_description":
			if q.SystemDescription == "" {
				return renderQuotationForm(e, state, user, q, isNew, "Select a system description first")
			}
			defaults, ok := services.ResolveProductDefaults(state, q.SystemDescription)
			if !ok {
				return renderQuotationForm(e, state, user, q, isNew, "No defaults configured for this description")
			}
			services.ApplyProductDefaults(&q, defaults)
			warning := ""
			if len(defaults.Dangling) > 0 {
				warning = "Some linked defaults no longer exist: " + strings.Join(defaults.Dangling, ", ")
			}
			return renderQuotationForm(e, state, user, q, isNew, warning)

		case action == "apply_pricing":
			p, ok := state.FindPricing(e.Request.FormValue("pricingPackage"))
			if !ok {
				return renderQuotationForm(e, state, user, q, isNew, "Select a pricing package first")
			}
			q.Pricing = p.PricingConfig
			q.Pricing.RooftopPlantCost = q.Pricing.OnGridSystemCost
			return renderQuotationForm(e, state, user, q, isNew, "")

		case action == "apply_template":
			tplID := e.Request.FormValue("bomTemplate")
			tpl, ok := state.FindBOMTemplate(tplID)
			if !ok {
				return renderQuotationForm(e, state, user, q, isNew, "Select a BOM template first")
			}
			q.BOM = services.CopyBOMItems(tpl.Items)
			return renderQuotationForm(e, state, user, q, isNew, "")

		case action == "save_as_template":
			name := strings.TrimSpace(e.Request.FormValue("templateName"))
			if name == "" {
				return renderQuotationForm(e, state, user, q, isNew, "Enter a template name first")
			}
			state.BOMTemplates = append(state.BOMTemplates, services.BOMTemplate{
				ID:    uuid.NewString(),
				Name:  name,
				Items: services.CopyBOMItems(q.BOM),
			})
			if err := services.SaveSettings(app, state); err != nil {
				log.Printf("quotation_save: could not save template %q: %v", name, err)
				return ErrorToast(e, http.StatusInternalServerError, "Could not save template: "+err.Error())
			}
			SetToast(e, "success", "Template \""+name+"\" saved")
			return renderQuotationForm(e, state, user, q, isNew, "")
		}

		// Default action: save.
		if q.CustomerName == "" {
			SetToast(e, "warning", "Customer name is required")
			return renderQuotationForm(e, state, user, q, isNew, "Customer name is required")
		}

		if isNew {
			q.ID = services.GenerateQuoteID(state.NextID, time.Now())
			q.CreatedBy = user.ID
			q.CreatedByName = user.Name
		} else {
			existing, ok := findQuotation(state, q.ID)
			if !ok {
				return e.String(http.StatusNotFound, "Quotation not found")
			}
			if !user.CanModify(existing) {
				return ErrorToast(e, http.StatusForbidden, "You can only edit your own quotations")
			}
			q.CreatedBy = existing.CreatedBy
			q.CreatedByName = existing.CreatedByName
		}

		if err := services.SaveQuotation(app, q); err != nil {
			log.Printf("quotation_save: could not save %s: %v", q.ID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save quotation "+q.ID+": "+err.Error())
		}

		SetToast(e, "success", "Quotation "+q.ID+" saved")
		return e.Redirect(http.StatusFound, "/")
	}
}

// HandleQuotationDelete removes a quotation and re-renders the
// dashboard fragment for the HTMX swap.
func HandleQuotationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, _ := CurrentUser(e.Request)
		id := e.Request.URL.Query().Get("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing quotation id")
		}

		state, err := services.LoadAllState(app)
		if err != nil {
			log.Printf("quotation_delete: failed to load state: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotations: "+err.Error())
		}

		q, ok := findQuotation(state, id)
		if ok && !user.CanModify(q) {
			return ErrorToast(e, http.StatusForbidden, "You can only delete your own quotations")
		}

		if err := services.DeleteQuotation(app, id); err != nil {
			log.Printf("quotation_delete: could not delete %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not delete quotation "+id+": "+err.Error())
		}

		// Reload so the removed row is gone from the fragment.
		state, err = services.LoadAllState(app)
		if err != nil {
			log.Printf("quotation_delete: failed to reload state: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotations: "+err.Error())
		}

		SetToast(e, "success", "Quotation deleted")
		data := buildDashboardData(state, user, "")
		return templates.DashboardContent(data).Render(e.Request.Context(), e.Response)
	}
}
