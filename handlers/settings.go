package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
	"solarquote/templates"
)

// HandleSettings renders the settings page; the tab query selects the
// active form. The users tab is admin only.
func HandleSettings(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, _ := CurrentUser(e.Request)

		tab := e.Request.URL.Query().Get("tab")
		if tab == "" {
			tab = templates.TabCompany
		}
		if tab == templates.TabUsers && !user.IsAdmin() {
			SetToast(e, "error", "Only administrators can manage users")
			return e.Redirect(http.StatusFound, "/settings")
		}

		state, err := services.LoadAllState(app)
		if err != nil {
			log.Printf("settings: failed to load state: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load settings: "+err.Error())
		}

		data := templates.SettingsData{
			State:     state,
			ActiveTab: tab,
			UserName:  user.Name,
			IsAdmin:   user.IsAdmin(),
		}
		return templates.SettingsPage(data).Render(e.Request.Context(), e.Response)
	}
}

func settingsRedirect(e *core.RequestEvent, tab string) error {
	return e.Redirect(http.StatusFound, "/settings?tab="+tab)
}

func saveSettingsAndRedirect(app *pocketbase.PocketBase, e *core.RequestEvent, state *services.AppState, tab, message string) error {
	if err := services.SaveSettings(app, state); err != nil {
		log.Printf("settings: could not save: %v", err)
		return ErrorToast(e, http.StatusInternalServerError, "Could not save settings: "+err.Error())
	}
	SetToast(e, "success", message)
	return settingsRedirect(e, tab)
}

func loadSettingsState(app *pocketbase.PocketBase, e *core.RequestEvent) (*services.AppState, error) {
	if err := e.Request.ParseForm(); err != nil {
		return nil, ErrorToast(e, http.StatusBadRequest, "Invalid form data")
	}
	state, err := services.LoadAllState(app)
	if err != nil {
		log.Printf("settings: failed to load state: %v", err)
		return nil, ErrorToast(e, http.StatusInternalServerError, "Could not load settings: "+err.Error())
	}
	return state, nil
}

// HandleSettingsCompany saves the company profile.
func HandleSettingsCompany(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		state, err := loadSettingsState(app, e)
		if state == nil {
			return err
		}

		state.Company = services.CompanyConfig{
			Name:            strings.TrimSpace(e.Request.FormValue("name")),
			HeadOffice:      strings.TrimSpace(e.Request.FormValue("headOffice")),
			RegionalOffice1: strings.TrimSpace(e.Request.FormValue("regionalOffice1")),
			RegionalOffice2: strings.TrimSpace(e.Request.FormValue("regionalOffice2")),
			Phone:           strings.TrimSpace(e.Request.FormValue("phone")),
			Email:           strings.TrimSpace(e.Request.FormValue("email")),
			Website:         strings.TrimSpace(e.Request.FormValue("website")),
			Logo:            strings.TrimSpace(e.Request.FormValue("logo")),
			Seal:            strings.TrimSpace(e.Request.FormValue("seal")),
			GSTIN:           strings.TrimSpace(e.Request.FormValue("gstin")),
		}
		return saveSettingsAndRedirect(app, e, state, templates.TabCompany, "Company details saved")
	}
}

// HandleSettingsBank saves the bank details block.
func HandleSettingsBank(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		state, err := loadSettingsState(app, e)
		if state == nil {
			return err
		}

		state.Bank = services.BankConfig{
			CompanyName:   strings.TrimSpace(e.Request.FormValue("companyName")),
			BankName:      strings.TrimSpace(e.Request.FormValue("bankName")),
			AccountNumber: strings.TrimSpace(e.Request.FormValue("accountNumber")),
			Branch:        strings.TrimSpace(e.Request.FormValue("branch")),
			IFSC:          strings.TrimSpace(e.Request.FormValue("ifsc")),
			Address:       strings.TrimSpace(e.Request.FormValue("address")),
			PAN:           strings.TrimSpace(e.Request.FormValue("pan")),
			UPIID:         strings.TrimSpace(e.Request.FormValue("upiId")),
			GSTNumber:     strings.TrimSpace(e.Request.FormValue("gstNumber")),
		}
		return saveSettingsAndRedirect(app, e, state, templates.TabBank, "Bank details saved")
	}
}

// HandleSettingsWarranty saves the warranty statements.
func HandleSettingsWarranty(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		state, err := loadSettingsState(app, e)
		if state == nil {
			return err
		}

		state.Warranty = services.WarrantyConfig{
			PanelWarranty:    strings.TrimSpace(e.Request.FormValue("panelWarranty")),
			InverterWarranty: strings.TrimSpace(e.Request.FormValue("inverterWarranty")),
			SystemWarranty:   strings.TrimSpace(e.Request.FormValue("systemWarranty")),
			MonitoringSystem: strings.TrimSpace(e.Request.FormValue("monitoringSystem")),
		}
		return saveSettingsAndRedirect(app, e, state, templates.TabWarranty, "Warranty details saved")
	}
}

func formValueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func formFloatAt(values []string, i int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(formValueAt(values, i)), 64)
	if err != nil {
		return 0
	}
	return v
}

func removeIndex(action string) (int, bool) {
	if !strings.HasPrefix(action, "remove:") {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimPrefix(action, "remove:"))
	if err != nil {
		return 0, false
	}
	return i, true
}

// HandleSettingsPricing saves the pricing package list. Add and remove
// buttons also persist, so the page can re-render from stored state.
func HandleSettingsPricing(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		state, err := loadSettingsState(app, e)
		if state == nil {
			return err
		}

		form := e.Request.Form
		ids := form["pricing_id"]
		names := form["pricing_name"]

		var pricing []services.ProductPricing
		for i := range ids {
			id := formValueAt(ids, i)
			if id == "" {
				id = uuid.NewString()
			}
			pricing = append(pricing, services.ProductPricing{
				ID:   id,
				Name: formValueAt(names, i),
				PricingConfig: services.PricingConfig{
					OnGridSystemCost:        formFloatAt(form["pricing_system_cost"], i),
					RooftopPlantCost:        formFloatAt(form["pricing_system_cost"], i),
					SubsidyAmount:           formFloatAt(form["pricing_subsidy"], i),
					KSEBCharges:             formFloatAt(form["pricing_kseb"], i),
					AdditionalMaterialCost:  formFloatAt(form["pricing_material"], i),
					CustomizedStructureCost: formFloatAt(form["pricing_structure"], i),
				},
			})
		}

		action := e.Request.FormValue("action")
		if action == "add" {
			pricing = append(pricing, services.ProductPricing{ID: uuid.NewString(), Name: "New Package"})
		} else if i, ok := removeIndex(action); ok && i >= 0 && i < len(pricing) {
			pricing = append(pricing[:i], pricing[i+1:]...)
		}

		state.ProductPricing = pricing
		return saveSettingsAndRedirect(app, e, state, templates.TabPricing, "Pricing packages saved")
	}
}

// HandleSettingsTerms saves the terms list. The enabled checkboxes are
// positional (term_enabled_{i}) because unchecked boxes do not submit.
func HandleSettingsTerms(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		state, err := loadSettingsState(app, e)
		if state == nil {
			return err
		}

		form := e.Request.Form
		ids := form["term_id"]
		orders := form["term_order"]
		texts := form["term_text"]

		var terms []services.Term
		for i := range ids {
			id := formValueAt(ids, i)
			if id == "" {
				id = uuid.NewString()
			}
			order, err := strconv.Atoi(strings.TrimSpace(formValueAt(orders, i)))
			if err != nil {
				order = i + 1
			}
			terms = append(terms, services.Term{
				ID:      id,
				Order:   order,
				Text:    formValueAt(texts, i),
				Enabled: e.Request.FormValue("term_enabled_"+strconv.Itoa(i)) == "1",
			})
		}

		action := e.Request.FormValue("action")
		if action == "add" {
			terms = append(terms, services.Term{ID: uuid.NewString(), Order: len(terms) + 1, Enabled: true})
		} else if i, ok := removeIndex(action); ok && i >= 0 && i < len(terms) {
			terms = append(terms[:i], terms[i+1:]...)
		}

		state.Terms = terms
		return saveSettingsAndRedirect(app, e, state, templates.TabTerms, "Terms saved")
	}
}

// HandleSettingsBOMTemplate handles one template form: save, item
// add/remove, duplicate, delete and the separate create form.
func HandleSettingsBOMTemplate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		state, err := loadSettingsState(app, e)
		if state == nil {
			return err
		}

		action := e.Request.FormValue("action")
		if action == "create" {
			name := strings.TrimSpace(e.Request.FormValue("template_name"))
			if name == "" {
				SetToast(e, "warning", "Template name is required")
				return settingsRedirect(e, templates.TabBOM)
			}
			state.BOMTemplates = append(state.BOMTemplates, services.BOMTemplate{
				ID:   uuid.NewString(),
				Name: name,
			})
			return saveSettingsAndRedirect(app, e, state, templates.TabBOM, "Template created")
		}

		tplID := e.Request.FormValue("template_id")
		idx := -1
		for i, t := range state.BOMTemplates {
			if t.ID == tplID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrorToast(e, http.StatusNotFound, "Template not found")
		}

		form := e.Request.Form
		ids := form["item_id"]

		tpl := services.BOMTemplate{
			ID:   tplID,
			Name: strings.TrimSpace(e.Request.FormValue("template_name")),
		}
		for i := range ids {
			id := formValueAt(ids, i)
			if id == "" {
				id = uuid.NewString()
			}
			tpl.Items = append(tpl.Items, services.BOMItem{
				ID:            id,
				Product:       formValueAt(form["item_product"], i),
				UOM:           formValueAt(form["item_uom"], i),
				Quantity:      formValueAt(form["item_quantity"], i),
				Specification: formValueAt(form["item_specification"], i),
				Make:          formValueAt(form["item_make"], i),
			})
		}

		switch {
		case action == "add_item":
			tpl.Items = append(tpl.Items, services.BOMItem{ID: uuid.NewString()})
			state.BOMTemplates[idx] = tpl
			return saveSettingsAndRedirect(app, e, state, templates.TabBOM, "Item added")

		case strings.HasPrefix(action, "remove_item:"):
			i, err := strconv.Atoi(strings.TrimPrefix(action, "remove_item:"))
			if err == nil && i >= 0 && i < len(tpl.Items) {
				tpl.Items = append(tpl.Items[:i], tpl.Items[i+1:]...)
			}
			state.BOMTemplates[idx] = tpl
			return saveSettingsAndRedirect(app, e, state, templates.TabBOM, "Item removed")

		case action == "duplicate":
			state.BOMTemplates[idx] = tpl
			state.BOMTemplates = append(state.BOMTemplates, services.DuplicateTemplate(tpl))
			return saveSettingsAndRedirect(app, e, state, templates.TabBOM, "Template duplicated")

		case action == "delete":
			state.BOMTemplates = append(state.BOMTemplates[:idx], state.BOMTemplates[idx+1:]...)
			return saveSettingsAndRedirect(app, e, state, templates.TabBOM, "Template deleted")

		default:
			state.BOMTemplates[idx] = tpl
			return saveSettingsAndRedirect(app, e, state, templates.TabBOM, "Template saved")
		}
	}
}

// HandleSettingsDescriptions saves the product description list with
// its optional pricing and BOM template links.
func HandleSettingsDescriptions(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		state, err := loadSettingsState(app, e)
		if state == nil {
			return err
		}

		form := e.Request.Form
		ids := form["desc_id"]

		var descriptions []services.ProductDescription
		for i := range ids {
			id := formValueAt(ids, i)
			if id == "" {
				id = uuid.NewString()
			}
			descriptions = append(descriptions, services.ProductDescription{
				ID:                   id,
				Name:                 formValueAt(form["desc_name"], i),
				DefaultPricingID:     formValueAt(form["desc_pricing"], i),
				DefaultBOMTemplateID: formValueAt(form["desc_template"], i),
			})
		}

		action := e.Request.FormValue("action")
		if action == "add" {
			descriptions = append(descriptions, services.ProductDescription{
				ID:   uuid.NewString(),
				Name: "New Description",
			})
		} else if i, ok := removeIndex(action); ok && i >= 0 && i < len(descriptions) {
			descriptions = append(descriptions[:i], descriptions[i+1:]...)
		}

		state.ProductDescriptions = descriptions
		return saveSettingsAndRedirect(app, e, state, templates.TabDescriptions, "Product descriptions saved")
	}
}

// HandleSettingsUsers saves the login accounts. Rows live in their own
// collection, so removed rows are deleted individually. Admin only.
func HandleSettingsUsers(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, _ := CurrentUser(e.Request)
		if !user.IsAdmin() {
			return ErrorToast(e, http.StatusForbidden, "Only administrators can manage users")
		}

		state, err := loadSettingsState(app, e)
		if state == nil {
			return err
		}

		form := e.Request.Form
		ids := form["user_id"]

		var users []services.User
		for i := range ids {
			users = append(users, services.User{
				ID:       formValueAt(ids, i),
				Name:     formValueAt(form["user_name"], i),
				Username: strings.TrimSpace(formValueAt(form["user_username"], i)),
				Password: formValueAt(form["user_password"], i),
				Role:     formValueAt(form["user_role"], i),
			})
		}

		action := e.Request.FormValue("action")
		if i, ok := removeIndex(action); ok && i >= 0 && i < len(users) {
			removed := users[i]
			if removed.ID == user.ID {
				SetToast(e, "warning", "You cannot remove your own account")
				return settingsRedirect(e, templates.TabUsers)
			}
			users = append(users[:i], users[i+1:]...)
			if removed.ID != "" {
				if err := services.DeleteUser(app, removed.ID); err != nil {
					log.Printf("settings_users: could not delete %s: %v", removed.Username, err)
					return ErrorToast(e, http.StatusInternalServerError, "Could not remove user "+removed.Username+": "+err.Error())
				}
			}
		}

		if action == "add" {
			// Username is unique and required, so new rows get a
			// placeholder the admin renames before handing out.
			users = append(users, services.User{
				Name:     "New User",
				Username: "user-" + uuid.NewString()[:8],
				Password: "changeme",
				Role:     services.RoleUser,
			})
		}

		for _, u := range users {
			if u.Username == "" {
				continue
			}
			if _, err := services.SaveUser(app, u); err != nil {
				log.Printf("settings_users: could not save %s: %v", u.Username, err)
				return ErrorToast(e, http.StatusInternalServerError, "Could not save user "+u.Username+": "+err.Error())
			}
		}

		SetToast(e, "success", "Users saved")
		return settingsRedirect(e, templates.TabUsers)
	}
}
