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

func TestHandleSettings_RendersCompanyTabByDefault(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	admin := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", services.RoleAdmin)

	req := asUser(httptest.NewRequest(http.MethodGet, "/settings", nil), admin)
	rec := httptest.NewRecorder()

	if err := HandleSettings(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Company Name", "/settings/company", "Users")
}

func TestHandleSettings_UsersTabHiddenFromNonAdmins(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Sales One", "sales1", "pw", services.RoleUser)

	req := asUser(httptest.NewRequest(http.MethodGet, "/settings", nil), user)
	rec := httptest.NewRecorder()

	if err := HandleSettings(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), "/settings?tab=users")

	// Requesting the tab directly bounces back to settings.
	req = asUser(httptest.NewRequest(http.MethodGet, "/settings?tab=users", nil), user)
	rec = httptest.NewRecorder()
	if err := HandleSettings(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected redirect for non-admin users tab, got %d", rec.Code)
	}
}

func TestHandleSettingsCompany_Saves(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	admin := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", services.RoleAdmin)

	form := url.Values{
		"name":       {"New Solar Co"},
		"headOffice": {"12 Main Road, Coimbatore"},
		"phone":      {"+91 98765 43210"},
		"gstin":      {"33AAAAA0000A1Z5"},
	}
	req, rec := postForm(t, "/settings/company", form)
	req = asUser(req, admin)

	if err := HandleSettingsCompany(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	state, _ := services.LoadAllState(app)
	if state.Company.Name != "New Solar Co" || state.Company.GSTIN != "33AAAAA0000A1Z5" {
		t.Errorf("company did not persist: %+v", state.Company)
	}
}

func TestHandleSettingsPricing_AddRemoveSave(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	admin := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", services.RoleAdmin)

	// Start from one row, add a package.
	form := url.Values{
		"action":              {"add"},
		"pricing_id":          {"p1"},
		"pricing_name":        {"3KW"},
		"pricing_system_cost": {"185000"},
		"pricing_subsidy":     {"78000"},
		"pricing_kseb":        {"1000"},
		"pricing_material":    {"0"},
		"pricing_structure":   {"0"},
	}
	req, rec := postForm(t, "/settings/pricing", form)
	req = asUser(req, admin)
	if err := HandleSettingsPricing(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	state, _ := services.LoadAllState(app)
	if len(state.ProductPricing) != 2 {
		t.Fatalf("expected 2 packages after add, got %d", len(state.ProductPricing))
	}
	if state.ProductPricing[0].OnGridSystemCost != 185000 {
		t.Errorf("existing row values lost: %+v", state.ProductPricing[0])
	}
	if state.ProductPricing[1].Name != "New Package" {
		t.Errorf("added package name = %q", state.ProductPricing[1].Name)
	}

	// Remove the first row.
	form = url.Values{
		"action":              {"remove:0"},
		"pricing_id":          {"p1", state.ProductPricing[1].ID},
		"pricing_name":        {"3KW", "New Package"},
		"pricing_system_cost": {"185000", "0"},
		"pricing_subsidy":     {"78000", "0"},
		"pricing_kseb":        {"1000", "0"},
		"pricing_material":    {"0", "0"},
		"pricing_structure":   {"0", "0"},
	}
	req, rec = postForm(t, "/settings/pricing", form)
	req = asUser(req, admin)
	if err := HandleSettingsPricing(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	state, _ = services.LoadAllState(app)
	if len(state.ProductPricing) != 1 || state.ProductPricing[0].Name != "New Package" {
		t.Errorf("remove kept the wrong rows: %+v", state.ProductPricing)
	}
}

func TestHandleSettingsTerms_PositionalCheckboxes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	admin := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", services.RoleAdmin)

	form := url.Values{
		"action":         {"save"},
		"term_id":        {"t1", "t2"},
		"term_order":     {"1", "2"},
		"term_text":      {"first term", "second term"},
		"term_enabled_1": {"1"},
	}
	req, rec := postForm(t, "/settings/terms", form)
	req = asUser(req, admin)
	if err := HandleSettingsTerms(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	state, _ := services.LoadAllState(app)
	if len(state.Terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(state.Terms))
	}
	if state.Terms[0].Enabled {
		t.Error("unchecked first term should be disabled")
	}
	if !state.Terms[1].Enabled {
		t.Error("checked second term should be enabled")
	}
}

func TestHandleSettingsBOMTemplate_CreateDuplicateDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	admin := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", services.RoleAdmin)
	testhelpers.SeedDefaults(t, app)

	state, _ := services.LoadAllState(app)
	base := len(state.BOMTemplates)
	tplID := state.BOMTemplates[0].ID
	tplName := state.BOMTemplates[0].Name

	// Duplicate the first template.
	form := url.Values{
		"action":        {"duplicate"},
		"template_id":   {tplID},
		"template_name": {tplName},
	}
	for _, item := range state.BOMTemplates[0].Items {
		form.Add("item_id", item.ID)
		form.Add("item_product", item.Product)
		form.Add("item_uom", item.UOM)
		form.Add("item_quantity", item.Quantity)
		form.Add("item_specification", item.Specification)
		form.Add("item_make", item.Make)
	}
	req, rec := postForm(t, "/settings/bom-template", form)
	req = asUser(req, admin)
	if err := HandleSettingsBOMTemplate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	state, _ = services.LoadAllState(app)
	if len(state.BOMTemplates) != base+1 {
		t.Fatalf("expected %d templates after duplicate, got %d", base+1, len(state.BOMTemplates))
	}
	dup := state.BOMTemplates[len(state.BOMTemplates)-1]
	if dup.Name != tplName+" (Copy)" {
		t.Errorf("duplicate name = %q", dup.Name)
	}

	// Delete the duplicate again.
	form = url.Values{"action": {"delete"}, "template_id": {dup.ID}, "template_name": {dup.Name}}
	req, rec = postForm(t, "/settings/bom-template", form)
	req = asUser(req, admin)
	if err := HandleSettingsBOMTemplate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	state, _ = services.LoadAllState(app)
	if len(state.BOMTemplates) != base {
		t.Errorf("expected %d templates after delete, got %d", base, len(state.BOMTemplates))
	}

	// Create a brand new template.
	form = url.Values{"action": {"create"}, "template_name": {"10KW Custom"}}
	req, rec = postForm(t, "/settings/bom-template", form)
	req = asUser(req, admin)
	if err := HandleSettingsBOMTemplate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	state, _ = services.LoadAllState(app)
	found := false
	for _, tpl := range state.BOMTemplates {
		if tpl.Name == "10KW Custom" {
			found = true
		}
	}
	if !found {
		t.Error("created template not found")
	}
}

func TestHandleSettingsUsers_AdminOnly(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Sales One", "sales1", "pw", services.RoleUser)

	form := url.Values{"action": {"save"}}
	req, rec := postForm(t, "/settings/users", form)
	req = asUser(req, user)

	if err := HandleSettingsUsers(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestHandleSettingsUsers_SaveAndRemove(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	admin := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", services.RoleAdmin)
	victim := testhelpers.CreateTestUser(t, app, "Victim", "victim", "pw", services.RoleUser)

	// Rename the second account.
	form := url.Values{
		"action":        {"save"},
		"user_id":       {admin.ID, victim.ID},
		"user_name":     {"Administrator", "Renamed"},
		"user_username": {"admin", "victim"},
		"user_password": {"admin123", "pw2"},
		"user_role":     {services.RoleAdmin, services.RoleTL},
	}
	req, rec := postForm(t, "/settings/users", form)
	req = asUser(req, admin)
	if err := HandleSettingsUsers(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	rec2 := testhelpers.FindRecord(t, app, services.UsersCollection, "username", "victim")
	if rec2.GetString("name") != "Renamed" || rec2.GetString("role") != services.RoleTL {
		t.Errorf("user update did not persist: %s %s", rec2.GetString("name"), rec2.GetString("role"))
	}

	// Remove the second account.
	form.Set("action", "remove:1")
	req, rr := postForm(t, "/settings/users", form)
	req = asUser(req, admin)
	if err := HandleSettingsUsers(app)(newTestRequestEvent(app, req, rr)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	users, _ := app.FindAllRecords(services.UsersCollection)
	if len(users) != 1 {
		t.Errorf("expected 1 account after removal, got %d", len(users))
	}
}

func TestHandleSettingsUsers_CannotRemoveSelf(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	admin := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", services.RoleAdmin)

	form := url.Values{
		"action":        {"remove:0"},
		"user_id":       {admin.ID},
		"user_name":     {"Administrator"},
		"user_username": {"admin"},
		"user_password": {"admin123"},
		"user_role":     {services.RoleAdmin},
	}
	req, rec := postForm(t, "/settings/users", form)
	req = asUser(req, admin)
	if err := HandleSettingsUsers(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	users, _ := app.FindAllRecords(services.UsersCollection)
	if len(users) != 1 {
		t.Errorf("admin removed their own account, %d users left", len(users))
	}
}

func TestHandleSettingsCompany_SaveFailureNamesCause(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	admin := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", services.RoleAdmin)

	col, err := app.FindCollectionByNameOrId(services.SettingsCollection)
	if err != nil {
		t.Fatalf("find settings collection: %v", err)
	}
	if err := app.Delete(col); err != nil {
		t.Fatalf("drop settings collection: %v", err)
	}

	form := url.Values{"name": {"Broken Save Co"}}
	req, rec := postForm(t, "/settings/company", form)
	req = asUser(req, admin)

	if err := HandleSettingsCompany(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Could not save settings:") {
		t.Errorf("error should name the cause, got %q", rec.Body.String())
	}
}

func TestHandleSettings_CompanyTabHasImageUploads(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	admin := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", services.RoleAdmin)

	req := asUser(httptest.NewRequest(http.MethodGet, "/settings", nil), admin)
	rec := httptest.NewRecorder()

	if err := HandleSettings(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		`id="logo-file"`,
		`id="seal-file"`,
		`accept="image/*"`,
		"readImage")
}
