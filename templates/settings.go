package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"solarquote/services"
)

// Settings tab identifiers, also used as query values.
const (
	TabCompany      = "company"
	TabBank         = "bank"
	TabWarranty     = "warranty"
	TabPricing      = "pricing"
	TabTerms        = "terms"
	TabBOM          = "bom"
	TabDescriptions = "descriptions"
	TabUsers        = "users"
)

// SettingsData drives the settings page; ActiveTab selects which form
// renders.
type SettingsData struct {
	State     *services.AppState
	ActiveTab string
	UserName  string
	IsAdmin   bool
}

// SettingsContent renders the tab strip plus the active tab's form.
func SettingsContent(data SettingsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tabs := []struct{ id, label string }{
			{TabCompany, "Company"},
			{TabBank, "Bank"},
			{TabWarranty, "Warranty"},
			{TabPricing, "Pricing Packages"},
			{TabTerms, "Terms"},
			{TabBOM, "BOM Templates"},
			{TabDescriptions, "Product Descriptions"},
		}
		if data.IsAdmin {
			tabs = append(tabs, struct{ id, label string }{TabUsers, "Users"})
		}

		fmt.Fprint(w, `<h2>Settings</h2><div class="tabs">`)
		for _, t := range tabs {
			class := ""
			if t.id == data.ActiveTab {
				class = ` class="active"`
			}
			fmt.Fprintf(w, `<a href="/settings?tab=%s"%s>%s</a>`, t.id, class, esc(t.label))
		}
		fmt.Fprint(w, `</div>`)

		switch data.ActiveTab {
		case TabBank:
			renderBankTab(w, data.State.Bank)
		case TabWarranty:
			renderWarrantyTab(w, data.State.Warranty)
		case TabPricing:
			renderPricingTab(w, data.State.ProductPricing)
		case TabTerms:
			renderTermsTab(w, data.State.Terms)
		case TabBOM:
			renderBOMTab(w, data.State.BOMTemplates)
		case TabDescriptions:
			renderDescriptionsTab(w, data.State)
		case TabUsers:
			renderUsersTab(w, data.State.Users)
		default:
			renderCompanyTab(w, data.State.Company)
		}
		return nil
	})
}

// SettingsPage renders the settings page inside the layout.
func SettingsPage(data SettingsData) templ.Component {
	return Layout("Settings - Solar Quote Manager", data.UserName, data.IsAdmin, SettingsContent(data))
}

func renderCompanyTab(w io.Writer, c services.CompanyConfig) {
	fmt.Fprint(w, `<form method="post" action="/settings/company"><div class="card"><div class="field-grid">`)
	formInput(w, "Company Name", "name", "text", c.Name)
	formInput(w, "Head Office", "headOffice", "text", c.HeadOffice)
	formInput(w, "Regional Office 1", "regionalOffice1", "text", c.RegionalOffice1)
	formInput(w, "Regional Office 2", "regionalOffice2", "text", c.RegionalOffice2)
	formInput(w, "Phone", "phone", "text", c.Phone)
	formInput(w, "Email", "email", "text", c.Email)
	formInput(w, "Website", "website", "text", c.Website)
	formInput(w, "GSTIN", "gstin", "text", c.GSTIN)
	fmt.Fprint(w, `</div>`)
	renderImageField(w, "Logo", "logo", c.Logo)
	renderImageField(w, "Seal", "seal", c.Seal)
	fmt.Fprint(w, `<script>
function readImage(input, target) {
  var file = input.files && input.files[0];
  if (!file) return;
  var reader = new FileReader();
  reader.onload = function () {
    document.getElementById(target).value = reader.result;
    var preview = document.getElementById(target + '-preview');
    if (preview) { preview.src = reader.result; preview.style.display = 'inline'; }
  };
  reader.readAsDataURL(file);
}
</script>`)
	fmt.Fprint(w, `<div style="margin-top:1rem"><button class="btn btn-primary" type="submit">Save Company</button></div></div></form>`)
}

// renderImageField pairs a file picker with a hidden field holding the
// image as a base64 data URL, converted in the browser on selection.
func renderImageField(w io.Writer, label, name, value string) {
	fmt.Fprintf(w, `<div style="margin-top:0.8rem"><label for="%s-file">%s</label>`, esc(name), esc(label))
	if value != "" {
		fmt.Fprintf(w, `<img id="%s-preview" src="%s" alt="%s" style="height:3rem;display:inline;margin-right:0.6rem;vertical-align:middle"/>`, esc(name), esc(value), esc(label))
	} else {
		fmt.Fprintf(w, `<img id="%s-preview" alt="%s" style="height:3rem;display:none;margin-right:0.6rem;vertical-align:middle"/>`, esc(name), esc(label))
	}
	fmt.Fprintf(w, `<input type="file" id="%s-file" accept="image/*" onchange="readImage(this,'%s')"/>`, esc(name), esc(name))
	fmt.Fprintf(w, `<input type="hidden" id="%s" name="%s" value="%s"/></div>`, esc(name), esc(name), esc(value))
}

func renderBankTab(w io.Writer, b services.BankConfig) {
	fmt.Fprint(w, `<form method="post" action="/settings/bank"><div class="card"><div class="field-grid">`)
	formInput(w, "Account Holder", "companyName", "text", b.CompanyName)
	formInput(w, "Bank Name", "bankName", "text", b.BankName)
	formInput(w, "Account Number", "accountNumber", "text", b.AccountNumber)
	formInput(w, "Branch", "branch", "text", b.Branch)
	formInput(w, "IFSC", "ifsc", "text", b.IFSC)
	formInput(w, "Bank Address", "address", "text", b.Address)
	formInput(w, "PAN", "pan", "text", b.PAN)
	formInput(w, "UPI ID", "upiId", "text", b.UPIID)
	formInput(w, "GST Number", "gstNumber", "text", b.GSTNumber)
	fmt.Fprint(w, `</div><div style="margin-top:1rem"><button class="btn btn-primary" type="submit">Save Bank Details</button></div></div></form>`)
}

func renderWarrantyTab(w io.Writer, wt services.WarrantyConfig) {
	fmt.Fprint(w, `<form method="post" action="/settings/warranty"><div class="card"><div class="field-grid">`)
	formInput(w, "Panel Warranty", "panelWarranty", "text", wt.PanelWarranty)
	formInput(w, "Inverter Warranty", "inverterWarranty", "text", wt.InverterWarranty)
	formInput(w, "System Warranty", "systemWarranty", "text", wt.SystemWarranty)
	formInput(w, "Monitoring System", "monitoringSystem", "text", wt.MonitoringSystem)
	fmt.Fprint(w, `</div><div style="margin-top:1rem"><button class="btn btn-primary" type="submit">Save Warranty</button></div></div></form>`)
}

func renderPricingTab(w io.Writer, pricing []services.ProductPricing) {
	fmt.Fprint(w, `<form method="post" action="/settings/pricing"><div class="card">`)
	fmt.Fprint(w, `<table class="list"><thead><tr><th>Name</th><th>System Cost</th><th>Subsidy</th><th>KSEB</th><th>Addl. Material</th><th>Structure</th><th></th></tr></thead><tbody>`)
	for i, p := range pricing {
		fmt.Fprintf(w, `<tr><td><input type="hidden" name="pricing_id" value="%s"/><input type="text" name="pricing_name" value="%s"/></td>`, esc(p.ID), esc(p.Name))
		fmt.Fprintf(w, `<td><input type="number" step="any" name="pricing_system_cost" value="%g"/></td>`, p.OnGridSystemCost)
		fmt.Fprintf(w, `<td><input type="number" step="any" name="pricing_subsidy" value="%g"/></td>`, p.SubsidyAmount)
		fmt.Fprintf(w, `<td><input type="number" step="any" name="pricing_kseb" value="%g"/></td>`, p.KSEBCharges)
		fmt.Fprintf(w, `<td><input type="number" step="any" name="pricing_material" value="%g"/></td>`, p.AdditionalMaterialCost)
		fmt.Fprintf(w, `<td><input type="number" step="any" name="pricing_structure" value="%g"/></td>`, p.CustomizedStructureCost)
		fmt.Fprintf(w, `<td><button class="btn btn-link" type="submit" name="action" value="remove:%d">Remove</button></td></tr>`, i)
	}
	fmt.Fprint(w, `</tbody></table>`)
	fmt.Fprint(w, `<div style="margin-top:0.8rem;display:flex;gap:0.5rem">`)
	fmt.Fprint(w, `<button class="btn btn-secondary" type="submit" name="action" value="add">Add Package</button>`)
	fmt.Fprint(w, `<button class="btn btn-primary" type="submit" name="action" value="save">Save Pricing</button>`)
	fmt.Fprint(w, `</div></div></form>`)
}

func renderTermsTab(w io.Writer, terms []services.Term) {
	fmt.Fprint(w, `<form method="post" action="/settings/terms"><div class="card">`)
	fmt.Fprint(w, `<table class="list"><thead><tr><th>Order</th><th>Text</th><th>Enabled</th><th></th></tr></thead><tbody>`)
	for i, t := range terms {
		fmt.Fprintf(w, `<tr><td style="width:5rem"><input type="hidden" name="term_id" value="%s"/><input type="number" name="term_order" value="%d"/></td>`, esc(t.ID), t.Order)
		fmt.Fprintf(w, `<td><input type="text" name="term_text" value="%s"/></td>`, esc(t.Text))
		checked := ""
		if t.Enabled {
			checked = " checked"
		}
		// Checkboxes are positional: a hidden marker pairs each row
		// with its checkbox state.
		fmt.Fprintf(w, `<td style="text-align:center"><input type="checkbox" name="term_enabled_%d" value="1"%s/></td>`, i, checked)
		fmt.Fprintf(w, `<td><button class="btn btn-link" type="submit" name="action" value="remove:%d">Remove</button></td></tr>`, i)
	}
	fmt.Fprint(w, `</tbody></table>`)
	fmt.Fprint(w, `<div style="margin-top:0.8rem;display:flex;gap:0.5rem">`)
	fmt.Fprint(w, `<button class="btn btn-secondary" type="submit" name="action" value="add">Add Term</button>`)
	fmt.Fprint(w, `<button class="btn btn-primary" type="submit" name="action" value="save">Save Terms</button>`)
	fmt.Fprint(w, `</div></div></form>`)
}

func renderBOMTab(w io.Writer, tpls []services.BOMTemplate) {
	for _, tpl := range tpls {
		fmt.Fprint(w, `<form method="post" action="/settings/bom-template"><div class="card">`)
		fmt.Fprintf(w, `<input type="hidden" name="template_id" value="%s"/>`, esc(tpl.ID))
		fmt.Fprintf(w, `<label>Template Name</label><input type="text" name="template_name" value="%s"/>`, esc(tpl.Name))
		fmt.Fprint(w, `<table class="list" style="margin-top:0.8rem"><thead><tr><th>#</th><th>Product</th><th>UOM</th><th>Qty</th><th>Specification</th><th>Make</th><th></th></tr></thead><tbody>`)
		for i, item := range tpl.Items {
			fmt.Fprintf(w, `<tr><td>%d<input type="hidden" name="item_id" value="%s"/></td>`, i+1, esc(item.ID))
			fmt.Fprintf(w, `<td><input type="text" name="item_product" value="%s"/></td>`, esc(item.Product))
			fmt.Fprintf(w, `<td><input type="text" name="item_uom" value="%s"/></td>`, esc(item.UOM))
			fmt.Fprintf(w, `<td><input type="text" name="item_quantity" value="%s"/></td>`, esc(item.Quantity))
			fmt.Fprintf(w, `<td><input type="text" name="item_specification" value="%s"/></td>`, esc(item.Specification))
			fmt.Fprintf(w, `<td><input type="text" name="item_make" value="%s"/></td>`, esc(item.Make))
			fmt.Fprintf(w, `<td><button class="btn btn-link" type="submit" name="action" value="remove_item:%d">Remove</button></td></tr>`, i)
		}
		fmt.Fprint(w, `</tbody></table>`)
		fmt.Fprint(w, `<div style="margin-top:0.8rem;display:flex;gap:0.5rem">`)
		fmt.Fprint(w, `<button class="btn btn-secondary" type="submit" name="action" value="add_item">Add Item</button>`)
		fmt.Fprint(w, `<button class="btn btn-secondary" type="submit" name="action" value="duplicate">Duplicate</button>`)
		fmt.Fprint(w, `<button class="btn btn-primary" type="submit" name="action" value="save">Save Template</button>`)
		fmt.Fprint(w, `<button class="btn btn-link" type="submit" name="action" value="delete">Delete Template</button>`)
		fmt.Fprint(w, `</div></div></form>`)
	}

	fmt.Fprint(w, `<form method="post" action="/settings/bom-template"><div class="card">`)
	fmt.Fprint(w, `<label>New Template Name</label><input type="text" name="template_name" value=""/>`)
	fmt.Fprint(w, `<div style="margin-top:0.8rem"><button class="btn btn-primary" type="submit" name="action" value="create">Create Template</button></div></div></form>`)
}

func renderDescriptionsTab(w io.Writer, state *services.AppState) {
	fmt.Fprint(w, `<form method="post" action="/settings/descriptions"><div class="card">`)
	fmt.Fprint(w, `<table class="list"><thead><tr><th>Name</th><th>Default Pricing</th><th>Default BOM Template</th><th></th></tr></thead><tbody>`)
	for i, d := range state.ProductDescriptions {
		fmt.Fprintf(w, `<tr><td><input type="hidden" name="desc_id" value="%s"/><input type="text" name="desc_name" value="%s"/></td>`, esc(d.ID), esc(d.Name))

		fmt.Fprint(w, `<td><select name="desc_pricing"><option value="">-- none --</option>`)
		for _, p := range state.ProductPricing {
			selected := ""
			if p.ID == d.DefaultPricingID {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(p.ID), selected, esc(p.Name))
		}
		fmt.Fprint(w, `</select></td>`)

		fmt.Fprint(w, `<td><select name="desc_template"><option value="">-- none --</option>`)
		for _, t := range state.BOMTemplates {
			selected := ""
			if t.ID == d.DefaultBOMTemplateID {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(t.ID), selected, esc(t.Name))
		}
		fmt.Fprint(w, `</select></td>`)

		fmt.Fprintf(w, `<td><button class="btn btn-link" type="submit" name="action" value="remove:%d">Remove</button></td></tr>`, i)
	}
	fmt.Fprint(w, `</tbody></table>`)
	fmt.Fprint(w, `<div style="margin-top:0.8rem;display:flex;gap:0.5rem">`)
	fmt.Fprint(w, `<button class="btn btn-secondary" type="submit" name="action" value="add">Add Description</button>`)
	fmt.Fprint(w, `<button class="btn btn-primary" type="submit" name="action" value="save">Save Descriptions</button>`)
	fmt.Fprint(w, `</div></div></form>`)
}

func renderUsersTab(w io.Writer, users []services.User) {
	fmt.Fprint(w, `<form method="post" action="/settings/users"><div class="card">`)
	fmt.Fprint(w, `<table class="list"><thead><tr><th>Name</th><th>Username</th><th>Password</th><th>Role</th><th></th></tr></thead><tbody>`)
	for i, u := range users {
		fmt.Fprintf(w, `<tr><td><input type="hidden" name="user_id" value="%s"/><input type="text" name="user_name" value="%s"/></td>`, esc(u.ID), esc(u.Name))
		fmt.Fprintf(w, `<td><input type="text" name="user_username" value="%s"/></td>`, esc(u.Username))
		fmt.Fprintf(w, `<td><input type="text" name="user_password" value="%s"/></td>`, esc(u.Password))
		fmt.Fprint(w, `<td><select name="user_role">`)
		for _, role := range []string{services.RoleAdmin, services.RoleTL, services.RoleUser} {
			selected := ""
			if u.Role == role {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, role, selected, role)
		}
		fmt.Fprint(w, `</select></td>`)
		fmt.Fprintf(w, `<td><button class="btn btn-link" type="submit" name="action" value="remove:%d">Remove</button></td></tr>`, i)
	}
	fmt.Fprint(w, `</tbody></table>`)
	fmt.Fprint(w, `<div style="margin-top:0.8rem;display:flex;gap:0.5rem">`)
	fmt.Fprint(w, `<button class="btn btn-secondary" type="submit" name="action" value="add">Add User</button>`)
	fmt.Fprint(w, `<button class="btn btn-primary" type="submit" name="action" value="save">Save Users</button>`)
	fmt.Fprint(w, `</div></div></form>`)
}
