package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"solarquote/services"
)

// QuotationFormData drives the create/edit form. The same component
// serves both: IsNew switches the heading and the target action.
type QuotationFormData struct {
	Quotation    services.Quotation
	IsNew        bool
	Descriptions []services.ProductDescription
	Pricing      []services.ProductPricing
	BOMTemplates []services.BOMTemplate
	Warning      string
	UserName     string
	IsAdmin      bool
}

func formInput(w io.Writer, label, name, typ, value string) {
	fmt.Fprintf(w, `<div><label for="%s">%s</label><input type="%s" id="%s" name="%s" value="%s"/></div>`,
		esc(name), esc(label), esc(typ), esc(name), esc(name), esc(value))
}

func numberInput(w io.Writer, label, name string, value float64) {
	fmt.Fprintf(w, `<div><label for="%s">%s</label><input type="number" step="any" id="%s" name="%s" value="%g"/></div>`,
		esc(name), esc(label), esc(name), esc(name), value)
}

// QuotationFormContent renders the quotation editor form.
func QuotationFormContent(data QuotationFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		q := data.Quotation

		action := "/quotations/save"
		title := "Edit Quotation " + q.ID
		if data.IsNew {
			title = "New Quotation"
		}

		fmt.Fprintf(w, `<form method="post" action="%s">`, action)
		fmt.Fprintf(w, `<input type="hidden" name="id" value="%s"/>`, esc(q.ID))
		if data.IsNew {
			fmt.Fprint(w, `<input type="hidden" name="new" value="1"/>`)
		}

		fmt.Fprintf(w, `<div class="card"><h2 style="margin-top:0">%s</h2>`, esc(title))
		if data.Warning != "" {
			fmt.Fprintf(w, `<p style="color:#d97706;font-weight:600">%s</p>`, esc(data.Warning))
		}

		fmt.Fprint(w, `<div class="field-grid">`)
		formInput(w, "Customer Name", "customerName", "text", q.CustomerName)
		formInput(w, "Date", "date", "date", q.Date)
		formInput(w, "Consumer (Discom) Number", "discomNumber", "text", q.DiscomNumber)
		formInput(w, "Mobile", "mobile", "text", q.Mobile)
		formInput(w, "Email", "email", "text", q.Email)
		formInput(w, "Location", "location", "text", q.Location)
		fmt.Fprint(w, `</div>`)
		fmt.Fprintf(w, `<label for="address">Address</label><textarea id="address" name="address" rows="2">%s</textarea>`, esc(q.Address))
		fmt.Fprint(w, `</div>`)

		fmt.Fprint(w, `<div class="card"><h3 style="margin-top:0">Proposed System</h3>`)
		fmt.Fprint(w, `<label for="systemDescription">System Description</label><select id="systemDescription" name="systemDescription">`)
		fmt.Fprint(w, `<option value="">-- select --</option>`)
		for _, d := range data.Descriptions {
			selected := ""
			if d.Name == q.SystemDescription {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(d.Name), selected, esc(d.Name))
		}
		fmt.Fprint(w, `</select>`)
		fmt.Fprint(w, `<div style="margin-top:0.6rem"><button class="btn btn-secondary" type="submit" name="action" value="apply_description">Apply Description Defaults</button></div>`)
		fmt.Fprint(w, `</div>`)

		fmt.Fprint(w, `<div class="card"><h3 style="margin-top:0">Pricing</h3>`)
		fmt.Fprint(w, `<div style="margin-bottom:0.6rem;display:flex;gap:0.5rem;align-items:center">`)
		fmt.Fprint(w, `<select name="pricingPackage" style="width:auto">`)
		fmt.Fprint(w, `<option value="">-- package --</option>`)
		for _, p := range data.Pricing {
			fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(p.ID), esc(p.Name))
		}
		fmt.Fprint(w, `</select>`)
		fmt.Fprint(w, `<button class="btn btn-secondary" type="submit" name="action" value="apply_pricing">Apply Package</button>`)
		fmt.Fprint(w, `</div><div class="field-grid">`)
		numberInput(w, "On-Grid System Cost", "onGridSystemCost", q.Pricing.OnGridSystemCost)
		numberInput(w, "Subsidy Amount", "subsidyAmount", q.Pricing.SubsidyAmount)
		numberInput(w, "KSEB Charges", "ksebCharges", q.Pricing.KSEBCharges)
		numberInput(w, "Additional Material Cost", "additionalMaterialCost", q.Pricing.AdditionalMaterialCost)
		numberInput(w, "Customized Structure Cost", "customizedStructureCost", q.Pricing.CustomizedStructureCost)
		fmt.Fprint(w, `</div>`)
		fmt.Fprintf(w, `<p style="font-weight:700">Effective Cost: %s</p>`, esc(services.FormatINR(q.Pricing.EffectiveCost())))
		fmt.Fprint(w, `</div>`)

		fmt.Fprint(w, `<div class="card"><h3 style="margin-top:0">Bill of Materials</h3>`)
		fmt.Fprint(w, `<table class="list"><thead><tr><th>#</th><th>Product</th><th>UOM</th><th>Qty</th><th>Specification</th><th>Make</th><th></th></tr></thead><tbody>`)
		for i, item := range q.BOM {
			fmt.Fprintf(w, `<tr><td>%d<input type="hidden" name="bom_id" value="%s"/></td>`, i+1, esc(item.ID))
			fmt.Fprintf(w, `<td><input type="text" name="bom_product" value="%s"/></td>`, esc(item.Product))
			fmt.Fprintf(w, `<td><input type="text" name="bom_uom" value="%s"/></td>`, esc(item.UOM))
			fmt.Fprintf(w, `<td><input type="text" name="bom_quantity" value="%s"/></td>`, esc(item.Quantity))
			fmt.Fprintf(w, `<td><input type="text" name="bom_specification" value="%s"/></td>`, esc(item.Specification))
			fmt.Fprintf(w, `<td><input type="text" name="bom_make" value="%s"/></td>`, esc(item.Make))
			fmt.Fprintf(w, `<td><button class="btn btn-link" type="submit" name="action" value="remove_item:%d">Remove</button></td></tr>`, i)
		}
		fmt.Fprint(w, `</tbody></table>`)
		fmt.Fprint(w, `<div style="margin-top:0.6rem;display:flex;gap:0.5rem;align-items:center">`)
		fmt.Fprint(w, `<button class="btn btn-secondary" type="submit" name="action" value="add_item">Add Item</button>`)
		fmt.Fprint(w, `<select name="bomTemplate" style="width:auto">`)
		fmt.Fprint(w, `<option value="">-- template --</option>`)
		for _, t := range data.BOMTemplates {
			fmt.Fprintf(w, `<option value="%s">%s</option>`, esc(t.ID), esc(t.Name))
		}
		fmt.Fprint(w, `</select>`)
		fmt.Fprint(w, `<button class="btn btn-secondary" type="submit" name="action" value="apply_template">Load Template</button>`)
		fmt.Fprint(w, `<input type="text" name="templateName" placeholder="Template name" style="width:auto"/>`)
		fmt.Fprint(w, `<button class="btn btn-secondary" type="submit" name="action" value="save_as_template">Save as Template</button>`)
		fmt.Fprint(w, `</div></div>`)

		fmt.Fprint(w, `<div style="display:flex;gap:0.6rem">`)
		fmt.Fprint(w, `<button class="btn btn-primary" type="submit" name="action" value="save">Save Quotation</button>`)
		fmt.Fprint(w, `<a class="btn btn-secondary" href="/">Cancel</a>`)
		fmt.Fprint(w, `</div></form>`)
		return nil
	})
}

// QuotationFormPage renders the editor inside the layout.
func QuotationFormPage(data QuotationFormData) templ.Component {
	title := "Edit Quotation - Solar Quote Manager"
	if data.IsNew {
		title = "New Quotation - Solar Quote Manager"
	}
	return Layout(title, data.UserName, data.IsAdmin, QuotationFormContent(data))
}
