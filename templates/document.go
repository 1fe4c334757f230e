package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"solarquote/services"
)

// A4 print styles. The on-screen view and the print stream share this
// one layout; printing just drops the toolbar.
const documentStyles = `
@page { size: A4 portrait; margin: 0; }
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #6b7280; margin: 0; }
.toolbar { padding: 0.75rem 1.5rem; background: #111827; display: flex; gap: 0.75rem; align-items: center; }
.toolbar a, .toolbar button { color: #fff; background: #dc2626; border: none; border-radius: 0.4rem; padding: 0.4rem 1rem; font-weight: 700; cursor: pointer; text-decoration: none; font-size: 0.85rem; }
.a4-page { width: 210mm; min-height: 297mm; background: #fff; margin: 1rem auto; padding: 14mm 12mm; box-sizing: border-box; position: relative; display: flex; flex-direction: column; page-break-after: always; }
.a4-page:last-child { page-break-after: auto; }
.page-logo { position: absolute; top: 8mm; left: 10mm; height: 14mm; }
.identity { display: flex; justify-content: space-between; border-bottom: 2px solid #000; padding-bottom: 4mm; margin-bottom: 5mm; }
.identity h1 { font-size: 14pt; margin: 0; text-transform: uppercase; }
.partner { color: #dc2626; font-size: 7.5pt; font-weight: 800; letter-spacing: 0.2em; text-transform: uppercase; margin: 1mm 0 2mm; }
.muted { color: #6b7280; font-size: 7pt; }
.section-header { border-bottom: 2px solid #dc2626; margin-bottom: 3mm; }
.section-header h3 { color: #dc2626; font-size: 9.5pt; letter-spacing: 0.25em; text-transform: uppercase; margin: 0 0 1mm; }
table.doc { width: 100%; border-collapse: collapse; font-size: 9pt; }
table.doc th { background: #212529; color: #fff; text-align: left; padding: 2mm; font-size: 7.5pt; text-transform: uppercase; }
table.doc td { padding: 2mm; border-bottom: 1px solid #f3f4f6; vertical-align: top; }
tr.alt { background: #f8f8f8; }
.effective { background: #dc2626; color: #fff; display: flex; justify-content: space-between; align-items: center; padding: 4mm; }
.effective .amount { font-size: 20pt; font-weight: 900; }
.warranty-grid { display: grid; grid-template-columns: repeat(4, 1fr); gap: 3mm; }
.warranty-grid div { background: #f8f8f8; border: 1px solid #e5e7eb; padding: 3mm; text-align: center; border-radius: 2mm; }
.warranty-grid .label { color: #dc2626; font-size: 6pt; font-weight: 800; text-transform: uppercase; letter-spacing: 0.15em; }
.warranty-grid .value { font-size: 7pt; font-weight: 700; }
.page-footer { margin-top: auto; padding-top: 4mm; display: flex; justify-content: space-between; font-size: 7pt; font-weight: 700; color: #9ca3af; text-transform: uppercase; letter-spacing: 0.3em; border-top: 1px solid #f3f4f6; }
.term { display: flex; gap: 3mm; margin-bottom: 2mm; font-size: 9pt; }
.term .num { font-weight: 700; }
.tagline { text-align: center; color: #9ca3af; font-size: 7pt; font-weight: 700; letter-spacing: 0.2em; text-transform: uppercase; border-top: 1px solid #e5e7eb; padding-top: 3mm; margin-top: auto; margin-bottom: 6mm; }
.bank-row { display: flex; justify-content: space-between; border-bottom: 1px solid #f3f4f6; padding: 1.2mm 0; font-size: 9pt; }
.bank-row .k { color: #9ca3af; font-size: 7.5pt; font-weight: 800; text-transform: uppercase; }
.roadmap-step { display: flex; gap: 4mm; margin-bottom: 4mm; }
.roadmap-step .n { font-size: 18pt; font-weight: 900; color: #d1d5db; }
.doc-check { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5mm 8mm; font-size: 9pt; font-weight: 700; }
.notes { font-size: 7.5pt; color: #6b7280; }
.signatures { display: flex; justify-content: space-between; margin-top: auto; padding: 8mm 10mm 0; }
.signatures .block { text-align: center; width: 60mm; }
.signatures .line { border-top: 2px solid #000; font-weight: 900; text-transform: uppercase; font-size: 10pt; padding-top: 2mm; margin-top: 22mm; }
.signatures .line.red { border-color: #dc2626; color: #dc2626; }
.seal-img { height: 24mm; }
.seal-placeholder { display: inline-block; border: 1px dashed #9ca3af; border-radius: 50%; color: #9ca3af; font-size: 7pt; font-weight: 700; text-transform: uppercase; padding: 8mm 4mm; }
@media print { .toolbar { display: none; } body { background: #fff; } .a4-page { margin: 0; } }
`

// DocumentPage renders the four-page proposal document with a print
// toolbar. The layout is identical on screen and in the print stream.
func DocumentPage(doc services.DocumentModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><title>%s - %s</title><style>%s</style></head><body>`,
			esc(doc.Quotation.ID), esc(doc.Quotation.CustomerName), documentStyles)

		fmt.Fprint(w, `<div class="toolbar"><a href="/">Back</a><button onclick="window.print()">Print</button>`)
		fmt.Fprintf(w, `<a href="/quotations/export/pdf?id=%s">Download PDF</a></div>`, urlQuery(doc.Quotation.ID))

		renderSummaryPage(w, doc)
		renderBOMPage(w, doc)
		renderTermsPage(w, doc)
		renderCompliancePage(w, doc)

		fmt.Fprint(w, `</body></html>`)
		return nil
	})
}

func renderPageLogo(w io.Writer, doc services.DocumentModel) {
	if doc.Company.Logo != "" {
		fmt.Fprintf(w, `<img class="page-logo" src="%s" alt="Logo"/>`, esc(doc.Company.Logo))
	}
}

func renderIdentity(w io.Writer, doc services.DocumentModel) {
	fmt.Fprint(w, `<div class="identity"><div>`)
	fmt.Fprintf(w, `<h1>%s</h1>`, esc(doc.Company.Name))
	fmt.Fprintf(w, `<p class="partner">%s</p>`, services.PartnerLine)
	fmt.Fprintf(w, `<p class="muted"><strong>Head Office</strong><br/>%s</p>`, esc(doc.Company.HeadOffice))
	fmt.Fprint(w, `</div><div style="text-align:right">`)
	fmt.Fprintf(w, `<p style="font-weight:900;font-size:8pt;margin:0">%s</p>`, esc(doc.Company.Website))
	fmt.Fprintf(w, `<p class="muted" style="margin:1mm 0">%s<br/>%s</p>`, esc(doc.Company.Email), esc(doc.Company.Phone))
	fmt.Fprintf(w, `<p class="muted"><strong>Regional Branches</strong><br/>%s<br/>%s</p>`, esc(doc.Company.RegionalOffice1), esc(doc.Company.RegionalOffice2))
	fmt.Fprint(w, `</div></div>`)
}

func renderFooter(w io.Writer, doc services.DocumentModel, page int) {
	fmt.Fprintf(w, `<div class="page-footer"><span>%s</span><span>%s</span></div>`,
		esc(doc.FooterRef()), esc(doc.FooterPage(page)))
}

func renderSummaryPage(w io.Writer, doc services.DocumentModel) {
	q := doc.Quotation
	fmt.Fprint(w, `<div class="a4-page">`)
	renderPageLogo(w, doc)
	renderIdentity(w, doc)

	fmt.Fprint(w, `<div style="display:flex;justify-content:space-between;align-items:flex-end;margin-bottom:4mm">`)
	fmt.Fprintf(w, `<div><p class="muted" style="margin:0"><strong>CUSTOMER DETAILS</strong></p><p style="font-size:14pt;font-weight:900;text-transform:uppercase;margin:1mm 0">%s</p></div>`, esc(q.CustomerName))
	fmt.Fprintf(w, `<div style="text-align:right"><p class="muted" style="margin:0"><strong>QUOTATION NO &amp; DATE</strong></p><p style="font-size:13pt;font-weight:900;color:#dc2626;margin:1mm 0">%s</p><p class="muted" style="margin:0">%s</p></div>`, esc(q.ID), esc(doc.DisplayDate()))
	fmt.Fprint(w, `</div>`)

	fmt.Fprintf(w, `<p class="muted" style="background:#f8f8f8;border:1px solid #f3f4f6;border-radius:2mm;padding:3mm;font-size:8pt"><strong>Consumer No:</strong> %s &nbsp; <strong>Mobile:</strong> %s &nbsp; <strong>Email:</strong> %s &nbsp; <strong>Address:</strong> %s</p>`,
		esc(doc.DiscomOrNA()), esc(q.Mobile), esc(q.Email), esc(q.Address))

	fmt.Fprintf(w, `<div style="background:#fef2f2;border-left:4px solid #dc2626;padding:3mm;margin:3mm 0"><span class="muted" style="color:#f87171;font-weight:800">PRODUCT NAME / PROPOSED SYSTEM</span><p style="color:#b91c1c;font-weight:900;font-size:11pt;text-transform:uppercase;margin:1mm 0 0">%s</p></div>`, esc(q.SystemDescription))

	fmt.Fprint(w, `<div class="section-header"><h3>Pricing and Estimation</h3></div>`)
	fmt.Fprint(w, `<table class="doc"><thead><tr><th style="width:12mm">SL No</th><th>Description</th><th style="text-align:right;width:40mm">Rate (INR)</th></tr></thead><tbody>`)
	fmt.Fprintf(w, `<tr><td>01</td><td style="text-transform:uppercase">Total plant cost of %s</td><td style="text-align:right;font-weight:900">%s</td></tr>`,
		esc(q.SystemDescription), esc(services.FormatINR(q.Pricing.OnGridSystemCost)))
	fmt.Fprintf(w, `<tr><td>02</td><td style="color:#b91c1c">%s</td><td style="text-align:right;font-weight:900;color:#dc2626">%s</td></tr>`,
		services.SubsidyLineText, esc(services.FormatINRDeduction(q.Pricing.SubsidyAmount)))
	fmt.Fprint(w, `</tbody></table>`)

	fmt.Fprintf(w, `<div class="effective"><div><p style="font-weight:900;font-size:9pt;text-transform:uppercase;margin:0">%s</p><p style="font-size:6pt;margin:1mm 0 0;opacity:0.8">Inclusive of GST, Transportation &amp; Standard Installation</p></div><span class="amount">%s</span></div>`,
		services.EffectiveCostLabel, esc(services.FormatINR(doc.EffectiveCost)))

	fmt.Fprint(w, `<table class="doc" style="margin-top:4mm"><thead><tr><th style="width:12mm">SL No</th><th>Description (Customer Scope Charges)</th><th style="text-align:right;width:40mm">Rate (INR)</th></tr></thead><tbody>`)
	scope := []struct {
		label  string
		amount float64
	}{
		{"KSEB Charges", q.Pricing.KSEBCharges},
		{"Customized Structure Cost", q.Pricing.CustomizedStructureCost},
		{"Additional Material Cost - If Applicable", q.Pricing.AdditionalMaterialCost},
	}
	for i, s := range scope {
		fmt.Fprintf(w, `<tr><td>%02d</td><td style="text-transform:uppercase">%s</td><td style="text-align:right;font-weight:700">%s</td></tr>`,
			i+1, esc(s.label), esc(services.FormatINR(s.amount)))
	}
	fmt.Fprint(w, `</tbody></table>`)

	fmt.Fprint(w, `<div style="margin-top:auto"><div class="section-header"><h3>Quality Assurance</h3></div><div class="warranty-grid">`)
	warranty := []struct{ label, value string }{
		{"Modules", doc.Warranty.PanelWarranty},
		{"Inverter", doc.Warranty.InverterWarranty},
		{"Service", doc.Warranty.SystemWarranty},
		{"Monitor", doc.Warranty.MonitoringSystem},
	}
	for _, item := range warranty {
		fmt.Fprintf(w, `<div><p class="label">%s</p><p class="value">%s</p></div>`, esc(item.label), esc(item.value))
	}
	fmt.Fprint(w, `</div></div>`)

	renderFooter(w, doc, 1)
	fmt.Fprint(w, `</div>`)
}

func renderBOMPage(w io.Writer, doc services.DocumentModel) {
	fmt.Fprint(w, `<div class="a4-page">`)
	renderPageLogo(w, doc)
	renderIdentity(w, doc)

	fmt.Fprint(w, `<div class="section-header"><h3>Technical Specifications (BOM)</h3></div>`)
	fmt.Fprintf(w, `<p class="muted" style="font-size:9pt">Fixed Bill of Materials - %s</p>`, esc(doc.Quotation.SystemDescription))

	fmt.Fprint(w, `<table class="doc"><thead><tr><th style="width:8mm">#</th><th style="width:36mm">Products</th><th style="width:16mm">Qty</th><th style="width:16mm">UOM</th><th>Specification/Type</th><th>Make</th></tr></thead><tbody>`)
	for i, item := range doc.Quotation.BOM {
		class := ""
		if i%2 == 1 {
			class = ` class="alt"`
		}
		fmt.Fprintf(w, `<tr%s><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td style="text-transform:uppercase">%s</td></tr>`,
			class, i+1, esc(item.Product), esc(item.Quantity), esc(item.UOM), esc(item.Specification), esc(item.Make))
	}
	fmt.Fprint(w, `</tbody></table>`)

	renderFooter(w, doc, 2)
	fmt.Fprint(w, `</div>`)
}

func renderTermsPage(w io.Writer, doc services.DocumentModel) {
	fmt.Fprint(w, `<div class="a4-page">`)
	renderPageLogo(w, doc)
	renderIdentity(w, doc)

	fmt.Fprint(w, `<div class="section-header"><h3>Terms and Conditions</h3></div>`)
	for _, term := range doc.Terms {
		fmt.Fprintf(w, `<div class="term"><span class="num">%d.</span><span>%s</span></div>`, term.Number, esc(term.Text))
	}

	fmt.Fprintf(w, `<p class="tagline">%s</p>`, services.Tagline)

	renderFooter(w, doc, 3)
	fmt.Fprint(w, `</div>`)
}

func renderCompliancePage(w io.Writer, doc services.DocumentModel) {
	fmt.Fprint(w, `<div class="a4-page">`)
	renderPageLogo(w, doc)
	renderIdentity(w, doc)

	fmt.Fprint(w, `<div class="section-header"><h3>Execution &amp; Compliance</h3></div>`)

	fmt.Fprint(w, `<div style="display:grid;grid-template-columns:3fr 2fr;gap:6mm;margin-bottom:5mm">`)

	fmt.Fprint(w, `<div><p style="color:#dc2626;font-weight:900;font-size:7.5pt;text-transform:uppercase;letter-spacing:0.2em;text-align:center;border-bottom:1px solid #fee2e2;padding-bottom:1mm">Company Bank Account Details</p>`)
	bank := []struct{ k, v string }{
		{"Account Holder", doc.Bank.CompanyName},
		{"Banking Partner", doc.Bank.BankName + " (" + doc.Bank.Branch + ")"},
		{"Account Number", doc.Bank.AccountNumber},
		{"IFSC Code", doc.Bank.IFSC},
	}
	if doc.Bank.PAN != "" {
		bank = append(bank, struct{ k, v string }{"PAN Number", doc.Bank.PAN})
	}
	if doc.Bank.GSTNumber != "" {
		bank = append(bank, struct{ k, v string }{"GSTIN", doc.Bank.GSTNumber})
	}
	if doc.Bank.Address != "" {
		bank = append(bank, struct{ k, v string }{"Bank Address", doc.Bank.Address})
	}
	for _, row := range bank {
		fmt.Fprintf(w, `<div class="bank-row"><span class="k">%s</span><span style="font-weight:700">%s</span></div>`, esc(row.k), esc(row.v))
	}
	fmt.Fprintf(w, `<p style="text-align:center;border:1px solid #fee2e2;border-radius:2mm;padding:2mm;margin-top:3mm"><span class="muted" style="font-weight:800">UPI ID</span><br/><span style="font-weight:900;font-size:11pt">%s</span></p></div>`, esc(doc.Bank.UPIID))

	fmt.Fprint(w, `<div style="background:#000;color:#fff;border-radius:3mm;padding:4mm"><p style="color:#ef4444;font-weight:900;font-size:8.5pt;text-transform:uppercase;letter-spacing:0.2em;text-align:center;border-bottom:1px solid #1f2937;padding-bottom:2mm">Project Roadmap</p>`)
	for _, step := range services.ProjectTimeline {
		fmt.Fprintf(w, `<div class="roadmap-step"><span class="n">%s</span><div><p style="font-weight:900;text-transform:uppercase;font-size:10pt;margin:0">%s</p><p style="color:#6b7280;font-size:8pt;margin:1mm 0 0">%s</p></div></div>`,
			esc(step.Step), esc(step.Title), esc(step.Detail))
	}
	fmt.Fprint(w, `</div></div>`)

	fmt.Fprint(w, `<div style="background:#f8f8f8;border:1px solid #f3f4f6;border-radius:4mm;padding:5mm">`)
	fmt.Fprint(w, `<p style="color:#dc2626;font-weight:900;font-size:9pt;text-transform:uppercase;letter-spacing:0.3em;text-align:center;margin:0 0 3mm">Required Documents for Apply Subsidy</p>`)
	fmt.Fprint(w, `<div class="doc-check">`)
	for _, item := range services.RequiredDocuments {
		fmt.Fprintf(w, `<p style="margin:0">&bull; %s</p>`, esc(item))
	}
	fmt.Fprint(w, `</div><div class="notes" style="border-top:1px solid #e5e7eb;margin-top:3mm;padding-top:2mm"><p style="font-weight:800;text-transform:uppercase;margin:0 0 1mm">Note:</p><ul style="margin:0;padding-left:5mm">`)
	for _, note := range services.SubsidyNotes {
		fmt.Fprintf(w, `<li>%s</li>`, esc(note))
	}
	fmt.Fprint(w, `</ul></div></div>`)

	fmt.Fprint(w, `<div class="signatures"><div class="block"><p class="line">Authorized Customer</p><p class="muted">Signature &amp; Full Name</p></div>`)
	fmt.Fprint(w, `<div class="block">`)
	if doc.Company.Seal != "" {
		fmt.Fprintf(w, `<img class="seal-img" src="%s" alt="Seal"/>`, esc(doc.Company.Seal))
	} else {
		fmt.Fprint(w, `<div class="seal-placeholder">Official Seal</div>`)
	}
	fmt.Fprintf(w, `<p class="line red">For %s</p><p class="muted">Authorized Signatory</p></div></div>`, esc(doc.Company.Name))

	renderFooter(w, doc, 4)
	fmt.Fprint(w, `</div>`)
}
