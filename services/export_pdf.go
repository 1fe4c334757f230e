package services

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfRed      = &props.Color{Red: 220, Green: 38, Blue: 38}
	pdfBlack    = &props.Color{Red: 0, Green: 0, Blue: 0}
	pdfGray     = &props.Color{Red: 120, Green: 120, Blue: 120}
	pdfWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
	pdfHeaderBg = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfRowAltBg = &props.Color{Red: 248, Green: 248, Blue: 248}
)

// GenerateQuotationPDF renders the proposal document into a PDF. The
// document is built as four explicit pages, so the output can never
// pick up a blank trailing page from layout rounding.
func GenerateQuotationPDF(doc DocumentModel) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(10).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   pdfGray,
		}).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(footerRow(doc)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddPages(
		summaryPage(doc),
		bomPage(doc),
		termsPage(doc),
		compliancePage(doc),
	)

	result, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return result.GetBytes(), nil
}

// footerRow is the running reference line carried by every page. The
// page counter itself comes from the page-number config.
func footerRow(doc DocumentModel) core.Row {
	return row.New(6).Add(
		col.New(12).Add(
			text.New(doc.FooterRef(), props.Text{
				Size:  6.5,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: pdfGray,
			}),
		),
	)
}

// pageHeader is the identity block repeated at the top of every page:
// logo, company name, partner line and contact columns.
func pageHeader(doc DocumentModel) []core.Row {
	rows := []core.Row{}

	if logo, ext, ok := decodeDataURL(doc.Company.Logo); ok {
		rows = append(rows, row.New(12).Add(
			image.NewFromBytesCol(3, logo, ext, props.Rect{Percent: 90}),
			col.New(9),
		))
	}

	rows = append(rows,
		row.New(7).Add(
			col.New(8).Add(
				text.New(strings.ToUpper(doc.Company.Name), props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(4).Add(
				text.New(doc.Company.Website, props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
		row.New(4).Add(
			col.New(8).Add(
				text.New(PartnerLine, props.Text{
					Size:  6.5,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: pdfRed,
				}),
			),
			col.New(4).Add(
				text.New(doc.Company.Email, props.Text{
					Size:  7,
					Align: align.Right,
					Color: pdfGray,
				}),
			),
		),
		row.New(4).Add(
			col.New(8).Add(
				text.New("Head Office: "+doc.Company.HeadOffice, props.Text{
					Size:  7,
					Align: align.Left,
					Color: pdfGray,
				}),
			),
			col.New(4).Add(
				text.New(doc.Company.Phone, props.Text{
					Size:  7,
					Align: align.Right,
					Color: pdfGray,
				}),
			),
		),
		row.New(4).Add(
			col.New(12).Add(
				text.New(doc.Company.RegionalOffice1+"  |  "+doc.Company.RegionalOffice2, props.Text{
					Size:  6.5,
					Align: align.Left,
					Color: pdfGray,
				}),
			),
		),
		row.New(3),
	)

	return rows
}

// sectionHeader is the red banner line that opens each page section.
func sectionHeader(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(strings.ToUpper(title), props.Text{
				Size:  9.5,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: pdfRed,
			}),
		),
	)
}

// summaryPage is page one: customer identity, proposed system and the
// pricing estimation with the effective-cost strip.
func summaryPage(doc DocumentModel) core.Page {
	p := page.New()
	p.Add(pageHeader(doc)...)

	p.Add(
		row.New(5).Add(
			col.New(7).Add(
				text.New("CUSTOMER DETAILS", props.Text{Size: 6, Style: fontstyle.Bold, Color: pdfGray}),
			),
			col.New(5).Add(
				text.New("QUOTATION NO & DATE", props.Text{Size: 6, Style: fontstyle.Bold, Align: align.Right, Color: pdfGray}),
			),
		),
		row.New(7).Add(
			col.New(7).Add(
				text.New(strings.ToUpper(doc.Quotation.CustomerName), props.Text{Size: 12, Style: fontstyle.Bold}),
			),
			col.New(5).Add(
				text.New(doc.Quotation.ID, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right, Color: pdfRed}),
			),
		),
		row.New(4).Add(
			col.New(7).Add(
				text.New("Consumer No: "+doc.DiscomOrNA()+"   Mobile: "+doc.Quotation.Mobile, props.Text{Size: 7.5, Color: pdfGray}),
			),
			col.New(5).Add(
				text.New(doc.DisplayDate(), props.Text{Size: 7.5, Align: align.Right, Color: pdfGray}),
			),
		),
		row.New(4).Add(
			col.New(12).Add(
				text.New("Address: "+doc.Quotation.Address, props.Text{Size: 7.5, Color: pdfGray}),
			),
		),
		row.New(3),
	)

	p.Add(
		row.New(4).Add(
			col.New(12).Add(
				text.New("PRODUCT NAME / PROPOSED SYSTEM", props.Text{Size: 6.5, Style: fontstyle.Bold, Color: pdfRed}),
			),
		),
		row.New(6).Add(
			col.New(12).Add(
				text.New(strings.ToUpper(doc.Quotation.SystemDescription), props.Text{Size: 10, Style: fontstyle.Bold, Color: pdfRed}),
			),
		),
		row.New(3),
	)

	p.Add(sectionHeader("Pricing and Estimation"))
	p.Add(pricingRows(doc)...)
	p.Add(row.New(4))

	p.Add(customerScopeRows(doc.Quotation.Pricing)...)
	p.Add(row.New(4))

	p.Add(sectionHeader("Quality Assurance"))
	p.Add(warrantyRow(doc.Warranty))

	return p
}

func pricingRows(doc DocumentModel) []core.Row {
	headerText := props.Text{Size: 7.5, Style: fontstyle.Bold, Align: align.Center, Color: pdfWhite}
	headerLeft := headerText
	headerLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: pdfHeaderBg}

	return []core.Row{
		row.New(7).Add(
			col.New(1).Add(text.New("SL", headerText)).WithStyle(&headerCell),
			col.New(8).Add(text.New("Description", headerLeft)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Rate (INR)", headerText)).WithStyle(&headerCell),
		),
		row.New(8).Add(
			col.New(1).Add(text.New("01", props.Text{Size: 8, Align: align.Center, Color: pdfGray})),
			col.New(8).Add(text.New("Total plant cost of "+doc.Quotation.SystemDescription, props.Text{Size: 8.5, Style: fontstyle.Bold})),
			col.New(3).Add(text.New(FormatINR(doc.Quotation.Pricing.OnGridSystemCost), props.Text{Size: 8.5, Style: fontstyle.Bold, Align: align.Right})),
		),
		row.New(10).Add(
			col.New(1).Add(text.New("02", props.Text{Size: 8, Align: align.Center, Color: pdfGray})),
			col.New(8).Add(text.New(SubsidyLineText, props.Text{Size: 7.5, Style: fontstyle.Bold, Color: pdfRed})),
			col.New(3).Add(text.New(FormatINRDeduction(doc.Quotation.Pricing.SubsidyAmount), props.Text{Size: 8.5, Style: fontstyle.Bold, Align: align.Right, Color: pdfRed})),
		),
		row.New(12).Add(
			col.New(8).Add(
				text.New(EffectiveCostLabel, props.Text{Size: 8, Style: fontstyle.Bold, Color: pdfWhite}),
				text.New("Inclusive of GST, Transportation & Standard Installation", props.Text{Size: 5.5, Top: 5, Color: pdfWhite}),
			).WithStyle(&props.Cell{BackgroundColor: pdfRed}),
			col.New(4).Add(
				text.New(FormatINR(doc.EffectiveCost), props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Right, Color: pdfWhite}),
			).WithStyle(&props.Cell{BackgroundColor: pdfRed}),
		),
	}
}

func customerScopeRows(p PricingConfig) []core.Row {
	headerText := props.Text{Size: 6.5, Style: fontstyle.Bold, Align: align.Left, Color: pdfWhite}
	headerCell := props.Cell{BackgroundColor: pdfHeaderBg}

	line := func(sl, label string, amount float64) core.Row {
		return row.New(5).Add(
			col.New(1).Add(text.New(sl, props.Text{Size: 7, Align: align.Center, Color: pdfGray})),
			col.New(8).Add(text.New(label, props.Text{Size: 7.5})),
			col.New(3).Add(text.New(FormatINR(amount), props.Text{Size: 7.5, Style: fontstyle.Bold, Align: align.Right})),
		)
	}

	return []core.Row{
		row.New(6).Add(
			col.New(1).Add(text.New("SL", headerText)).WithStyle(&headerCell),
			col.New(8).Add(text.New("DESCRIPTION (CUSTOMER SCOPE CHARGES)", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("RATE (INR)", headerText)).WithStyle(&headerCell),
		),
		line("01", "KSEB Charges", p.KSEBCharges),
		line("02", "Customized Structure Cost", p.CustomizedStructureCost),
		line("03", "Additional Material Cost - If Applicable", p.AdditionalMaterialCost),
	}
}

func warrantyRow(w WarrantyConfig) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 6, Style: fontstyle.Bold, Align: align.Center, Color: pdfRed}),
			text.New(value, props.Text{Size: 6.5, Top: 4, Align: align.Center}),
		).WithStyle(&props.Cell{BackgroundColor: pdfRowAltBg})
	}
	return row.New(16).Add(
		cell("MODULES", w.PanelWarranty),
		cell("INVERTER", w.InverterWarranty),
		cell("SERVICE", w.SystemWarranty),
		cell("MONITOR", w.MonitoringSystem),
	)
}

// bomPage is page two: the bill of materials table.
func bomPage(doc DocumentModel) core.Page {
	p := page.New()
	p.Add(pageHeader(doc)...)
	p.Add(sectionHeader("Technical Specifications (BOM)"))
	p.Add(
		row.New(5).Add(
			col.New(12).Add(
				text.New("Fixed Bill of Materials - "+doc.Quotation.SystemDescription, props.Text{Size: 8, Color: pdfGray}),
			),
		),
	)

	headerText := props.Text{Size: 7.5, Style: fontstyle.Bold, Align: align.Left, Color: pdfWhite}
	headerCell := props.Cell{BackgroundColor: pdfHeaderBg}
	p.Add(
		row.New(7).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Products", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("UOM", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Specification/Type", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Make", headerText)).WithStyle(&headerCell),
		),
	)

	for i, item := range doc.Quotation.BOM {
		cellText := props.Text{Size: 7.5, Align: align.Left}
		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: pdfRowAltBg}
		}

		cIdx := col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), cellText))
		cProduct := col.New(3).Add(text.New(item.Product, cellText))
		cQty := col.New(1).Add(text.New(item.Quantity, cellText))
		cUOM := col.New(1).Add(text.New(item.UOM, cellText))
		cSpec := col.New(3).Add(text.New(item.Specification, cellText))
		cMake := col.New(3).Add(text.New(strings.ToUpper(item.Make), cellText))

		if cellStyle != nil {
			cIdx = cIdx.WithStyle(cellStyle)
			cProduct = cProduct.WithStyle(cellStyle)
			cQty = cQty.WithStyle(cellStyle)
			cUOM = cUOM.WithStyle(cellStyle)
			cSpec = cSpec.WithStyle(cellStyle)
			cMake = cMake.WithStyle(cellStyle)
		}

		p.Add(row.New(6).Add(cIdx, cProduct, cQty, cUOM, cSpec, cMake))
	}

	return p
}

// termsPage is page three: the enabled terms, positionally numbered.
func termsPage(doc DocumentModel) core.Page {
	p := page.New()
	p.Add(pageHeader(doc)...)
	p.Add(sectionHeader("Terms and Conditions"))
	p.Add(row.New(2))

	for _, term := range doc.Terms {
		p.Add(
			row.New(7).Add(
				col.New(1).Add(
					text.New(fmt.Sprintf("%d.", term.Number), props.Text{Size: 8.5, Style: fontstyle.Bold, Align: align.Right}),
				),
				col.New(11).Add(
					text.New(term.Text, props.Text{Size: 8.5, Align: align.Left}),
				),
			),
		)
	}

	p.Add(
		row.New(10),
		row.New(6).Add(
			col.New(12).Add(
				text.New(Tagline, props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: pdfGray}),
			),
		),
	)

	return p
}

// compliancePage is page four: bank details, the project roadmap, the
// subsidy document checklist and the signature blocks.
func compliancePage(doc DocumentModel) core.Page {
	p := page.New()
	p.Add(pageHeader(doc)...)
	p.Add(sectionHeader("Execution & Compliance"))
	p.Add(row.New(2))

	p.Add(
		row.New(5).Add(
			col.New(12).Add(
				text.New("COMPANY BANK ACCOUNT DETAILS", props.Text{Size: 7, Style: fontstyle.Bold, Color: pdfRed}),
			),
		),
	)
	bankLine := func(label, value string) core.Row {
		return row.New(4.5).Add(
			col.New(4).Add(text.New(label, props.Text{Size: 7, Style: fontstyle.Bold, Color: pdfGray})),
			col.New(8).Add(text.New(value, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
		)
	}
	p.Add(
		bankLine("ACCOUNT HOLDER", doc.Bank.CompanyName),
		bankLine("BANKING PARTNER", doc.Bank.BankName+" ("+doc.Bank.Branch+")"),
		bankLine("ACCOUNT NUMBER", doc.Bank.AccountNumber),
		bankLine("IFSC CODE", doc.Bank.IFSC),
	)
	if doc.Bank.PAN != "" {
		p.Add(bankLine("PAN NUMBER", doc.Bank.PAN))
	}
	if doc.Bank.GSTNumber != "" {
		p.Add(bankLine("GSTIN", doc.Bank.GSTNumber))
	}
	p.Add(bankLine("UPI ID", doc.Bank.UPIID))
	p.Add(row.New(3))

	p.Add(
		row.New(5).Add(
			col.New(12).Add(
				text.New("PROJECT ROADMAP", props.Text{Size: 7, Style: fontstyle.Bold, Color: pdfRed}),
			),
		),
	)
	for _, step := range ProjectTimeline {
		p.Add(
			row.New(8).Add(
				col.New(1).Add(text.New(step.Step, props.Text{Size: 12, Style: fontstyle.Bold, Color: pdfGray})),
				col.New(11).Add(
					text.New(strings.ToUpper(step.Title), props.Text{Size: 8.5, Style: fontstyle.Bold}),
					text.New(step.Detail, props.Text{Size: 7, Top: 4, Color: pdfGray}),
				),
			),
		)
	}
	p.Add(row.New(3))

	p.Add(
		row.New(5).Add(
			col.New(12).Add(
				text.New("REQUIRED DOCUMENTS FOR APPLY SUBSIDY", props.Text{Size: 7.5, Style: fontstyle.Bold, Align: align.Center, Color: pdfRed}),
			),
		),
	)
	for i := 0; i < len(RequiredDocuments); i += 2 {
		left := "- " + RequiredDocuments[i]
		right := ""
		if i+1 < len(RequiredDocuments) {
			right = "- " + RequiredDocuments[i+1]
		}
		p.Add(
			row.New(4.5).Add(
				col.New(6).Add(text.New(left, props.Text{Size: 7.5, Style: fontstyle.Bold})),
				col.New(6).Add(text.New(right, props.Text{Size: 7.5, Style: fontstyle.Bold})),
			),
		)
	}
	p.Add(row.New(2))
	for _, note := range SubsidyNotes {
		p.Add(
			row.New(5).Add(
				col.New(12).Add(
					text.New("* "+note, props.Text{Size: 6.5, Color: pdfGray}),
				),
			),
		)
	}
	p.Add(row.New(6))

	sigRow := row.New(20)
	customerCol := col.New(5).Add(
		text.New("AUTHORIZED CUSTOMER", props.Text{Size: 8.5, Style: fontstyle.Bold, Top: 12, Align: align.Center}),
		text.New("Signature & Full Name", props.Text{Size: 6.5, Top: 16, Align: align.Center, Color: pdfGray}),
	)
	companyCol := col.New(5)
	if seal, ext, ok := decodeDataURL(doc.Company.Seal); ok {
		companyCol = companyCol.Add(image.NewFromBytes(seal, ext, props.Rect{Center: true, Percent: 55}))
	} else {
		companyCol = companyCol.Add(text.New("( OFFICIAL SEAL )", props.Text{Size: 7, Top: 5, Align: align.Center, Color: pdfGray}))
	}
	companyCol = companyCol.Add(
		text.New("FOR "+strings.ToUpper(doc.Company.Name), props.Text{Size: 8.5, Style: fontstyle.Bold, Top: 12, Align: align.Center, Color: pdfRed}),
		text.New("Authorized Signatory", props.Text{Size: 6.5, Top: 16, Align: align.Center, Color: pdfGray}),
	)
	p.Add(sigRow.Add(customerCol, col.New(2), companyCol))

	return p
}

// decodeDataURL extracts raw image bytes and the maroto extension from
// a data-URL encoded image. Empty or malformed values report ok=false
// so callers simply skip the image.
func decodeDataURL(dataURL string) ([]byte, extension.Type, bool) {
	if dataURL == "" {
		return nil, extension.Png, false
	}
	idx := strings.Index(dataURL, "base64,")
	if idx < 0 {
		return nil, extension.Png, false
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len("base64,"):])
	if err != nil {
		return nil, extension.Png, false
	}

	ext := extension.Png
	if strings.Contains(dataURL[:idx], "jpeg") || strings.Contains(dataURL[:idx], "jpg") {
		ext = extension.Jpg
	}
	return raw, ext, true
}
