package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuotationExcel builds the per-quotation workbook: a "Pricing"
// sheet of key/value rows and a "Bill of Materials" sheet mirroring the
// BOM table of the document.
func GenerateQuotationExcel(q Quotation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	pricingSheet := "Pricing"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, pricingSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	f.SetColWidth(pricingSheet, "A", "A", 48)
	f.SetColWidth(pricingSheet, "B", "B", 24)

	type kv struct {
		label string
		value any
	}
	pricingRows := []kv{
		{"Quotation No", q.ID},
		{"Customer", sanitizeExcelCell(q.CustomerName)},
		{"Date", q.Date},
		{"", nil},
		{"Description", "Rate (₹)"},
		{"ONGRID SOLAR POWER GENERATING SYSTEM COST", q.Pricing.OnGridSystemCost},
		{"Subsidy Amount", q.Pricing.SubsidyAmount},
		{"Effective Cost", q.Pricing.EffectiveCost()},
		{"KSEB Charges", q.Pricing.KSEBCharges},
		{"Customized Structure Cost", q.Pricing.CustomizedStructureCost},
		{"Additional Material Cost", q.Pricing.AdditionalMaterialCost},
	}
	for i, r := range pricingRows {
		rowStr := fmt.Sprintf("%d", i+1)
		if r.label == "" {
			continue
		}
		f.SetCellValue(pricingSheet, "A"+rowStr, r.label)
		f.SetCellStyle(pricingSheet, "A"+rowStr, "A"+rowStr, labelStyle)
		if r.value != nil {
			f.SetCellValue(pricingSheet, "B"+rowStr, r.value)
			f.SetCellStyle(pricingSheet, "B"+rowStr, "B"+rowStr, cellStyle)
		}
	}

	bomSheet := "Bill of Materials"
	if _, err := f.NewSheet(bomSheet); err != nil {
		return nil, fmt.Errorf("create bom sheet: %w", err)
	}

	bomColumns := []string{"A", "B", "C", "D", "E", "F"}
	bomWidths := []float64{8, 28, 10, 10, 32, 24}
	for i, col := range bomColumns {
		f.SetColWidth(bomSheet, col, col, bomWidths[i])
	}

	bomHeaders := []string{"SL No", "Product", "UOM", "Qty", "Spec", "Make"}
	for i, h := range bomHeaders {
		cell := fmt.Sprintf("%s1", bomColumns[i])
		f.SetCellValue(bomSheet, cell, h)
	}
	f.SetCellStyle(bomSheet, "A1", "F1", headerStyle)

	for i, item := range q.BOM {
		rowStr := fmt.Sprintf("%d", i+2)
		f.SetCellValue(bomSheet, "A"+rowStr, i+1)
		f.SetCellValue(bomSheet, "B"+rowStr, sanitizeExcelCell(item.Product))
		f.SetCellValue(bomSheet, "C"+rowStr, sanitizeExcelCell(item.UOM))
		f.SetCellValue(bomSheet, "D"+rowStr, sanitizeExcelCell(item.Quantity))
		f.SetCellValue(bomSheet, "E"+rowStr, sanitizeExcelCell(item.Specification))
		f.SetCellValue(bomSheet, "F"+rowStr, sanitizeExcelCell(item.Make))
		f.SetCellStyle(bomSheet, "A"+rowStr, "F"+rowStr, cellStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateMasterReport builds the admin workbook: one flattened row per
// quotation across the whole collection.
func GenerateMasterReport(quotations []Quotation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Quotations"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	headers := []string{
		"Quote ID", "Date", "Customer", "Mobile", "Email", "Consumer No",
		"Location", "System Description", "Plant Cost", "Subsidy",
		"Effective Cost", "KSEB Charges", "Structure Cost",
		"Additional Material", "Created By",
	}
	columns := make([]string, len(headers))
	for i := range headers {
		name, _ := excelize.ColumnNumberToName(i + 1)
		columns[i] = name
	}
	widths := []float64{18, 12, 26, 14, 26, 14, 16, 38, 14, 14, 14, 14, 14, 16, 20}
	for i, col := range columns {
		f.SetColWidth(sheet, col, col, widths[i])
	}

	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+"1", h)
	}
	lastCol := columns[len(columns)-1]
	f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	for i, q := range quotations {
		rowStr := fmt.Sprintf("%d", i+2)
		values := []any{
			q.ID,
			q.Date,
			sanitizeExcelCell(q.CustomerName),
			sanitizeExcelCell(q.Mobile),
			sanitizeExcelCell(q.Email),
			sanitizeExcelCell(q.DiscomNumber),
			sanitizeExcelCell(q.Location),
			sanitizeExcelCell(q.SystemDescription),
			q.Pricing.OnGridSystemCost,
			q.Pricing.SubsidyAmount,
			q.Pricing.EffectiveCost(),
			q.Pricing.KSEBCharges,
			q.Pricing.CustomizedStructureCost,
			q.Pricing.AdditionalMaterialCost,
			sanitizeExcelCell(q.CreatedByName),
		}
		for j, v := range values {
			f.SetCellValue(sheet, columns[j]+rowStr, v)
		}
		f.SetCellStyle(sheet, "A"+rowStr, lastCol+rowStr, cellStyle)
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
