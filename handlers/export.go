package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
	"solarquote/templates"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

func loadQuotationForExport(app *pocketbase.PocketBase, e *core.RequestEvent) (services.Quotation, *services.AppState, error) {
	id := e.Request.URL.Query().Get("id")
	if id == "" {
		return services.Quotation{}, nil, fmt.Errorf("missing quotation id")
	}

	state, err := services.LoadAllState(app)
	if err != nil {
		return services.Quotation{}, nil, fmt.Errorf("failed to load state: %w", err)
	}

	q, ok := findQuotation(state, id)
	if !ok {
		return services.Quotation{}, nil, fmt.Errorf("quotation %s not found", id)
	}
	return q, state, nil
}

// HandleDocumentView renders the four-page proposal as printable HTML.
func HandleDocumentView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, state, err := loadQuotationForExport(app, e)
		if err != nil {
			log.Printf("document_view: %v", err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		doc := services.BuildDocument(q, state)
		return templates.DocumentPage(doc).Render(e.Request.Context(), e.Response)
	}
}

// HandleExportPDF generates and downloads the quotation PDF. Generation
// failures come back as an error message suggesting the print view,
// which renders the same document without the PDF engine.
func HandleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, state, err := loadQuotationForExport(app, e)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		doc := services.BuildDocument(q, state)
		pdfBytes, err := services.GenerateQuotationPDF(doc)
		if err != nil {
			log.Printf("export_pdf: failed to generate %s: %v", q.ID, err)
			return e.String(http.StatusInternalServerError,
				"Failed to generate PDF file. Use the Print view as a fallback.")
		}

		discom := q.DiscomNumber
		if discom == "" {
			discom = "NA"
		}
		filename := fmt.Sprintf("%s_%s_%s.pdf",
			sanitizeFilename(q.CustomerName), sanitizeFilename(discom), sanitizeFilename(q.ID))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleExportExcel generates and downloads the per-quotation workbook.
func HandleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, _, err := loadQuotationForExport(app, e)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		xlsxBytes, err := services.GenerateQuotationExcel(q)
		if err != nil {
			log.Printf("export_excel: failed to generate %s: %v", q.ID, err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("%s_Solar_Quotation.xlsx", sanitizeFilename(q.ID))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleMasterReport downloads the flattened all-quotations workbook.
// Admin only.
func HandleMasterReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, _ := CurrentUser(e.Request)
		if !user.IsAdmin() {
			return e.String(http.StatusForbidden, "Only administrators can download the master report")
		}

		state, err := services.LoadAllState(app)
		if err != nil {
			log.Printf("master_report: failed to load state: %v", err)
			return e.String(http.StatusInternalServerError, "Could not load quotations: "+err.Error())
		}

		xlsxBytes, err := services.GenerateMasterReport(state.Quotations)
		if err != nil {
			log.Printf("master_report: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		now := time.Now()
		filename := fmt.Sprintf("Master_Solar_Quotes_Report_%s_%s.xlsx",
			now.Format("2006-01-02"), now.Format("1504"))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
