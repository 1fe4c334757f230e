package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"solarquote/services"
	"solarquote/testhelpers"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"KAPL-1001/02-24", "KAPL-1001-02-24"},
		{"Ramesh Kumar", "Ramesh-Kumar"},
		{`a\b:c`, "a-b-c"},
		{"clean", "clean"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHandleExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Sales One", "sales1", "pw", services.RoleUser)
	testhelpers.SeedDefaults(t, app)
	testhelpers.CreateTestQuotation(t, app, services.Quotation{
		ID:           "KAPL-1001/02-24",
		CustomerName: "Ramesh Kumar",
		DiscomNumber: "1156234",
		CreatedBy:    user.ID,
		Pricing:      services.PricingConfig{OnGridSystemCost: 185000, SubsidyAmount: 78000},
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/quotations/export/pdf?id=KAPL-1001%2F02-24", nil), user)
	rec := httptest.NewRecorder()

	if err := HandleExportPDF(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "Ramesh-Kumar_1156234_KAPL-1001-02-24.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("body is not a PDF stream")
	}
}

func TestHandleExportPDF_MissingDiscomFallsBackToNA(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Sales One", "sales1", "pw", services.RoleUser)
	testhelpers.CreateTestQuotation(t, app, services.Quotation{
		ID: "KAPL-1001/02-24", CustomerName: "No Discom", CreatedBy: user.ID,
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/quotations/export/pdf?id=KAPL-1001%2F02-24", nil), user)
	rec := httptest.NewRecorder()

	if err := HandleExportPDF(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "_NA_") {
		t.Errorf("expected NA placeholder in filename, got %q", cd)
	}
}

func TestHandleExportPDF_UnknownQuotation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Sales One", "sales1", "pw", services.RoleUser)

	req := asUser(httptest.NewRequest(http.MethodGet, "/quotations/export/pdf?id=KAPL-9999%2F01-24", nil), user)
	rec := httptest.NewRecorder()

	if err := HandleExportPDF(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Sales One", "sales1", "pw", services.RoleUser)
	testhelpers.CreateTestQuotation(t, app, services.Quotation{
		ID: "KAPL-1001/02-24", CustomerName: "Excel Customer", CreatedBy: user.ID,
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/quotations/export/excel?id=KAPL-1001%2F02-24", nil), user)
	rec := httptest.NewRecorder()

	if err := HandleExportExcel(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "KAPL-1001-02-24_Solar_Quotation.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}

func TestHandleMasterReport_AdminOnly(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Sales One", "sales1", "pw", services.RoleUser)

	req := asUser(httptest.NewRequest(http.MethodGet, "/reports/master", nil), user)
	rec := httptest.NewRecorder()

	if err := HandleMasterReport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestHandleMasterReport_Admin(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	admin := testhelpers.CreateTestUser(t, app, "Administrator", "admin", "admin123", services.RoleAdmin)
	testhelpers.CreateTestQuotation(t, app, services.Quotation{ID: "KAPL-1001/02-24", CustomerName: "Row"})

	req := asUser(httptest.NewRequest(http.MethodGet, "/reports/master", nil), admin)
	rec := httptest.NewRecorder()

	if err := HandleMasterReport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "Master_Solar_Quotes_Report_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestHandleDocumentView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Sales One", "sales1", "pw", services.RoleUser)
	testhelpers.SeedDefaults(t, app)
	testhelpers.CreateTestQuotation(t, app, services.Quotation{
		ID:           "KAPL-1001/02-24",
		CustomerName: "Print Me",
		CreatedBy:    user.ID,
		Pricing:      services.PricingConfig{OnGridSystemCost: 185000, SubsidyAmount: 78000},
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/quotations/document?id=KAPL-1001%2F02-24", nil), user)
	rec := httptest.NewRecorder()

	if err := HandleDocumentView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"Print Me",
		"KAPL-1001/02-24",
		services.PartnerLine,
		"₹1,07,000",
		"window.print()")
	if got := strings.Count(body, `class="a4-page"`); got != 4 {
		t.Errorf("expected 4 document pages, got %d", got)
	}
}

func TestHandleDocumentView_SealPlaceholderWhenUnset(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "Sales One", "sales1", "pw", services.RoleUser)
	testhelpers.SeedDefaults(t, app)
	testhelpers.CreateTestQuotation(t, app, services.Quotation{
		ID: "KAPL-1001/02-24", CustomerName: "No Seal", CreatedBy: user.ID,
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/quotations/document?id=KAPL-1001%2F02-24", nil), user)
	rec := httptest.NewRecorder()

	if err := HandleDocumentView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Official Seal")
	testhelpers.AssertHTMLNotContains(t, body, `class="seal-img"`)
}
