package services

import (
	"fmt"
	"time"
)

// PageCount is the fixed number of logical pages in every proposal
// document: summary & pricing, bill of materials, terms & conditions,
// execution & compliance. The renderer and the PDF exporter share this
// contract; there are no per-target layout variants.
const PageCount = 4

// Fixed document boilerplate. These lines are part of the layout, not
// of the configurable settings.
const (
	PartnerLine        = "ADANI SOLAR AUTHORIZED CHANNEL PARTNER"
	Tagline            = "Truly DEPENDABLE; PROMPT Always; QUALITY First; HIGH on ENERGY"
	EffectiveCostLabel = "Customer Effective Cost After Subsidy As Per the Current Slab"
	SubsidyLineText    = "Subsidy Amount as Per PM Surya Ghar Approved Guidelines Directly Credit to Customer Bank Account"
)

// SubsidyNotes is the fixed fine print under the document checklist on
// page four.
var SubsidyNotes = []string{
	"All documents should belong to the KSEB consumer number owner's name.",
	"The KSEB consumer number owner's name and the bank passbook account holder's name must be the same for the consumer to receive MNRE subsidy.",
	"The bank loan can only be applied for under the name of the KSEB consumer",
	"Vendor-side bank loan documents will be provided only after MNRE registration, Jansamarth portal registration, and a 10% advance payment",
	"KSEB charges and structure cost are not included in the loan amount. The customer must pay the balance amount beyond the sanctioned loan, along with KSEB charges and structure cost, separately.",
}

// DocumentTerm is a term line ready for rendering: numbered by display
// position, not by the stored order field.
type DocumentTerm struct {
	Number int
	Text   string
}

// TimelineStep is one entry of the fixed project roadmap on page four.
type TimelineStep struct {
	Step   string
	Title  string
	Detail string
}

// ProjectTimeline is the fixed three-step roadmap. It is boilerplate,
// not data-driven.
var ProjectTimeline = []TimelineStep{
	{"01", "Delivery", "7-10 Days After Advance Payment & KSEB Feasibility Approval"},
	{"02", "Payment", "10% Advance, 90% at the time of Material delivery"},
	{"03", "Installation", "7-10 Days from 90% Payment Clearance after material delivery"},
}

// RequiredDocuments is the fixed subsidy-application checklist on page four.
var RequiredDocuments = []string{
	"Mobile Number",
	"Aadhar Card",
	"Email ID",
	"Cancelled Cheque / Bank Passbook Front Page",
	"Google Map Location (Longitude and Latitude)",
	"KSEB Bill Copy",
	"Passport Size Photo",
}

// DocumentModel is the fully denormalized input of the document
// renderer: one quotation merged with copies of the global
// configuration blocks it needs. It is self-contained; rendering it
// touches no other state.
type DocumentModel struct {
	Quotation     Quotation
	Company       CompanyConfig
	Bank          BankConfig
	Warranty      WarrantyConfig
	Terms         []DocumentTerm
	EffectiveCost float64
}

// FooterRef is the left footer line carried by every page:
// "{company} // Ref: {quotation id}".
func (d DocumentModel) FooterRef() string {
	return fmt.Sprintf("%s // Ref: %s", d.Company.Name, d.Quotation.ID)
}

// FooterPage is the right footer line for page n (1-based).
func (d DocumentModel) FooterPage(n int) string {
	return fmt.Sprintf("Page %d of %d", n, PageCount)
}

// DisplayDate renders the quotation date as "02 January 2006". Dates
// that do not parse as ISO come back unchanged.
func (d DocumentModel) DisplayDate() string {
	return FormatDisplayDate(d.Quotation.Date)
}

// DiscomOrNA substitutes "N/A" for a missing consumer number.
func (d DocumentModel) DiscomOrNA() string {
	if d.Quotation.DiscomNumber == "" {
		return "N/A"
	}
	return d.Quotation.DiscomNumber
}

// FormatDisplayDate converts an ISO date string to the long form used
// on the document. Unparseable input is returned as-is.
func FormatDisplayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02 January 2006")
}
