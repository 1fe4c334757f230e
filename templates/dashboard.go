package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// QuotationListItem is one dashboard row, preformatted by the handler.
type QuotationListItem struct {
	ID            string
	Date          string
	CustomerName  string
	Mobile        string
	System        string
	EffectiveCost string
	CreatedByName string
	CanModify     bool
}

// DashboardData drives the quotation list page.
type DashboardData struct {
	Items    []QuotationListItem
	Query    string
	IsAdmin  bool
	UserName string
	Total    int
}

// DashboardContent renders the searchable quotation table, used both as
// the page body and as the HTMX search swap target.
func DashboardContent(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprint(w, `<div id="dashboard">`)
		fmt.Fprint(w, `<div class="card"><h2 style="margin-top:0">Quotation Dashboard</h2>`)
		fmt.Fprintf(w, `<p style="color:#6b7280;margin:0 0 1rem">%d quotation(s)</p>`, data.Total)
		fmt.Fprintf(w, `<input type="text" name="q" value="%s" placeholder="Search by ID or Customer Name..." hx-get="/" hx-target="#dashboard" hx-swap="outerHTML" hx-trigger="input changed delay:300ms"/>`, esc(data.Query))
		fmt.Fprint(w, `</div>`)

		fmt.Fprint(w, `<div class="card"><table class="list"><thead><tr><th>Quote ID</th><th>Date</th><th>Customer</th><th>Capacity</th><th>Effective Cost</th>`)
		if data.IsAdmin {
			fmt.Fprint(w, `<th>Created By</th>`)
		}
		fmt.Fprint(w, `<th style="text-align:right">Actions</th></tr></thead><tbody>`)

		for _, item := range data.Items {
			fmt.Fprint(w, `<tr>`)
			fmt.Fprintf(w, `<td style="font-weight:700;color:#dc2626">%s</td>`, esc(item.ID))
			fmt.Fprintf(w, `<td>%s</td>`, esc(item.Date))
			fmt.Fprintf(w, `<td>%s<br/><span style="font-size:0.75rem;color:#6b7280">%s</span></td>`, esc(item.CustomerName), esc(item.Mobile))
			fmt.Fprintf(w, `<td>%s</td>`, esc(item.System))
			fmt.Fprintf(w, `<td>%s</td>`, esc(item.EffectiveCost))
			if data.IsAdmin {
				fmt.Fprintf(w, `<td>%s</td>`, esc(item.CreatedByName))
			}
			id := templ.EscapeString(item.ID)
			fmt.Fprint(w, `<td style="text-align:right;white-space:nowrap">`)
			fmt.Fprintf(w, `<a class="btn btn-link" href="/quotations/document?id=%s">Print</a>`, urlQuery(item.ID))
			fmt.Fprintf(w, `<a class="btn btn-link" href="/quotations/export/pdf?id=%s">PDF</a>`, urlQuery(item.ID))
			fmt.Fprintf(w, `<a class="btn btn-link" href="/quotations/export/excel?id=%s">Excel</a>`, urlQuery(item.ID))
			if item.CanModify {
				fmt.Fprintf(w, `<a class="btn btn-link" href="/quotations/edit?id=%s">Edit</a>`, urlQuery(item.ID))
				fmt.Fprintf(w, `<button class="btn btn-link" hx-delete="/quotations?id=%s" hx-target="#dashboard" hx-swap="outerHTML" hx-confirm="Delete quotation %s?">Delete</button>`, urlQuery(item.ID), id)
			}
			fmt.Fprint(w, `</td></tr>`)
		}
		if len(data.Items) == 0 {
			cols := 6
			if data.IsAdmin {
				cols = 7
			}
			fmt.Fprintf(w, `<tr><td colspan="%d" style="text-align:center;color:#9ca3af;padding:2rem">No quotations found.</td></tr>`, cols)
		}
		fmt.Fprint(w, `</tbody></table></div></div>`)
		return nil
	})
}

// DashboardPage renders the full dashboard inside the layout.
func DashboardPage(data DashboardData) templ.Component {
	return Layout("Dashboard - Solar Quote Manager", data.UserName, data.IsAdmin, DashboardContent(data))
}
