package handlers

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"solarquote/services"
	"solarquote/templates"
)

func formatListDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02 Jan 2006")
}

func buildDashboardData(state *services.AppState, user services.User, query string) templates.DashboardData {
	visible := services.VisibleQuotations(state.Quotations, user)

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		var matched []services.Quotation
		for _, quote := range visible {
			if strings.Contains(strings.ToLower(quote.ID), q) ||
				strings.Contains(strings.ToLower(quote.CustomerName), q) {
				matched = append(matched, quote)
			}
		}
		visible = matched
	}

	// Newest first. Ids embed a monotonic sequence; compare numerically
	// so five-digit sequences sort above four-digit ones.
	sorted := make([]services.Quotation, len(visible))
	copy(sorted, visible)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, iok := services.ExtractSequence(sorted[i].ID)
		sj, jok := services.ExtractSequence(sorted[j].ID)
		if iok && jok && si != sj {
			return si > sj
		}
		return sorted[i].ID > sorted[j].ID
	})

	items := make([]templates.QuotationListItem, 0, len(sorted))
	for _, quote := range sorted {
		items = append(items, templates.QuotationListItem{
			ID:            quote.ID,
			Date:          formatListDate(quote.Date),
			CustomerName:  quote.CustomerName,
			Mobile:        quote.Mobile,
			System:        quote.SystemDescription,
			EffectiveCost: services.FormatINR(quote.Pricing.EffectiveCost()),
			CreatedByName: quote.CreatedByName,
			CanModify:     user.CanModify(quote),
		})
	}

	return templates.DashboardData{
		Items:    items,
		Query:    query,
		IsAdmin:  user.IsAdmin(),
		UserName: user.Name,
		Total:    len(items),
	}
}

// HandleDashboard renders the quotation list. HTMX search requests get
// the bare table fragment, everything else the full page.
func HandleDashboard(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, ok := CurrentUser(e.Request)
		if !ok {
			return e.Redirect(http.StatusFound, "/login")
		}

		state, err := services.LoadAllState(app)
		if err != nil {
			log.Printf("dashboard: failed to load state: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotations: "+err.Error())
		}

		data := buildDashboardData(state, user, e.Request.URL.Query().Get("q"))

		if e.Request.Header.Get("HX-Request") == "true" {
			return templates.DashboardContent(data).Render(e.Request.Context(), e.Response)
		}
		return templates.DashboardPage(data).Render(e.Request.Context(), e.Response)
	}
}
