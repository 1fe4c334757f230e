package services

import (
	"sort"

	"github.com/google/uuid"
)

// ActiveTerms returns the terms that render: enabled only, sorted by
// the order field ascending. The sort is stable so terms sharing an
// order value keep their stored sequence.
func ActiveTerms(terms []Term) []Term {
	var active []Term
	for _, t := range terms {
		if t.Enabled {
			active = append(active, t)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Order < active[j].Order
	})
	return active
}

// BuildDocument merges a quotation with the global configuration into a
// self-contained DocumentModel. It is a pure function: configuration
// blocks are copied by value, the quotation's pricing and BOM snapshots
// pass through unchanged, and missing optional fields stay empty.
func BuildDocument(q Quotation, state *AppState) DocumentModel {
	active := ActiveTerms(state.Terms)
	terms := make([]DocumentTerm, 0, len(active))
	for i, t := range active {
		terms = append(terms, DocumentTerm{Number: i + 1, Text: t.Text})
	}

	return DocumentModel{
		Quotation:     q,
		Company:       state.Company,
		Bank:          state.Bank,
		Warranty:      state.Warranty,
		Terms:         terms,
		EffectiveCost: q.Pricing.EffectiveCost(),
	}
}

// CopyBOMItems deep-copies a BOM item list, assigning a fresh id to
// every item. Ids only need to be unique within the owning list, but
// regenerating keeps a copy from ever aliasing its source.
func CopyBOMItems(items []BOMItem) []BOMItem {
	copied := make([]BOMItem, len(items))
	for i, item := range items {
		item.ID = uuid.NewString()
		copied[i] = item
	}
	return copied
}

// DuplicateTemplate returns a deep copy of a BOM template with a new
// template id, fresh item ids and a "(Copy)" name suffix, so edits to
// the copy never affect the original.
func DuplicateTemplate(t BOMTemplate) BOMTemplate {
	return BOMTemplate{
		ID:    uuid.NewString(),
		Name:  t.Name + " (Copy)",
		Items: CopyBOMItems(t.Items),
	}
}

// ProductDefaults holds what a product description's auto-population
// links resolved to. Dangling lists link ids that no longer exist so
// callers can warn the editor instead of silently doing nothing.
type ProductDefaults struct {
	Pricing  *ProductPricing
	Template *BOMTemplate
	Dangling []string
}

// ResolveProductDefaults looks up a product description by name and
// resolves its default pricing and BOM template links. The second
// return value is false when no description carries that name.
func ResolveProductDefaults(state *AppState, descriptionName string) (ProductDefaults, bool) {
	var desc *ProductDescription
	for i := range state.ProductDescriptions {
		if state.ProductDescriptions[i].Name == descriptionName {
			desc = &state.ProductDescriptions[i]
			break
		}
	}
	if desc == nil {
		return ProductDefaults{}, false
	}

	var defaults ProductDefaults
	if desc.DefaultPricingID != "" {
		if p, ok := state.FindPricing(desc.DefaultPricingID); ok {
			defaults.Pricing = &p
		} else {
			defaults.Dangling = append(defaults.Dangling, desc.DefaultPricingID)
		}
	}
	if desc.DefaultBOMTemplateID != "" {
		if t, ok := state.FindBOMTemplate(desc.DefaultBOMTemplateID); ok {
			defaults.Template = &t
		} else {
			defaults.Dangling = append(defaults.Dangling, desc.DefaultBOMTemplateID)
		}
	}
	return defaults, true
}

// ApplyProductDefaults replaces the quotation's pricing and BOM with
// snapshots of whatever the defaults resolved to, leaving either part
// untouched when its link was absent or dangling. This intentionally
// overwrites unsaved manual edits: picking a system description means
// taking its configured defaults.
func ApplyProductDefaults(q *Quotation, defaults ProductDefaults) {
	if defaults.Pricing != nil {
		q.Pricing = defaults.Pricing.PricingConfig
	}
	if defaults.Template != nil {
		q.BOM = CopyBOMItems(defaults.Template.Items)
	}
}
