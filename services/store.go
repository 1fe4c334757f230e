package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Collection and field names shared with collections.Setup.
const (
	SettingsCollection   = "settings"
	QuotationsCollection = "quotations"
	UsersCollection      = "app_users"

	// SettingsSingletonKey marks the one global settings row.
	SettingsSingletonKey = "global"
)

// LoadAllState reads the singleton settings record, the user accounts
// and the full quotation collection into one aggregate. Every settings
// field that is absent or empty falls back to its built-in default;
// the quotation list gets no such substitution, empty means zero
// quotations. NextID is recomputed from the loaded quotations.
func LoadAllState(app *pocketbase.PocketBase) (*AppState, error) {
	state := &AppState{}

	settings, err := app.FindFirstRecordByData(SettingsCollection, "singleton_key", SettingsSingletonKey)
	if err != nil {
		log.Printf("store: no settings record, using defaults: %v", err)
		settings = nil
	}

	if !unmarshalField(settings, "company", &state.Company) || state.Company == (CompanyConfig{}) {
		state.Company = DefaultCompany()
	}
	if !unmarshalField(settings, "bank", &state.Bank) || state.Bank == (BankConfig{}) {
		state.Bank = DefaultBank()
	}
	if !unmarshalField(settings, "pricing", &state.ProductPricing) || len(state.ProductPricing) == 0 {
		state.ProductPricing = DefaultProductPricing()
	}
	if !unmarshalField(settings, "warranty", &state.Warranty) || state.Warranty == (WarrantyConfig{}) {
		state.Warranty = DefaultWarranty()
	}
	if !unmarshalField(settings, "terms", &state.Terms) || len(state.Terms) == 0 {
		state.Terms = DefaultTerms()
	}
	if !unmarshalField(settings, "bom_templates", &state.BOMTemplates) || len(state.BOMTemplates) == 0 {
		state.BOMTemplates = DefaultBOMTemplates()
	}

	var rawDescs json.RawMessage
	if unmarshalField(settings, "product_descriptions", &rawDescs) {
		state.ProductDescriptions = NormalizeProductDescriptions(rawDescs)
	}
	if len(state.ProductDescriptions) == 0 {
		state.ProductDescriptions = DefaultProductDescriptions()
	}

	users, err := loadUsers(app)
	if err != nil {
		return nil, err
	}
	state.Users = users

	quotations, err := loadQuotations(app)
	if err != nil {
		return nil, err
	}
	state.Quotations = quotations
	state.NextID = NextSequence(quotations)

	return state, nil
}

// unmarshalField decodes one JSON settings field into dst. It reports
// false when the record is missing or the field does not decode, so
// the caller can substitute a default.
func unmarshalField(rec *core.Record, name string, dst any) bool {
	if rec == nil {
		return false
	}
	if err := rec.UnmarshalJSONField(name, dst); err != nil {
		log.Printf("store: settings field %q did not decode, using default: %v", name, err)
		return false
	}
	return true
}

// NormalizeProductDescriptions adapts whatever shape the stored
// product_descriptions field carries to the current structured form.
// Early versions stored a plain string array; those entries get
// synthetic "legacy-{n}" ids and no default links.
func NormalizeProductDescriptions(raw json.RawMessage) []ProductDescription {
	if len(raw) == 0 {
		return nil
	}

	var descs []ProductDescription
	if err := json.Unmarshal(raw, &descs); err == nil {
		return descs
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		log.Printf("store: product_descriptions has unknown shape, using defaults")
		return nil
	}
	descs = make([]ProductDescription, 0, len(names))
	for i, name := range names {
		descs = append(descs, ProductDescription{
			ID:   fmt.Sprintf("legacy-%d", i),
			Name: name,
		})
	}
	return descs
}

func loadUsers(app *pocketbase.PocketBase) ([]User, error) {
	records, err := app.FindAllRecords(UsersCollection)
	if err != nil {
		return nil, fmt.Errorf("store: load users: %w", err)
	}
	if len(records) == 0 {
		return DefaultUsers(), nil
	}

	users := make([]User, 0, len(records))
	for _, rec := range records {
		users = append(users, User{
			ID:       rec.Id,
			Name:     rec.GetString("name"),
			Username: rec.GetString("username"),
			Password: rec.GetString("password"),
			Role:     rec.GetString("role"),
		})
	}
	return users, nil
}

func loadQuotations(app *pocketbase.PocketBase) ([]Quotation, error) {
	records, err := app.FindAllRecords(QuotationsCollection)
	if err != nil {
		return nil, fmt.Errorf("store: load quotations: %w", err)
	}

	quotations := make([]Quotation, 0, len(records))
	for _, rec := range records {
		var q Quotation
		if err := rec.UnmarshalJSONField("data", &q); err != nil {
			log.Printf("store: skipping quotation record %s with undecodable data: %v", rec.Id, err)
			continue
		}
		quotations = append(quotations, q)
	}
	return quotations, nil
}

// SaveSettings writes the full settings aggregate into the singleton
// record, creating it on first save. It is a full replace: every
// settings field is written from the given state.
func SaveSettings(app *pocketbase.PocketBase, state *AppState) error {
	rec, err := app.FindFirstRecordByData(SettingsCollection, "singleton_key", SettingsSingletonKey)
	if err != nil {
		col, err := app.FindCollectionByNameOrId(SettingsCollection)
		if err != nil {
			return fmt.Errorf("store: find settings collection: %w", err)
		}
		rec = core.NewRecord(col)
		rec.Set("singleton_key", SettingsSingletonKey)
	}

	rec.Set("company", state.Company)
	rec.Set("bank", state.Bank)
	rec.Set("pricing", state.ProductPricing)
	rec.Set("warranty", state.Warranty)
	rec.Set("terms", state.Terms)
	rec.Set("bom_templates", state.BOMTemplates)
	rec.Set("product_descriptions", state.ProductDescriptions)

	if err := app.Save(rec); err != nil {
		return fmt.Errorf("store: save settings: %w", err)
	}
	return nil
}

// SaveQuotation upserts one quotation, keyed by its quote number. The
// full entity is stored as a JSON snapshot; customer name and creator
// are denormalized for listing and filtering.
func SaveQuotation(app *pocketbase.PocketBase, q Quotation) error {
	rec, err := app.FindFirstRecordByData(QuotationsCollection, "quote_number", q.ID)
	if err != nil {
		col, err := app.FindCollectionByNameOrId(QuotationsCollection)
		if err != nil {
			return fmt.Errorf("store: find quotations collection: %w", err)
		}
		rec = core.NewRecord(col)
		rec.Set("quote_number", q.ID)
	}

	rec.Set("customer_name", q.CustomerName)
	rec.Set("created_by", q.CreatedBy)
	rec.Set("data", q)

	if err := app.Save(rec); err != nil {
		return fmt.Errorf("store: save quotation %s: %w", q.ID, err)
	}
	return nil
}

// DeleteQuotation removes a quotation by quote number. Deleting an id
// that does not exist is not an error.
func DeleteQuotation(app *pocketbase.PocketBase, id string) error {
	rec, err := app.FindFirstRecordByData(QuotationsCollection, "quote_number", id)
	if err != nil {
		return nil
	}
	if err := app.Delete(rec); err != nil {
		return fmt.Errorf("store: delete quotation %s: %w", id, err)
	}
	return nil
}

// SaveUser upserts one login account. A user without an id is created;
// the record id becomes the user id.
func SaveUser(app *pocketbase.PocketBase, u User) (string, error) {
	var rec *core.Record
	if u.ID != "" {
		found, err := app.FindRecordById(UsersCollection, u.ID)
		if err == nil {
			rec = found
		}
	}
	if rec == nil {
		col, err := app.FindCollectionByNameOrId(UsersCollection)
		if err != nil {
			return "", fmt.Errorf("store: find users collection: %w", err)
		}
		rec = core.NewRecord(col)
	}

	rec.Set("name", u.Name)
	rec.Set("username", u.Username)
	rec.Set("password", u.Password)
	rec.Set("role", u.Role)

	if err := app.Save(rec); err != nil {
		return "", fmt.Errorf("store: save user %s: %w", u.Username, err)
	}
	return rec.Id, nil
}

// DeleteUser removes a login account. Unknown ids are ignored.
func DeleteUser(app *pocketbase.PocketBase, id string) error {
	rec, err := app.FindRecordById(UsersCollection, id)
	if err != nil {
		return nil
	}
	if err := app.Delete(rec); err != nil {
		return fmt.Errorf("store: delete user %s: %w", id, err)
	}
	return nil
}
