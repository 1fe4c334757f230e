// Package services holds the quotation domain model and the pure
// assembly/export logic that turns stored records into documents.
package services

// CompanyConfig is the singleton company profile printed on every page
// of the proposal document. Logo and seal are data-URL encoded images.
type CompanyConfig struct {
	Name            string `json:"name"`
	HeadOffice      string `json:"headOffice"`
	RegionalOffice1 string `json:"regionalOffice1"`
	RegionalOffice2 string `json:"regionalOffice2"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Website         string `json:"website"`
	Logo            string `json:"logo"`
	Seal            string `json:"seal"`
	GSTIN           string `json:"gstin"`
}

// BankConfig is the singleton remittance block shown on the compliance page.
type BankConfig struct {
	CompanyName   string `json:"companyName"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	Branch        string `json:"branch"`
	IFSC          string `json:"ifsc"`
	Address       string `json:"address"`
	PAN           string `json:"pan"`
	UPIID         string `json:"upiId"`
	GSTNumber     string `json:"gstNumber"`
}

// PricingConfig is the cost breakdown embedded in a quotation. By
// convention RooftopPlantCost tracks OnGridSystemCost whenever the
// latter is edited.
type PricingConfig struct {
	OnGridSystemCost        float64 `json:"onGridSystemCost"`
	RooftopPlantCost        float64 `json:"rooftopPlantCost"`
	SubsidyAmount           float64 `json:"subsidyAmount"`
	KSEBCharges             float64 `json:"ksebCharges"`
	AdditionalMaterialCost  float64 `json:"additionalMaterialCost"`
	CustomizedStructureCost float64 `json:"customizedStructureCost"`
}

// EffectiveCost is the headline customer figure: plant cost minus
// subsidy. It may be negative and is never clamped.
func (p PricingConfig) EffectiveCost() float64 {
	return p.OnGridSystemCost - p.SubsidyAmount
}

// ProductPricing is a named, reusable pricing package offered as a
// quick-fill option in the quotation form.
type ProductPricing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	PricingConfig
}

// WarrantyConfig holds the four warranty statements shown in the
// quality assurance strip on page one.
type WarrantyConfig struct {
	PanelWarranty    string `json:"panelWarranty"`
	InverterWarranty string `json:"inverterWarranty"`
	SystemWarranty   string `json:"systemWarranty"`
	MonitoringSystem string `json:"monitoringSystem"`
}

// Term is a single terms-and-conditions entry. Disabled terms are kept
// in settings but never rendered or exported.
type Term struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
	Order   int    `json:"order"`
}

// BOMItem is one bill-of-materials row. Quantity is free text so
// entries like "8-10" or "30 Mtrs" survive untouched. Items are always
// owned by exactly one template or quotation and copied by value.
type BOMItem struct {
	ID            string `json:"id"`
	Product       string `json:"product"`
	UOM           string `json:"uom"`
	Quantity      string `json:"quantity"`
	Specification string `json:"specification"`
	Make          string `json:"make"`
}

// BOMTemplate is a named, reusable bill of materials. Its name doubles
// as the human-readable product configuration label.
type BOMTemplate struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Items []BOMItem `json:"items"`
}

// ProductDescription is a selectable system heading, optionally linked
// to a default pricing package and BOM template used to auto-populate
// new quotations.
type ProductDescription struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	DefaultPricingID     string `json:"defaultPricingId,omitempty"`
	DefaultBOMTemplateID string `json:"defaultBomTemplateId,omitempty"`
}

// User roles.
const (
	RoleAdmin = "admin"
	RoleTL    = "TL"
	RoleUser  = "user"
)

// User is an application login. Credentials are stored as entered;
// there is no account lockout or throttling.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// CanModify reports whether the user may edit or delete the given
// quotation. Admins and team leads may touch any quotation; regular
// users only their own.
func (u User) CanModify(q Quotation) bool {
	if u.Role == RoleAdmin || u.Role == RoleTL {
		return true
	}
	return q.CreatedBy == u.ID
}

// Quotation is one customer proposal. Pricing and BOM are snapshots
// taken at creation/edit time; later edits to the source pricing
// package or BOM template never change a saved quotation.
type Quotation struct {
	ID                string        `json:"id"`
	Date              string        `json:"date"`
	CustomerName      string        `json:"customerName"`
	DiscomNumber      string        `json:"discomNumber"`
	Address           string        `json:"address"`
	Mobile            string        `json:"mobile"`
	Email             string        `json:"email"`
	Location          string        `json:"location"`
	Pricing           PricingConfig `json:"pricing"`
	BOM               []BOMItem     `json:"bom"`
	SystemDescription string        `json:"systemDescription"`
	CreatedBy         string        `json:"createdBy"`
	CreatedByName     string        `json:"createdByName"`
}

// AppState is the full aggregate loaded from the store: the singleton
// settings record plus the quotation collection. NextID is derived on
// load (see NextSequence), never persisted.
type AppState struct {
	Company             CompanyConfig        `json:"company"`
	Bank                BankConfig           `json:"bank"`
	ProductPricing      []ProductPricing     `json:"productPricing"`
	Warranty            WarrantyConfig       `json:"warranty"`
	Terms               []Term               `json:"terms"`
	BOMTemplates        []BOMTemplate        `json:"bomTemplates"`
	ProductDescriptions []ProductDescription `json:"productDescriptions"`
	Users               []User               `json:"users"`
	Quotations          []Quotation          `json:"quotations"`
	NextID              int                  `json:"nextId"`
}

// FindPricing looks up a pricing package by id.
func (s *AppState) FindPricing(id string) (ProductPricing, bool) {
	for _, p := range s.ProductPricing {
		if p.ID == id {
			return p, true
		}
	}
	return ProductPricing{}, false
}

// FindBOMTemplate looks up a BOM template by id.
func (s *AppState) FindBOMTemplate(id string) (BOMTemplate, bool) {
	for _, t := range s.BOMTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return BOMTemplate{}, false
}

// FindUserByUsername looks up a user by login name.
func (s *AppState) FindUserByUsername(username string) (User, bool) {
	for _, u := range s.Users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

// VisibleQuotations returns the dashboard rows for the given user:
// admins see every quotation, everyone else only their own.
func VisibleQuotations(quotations []Quotation, u User) []Quotation {
	if u.IsAdmin() {
		return quotations
	}
	var own []Quotation
	for _, q := range quotations {
		if q.CreatedBy == u.ID {
			own = append(own, q)
		}
	}
	return own
}
