package services

// Built-in fallbacks used when a settings field comes back absent or
// empty from the store. A fresh install runs entirely on these until
// the first settings save.

func DefaultCompany() CompanyConfig {
	return CompanyConfig{
		Name:            "Kondaas Automation Pvt Ltd",
		HeadOffice:      "123, Solar Plaza, Opp. KSEB, Kochi, Kerala",
		RegionalOffice1: "Branch Office, Trivandrum, Kerala",
		RegionalOffice2: "Service Center, Calicut, Kerala",
		Phone:           "+91 9876543210",
		Email:           "info@kondaas.com",
		Website:         "www.kondaas.com",
		GSTIN:           "32AAAAA0000A1Z5",
	}
}

func DefaultBank() BankConfig {
	return BankConfig{
		CompanyName:   "Kondaas Automation Private Limited",
		BankName:      "HDFC BANK",
		AccountNumber: "50200012345678",
		Branch:        "Cochin Main",
		IFSC:          "HDFC0000123",
		Address:       "M.G. Road, Cochin",
		PAN:           "ABCDE1234F",
		UPIID:         "kondaas@hdfc",
		GSTNumber:     "32AAAAA0000A1Z5",
	}
}

func DefaultWarranty() WarrantyConfig {
	return WarrantyConfig{
		PanelWarranty:    "25 Years Performance Warranty (Adani Solar)",
		InverterWarranty: "5 to 10 Years Product Warranty (On-Grid String)",
		SystemWarranty:   "5 Years Free Service (Kondaas Automation)",
		MonitoringSystem: "Standard Online Monitoring (Wi-Fi Required)",
	}
}

func DefaultTerms() []Term {
	return []Term{
		{ID: "1", Text: "Structure height will be 1 to 3 feet from floor level.", Enabled: true, Order: 1},
		{ID: "2", Text: "KSEB application & registration charges are included in the above cost.", Enabled: true, Order: 2},
		{ID: "3", Text: "The customer shall provide necessary space and shadow-free area for installation.", Enabled: true, Order: 3},
		{ID: "4", Text: "Civil works like concrete foundation if needed will be extra.", Enabled: true, Order: 4},
		{ID: "5", Text: "The subsidy will be credited to the customer account as per govt norms.", Enabled: true, Order: 5},
		{ID: "6", Text: "Any additional cabling beyond 30 meters will be charged extra.", Enabled: true, Order: 6},
	}
}

func DefaultProductPricing() []ProductPricing {
	return []ProductPricing{
		{
			ID:   "p3kw",
			Name: "3kW Standard Pricing",
			PricingConfig: PricingConfig{
				OnGridSystemCost: 185000,
				RooftopPlantCost: 185000,
				SubsidyAmount:    78000,
			},
		},
		{
			ID:   "p5kw",
			Name: "5kW Standard Pricing",
			PricingConfig: PricingConfig{
				OnGridSystemCost: 295000,
				RooftopPlantCost: 295000,
				SubsidyAmount:    78000,
			},
		},
	}
}

func DefaultBOMTemplates() []BOMTemplate {
	return []BOMTemplate{
		{
			ID:   "3kw-std",
			Name: "3kW Standard On-Grid",
			Items: []BOMItem{
				{ID: "1", Product: "Solar Panels", UOM: "Nos", Quantity: "8", Specification: "550Wp Mono PERC", Make: "Adani/Waaree"},
				{ID: "2", Product: "On-Grid Inverter", UOM: "No", Quantity: "1", Specification: "3kW String Inverter", Make: "Growatt/Solis"},
				{ID: "3", Product: "DC SPD", UOM: "Nos", Quantity: "2", Specification: "Type II 600V", Make: "Citel/Suntree"},
				{ID: "4", Product: "DC Fuse", UOM: "Nos", Quantity: "2", Specification: "15A/1000V", Make: "Mersen"},
				{ID: "5", Product: "DC Cable", UOM: "Mtrs", Quantity: "30", Specification: "4sqmm multi strand", Make: "Polycab/Siechem"},
				{ID: "10", Product: "Lightning Arrester", UOM: "Set", Quantity: "1", Specification: "Solid Copper 1M", Make: "Standard"},
			},
		},
	}
}

func DefaultProductDescriptions() []ProductDescription {
	return []ProductDescription{
		{ID: "1", Name: "3kW ON-GRID SOLAR POWER GENERATING SYSTEM", DefaultPricingID: "p3kw", DefaultBOMTemplateID: "3kw-std"},
		{ID: "2", Name: "5kW ON-GRID SOLAR POWER GENERATING SYSTEM", DefaultPricingID: "p5kw"},
		{ID: "3", Name: "10kW ON-GRID SOLAR POWER GENERATING SYSTEM"},
	}
}

// DefaultUsers is the bootstrap login set. The admin credential matches
// the password the tool shipped with before per-user accounts existed.
func DefaultUsers() []User {
	return []User{
		{Name: "Administrator", Username: "admin", Password: "admin123", Role: RoleAdmin},
		{Name: "Sales Team Lead", Username: "teamlead", Password: "lead123", Role: RoleTL},
		{Name: "Sales Executive", Username: "sales1", Password: "sales123", Role: RoleUser},
	}
}
