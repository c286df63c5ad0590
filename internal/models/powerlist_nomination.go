package models

// PowerlistNominationKind describes powerlist nominations.
var PowerlistNominationKind = Kind{
	Name:       "powerlist_nomination",
	Label:      "Powerlist nomination",
	Slug:       "powerlist-nominations",
	Table:      "powerlist_nominations",
	Permission: "powerlist.manage",
	Columns: []string{
		"publication_name", "website_url", "power_list_name", "industry",
		"company_or_individual", "tentative_month", "location_region",
		"last_power_list_url", "image",
	},
	SearchFields: []string{"publication_name", "power_list_name", "industry"},
	ExactFilters: map[string]string{
		"company_or_individual": "company_or_individual",
		"tentative_month":       "tentative_month",
	},
	ContainsFilters: map[string]string{
		"publication_name": "publication_name",
		"power_list_name":  "power_list_name",
		"industry":         "industry",
		"location_region":  "location_region",
	},
}

// PowerlistNomination is a nomination for a publication's power list.
type PowerlistNomination struct {
	Moderation

	PublicationName     string `db:"publication_name" json:"publication_name" validate:"notblank,max=255"`
	WebsiteURL          string `db:"website_url" json:"website_url" validate:"omitempty,httpurl"`
	PowerListName       string `db:"power_list_name" json:"power_list_name" validate:"notblank,max=255"`
	Industry            string `db:"industry" json:"industry" validate:"notblank,max=255"`
	CompanyOrIndividual string `db:"company_or_individual" json:"company_or_individual" validate:"notblank,max=255"`
	TentativeMonth      string `db:"tentative_month" json:"tentative_month" validate:"max=50"`
	LocationRegion      string `db:"location_region" json:"location_region" validate:"max=255"`
	LastPowerListURL    string `db:"last_power_list_url" json:"last_power_list_url" validate:"omitempty,httpurl"`
	Image               string `db:"image" json:"image" validate:"max=500"`
}

// DisplayName returns the power list name with its publication.
func (p *PowerlistNomination) DisplayName() string {
	if p.PublicationName == "" {
		return p.PowerListName
	}
	return p.PowerListName + " (" + p.PublicationName + ")"
}

// Attributes returns the nomination-specific columns.
func (p *PowerlistNomination) Attributes() map[string]any {
	return map[string]any{
		"publication_name":      p.PublicationName,
		"website_url":           p.WebsiteURL,
		"power_list_name":       p.PowerListName,
		"industry":              p.Industry,
		"company_or_individual": p.CompanyOrIndividual,
		"tentative_month":       p.TentativeMonth,
		"location_region":       p.LocationRegion,
		"last_power_list_url":   p.LastPowerListURL,
		"image":                 p.Image,
	}
}
