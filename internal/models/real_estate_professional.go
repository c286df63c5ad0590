package models

import "strings"

// RealEstateProfessionalKind describes the real-estate professionals directory.
var RealEstateProfessionalKind = Kind{
	Name:       "real_estate_professional",
	Label:      "Real estate professional profile",
	Slug:       "real-estate-professionals",
	Table:      "real_estate_professionals",
	Permission: "real_estate.manage",
	Columns: []string{
		"first_name", "last_name", "ig_url", "no_of_followers", "verified_tick",
		"linkedin", "tiktok", "facebook", "youtube", "real_estate_agency_owner",
		"real_estate_agent", "developer_employee", "gender", "nationality",
		"current_residence_city", "languages", "image",
	},
	SearchFields: []string{"first_name", "last_name", "current_residence_city"},
	ExactFilters: map[string]string{
		"gender":      "gender",
		"nationality": "nationality",
	},
	BoolFilters: map[string]string{
		"verified_tick":            "verified_tick",
		"real_estate_agency_owner": "real_estate_agency_owner",
		"real_estate_agent":        "real_estate_agent",
		"developer_employee":       "developer_employee",
	},
	ContainsFilters: map[string]string{
		"first_name":             "first_name",
		"last_name":              "last_name",
		"current_residence_city": "current_residence_city",
	},
}

// RealEstateProfessional is an agent, agency owner or developer employee.
type RealEstateProfessional struct {
	Moderation

	FirstName             string   `db:"first_name" json:"first_name" validate:"notblank,max=100"`
	LastName              string   `db:"last_name" json:"last_name" validate:"notblank,max=100"`
	IGURL                 string   `db:"ig_url" json:"ig_url" validate:"omitempty,httpurl"`
	NoOfFollowers         *int64   `db:"no_of_followers" json:"no_of_followers" validate:"omitempty,gte=0"`
	VerifiedTick          bool     `db:"verified_tick" json:"verified_tick"`
	LinkedIn              string   `db:"linkedin" json:"linkedin" validate:"omitempty,httpurl"`
	TikTok                string   `db:"tiktok" json:"tiktok" validate:"omitempty,httpurl"`
	Facebook              string   `db:"facebook" json:"facebook" validate:"omitempty,httpurl"`
	Youtube               string   `db:"youtube" json:"youtube" validate:"omitempty,httpurl"`
	RealEstateAgencyOwner bool     `db:"real_estate_agency_owner" json:"real_estate_agency_owner"`
	RealEstateAgent       bool     `db:"real_estate_agent" json:"real_estate_agent"`
	DeveloperEmployee     bool     `db:"developer_employee" json:"developer_employee"`
	Gender                string   `db:"gender" json:"gender" validate:"omitempty,oneof=male female other"`
	Nationality           string   `db:"nationality" json:"nationality" validate:"max=100"`
	CurrentResidenceCity  string   `db:"current_residence_city" json:"current_residence_city" validate:"max=100"`
	Languages             []string `db:"languages" json:"languages" validate:"dive,max=50"`
	Image                 string   `db:"image" json:"image" validate:"max=500"`
}

// DisplayName returns the professional's full name.
func (r *RealEstateProfessional) DisplayName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Attributes returns the professional-specific columns.
func (r *RealEstateProfessional) Attributes() map[string]any {
	languages := r.Languages
	if languages == nil {
		languages = []string{}
	}
	return map[string]any{
		"first_name":               r.FirstName,
		"last_name":                r.LastName,
		"ig_url":                   r.IGURL,
		"no_of_followers":          r.NoOfFollowers,
		"verified_tick":            r.VerifiedTick,
		"linkedin":                 r.LinkedIn,
		"tiktok":                   r.TikTok,
		"facebook":                 r.Facebook,
		"youtube":                  r.Youtube,
		"real_estate_agency_owner": r.RealEstateAgencyOwner,
		"real_estate_agent":        r.RealEstateAgent,
		"developer_employee":       r.DeveloperEmployee,
		"gender":                   r.Gender,
		"nationality":              r.Nationality,
		"current_residence_city":   r.CurrentResidenceCity,
		"languages":                languages,
		"image":                    r.Image,
	}
}
