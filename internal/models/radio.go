package models

// RadioKind describes the radio stations directory.
var RadioKind = Kind{
	Name:       "radio",
	Label:      "Radio station",
	Slug:       "radios",
	Table:      "radios",
	Permission: "radios.manage",
	Columns: []string{
		"sn", "radio_name", "frequency", "radio_language", "radio_website",
		"radio_linkedin", "radio_instagram", "emirate_state", "radio_popular_rj",
		"remarks", "image_url", "description",
	},
	SearchFields: []string{"radio_name", "frequency", "radio_popular_rj"},
	ExactFilters: map[string]string{
		"radio_language": "radio_language",
		"emirate_state":  "emirate_state",
	},
	ContainsFilters: map[string]string{
		"radio_name": "radio_name",
		"frequency":  "frequency",
	},
}

// Radio is a radio station listing.
type Radio struct {
	Moderation

	SN             string `db:"sn" json:"sn" validate:"max=100"`
	RadioName      string `db:"radio_name" json:"radio_name" validate:"notblank,max=255"`
	Frequency      string `db:"frequency" json:"frequency" validate:"notblank,max=50"`
	RadioLanguage  string `db:"radio_language" json:"radio_language" validate:"notblank,max=100"`
	RadioWebsite   string `db:"radio_website" json:"radio_website" validate:"omitempty,httpurl"`
	RadioLinkedIn  string `db:"radio_linkedin" json:"radio_linkedin" validate:"omitempty,httpurl"`
	RadioInstagram string `db:"radio_instagram" json:"radio_instagram" validate:"omitempty,httpurl"`
	EmirateState   string `db:"emirate_state" json:"emirate_state" validate:"notblank,max=100"`
	RadioPopularRJ string `db:"radio_popular_rj" json:"radio_popular_rj" validate:"max=255"`
	Remarks        string `db:"remarks" json:"remarks"`
	ImageURL       string `db:"image_url" json:"image_url" validate:"omitempty,httpurl"`
	Description    string `db:"description" json:"description" validate:"max=1000"`
}

// DisplayName returns the station name.
func (r *Radio) DisplayName() string {
	return r.RadioName
}

// Attributes returns the radio-specific columns.
func (r *Radio) Attributes() map[string]any {
	return map[string]any{
		"sn":               r.SN,
		"radio_name":       r.RadioName,
		"frequency":        r.Frequency,
		"radio_language":   r.RadioLanguage,
		"radio_website":    r.RadioWebsite,
		"radio_linkedin":   r.RadioLinkedIn,
		"radio_instagram":  r.RadioInstagram,
		"emirate_state":    r.EmirateState,
		"radio_popular_rj": r.RadioPopularRJ,
		"remarks":          r.Remarks,
		"image_url":        r.ImageURL,
		"description":      r.Description,
	}
}
