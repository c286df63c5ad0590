package models

// CareerKind describes the careers board.
var CareerKind = Kind{
	Name:         "career",
	Label:        "Career listing",
	Slug:         "careers",
	Table:        "careers",
	Permission:   "careers.manage",
	Columns:      []string{"title", "description", "company", "location", "salary", "type"},
	SearchFields: []string{"title", "company", "description"},
	ExactFilters: map[string]string{
		"type": "type",
	},
	ContainsFilters: map[string]string{
		"title":    "title",
		"company":  "company",
		"location": "location",
	},
}

// Career is a job posting.
type Career struct {
	Moderation

	Title       string `db:"title" json:"title" validate:"notblank,max=255"`
	Description string `db:"description" json:"description"`
	Company     string `db:"company" json:"company" validate:"max=255"`
	Location    string `db:"location" json:"location" validate:"max=255"`
	Salary      string `db:"salary" json:"salary" validate:"max=100"`
	Type        string `db:"type" json:"type" validate:"omitempty,oneof=full-time part-time"`
}

// DisplayName returns the job title.
func (c *Career) DisplayName() string {
	return c.Title
}

// Attributes returns the career-specific columns.
func (c *Career) Attributes() map[string]any {
	return map[string]any{
		"title":       c.Title,
		"description": c.Description,
		"company":     c.Company,
		"location":    c.Location,
		"salary":      c.Salary,
		"type":        c.Type,
	}
}
