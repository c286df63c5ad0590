package models

import "strings"

// Kind describes one moderated entity type: where it is stored, how it is
// searched and which permission governs its moderation.
type Kind struct {
	Name       string // singular key, used for notification types, e.g. "podcaster"
	Label      string // human readable, e.g. "Podcaster profile"
	Slug       string // route segment, e.g. "podcasters"
	Table      string
	Permission string

	// Columns lists the entity-specific columns in insert order.
	Columns []string
	// SearchFields are matched case-insensitively against the "q" parameter.
	SearchFields []string
	// ExactFilters maps query parameters to columns compared with equality.
	ExactFilters map[string]string
	// BoolFilters maps query parameters to BOOLEAN columns compared with
	// equality. Values must parse with strconv.ParseBool.
	BoolFilters map[string]string
	// ContainsFilters maps query parameters to columns compared with ILIKE.
	ContainsFilters map[string]string
}

// SelectColumns returns the full comma separated column list for SELECT and RETURNING.
func (k Kind) SelectColumns() string {
	cols := make([]string, 0, len(ModerationColumns)+len(k.Columns))
	cols = append(cols, ModerationColumns...)
	cols = append(cols, k.Columns...)
	return strings.Join(cols, ", ")
}

// ApprovedEvent is the in-app notification type emitted on approval.
func (k Kind) ApprovedEvent() string {
	return k.Name + "_approved"
}

// RejectedEvent is the in-app notification type emitted on rejection.
func (k Kind) RejectedEvent() string {
	return k.Name + "_rejected"
}

// AllKinds lists every moderated kind in route registration order.
var AllKinds = []Kind{
	PodcasterKind,
	CareerKind,
	PowerlistNominationKind,
	RadioKind,
	RealEstateProfessionalKind,
}

// KindBySlug looks up a kind by its route segment.
func KindBySlug(slug string) (Kind, bool) {
	for _, k := range AllKinds {
		if k.Slug == slug {
			return k, true
		}
	}
	return Kind{}, false
}
