package models

// Group represents a set of members sharing expenses.
type Group struct {
	// ID is assigned by the store at creation. IDs increase monotonically and
	// are never reused.
	ID int64

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	// Immutable after creation.
	Name string

	// Members is the list of member ids in insertion order, without duplicates.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether member belongs to the group.
func (g *Group) HasMember(member string) bool {
	for _, m := range g.Members {
		if m == member {
			return true
		}
	}
	return false
}

// AddMember appends member if it is not already present and reports whether
// the member list changed.
func (g *Group) AddMember(member string) bool {
	if member == "" || g.HasMember(member) {
		return false
	}
	g.Members = append(g.Members, member)
	return true
}
