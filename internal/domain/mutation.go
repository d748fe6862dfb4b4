package domain

// MutationResult tells whether an update or delete found its target.
// Callers at the edge treat both outcomes as success.
type MutationResult int

const (
	MutationNotFound MutationResult = iota
	MutationApplied
)

func (r MutationResult) String() string {
	if r == MutationApplied {
		return "applied"
	}
	return "not_found"
}
