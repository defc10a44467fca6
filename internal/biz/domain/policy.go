package domain

// Policy represents the reaction applied to a detected violation
type Policy string

const (
	PolicyDelete Policy = "Delete"
	PolicyWarn   Policy = "Warning"
)

// Toggle returns the other policy value
func (p Policy) Toggle() Policy {
	if p == PolicyDelete {
		return PolicyWarn
	}
	return PolicyDelete
}
