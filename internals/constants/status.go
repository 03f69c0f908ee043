package constants

// ActiveStatus is the on/off switch companies, certifications and
// client-certification assignments carry. "Deleting" a company flips it.
type ActiveStatus bool

const (
	Active   ActiveStatus = true
	Inactive ActiveStatus = false
)

func (s ActiveStatus) Toggle() ActiveStatus { return !s }

func (s ActiveStatus) String() string {
	if s {
		return "active"
	}
	return "inactive"
}

// ClientStatus is the soft-delete state of a client account.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

func (s ClientStatus) Valid() bool {
	return s == ClientActive || s == ClientInactive
}

// Toggle maps active to inactive and anything else to active.
func (s ClientStatus) Toggle() ClientStatus {
	if s == ClientActive {
		return ClientInactive
	}
	return ClientActive
}
