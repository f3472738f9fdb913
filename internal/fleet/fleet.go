package fleet

import "errors"

// DefaultMemberType is assigned to members created without an explicit type.
const DefaultMemberType = "Member"

var (
	ErrNotFound  = errors.New("not found")
	ErrBlankName = errors.New("name must not be blank")
)

// Vehicle is a fleet unit that expense records are booked against.
type Vehicle struct {
	ID   int64
	Name string
}

// Member is a person associated with expense records, e.g. a driver.
type Member struct {
	ID   int64
	Name string
	Type string
}
