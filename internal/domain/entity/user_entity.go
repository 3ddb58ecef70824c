package entity

// Role decides what a user may do: owners list books, seekers browse them.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleSeeker Role = "seeker"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleSeeker
}

// User is the aggregate root for the user domain.
//
// Passwords are stored and compared as plaintext. That is the documented
// contract inherited from the legacy client-side build; the persisted
// users collection round-trips the field verbatim.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Role     Role   `json:"role"`
}

// IsOwner reports whether the user may manage book listings.
func (u *User) IsOwner() bool {
	return u != nil && u.Role == RoleOwner
}

// IsSeeker reports whether the user is a browse-only account.
func (u *User) IsSeeker() bool {
	return u != nil && u.Role == RoleSeeker
}
