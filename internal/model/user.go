package model

import "time"

// Role is one of the three flat account roles. There is no hierarchy
// beyond string comparison; see middleware.RequireRole.
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleMember     Role = "MEMBER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// User is an account document in the "users" collection.
//
// Fields:
//
//	ID              – document id (UUID).
//	Email           – unique, stored lower-cased.
//	Password        – bcrypt hash, never serialised to clients (see Public).
//	Role            – SUPERADMIN, ADMIN or MEMBER.
//	PropertyAddress – members only, checked against the Property at signup.
//	PropertyNumber  – members only, unit or lot number.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Password        string    `json:"password"`
	Role            Role      `json:"role"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	PropertyAddress string    `json:"propertyAddress,omitempty"`
	PropertyNumber  string    `json:"propertyNumber,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PublicUser is the shape returned to clients: everything but the hash.
type PublicUser struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	PropertyAddress string    `json:"propertyAddress,omitempty"`
	PropertyNumber  string    `json:"propertyNumber,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		Role:            u.Role,
		Name:            u.Name,
		Phone:           u.Phone,
		PropertyAddress: u.PropertyAddress,
		PropertyNumber:  u.PropertyNumber,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
