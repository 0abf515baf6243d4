package user

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity record behind the admin panel. Identity lives at
// the portal (the external OAuth provider); rows here are created or
// refreshed on every successful sign-in, keyed by the portal's OpenID.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OpenID       string    `gorm:"size:64;not null;uniqueIndex" json:"openId"`
	Name         string    `json:"name,omitempty"`
	Email        string    `gorm:"size:320" json:"email,omitempty"`
	LoginMethod  string    `gorm:"size:64" json:"loginMethod,omitempty"`
	Role         Role      `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

// IsAdmin is nil-safe so services can gate on the caller without a
// separate signed-in check.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
