// Package models defines the domain records exchanged between repositories,
// services and the HTTP layer, plus the typed patch structs used for partial
// updates. Patches only carry mutable fields: id and createdDate cannot be
// expressed in a patch at all.
package models

import "time"

type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	SaltedPassword string    `json:"-"`
	IsAdmin        bool      `json:"isAdmin"`
	CreatedAt      time.Time `json:"createdDate"`
}

// UserPatch describes a partial update of a user. Nil fields are left
// untouched. Password carries a plaintext; the service hashes it before the
// patch reaches the repository as SaltedPassword.
type UserPatch struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	SaltedPassword *string `json:"-"`
	IsAdmin        *bool   `json:"isAdmin"`
}

// IsEmpty reports whether the patch would change nothing at the store.
func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.SaltedPassword == nil && p.IsAdmin == nil
}
