package model

import "time"

// User represents an account. Deletion is soft: DeletedAt is set and the
// row stays in place. A deleted user rejects every further mutation.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	DeletedAt    *time.Time `json:"-"`
}

// NewUser constructs a user that has not been persisted yet.
// Email uniqueness is enforced by the store, not here; the password hash
// is opaque to this layer.
func NewUser(id, email, passwordHash, name string) *User {
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
	}
}

// UpdateEmail returns a copy with a new email address.
func (u *User) UpdateEmail(email string) *User {
	c := *u
	c.Email = email
	return &c
}

// UpdatePasswordHash returns a copy with a new password hash.
func (u *User) UpdatePasswordHash(passwordHash string) *User {
	c := *u
	c.PasswordHash = passwordHash
	return &c
}

// MarkDeleted returns a copy with DeletedAt set to now.
func (u *User) MarkDeleted(now time.Time) *User {
	c := *u
	c.DeletedAt = &now
	return &c
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
