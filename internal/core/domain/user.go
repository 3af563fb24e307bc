package domain

import (
	"strings"
	"time"
)

// User models a registered person: student, teacher or staff.
type User struct {
	ID                 string    `json:"id"`
	UserName           string    `json:"userName"`
	NormalizedUserName string    `json:"normalizedUserName"`
	Email              string    `json:"email"`
	NormalizedEmail    string    `json:"normalizedEmail"`
	PasswordHash       string    `json:"-"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	AddressLine1       string    `json:"addressLine1"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	PhoneNumber        string    `json:"phoneNumber"`
	Roles              []string  `json:"roles"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Profile holds the fields a directory update is allowed to overwrite.
type Profile struct {
	UserName     string
	Email        string
	FirstName    string
	LastName     string
	AddressLine1 string
	City         string
	State        string
	PhoneNumber  string
}

// ApplyProfile copies the editable fields onto u and re-derives the
// normalized username and email. Identity fields (ID, PasswordHash, Roles,
// CreatedAt) are left alone.
func (u *User) ApplyProfile(p Profile) {
	u.UserName = p.UserName
	u.NormalizedUserName = Normalize(p.UserName)
	u.NormalizedEmail = Normalize(p.Email)
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.Email = p.Email
	u.AddressLine1 = p.AddressLine1
	u.City = p.City
	u.State = p.State
	u.PhoneNumber = p.PhoneNumber
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Normalize returns the culture-invariant upper-case form used for
// case-insensitive lookups and uniqueness. Each rune maps to exactly one
// rune, so "ß" stays "ß" and distinct names never merge by expansion.
func Normalize(s string) string {
	return strings.ToUpper(s)
}
