package models

import "time"

// UserAccount is a locally registered account stored under surlinkUser_{email}.
//
// Password is only read from records written by the web client, which kept
// passwords in plain text. New records hold Salt and Verifier instead.
type UserAccount struct {
	Email          string    `json:"email"`
	Password       string    `json:"password,omitempty"`
	Salt           []byte    `json:"salt,omitempty"`
	Verifier       []byte    `json:"verifier,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// IsLegacy reports whether the record still carries a plaintext password.
func (u *UserAccount) IsLegacy() bool {
	return u.Password != "" && len(u.Verifier) == 0
}
