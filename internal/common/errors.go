// Package common holds the record keys, sentinel errors and random helpers
// shared by the SurLink client packages.
package common

import "errors"

// Session token errors; match them with errors.Is.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
