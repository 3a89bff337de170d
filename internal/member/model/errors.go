package model

import "errors"

var (
	// ErrInvalidUsername indicates that the provided username is empty.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidAge indicates that the provided age is negative.
	ErrInvalidAge = errors.New("invalid age")
)
