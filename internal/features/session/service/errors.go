package service

import "errors"

var (
	// ErrNotAuthenticated is returned by operations requiring a signed-in session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInsufficientPrivilege is returned by AdminLogin when the resolved
	// role is not admin. The session is signed back out before it is returned.
	ErrInsufficientPrivilege = errors.New("insufficient privilege: admin role required")

	// ErrProfileIncomplete is returned by Signup when the identity was
	// created but the profile write failed. The account exists in a
	// half-initialized state support staff must be able to recognize.
	ErrProfileIncomplete = errors.New("account created but profile setup incomplete, contact support")
)
