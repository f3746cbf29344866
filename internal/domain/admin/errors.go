package admin

import "errors"

var (
	ErrAccountNotFound      = errors.New("admin account not found")
	ErrAccountAlreadyExists = errors.New("admin account already exists")
	ErrEmailTaken           = errors.New("email is already used by another account")
)
