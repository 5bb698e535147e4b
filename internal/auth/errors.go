package auth

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("please fill in all the required fields")
	ErrMissingCredentials = errors.New("both email and password are required")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authorized, no token")
	ErrInvalidToken       = errors.New("not authorized, invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrStorage            = errors.New("storage error")
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrPasswordTooLong    = errors.New("password exceeds maximum length of 72 bytes")
)

// Client-facing messages. These are the only strings an error may surface as.
const (
	MsgValidation         = "Please fill in all the required fields"
	MsgMissingCredentials = "Both email and password are required"
	MsgDuplicateEmail     = "Email is already registered"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthenticated    = "Not authorized, no token"
	MsgInvalidToken       = "Not authorized, invalid token"
	MsgUserNotFound       = "User not found"
	MsgInvalidUserType    = "User type must be either worker or client"
	MsgPasswordTooLong    = "Password must be at most 72 bytes"
	MsgServerError        = "Server error"
)

// StatusFor maps an auth error onto the HTTP status and stable message returned
// to clients. Unknown errors map to 500 without leaking their text.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, MsgValidation
	case errors.Is(err, ErrMissingCredentials):
		return http.StatusBadRequest, MsgMissingCredentials
	case errors.Is(err, ErrInvalidUserType):
		return http.StatusBadRequest, MsgInvalidUserType
	case errors.Is(err, ErrPasswordTooLong):
		return http.StatusBadRequest, MsgPasswordTooLong
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusBadRequest, MsgDuplicateEmail
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest, MsgInvalidCredentials
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, MsgUnauthenticated
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized, MsgInvalidToken
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, MsgUserNotFound
	default:
		return http.StatusInternalServerError, MsgServerError
	}
}
