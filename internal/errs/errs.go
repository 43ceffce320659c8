// Package errs defines the caller-correctable error kinds returned by the services.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies a class of precondition failure.
type Kind string

const (
	// SelfFollow is returned when a user tries to follow or unfollow themselves.
	SelfFollow Kind = "self_follow"
	// AlreadyFollowing is returned when the follow edge already exists.
	AlreadyFollowing Kind = "already_following"
	// NotFollowing is returned when unfollowing a user that is not followed.
	NotFollowing Kind = "not_following"
	// Permission is returned when the acting user does not own the entity
	// or presented bad credentials.
	Permission Kind = "permission_denied"
	// NotFound is returned when a referenced entity does not exist.
	NotFound Kind = "not_found"
	// Validation is returned for malformed input.
	Validation Kind = "validation_error"

	// Internal is what KindOf reports for errors outside the taxonomy.
	Internal Kind = "internal"
)

// Sentinels for errors.Is checks. Any *Error of the same kind matches.
var (
	ErrSelfFollow       = &Error{Kind: SelfFollow, Message: "you cannot follow yourself"}
	ErrAlreadyFollowing = &Error{Kind: AlreadyFollowing, Message: "you already follow this user"}
	ErrNotFollowing     = &Error{Kind: NotFollowing, Message: "you don't follow this user"}
	ErrPermission       = &Error{Kind: Permission, Message: "you are not allowed to do this"}
	ErrNotFound         = &Error{Kind: NotFound, Message: "resource not found"}
	ErrValidation       = &Error{Kind: Validation, Message: "invalid input"}
)

// Error is a taxonomy error with a message safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind of err, or Internal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the public message of err. Errors outside the taxonomy
// get a generic message so internals never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
