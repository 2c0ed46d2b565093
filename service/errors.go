// Package service implements the user and to-do operations on top of the
// database, gated by the authorization policy. Handlers translate the
// sentinel errors below into HTTP statuses.
package service

import "errors"

var (
	// ErrEmptyText rejects blank to-do text.
	ErrEmptyText = errors.New("text can't be empty")

	// ErrUnknownUser means the referenced user row doesn't exist. Under
	// correct session handling this can't happen, so the edge treats it
	// as an internal error.
	ErrUnknownUser = errors.New("user not found")

	// ErrTodoNotFound is the single merged outcome for "row missing" and
	// "caller may not act on it". Keeping them indistinguishable avoids
	// confirming record existence to non-owners.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrInvalidCredentials never says which of username or password was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidOneTimeToken covers unknown, expired and already redeemed
	// one-time tokens alike.
	ErrInvalidOneTimeToken = errors.New("invalid or expired one-time token")
)
