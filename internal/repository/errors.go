// Package repository defines sentinel error values that are reused
// across multiple repositories. These let handlers map failure
// scenarios onto HTTP statuses without inspecting driver errors:
// ErrCodeInvalid becomes a 400, the *NotFound values become 404s.
package repository

import "errors"

// ErrCodeInvalid is returned when OTP verification finds no matching
// unconsumed, unexpired code. A wrong code, an already-used code and an
// expired code all produce this error; callers are not told which.
var ErrCodeInvalid = errors.New("invalid or expired code")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrProjectNotFound is returned when a project lookup matches no row.
var ErrProjectNotFound = errors.New("project not found")

// ErrTicketNotFound is returned when a ticket lookup or update matches
// no row.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrNotificationNotFound is returned when marking a notification read
// affects no row.
var ErrNotificationNotFound = errors.New("notification not found")
