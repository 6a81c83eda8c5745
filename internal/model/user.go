package model

import "time"

// User represents an application user record as stored in the `users`
// table. Accounts are created implicitly on the first successful OTP
// verification for an unseen email; there is no password column because
// the only login mechanism is the one-time code flow. The json tags are
// omitted because these structs are used by the repository layer;
// handlers define separate response types with appropriate JSON tags.
//
// Fields:
//  ID        – primary key identifier of the user.
//  Email     – unique email address, stored lower-cased.
//  CreatedAt – timestamp of creation.
type User struct {
	ID        uint64    // users.id
	Email     string    // users.email
	CreatedAt time.Time // users.created_at
}
