package model

import "time"

// OTPCode models a single issued one-time code in the `otp_codes` table.
// Codes are six decimal digits, valid for a fixed window after issuance
// and consumable exactly once. Several outstanding codes may coexist for
// the same email; verification simply matches the first unconsumed,
// unexpired row and stale duplicates are ignored.
//
// Fields:
//  ID        – primary key identifier.
//  Email     – address the code was issued for.
//  Code      – six-digit decimal code as a string.
//  ExpiresAt – when the code stops being accepted.
//  Used      – set once on successful verification, never cleared.
//  CreatedAt – timestamp of issuance.
type OTPCode struct {
	ID        uint64    // otp_codes.id
	Email     string    // otp_codes.email
	Code      string    // otp_codes.code
	ExpiresAt time.Time // otp_codes.expires_at
	Used      bool      // otp_codes.used
	CreatedAt time.Time // otp_codes.created_at
}
