package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/ticketflow/internal/model"
)

// OTPRepo persists one-time codes in the 'otp_codes' table. Issuance
// never invalidates earlier codes for the same email; any number of
// outstanding rows may coexist and each is matched independently.
type OTPRepo struct{ DB *sql.DB }

func NewOTPRepo(db *sql.DB) *OTPRepo { return &OTPRepo{DB: db} }

// Insert stores a freshly issued code together with its expiry.
func (r *OTPRepo) Insert(ctx context.Context, c model.OTPCode) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO otp_codes (email, code, expires_at) VALUES (?,?,?)",
		strings.ToLower(strings.TrimSpace(c.Email)), c.Code, c.ExpiresAt)
	return err
}

// Consume atomically marks a matching unconsumed, unexpired code as
// used. The single UPDATE is the whole verification step: when two
// concurrent verify calls race on the same code, exactly one statement
// affects a row and the other sees zero rows and gets ErrCodeInvalid.
// Wrong codes, consumed codes and expired codes are indistinguishable
// to the caller.
func (r *OTPRepo) Consume(ctx context.Context, email, code string, now time.Time) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE otp_codes SET used=1 WHERE email=? AND code=? AND used=0 AND expires_at>? LIMIT 1",
		email, code, now)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCodeInvalid
	}
	return nil
}
