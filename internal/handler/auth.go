package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketflow/internal/config"
	"github.com/iliyamo/ticketflow/internal/model"
	"github.com/iliyamo/ticketflow/internal/repository"
	"github.com/iliyamo/ticketflow/internal/utils"
)

// AuthHandler implements the OTP login flow: issue a one-time code for
// an email, then exchange a valid code for a session token. The clock
// and the code generator are injected so expiry and code generation are
// deterministic in tests; production uses time.Now and crypto/rand.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
	Codes CodeStore

	Now     func() time.Time
	GenCode func() (string, error)
}

func NewAuthHandler(cfg config.Config, users UserStore, codes CodeStore) *AuthHandler {
	return &AuthHandler{
		Cfg:     cfg,
		Users:   users,
		Codes:   codes,
		Now:     time.Now,
		GenCode: utils.GenerateOTPCode,
	}
}

// ----- DTOs -----

type sendOTPReq struct {
	Email string `json:"email"`
}
type verifyOTPReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}
type verifyOTPResp struct {
	Message string   `json:"message"`
	User    userPart `json:"user"`
	Token   string   `json:"token"`
}

// SendOTP handles POST /api/auth/send-otp. It issues a fresh six-digit
// code valid for the configured window and stores it unconsumed.
// Earlier outstanding codes for the same email stay valid.
//
// There is no mail delivery: the code comes back in the response as
// dev_code. That is a deliberate development-mode shortcut, visible in
// the field name rather than hidden behind a fake mailer.
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	code, err := h.GenCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate code failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	otp := model.OTPCode{
		Email:     email,
		Code:      code,
		ExpiresAt: h.Now().UTC().Add(time.Duration(h.Cfg.OTPTTLMin) * time.Minute),
	}
	if err := h.Codes.Insert(ctx, otp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store code failed"})
	}

	c.Logger().Infof("OTP for %s: %s", email, code)
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "OTP sent successfully",
		"dev_code": code,
	})
}

// VerifyOTP handles POST /api/auth/verify-otp. The code is consumed
// atomically; a wrong, already-used or expired code all yield the same
// 400. On success the user is loaded, created on first sight of the
// email, and a session token is returned. A user is never created
// without a genuine matching code.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.TrimSpace(req.Code)
	if email == "" || code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Codes.Consume(ctx, email, code, h.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrCodeInvalid) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired code"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify failed"})
	}

	u, err := h.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		u, err = h.Users.Create(ctx, email)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, verifyOTPResp{
		Message: "Login successful",
		User:    userPart{ID: u.ID, Email: u.Email},
		Token:   access.Token,
	})
}
