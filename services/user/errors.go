package user

import (
	"net/http"

	"quickcourt/utils"
)

var (
	ErrEmailInUse         = utils.NewCodedError(http.StatusConflict, "EMAIL_IN_USE", "an account with this email already exists")
	ErrInvalidCredentials = utils.Unauthorized("invalid email or password")
	ErrOTPRequired        = utils.NewCodedError(http.StatusForbidden, "OTP_REQUIRED", "email verification required, a code has been sent")
	ErrBanned             = utils.NewCodedError(http.StatusForbidden, "BANNED", "this account has been banned")
	ErrOTPInvalid         = utils.NewCodedError(http.StatusBadRequest, "OTP_INVALID", "invalid verification code")
	ErrOTPExpired         = utils.NewCodedError(http.StatusBadRequest, "OTP_EXPIRED", "verification code expired, request a new one")
	ErrUserNotFound       = utils.NotFound("user not found")
	ErrAdminSignup        = utils.BadRequest("admin accounts cannot be created through signup")
	ErrInvalidRole        = utils.BadRequest("unknown role")
	ErrCannotBanAdmin     = utils.Forbidden("forbidden")
	ErrWrongPassword      = utils.BadRequest("current password is incorrect")
)
