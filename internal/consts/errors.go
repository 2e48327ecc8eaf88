package consts

import "errors"

var (
	ErrValidation        = errors.New("invalid request")
	ErrNotFound          = errors.New("off-ramp request not found")
	ErrInvalidState      = errors.New("request cannot be approved in its current status")
	ErrAlreadyDisbursed  = errors.New("Already disbursed")
	ErrPayoutFailed      = errors.New("payout provider reported failure")
	ErrPayoutUnavailable = errors.New("payout provider unavailable")
	ErrWaitlistExists    = errors.New("email already on waitlist")
	ErrWaitlistNotFound  = errors.New("waitlist entry not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
)
