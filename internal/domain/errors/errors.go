package errors

import "errors"

var (
	ErrAlreadyExists           = errors.New("already exists")
	ErrNotFound                = errors.New("not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidCart             = errors.New("invalid cart")
	ErrSessionNotFound         = errors.New("payment session not found")
	ErrVerificationUnavailable = errors.New("payment verification unavailable")
	ErrImageDecode             = errors.New("unreadable image")
	ErrNoQRFound               = errors.New("no QR code found in image")
	ErrDuplicateProof          = errors.New("payment proof already used")
	ErrTokenTaken              = errors.New("token already taken")
	ErrTokenSpaceExhausted     = errors.New("token space exhausted")
)
