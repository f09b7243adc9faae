package services

import "errors"

// The error taxonomy every operation reports through. Controllers translate
// these to HTTP statuses; nothing below this layer invents its own codes.
var (
	ErrNotFound         = errors.New("file not found")
	ErrProfileNotFound  = errors.New("user profile not found")
	ErrUnauthorized     = errors.New("caller does not own the file")
	ErrQuotaExceeded    = errors.New("storage quota exceeded")
	ErrFileExpired      = errors.New("file link has expired")
	ErrFileNotPublic    = errors.New("file is not public")
	ErrUpstreamTransfer = errors.New("blob store transfer failed")
)
