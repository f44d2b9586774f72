package domain

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrIncompleteAuthResponse = errors.New("incomplete authentication response")
var ErrSessionRevoked = errors.New("session revoked by backend")
var ErrBackendUnavailable = errors.New("retention backend unavailable")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")

// ErrStaleCompletion marks a login/logout/profile mutation that finished
// after a newer mutation on the same session already began. Its result is
// discarded instead of published.
var ErrStaleCompletion = errors.New("stale session mutation discarded")
