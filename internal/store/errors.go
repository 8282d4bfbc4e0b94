package store

import "errors"

// ErrNotFound is returned when a lookup matches no row. Handlers should
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicateQRCode is returned when creating a product whose QR code is
// already taken by another product. Handlers should translate this into an
// HTTP 409 response.
var ErrDuplicateQRCode = errors.New("duplicate qr code")

// ErrInvalidStatus is returned when a support request status transition names
// an unknown status. Handlers should translate this into an HTTP 400 response.
var ErrInvalidStatus = errors.New("invalid status")
