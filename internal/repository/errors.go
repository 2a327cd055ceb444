// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrMovieNotFound maps to a 404 response while
// ErrEmptyReceipt maps to a 400 with the message the checkout
// contract requires.
package repository

import "errors"

// ErrMovieNotFound is returned when a movie ID does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrMovieNotFound = errors.New("movie not found")

// ErrShowtimeNotFound is returned when a showtime ID does not exist or
// does not belong to the requested movie. Handlers should translate
// this into an HTTP 404 response.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrProductNotFound is returned when a concession product ID does not
// exist. Handlers should translate this into an HTTP 404 response.
var ErrProductNotFound = errors.New("product not found")

// ErrVoucherNotFound is returned when a customer voucher does not
// exist or belongs to another customer.
var ErrVoucherNotFound = errors.New("voucher not found")

// ErrVoucherUsed is returned when a checkout tries to redeem a voucher
// that is no longer Unused, for example after a concurrent checkout
// already consumed it. The receipt transaction rolls back so the
// discount is never granted twice.
var ErrVoucherUsed = errors.New("voucher has already been used")

// ErrEmptyReceipt is returned when a checkout payload carries neither
// tickets nor products. The message is surfaced verbatim as the
// response detail.
var ErrEmptyReceipt = errors.New("Receipt must contain at least one ticket or product")

// ErrSeatTaken is returned when a ticket insert collides with a seat
// already sold for the same showtime.
var ErrSeatTaken = errors.New("seat already booked for this showtime")
