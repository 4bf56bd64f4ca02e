// Package repository implements raw-SQL persistence over *sql.DB.
// This file defines sentinel errors shared across repositories so
// that handlers can translate failure scenarios into HTTP status
// codes with errors.Is instead of inspecting driver errors.
package repository

import "errors"

// Not-found sentinels. Handlers translate these into 404 responses.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrPaymentNotFound     = errors.New("payment not found")
)

// Uniqueness sentinels. Handlers translate these into 409 responses.
var (
	ErrRoomNameExists = errors.New("room name already exists")
	ErrUserExists     = errors.New("user with this name and phone already exists")
)
