package model

import "time"

// Reservation statuses. A reservation starts PENDING and moves to
// CONFIRMED only when a settlement webhook reports its payment as
// successful. No other transition into CONFIRMED exists.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
	ReservationCompleted = "COMPLETED"
)

// Reservation records a user's booking of a room for a same-day
// time window. Both bounds are aligned to the half-hour grid and
// the total amount is derived from the room's half-hour rate at
// creation time.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who made the reservation.
//  RoomID      – room being reserved.
//  StartTime   – start of the booked window (UTC).
//  EndTime     – end of the booked window, exclusive (UTC).
//  TotalAmount – derived price: half-hour units × room rate.
//  Status      – state of the reservation (see constants above).
//  CreatedAt   – creation timestamp.
type Reservation struct {
	ID          uint64    // reservations.id
	UserID      uint64    // reservations.user_id
	RoomID      uint64    // reservations.room_id
	StartTime   time.Time // reservations.start_time
	EndTime     time.Time // reservations.end_time
	TotalAmount uint32    // reservations.total_amount
	Status      string    // reservations.status
	CreatedAt   time.Time // reservations.created_at
}
