package model

import "time"

// Room represents a bookable meeting room as stored in the `rooms`
// table. Rooms are immutable after creation except for the active
// flag, which can be toggled to withdraw a room from the catalog
// without losing its reservation history.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – unique display name of the room.
//  Capacity     – maximum number of occupants.
//  HalfHourRate – price per half-hour unit.
//  IsActive     – whether the room can currently be booked.
//  CreatedAt    – creation timestamp.
type Room struct {
	ID           uint64    `json:"id"`             // rooms.id
	Name         string    `json:"name"`           // rooms.name
	Capacity     uint32    `json:"capacity"`       // rooms.capacity
	HalfHourRate uint32    `json:"half_hour_rate"` // rooms.half_hour_rate
	IsActive     bool      `json:"is_active"`      // rooms.is_active
	CreatedAt    time.Time `json:"created_at"`     // rooms.created_at
}
