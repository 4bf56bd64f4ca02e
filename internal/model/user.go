package model

import "time"

// User is a row in the `users` table. There are no credentials;
// a user is identified by the (name, phone number) pair, which is
// unique and acts as the natural key for lookups.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the user.
//  PhoneNumber – phone number in 01X-XXX(X)-XXXX form.
//  CreatedAt   – creation timestamp.
type User struct {
	ID          uint64    `json:"id"`           // users.id
	Name        string    `json:"name"`         // users.name
	PhoneNumber string    `json:"phone_number"` // users.phone_number
	CreatedAt   time.Time `json:"created_at"`   // users.created_at
}
