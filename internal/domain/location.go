package domain

import "time"

// UserLocation is the most recently known position of one user. At most one
// record exists per user; the Redis copy is a cache of the durable row and its
// UpdatedAt is never newer than the durable one (the cache is written only
// after the durable write commits).
type UserLocation struct {
	UserID    string    `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}
