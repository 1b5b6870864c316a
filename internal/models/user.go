package models

import "time"

// User is the users table row.
type User struct {
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
