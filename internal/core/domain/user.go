package domain

import "time"

// User is a branch customer. Accounts reference owners through
// Account.OwnerIDs; AccountNumbers is the inverse view loaded alongside the
// user.
type User struct {
	UserID         string    `json:"userID"`
	Name           string    `json:"name"`
	AccountNumbers []int64   `json:"accountNumbers"`
	CreatedAt      time.Time `json:"createdAt"`
}
