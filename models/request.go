// File: churchapp/models/request.go
package models

import "time"

// AccountRequest is a manual approval queue entry for account creation.
// Requests are created by the member app; the admin console only flips the
// approve flag (false -> true, exactly once) or deletes the request.
type AccountRequest struct {
	ID           string    `bson:"id" json:"id"`
	Who          string    `bson:"who" json:"who"`
	LoginID      string    `bson:"loginId" json:"loginId"`
	Password     string    `bson:"pw" json:"-"`
	Approve      bool      `bson:"approve" json:"approve"`
	RegisteredAt time.Time `bson:"registeredAt" json:"registeredAt"`
}

// Account is a login account created when a request is approved.
type Account struct {
	ID           string    `bson:"id" json:"id"`
	LoginID      string    `bson:"loginId" json:"loginId"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
