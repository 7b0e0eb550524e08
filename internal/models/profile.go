package models

import "time"

// UserProfile holds the persisted account details used to prefill the
// checkout form. Stored in the document store, keyed by user id.
type UserProfile struct {
	UserID    string    `json:"userId" bson:"_id"`
	FirstName string    `json:"firstName" bson:"first_name"`
	LastName  string    `json:"lastName" bson:"last_name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Address   string    `json:"address" bson:"address"`
	City      string    `json:"city" bson:"city"`
	State     string    `json:"state" bson:"state"`
	ZipCode   string    `json:"zipCode" bson:"zip_code"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
