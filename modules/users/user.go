package users

import (
	"time"
)

// User is a chit-fund member account. LoginID is the human-facing
// identifier in the USR#### format that members log in with; ID is the
// storage primary key.
type User struct {
	ID            string     `bson:"_id" json:"id"`
	Name          string     `bson:"name" json:"name"`
	Email         string     `bson:"email" json:"email"`
	Phone         string     `bson:"phone" json:"phone"`
	LoginID       string     `bson:"userId" json:"userId"`
	PasswordHash  string     `bson:"password" json:"-"`
	EnrolledPlans []string   `bson:"enrolledChits" json:"enrolledChits"`
	ProfilePic    string     `bson:"profilePic" json:"profilePic"`
	IsActive      bool       `bson:"isActive" json:"isActive"`
	LastLogin     *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}
