package model

import "time"

// User is the account that owns projects and files. The roll number doubles
// as the public portfolio key, so it is unique alongside username and email.
// The password hash and reset-token fields are never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	College      string    `json:"college"`
	Branch       string    `json:"branch"`
	RollNumber   string    `json:"roll_number"`
	MobileNumber string    `json:"mobile_number"`

	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
