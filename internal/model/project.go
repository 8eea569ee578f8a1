package model

import "time"

// Project groups uploaded files under one owner. RollNumber is a denormalized
// copy of the owner's roll number, stamped at creation time so public lookups
// by roll number avoid a join.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	RollNumber  string    `json:"roll_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
