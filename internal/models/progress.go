package models

import "time"

// Progress is one user's completion of one module. (UserID, Module) is unique.
type Progress struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Module    string    `json:"module"`
	Percent   int       `json:"percent"`
	UpdatedAt time.Time `json:"updated_at"`
}
