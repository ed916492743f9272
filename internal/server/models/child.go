package models

import "time"

type Child struct {
	ID               string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	ParentID         string
	DateOfBirth      string // YYYY-MM-DD
	Grade            string
	School           string
	EmergencyContact string
	Notes            string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
