// Package models contains the row types shared by repositories and services.
package models

import "time"

// Role names assigned to users. The admin console only ever works with a
// single role per account.
const (
	RoleAdmin  = "admin"
	RoleParent = "parent"
	RoleDriver = "driver"
	RoleEscort = "escort"
)

type User struct {
	ID             string
	Email          string
	HashedPassword string
	FirstName      string
	LastName       string
	Phone          string
	Role           string
	CompanyID      *string
	IsActive       bool
	IsVerified     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastLogin      *time.Time
}
