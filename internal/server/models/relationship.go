package models

import "time"

// Relationship types.
const (
	RelationshipParent   = "parent"
	RelationshipGuardian = "guardian"
	RelationshipEscort   = "escort"
)

// Relationship links a parent (or guardian) account to a child record,
// optionally with an escort who accompanies the child on rides.
type Relationship struct {
	ID        string
	ParentID  string
	ChildID   string
	EscortID  *string
	Type      string
	Notes     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
