// Package model defines the data structures for portal staff users.
package model

// User is a staff member of an organization who works requests and
// grievances. Role is one of superadmin, admin, or user.
type User struct {
	UserID         int64  `json:"userId"`
	OrganizationID int64  `json:"organizationId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	IsActive       bool   `json:"isActive"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// CreateRequest is the payload for creating a staff user.
type CreateRequest struct {
	OrganizationID int64  `json:"organizationId" binding:"required,gt=0"`
	FirstName      string `json:"firstName" binding:"required,max=100"`
	LastName       string `json:"lastName" binding:"max=100"`
	Email          string `json:"email" binding:"required,email"`
	Role           string `json:"role" binding:"required,oneof=superadmin admin user"`
}

// UpdateRequest is the payload for updating a staff user.
type UpdateRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"required,oneof=superadmin admin user"`
	IsActive  *bool  `json:"isActive"`
}

// ListResponse wraps a page of staff users.
type ListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}
